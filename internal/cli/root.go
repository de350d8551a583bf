package cli

import (
	"time"

	"github.com/avirtala/takaraja/internal/notify"
	"github.com/avirtala/takaraja/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to the services used by CLI commands.
type App struct {
	Courses service.CourseService

	// Ledger backs the notify command; nil when the alert database could
	// not be opened (alerts degrade to no-ops).
	Ledger *notify.SQLiteScheduler

	// IsInteractive reports whether stdin is an interactive terminal.
	IsInteractive func() bool

	// Now is the clock used for all derived state. Tests pin it.
	Now func() time.Time
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "takaraja" command and registers all
// subcommands against the provided App. Without arguments on an interactive
// terminal it opens the course browser.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "takaraja",
		Short: "Track course deadlines from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runBrowser(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newCourseCmd(app),
		newDeadlineCmd(app),
		newTimelineCmd(app),
		newNotifyCmd(app),
	)

	return root
}

package cli

import (
	"context"
	"fmt"

	"github.com/avirtala/takaraja/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newTimelineCmd(app *App) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Plot unfinished courses on a week-aligned timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			courses, err := app.Courses.NotFinished(context.Background(), now)
			if err != nil {
				return err
			}
			fmt.Println(formatter.RenderTimeline(courses, now, width))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 100, "Total plot width in columns")

	return cmd
}

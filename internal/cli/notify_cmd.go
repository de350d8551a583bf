package cli

import (
	"context"
	"fmt"

	"github.com/avirtala/takaraja/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newNotifyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Print alerts that have come due (intended for cron)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Ledger == nil {
				return fmt.Errorf("alert ledger is not available")
			}
			ctx := context.Background()
			now := app.now()

			due, err := app.Ledger.Due(ctx, now)
			if err != nil {
				return err
			}
			if len(due) == 0 {
				fmt.Println(formatter.StyleDim.Render("No deadlines are calling."))
				return nil
			}

			for _, a := range due {
				fmt.Printf("%s %s: %s (due %s)\n",
					formatter.StyleYellow.Render("▲"),
					formatter.StyleBold.Render(a.CourseName),
					a.Title,
					a.DeadlineAt.Local().Format("2006-01-02 15:04"),
				)
				if err := app.Ledger.MarkDelivered(ctx, a.AlertID); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

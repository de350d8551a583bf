package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avirtala/takaraja/internal/cli/formatter"
	"github.com/avirtala/takaraja/internal/repository"
	"github.com/spf13/cobra"
)

// parseDate accepts a calendar day or a day with minute precision.
func parseDate(input string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, input, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q (use YYYY-MM-DD)", repository.ErrInvalidDate, input)
}

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage courses",
	}

	cmd.AddCommand(
		newCourseAddCmd(app),
		newCourseListCmd(app),
		newCourseShowCmd(app),
		newCourseRenameCmd(app),
		newCourseSetStartCmd(app),
		newCourseRemoveCmd(app),
	)

	return cmd
}

func newCourseAddCmd(app *App) *cobra.Command {
	var name, start string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new course",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if name == "" {
				// Placeholder name, to be renamed later.
				name = app.Courses.NewCourseTemplate(ctx).Name
			}
			startDate := app.now()
			if start != "" {
				parsed, err := parseDate(start)
				if err != nil {
					return err
				}
				startDate = parsed
			}

			c, err := app.Courses.CreateCourse(ctx, name, startDate)
			if err != nil {
				return err
			}
			fmt.Printf("Created course %s starting %s\n", c.Name, c.StartDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Course name (default: auto-numbered placeholder)")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD, default: today)")

	return cmd
}

func newCourseListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List courses",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := app.now()

			courses, err := app.Courses.ListCourses(ctx)
			if err != nil {
				return err
			}
			if !all {
				courses, err = app.Courses.NotFinished(ctx, now)
				if err != nil {
					return err
				}
			}
			fmt.Print(formatter.RenderCourseList(courses, now))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include finished courses")

	return cmd
}

func newCourseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a course and its deadlines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Courses.GetCourse(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Print(formatter.RenderCourse(c, app.now()))
			return nil
		},
	}
}

func newCourseRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <old-name> <new-name>",
		Short: "Rename a course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Courses.RenameCourse(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Printf("Renamed course %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

func newCourseSetStartCmd(app *App) *cobra.Command {
	var start string
	var shift bool

	cmd := &cobra.Command{
		Use:   "set-start <name>",
		Short: "Change a course's start date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDate(start)
			if err != nil {
				return err
			}
			if err := app.Courses.SetStartDate(context.Background(), args[0], startDate, shift); err != nil {
				return err
			}
			if shift {
				fmt.Printf("Moved course %s to start %s, deadlines shifted\n", args[0], start)
			} else {
				fmt.Printf("Moved course %s to start %s\n", args[0], start)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "date", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&shift, "shift", false, "Shift every deadline by the same number of days")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func newCourseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a course (the file is kept recoverable under .trash)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Courses.DeleteCourse(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted course %s\n", args[0])
			return nil
		},
	}
}

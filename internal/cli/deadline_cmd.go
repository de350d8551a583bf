package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/avirtala/takaraja/internal/domain"
	"github.com/spf13/cobra"
)

// resolveDeadline finds a deadline by UUID, UUID prefix or exact goal text.
func resolveDeadline(c *domain.Course, input string) (*domain.Deadline, error) {
	if input == "" {
		return nil, fmt.Errorf("deadline ID is required")
	}

	if d := c.DeadlineByID(input); d != nil {
		return d, nil
	}

	var matches []*domain.Deadline
	for _, d := range c.Deadlines {
		if strings.HasPrefix(d.UUID, input) || d.Goal == input {
			matches = append(matches, d)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("deadline not found in course %q: %q", c.Name, input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("deadline %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newDeadlineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deadline",
		Short: "Manage deadlines within a course",
	}

	cmd.AddCommand(
		newDeadlineAddCmd(app),
		newDeadlineEditCmd(app),
		newDeadlineRemoveCmd(app),
	)

	return cmd
}

func newDeadlineAddCmd(app *App) *cobra.Command {
	var goal, dateStr, symbol string
	var leadDays int
	var dealBreaker bool

	cmd := &cobra.Command{
		Use:   "add <course>",
		Short: "Add a deadline to a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			c, err := app.Courses.GetCourse(ctx, args[0])
			if err != nil {
				return err
			}

			d := app.Courses.NewDeadlineTemplate(c)
			if dateStr != "" {
				due, err := parseDate(dateStr)
				if err != nil {
					return err
				}
				d.Date = due
			}
			if symbol != "" {
				d.Symbol = symbol
			}
			if cmd.Flags().Changed("lead") {
				d.BecomesHotDaysBefore = leadDays
			}
			d.IsDealBreaker = dealBreaker

			if goal != "" {
				d.Goal = goal
			} else if app.interactive() {
				if err := runDeadlineForm(d); err != nil {
					return err
				}
			} else {
				return fmt.Errorf("a goal is required (use --goal)")
			}

			if err := app.Courses.AddDeadline(ctx, c.Name, d); err != nil {
				return err
			}
			fmt.Printf("Added deadline %q to %s, due %s\n", d.Goal, c.Name, d.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "What must be done by the deadline")
	cmd.Flags().StringVar(&dateStr, "date", "", "Due date (YYYY-MM-DD, default: course start + 30 days)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Display symbol tag")
	cmd.Flags().IntVar(&leadDays, "lead", 7, "Days before the due date the deadline turns hot")
	cmd.Flags().BoolVar(&dealBreaker, "deal-breaker", false, "Missing this deadline fails the course")

	return cmd
}

func newDeadlineEditCmd(app *App) *cobra.Command {
	var goal, dateStr, symbol string
	var leadDays int
	var dealBreaker bool

	cmd := &cobra.Command{
		Use:   "edit <course> <deadline>",
		Short: "Edit a deadline (ID, ID prefix or exact goal)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			c, err := app.Courses.GetCourse(ctx, args[0])
			if err != nil {
				return err
			}
			existing, err := resolveDeadline(c, args[1])
			if err != nil {
				return err
			}

			// Work on a copy; the service upserts it back by UUID.
			edited := *existing
			flagsGiven := false
			if dateStr != "" {
				due, err := parseDate(dateStr)
				if err != nil {
					return err
				}
				edited.Date = due
				flagsGiven = true
			}
			if goal != "" {
				edited.Goal = goal
				flagsGiven = true
			}
			if symbol != "" {
				edited.Symbol = symbol
				flagsGiven = true
			}
			if cmd.Flags().Changed("lead") {
				edited.BecomesHotDaysBefore = leadDays
				flagsGiven = true
			}
			if cmd.Flags().Changed("deal-breaker") {
				edited.IsDealBreaker = dealBreaker
				flagsGiven = true
			}

			if !flagsGiven {
				if !app.interactive() {
					return fmt.Errorf("nothing to change (pass flags or run interactively)")
				}
				if err := runDeadlineForm(&edited); err != nil {
					return err
				}
			}

			if err := app.Courses.EditDeadline(ctx, c.Name, &edited); err != nil {
				return err
			}
			fmt.Printf("Updated deadline %q in %s\n", edited.Goal, c.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&goal, "goal", "", "What must be done by the deadline")
	cmd.Flags().StringVar(&dateStr, "date", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "Display symbol tag")
	cmd.Flags().IntVar(&leadDays, "lead", 7, "Days before the due date the deadline turns hot")
	cmd.Flags().BoolVar(&dealBreaker, "deal-breaker", false, "Missing this deadline fails the course")

	return cmd
}

func newDeadlineRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <course> <deadline>",
		Short: "Remove a deadline from a course",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			c, err := app.Courses.GetCourse(ctx, args[0])
			if err != nil {
				return err
			}
			d, err := resolveDeadline(c, args[1])
			if err != nil {
				return err
			}
			if err := app.Courses.RemoveDeadline(ctx, c.Name, d.UUID); err != nil {
				return err
			}
			fmt.Printf("Removed deadline %q from %s\n", d.Goal, c.Name)
			return nil
		},
	}
}

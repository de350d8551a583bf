package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/avirtala/takaraja/internal/cli/formatter"
	"github.com/avirtala/takaraja/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// symbolNames is the picker set for deadline symbols; free-text entry is
// still allowed via the edit flags.
var symbolNames = []string{
	"hammer",
	"pencil.and.list.clipboard",
	"checkmark.seal",
	"checklist.checked",
	"person",
	"person.2",
	"person.3",
	"book.pages",
	"studentdesk",
	"building.columns",
	"paperplane",
	"play.display",
	"questionmark.bubble",
	"puzzlepiece.extension",
	"pencil.and.ruler",
	"graduationcap",
	"trophy",
}

// takarajaHuhTheme returns a huh theme using the existing Gruvbox palette.
func takarajaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// runDeadlineForm edits the deadline in place through an interactive form.
func runDeadlineForm(d *domain.Deadline) error {
	goal := d.Goal
	dateStr := d.Date.Format("2006-01-02")
	symbol := d.Symbol
	leadStr := strconv.Itoa(d.BecomesHotDaysBefore)
	dealBreaker := d.IsDealBreaker

	options := make([]huh.Option[string], 0, len(symbolNames)+1)
	seen := false
	for _, name := range symbolNames {
		options = append(options, huh.NewOption(name, name))
		if name == symbol {
			seen = true
		}
	}
	if !seen && symbol != "" {
		options = append(options, huh.NewOption(symbol, symbol))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Goal").
				Description("What has to be done by this deadline?").
				Value(&goal).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("goal must not be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Due date").
				Description("YYYY-MM-DD").
				Value(&dateStr).
				Validate(func(s string) error {
					_, err := parseDate(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Symbol").
				Options(options...).
				Value(&symbol),
			huh.NewInput().
				Title("Turns hot (days before)").
				Value(&leadStr).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 0 {
						return fmt.Errorf("enter a non-negative number of days")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Deal-breaker?").
				Description("Missing this deadline fails the course").
				Value(&dealBreaker),
		),
	).WithTheme(takarajaHuhTheme())

	if err := form.Run(); err != nil {
		return err
	}

	due, err := parseDate(strings.TrimSpace(dateStr))
	if err != nil {
		return err
	}
	lead, err := strconv.Atoi(strings.TrimSpace(leadStr))
	if err != nil {
		return fmt.Errorf("invalid lead days: %w", err)
	}

	d.Goal = strings.TrimSpace(goal)
	d.Date = due
	d.Symbol = symbol
	d.BecomesHotDaysBefore = lead
	d.IsDealBreaker = dealBreaker
	return nil
}

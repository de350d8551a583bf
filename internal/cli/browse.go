package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avirtala/takaraja/internal/cli/formatter"
	"github.com/avirtala/takaraja/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// coursesLoadedMsg signals that the course catalog has been loaded.
type coursesLoadedMsg struct {
	courses []*domain.Course
	err     error
}

type browserKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Timeline key.Binding
	Refresh  key.Binding
	Quit     key.Binding
}

var browserKeys = browserKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next")),
	Timeline: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// browserModel is the interactive course browser: a selectable course list
// on the left, the selected course's deadlines on the right, and an optional
// full-width timeline.
type browserModel struct {
	app *App

	courses  []*domain.Course
	cursor   int
	loading  bool
	err      error
	timeline bool
	width    int
}

func newBrowserModel(app *App) browserModel {
	return browserModel{app: app, loading: true, width: 100}
}

func (m browserModel) Init() tea.Cmd {
	return m.loadCourses()
}

func (m browserModel) loadCourses() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		courses, err := app.Courses.ListCourses(context.Background())
		return coursesLoadedMsg{courses: courses, err: err}
	}
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case coursesLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.courses = msg.courses
		if m.cursor >= len(m.courses) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, browserKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, browserKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, browserKeys.Down):
			if m.cursor < len(m.courses)-1 {
				m.cursor++
			}
		case key.Matches(msg, browserKeys.Timeline):
			m.timeline = !m.timeline
		case key.Matches(msg, browserKeys.Refresh):
			m.loading = true
			return m, m.loadCourses()
		}
	}
	return m, nil
}

func (m browserModel) View() string {
	if m.loading {
		return formatter.StyleDim.Render("Loading courses…")
	}
	if m.err != nil {
		return formatter.StyleRed.Render(fmt.Sprintf("Error: %v", m.err))
	}

	now := m.app.now()
	var body string
	if m.timeline {
		body = formatter.RenderTimeline(notFinished(m.courses, now), now, m.width-2)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.listPane(), "  ", m.detailPane())
	}

	help := formatter.StyleDim.Render("↑/↓ select · t timeline · r refresh · q quit")
	return lipgloss.JoinVertical(lipgloss.Left, body, "", help)
}

func (m browserModel) listPane() string {
	if len(m.courses) == 0 {
		return formatter.StyleDim.Render("No courses yet.")
	}
	var rows []string
	for i, c := range m.courses {
		label := truncatePane(c.Name, 24)
		if i == m.cursor {
			rows = append(rows, formatter.StyleHeader.Render("▶ "+label))
		} else {
			rows = append(rows, formatter.StyleFg.Render("  "+label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m browserModel) detailPane() string {
	if len(m.courses) == 0 {
		return ""
	}
	return formatter.RenderCourse(m.courses[m.cursor], m.app.now())
}

// notFinished filters to courses whose latest deadline has not passed.
func notFinished(courses []*domain.Course, now time.Time) []*domain.Course {
	out := make([]*domain.Course, 0, len(courses))
	for _, c := range courses {
		if end := c.EndDate(); end != nil && end.Before(now) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func truncatePane(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// runBrowser starts the interactive TUI.
func runBrowser(app *App) error {
	p := tea.NewProgram(newBrowserModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskie/internal/model"
)

// MaxPriorityMarks caps the number of "!" drawn for a task's priority.
const MaxPriorityMarks = 3

// Palette colors, used only when w is a color terminal.
const (
	colorAccent = "#719cd6"
	colorMuted  = "#71839b"
	colorWarn   = "#dbc074"
)

type styles struct {
	marker lipgloss.Style
	label  lipgloss.Style
	title  lipgloss.Style
	card   lipgloss.Style
}

// newStyles binds styles to w so that non-terminal writers get plain text.
func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		marker: r.NewStyle().Foreground(lipgloss.Color(colorWarn)).Bold(true),
		label:  r.NewStyle().Foreground(lipgloss.Color(colorMuted)).Width(6),
		title:  r.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true),
		card: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorMuted)).
			Padding(0, 1),
	}
}

// FormatTask formats a task line for the list.
// Format: "{N:>4}  {TITLE}[  {!..}]\n"
func FormatTask(w io.Writer, num int, task model.Task) {
	title := normalizeTitle(task.Title)
	marks := priorityMarks(task.Priority)
	if marks == "" {
		fmt.Fprintf(w, "%4d  %s\n", num, title)
		return
	}
	fmt.Fprintf(w, "%4d  %s  %s\n", num, title, newStyles(w).marker.Render(marks))
}

// FormatTaskCreated formats the confirmation for a newly added task.
func FormatTaskCreated(w io.Writer, task model.Task) {
	fmt.Fprintf(w, "added %s (%s)\n", normalizeTitle(task.Title), task.ID)
}

// FormatProfile renders the profile card.
func FormatProfile(w io.Writer, p model.UserProfile) {
	s := newStyles(w)
	name := p.Name
	if strings.TrimSpace(name) == "" {
		name = "(no name)"
	}
	rows := []string{
		s.title.Render(name),
		s.label.Render("email") + p.Email,
		s.label.Render("open") + pluralTasks(p.TaskCount),
	}
	fmt.Fprintln(w, s.card.Render(strings.Join(rows, "\n")))
}

func priorityMarks(priority int) string {
	if priority <= 0 {
		return ""
	}
	return strings.Repeat("!", min(priority, MaxPriorityMarks))
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

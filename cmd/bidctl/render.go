package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/bidhub-api/internal/application/toast"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Width(6)
	severityTag = map[toast.Severity]lipgloss.Style{
		toast.SeveritySuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Width(9),
		toast.SeverityError:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Width(9),
		toast.SeverityWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Width(9),
		toast.SeverityInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Width(9),
	}
)

// renderToasts formats a queue snapshot, one toast per line, ages relative to now.
func renderToasts(toasts []toast.Toast, now time.Time) string {
	if len(toasts) == 0 {
		return dimStyle.Render("no toasts") + "\n"
	}

	var b strings.Builder
	for _, t := range toasts {
		tag, ok := severityTag[t.Type]
		if !ok {
			tag = severityTag[toast.SeverityInfo]
		}
		b.WriteString(idStyle.Render(fmt.Sprintf("#%d", t.ID)))
		b.WriteString(tag.Render(string(t.Type)))
		if t.Title != "" {
			b.WriteString(titleStyle.Render(t.Title))
			b.WriteString(" ")
		}
		b.WriteString(t.Message)

		meta := []string{humanize.RelTime(t.CreatedAt, now, "ago", "from now")}
		if t.Duration > 0 {
			meta = append(meta, fmt.Sprintf("auto %s", time.Duration(t.Duration)*time.Millisecond))
		} else {
			meta = append(meta, "sticky")
		}
		if !t.Visible {
			meta = append(meta, "hiding")
		}
		b.WriteString(" ")
		b.WriteString(dimStyle.Render("(" + strings.Join(meta, ", ") + ")"))
		b.WriteString("\n")
	}
	return b.String()
}

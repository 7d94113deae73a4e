package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jtwaugh/taskweave/internal/constants"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")).Padding(0, 1)
	timeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	emptyStyle    = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("8")).Padding(0, 2)
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	header := fmt.Sprintf("%s (%s)", m.day.Format(constants.DateFormat), m.day.Weekday())
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if m.errMsg != "" {
		b.WriteString(errStyle.Render("error: " + m.errMsg))
		b.WriteString("\n\n")
	}

	if len(m.entries) == 0 {
		b.WriteString(emptyStyle.Render("nothing scheduled"))
		b.WriteString("\n")
	}

	for i, e := range m.entries {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}

		timeRange := timeStyle.Render(fmt.Sprintf("%s-%s", e.placement.Start, e.placement.End))
		title := e.title
		if e.done {
			title = doneStyle.Render(title)
		} else if i == m.selected {
			title = selectedStyle.Render(title)
		}

		b.WriteString(fmt.Sprintf("%s%s  %s\n", cursor, timeRange, title))
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m))
	return b.String()
}

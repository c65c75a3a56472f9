package editor

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"vidquiz/internal/question"
)

// tableStyles returns table styles for the question list.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle().Reverse(true)
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// columnsForWidth sizes the text column to what the terminal leaves over.
func columnsForWidth(width int) []table.Column {
	const timeWidth, kindWidth = 6, 16
	textWidth := max(width-timeWidth-kindWidth-8, 12)
	return []table.Column{
		{Title: "Time", Width: timeWidth},
		{Title: "Kind", Width: kindWidth},
		{Title: "Question", Width: textWidth},
	}
}

// rowsForQuestions converts the sorted question set into table rows.
func rowsForQuestions(questions []question.Question) []table.Row {
	rows := make([]table.Row, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, table.Row{
			formatClock(q.Meta().Time),
			kindLabel(q.Kind()),
			truncate(q.Meta().Text, 80),
		})
	}
	return rows
}

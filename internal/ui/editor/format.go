package editor

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vidquiz/internal/question"
)

// formatClock renders seconds as mm:ss.
func formatClock(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// kindLabel names a question kind for display.
func kindLabel(kind question.Kind) string {
	switch kind {
	case question.KindMultipleChoice:
		return "Multiple choice"
	case question.KindTrueFalse:
		return "True/False"
	case question.KindOrdering:
		return "Ordering"
	default:
		return string(kind)
	}
}

var kindCycle = []question.Kind{question.KindMultipleChoice, question.KindTrueFalse, question.KindOrdering}

// nextKind steps through kindCycle.
func nextKind(kind question.Kind, step int) question.Kind {
	for i, candidate := range kindCycle {
		if candidate == kind {
			return kindCycle[(i+step+len(kindCycle))%len(kindCycle)]
		}
	}
	return kindCycle[0]
}

// truncate shortens text for one-line display.
func truncate(text string, limit int) string {
	normalized := strings.Join(strings.Fields(text), " ")
	runes := []rune(normalized)
	if limit <= 3 || len(runes) <= limit {
		return normalized
	}
	return string(runes[:limit-3]) + "..."
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}

func bold(text string, noColor bool) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Bold(true).Render(text)
}

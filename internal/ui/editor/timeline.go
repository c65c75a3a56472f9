package editor

import (
	"strings"

	"vidquiz/internal/question"
)

const (
	markerRune   = '◆'
	selectedRune = '◇'
	trackRune    = '─'
	cursorRune   = '▲'
)

// timelineLength is the span shown on the timeline: the configured
// duration, stretched to keep every question and the cursor visible.
func timelineLength(duration, cursor float64, questions []question.Question) float64 {
	length := duration
	if length <= 0 {
		length = 60
	}
	for _, q := range questions {
		if t := q.Meta().Time + 10; t > length {
			length = t
		}
	}
	if cursor+1 > length {
		length = cursor + 1
	}
	return length
}

// column maps t onto a track of width cells.
func column(t, length float64, width int) int {
	if width <= 1 || length <= 0 {
		return 0
	}
	col := int(t / length * float64(width-1))
	return max(0, min(col, width-1))
}

// renderTimeline draws the track with a marker per question, the cursor
// row underneath, and the cursor and length clocks.
func renderTimeline(width int, length, cursor float64, questions []question.Question, selectedID string) string {
	if width < 10 {
		width = 10
	}
	track := []rune(strings.Repeat(string(trackRune), width))
	for _, q := range questions {
		col := column(q.Meta().Time, length, width)
		if q.Meta().ID == selectedID {
			track[col] = selectedRune
			continue
		}
		if track[col] != selectedRune {
			track[col] = markerRune
		}
	}
	pointer := []rune(strings.Repeat(" ", width))
	pointer[column(cursor, length, width)] = cursorRune

	var b strings.Builder
	b.WriteString(string(track))
	b.WriteByte('\n')
	b.WriteString(strings.TrimRight(string(pointer), " "))
	b.WriteByte('\n')
	b.WriteString(formatClock(cursor) + " / " + formatClock(length))
	return b.String()
}

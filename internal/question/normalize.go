package question

import "strings"

// Normalize returns a copy of q with surrounding whitespace trimmed from the
// question, option and item texts.
func Normalize(q Question) Question {
	out := Clone(q)
	switch typed := out.(type) {
	case *MultipleChoice:
		typed.Text = strings.TrimSpace(typed.Text)
		typed.ID = strings.TrimSpace(typed.ID)
		trimOptions(typed.Options)
	case *TrueFalse:
		typed.Text = strings.TrimSpace(typed.Text)
		typed.ID = strings.TrimSpace(typed.ID)
		typed.CorrectAnswerID = strings.ToLower(strings.TrimSpace(typed.CorrectAnswerID))
	case *Ordering:
		typed.Text = strings.TrimSpace(typed.Text)
		typed.ID = strings.TrimSpace(typed.ID)
		trimOptions(typed.Items)
	}
	return out
}

// NormalizeAll applies Normalize to every question.
func NormalizeAll(qs []Question) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, Normalize(q))
	}
	return out
}

func trimOptions(options []AnswerOption) {
	for i := range options {
		options[i].ID = strings.TrimSpace(options[i].ID)
		options[i].Text = strings.TrimSpace(options[i].Text)
	}
}

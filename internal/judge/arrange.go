package judge

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"vidquiz/internal/question"
)

// Labels for the two fixed TrueFalse options.
type TrueFalseLabels struct {
	True  string
	False string
}

// PresentedOptions returns the options shown to the viewer for a choice
// question. TrueFalse questions present the fixed true/false pair.
func PresentedOptions(q question.Question, labels TrueFalseLabels) []question.AnswerOption {
	switch typed := q.(type) {
	case *question.MultipleChoice:
		return slices.Clone(typed.Options)
	case *question.TrueFalse:
		return TrueFalseOptions(labels)
	default:
		return nil
	}
}

// TrueFalseOptions returns the fixed true/false pair in presentation order.
func TrueFalseOptions(labels TrueFalseLabels) []question.AnswerOption {
	return []question.AnswerOption{
		{ID: question.AnswerTrue, Text: labels.True},
		{ID: question.AnswerFalse, Text: labels.False},
	}
}

// Shuffle returns a uniformly permuted copy of items using Fisher-Yates. The
// result may equal the input order.
func Shuffle(items []question.AnswerOption, rng *rand.Rand) []question.AnswerOption {
	out := slices.Clone(items)
	for i := len(out) - 1; i > 0; i-- {
		var j int
		if rng != nil {
			j = rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Move removes the element at from and inserts it at to, returning a new slice.
func Move(items []question.AnswerOption, from, to int) ([]question.AnswerOption, error) {
	if from < 0 || from >= len(items) {
		return nil, fmt.Errorf("move: source index %d out of range [0,%d)", from, len(items))
	}
	if to < 0 || to >= len(items) {
		return nil, fmt.Errorf("move: destination index %d out of range [0,%d)", to, len(items))
	}
	out := slices.Clone(items)
	moved := out[from]
	out = slices.Delete(out, from, from+1)
	out = slices.Insert(out, to, moved)
	return out, nil
}

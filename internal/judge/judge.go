// Package judge decides whether a submitted answer is correct. Every function
// is pure: the same question and answer always produce the same verdict.
package judge

import (
	"errors"
	"fmt"

	"vidquiz/internal/question"
)

// ErrAnswerKind reports an answer shape that does not fit the question kind.
var ErrAnswerKind = errors.New("answer does not match question kind")

// Answer is a viewer submission: Choice or Arrangement.
type Answer interface {
	answer()
}

// Choice selects one option of a MultipleChoice or TrueFalse question.
type Choice struct {
	OptionID string
}

// Arrangement is the viewer's order of Ordering item ids.
type Arrangement struct {
	IDs []string
}

func (Choice) answer()      {}
func (Arrangement) answer() {}

// ArrangementOf builds an Arrangement from presented items.
func ArrangementOf(items []question.AnswerOption) Arrangement {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return Arrangement{IDs: ids}
}

// Judge reports whether answer is correct for q.
func Judge(q question.Question, answer Answer) (bool, error) {
	switch typed := q.(type) {
	case *question.MultipleChoice:
		return judgeChoice(typed.CorrectAnswerID, answer)
	case *question.TrueFalse:
		return judgeChoice(typed.CorrectAnswerID, answer)
	case *question.Ordering:
		arrangement, ok := answer.(Arrangement)
		if !ok {
			return false, fmt.Errorf("%w: ordering needs an arrangement, got %T", ErrAnswerKind, answer)
		}
		return InCanonicalOrder(typed.Items, arrangement.IDs), nil
	default:
		return false, fmt.Errorf("unsupported question kind %T", q)
	}
}

func judgeChoice(correct string, answer Answer) (bool, error) {
	if correct == "" {
		return false, question.ErrIncomplete
	}
	choice, ok := answer.(Choice)
	if !ok {
		return false, fmt.Errorf("%w: choice question needs a choice, got %T", ErrAnswerKind, answer)
	}
	return choice.OptionID == correct, nil
}

// InCanonicalOrder reports whether ids lists the canonical items in order.
// There is no partial credit.
func InCanonicalOrder(canonical []question.AnswerOption, ids []string) bool {
	if len(canonical) != len(ids) {
		return false
	}
	for i, item := range canonical {
		if item.ID != ids[i] {
			return false
		}
	}
	return true
}

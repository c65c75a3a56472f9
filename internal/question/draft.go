package question

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// NewID returns a fresh identifier for a question or option.
func NewID() string {
	return uuid.NewString()
}

// NewOption returns an empty option with a fresh identifier.
func NewOption() AnswerOption {
	return AnswerOption{ID: NewID()}
}

// NewDraft builds an empty question of the given kind at time.
func NewDraft(kind Kind, time float64) (Question, error) {
	header := Header{ID: NewID(), Time: time}
	switch kind {
	case KindMultipleChoice:
		return &MultipleChoice{Header: header, Options: []AnswerOption{NewOption(), NewOption()}}, nil
	case KindTrueFalse:
		return &TrueFalse{Header: header}, nil
	case KindOrdering:
		return &Ordering{Header: header, Items: []AnswerOption{NewOption(), NewOption()}}, nil
	default:
		return nil, fmt.Errorf("unknown question kind %q", kind)
	}
}

// Clone returns a deep copy of q.
func Clone(q Question) Question {
	switch typed := q.(type) {
	case *MultipleChoice:
		copied := *typed
		copied.Options = slices.Clone(typed.Options)
		return &copied
	case *TrueFalse:
		copied := *typed
		return &copied
	case *Ordering:
		copied := *typed
		copied.Items = slices.Clone(typed.Items)
		return &copied
	default:
		return nil
	}
}

// CloneAll deep copies every question in qs.
func CloneAll(qs []Question) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		out = append(out, Clone(q))
	}
	return out
}

// Sorted returns a deep copy of qs ordered by ascending time. Questions with
// equal times keep their relative order.
func Sorted(qs []Question) []Question {
	out := CloneAll(qs)
	slices.SortStableFunc(out, func(a, b Question) int {
		at, bt := a.Meta().Time, b.Meta().Time
		switch {
		case at < bt:
			return -1
		case at > bt:
			return 1
		default:
			return 0
		}
	})
	return out
}

// IndexOf returns the index of the question with id, or -1.
func IndexOf(qs []Question, id string) int {
	for i, q := range qs {
		if q.Meta().ID == id {
			return i
		}
	}
	return -1
}

// WithHeader returns a copy of q carrying header.
func WithHeader(q Question, header Header) Question {
	out := Clone(q)
	switch typed := out.(type) {
	case *MultipleChoice:
		typed.Header = header
	case *TrueFalse:
		typed.Header = header
	case *Ordering:
		typed.Header = header
	}
	return out
}

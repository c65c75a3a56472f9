package question

import (
	"errors"
	"math"
	"testing"
)

func completeMultipleChoice() *MultipleChoice {
	return &MultipleChoice{
		Header:          Header{ID: "mc", Time: 12, Text: "Pick A"},
		Options:         []AnswerOption{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}},
		CorrectAnswerID: "a",
	}
}

// TestCompleteAcceptsEveryKind verifies finished questions of each kind pass.
func TestCompleteAcceptsEveryKind(t *testing.T) {
	questions := []Question{
		completeMultipleChoice(),
		&TrueFalse{Header: Header{ID: "tf", Time: 5, Text: "True?"}, CorrectAnswerID: AnswerFalse},
		&Ordering{Header: Header{ID: "ord", Time: 0, Text: "Sort"}, Items: []AnswerOption{{ID: "1", Text: "one"}, {ID: "2", Text: "two"}}},
	}
	for _, q := range questions {
		if err := Complete(q); err != nil {
			t.Fatalf("%s: unexpected error: %v", q.Kind(), err)
		}
		if !CanSave(q) {
			t.Fatalf("%s: expected CanSave", q.Kind())
		}
	}
}

// TestCompleteRejectsDrafts verifies fresh drafts cannot be saved.
func TestCompleteRejectsDrafts(t *testing.T) {
	for _, kind := range Kinds {
		draft, err := NewDraft(kind, 3)
		if err != nil {
			t.Fatalf("new draft: %v", err)
		}
		err = Complete(draft)
		if err == nil {
			t.Fatalf("%s: expected draft to be incomplete", kind)
		}
		if !errors.Is(err, ErrInvalid) || !errors.Is(err, ErrIncomplete) {
			t.Fatalf("%s: expected ErrInvalid and ErrIncomplete, got %v", kind, err)
		}
	}
}

// TestCompleteMultipleChoiceRules verifies each multiple choice rule.
func TestCompleteMultipleChoiceRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*MultipleChoice)
		field  string
	}{
		{"blank text", func(q *MultipleChoice) { q.Text = "   " }, "questionText"},
		{"missing answer", func(q *MultipleChoice) { q.CorrectAnswerID = "" }, "correctAnswerId"},
		{"unknown answer", func(q *MultipleChoice) { q.CorrectAnswerID = "zzz" }, "correctAnswerId"},
		{"blank option", func(q *MultipleChoice) { q.Options[1].Text = "" }, "options[1].text"},
		{"too few options", func(q *MultipleChoice) { q.Options = q.Options[:1] }, "options"},
		{"negative time", func(q *MultipleChoice) { q.Time = -1 }, "time"},
		{"nan time", func(q *MultipleChoice) { q.Time = math.NaN() }, "time"},
		{"duplicate option", func(q *MultipleChoice) { q.Options[1].ID = "a" }, "options[1].id"},
	}
	for _, tc := range cases {
		q := completeMultipleChoice()
		tc.mutate(q)
		err := Complete(q)
		var validationErr *ValidationError
		if !errors.As(err, &validationErr) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
		found := false
		for _, issue := range validationErr.Issues {
			if issue.Field == tc.field {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: expected issue on %s, got %+v", tc.name, tc.field, validationErr.Issues)
		}
	}
}

// TestCompleteRejectsTooManyItems verifies the five entry ceiling.
func TestCompleteRejectsTooManyItems(t *testing.T) {
	q := &Ordering{Header: Header{ID: "ord", Time: 1, Text: "Sort"}}
	for i := 0; i < MaxOptions+1; i++ {
		q.Items = append(q.Items, AnswerOption{ID: NewID(), Text: "x"})
	}
	if err := Complete(q); err == nil {
		t.Fatalf("expected error for %d items", len(q.Items))
	}
}

// TestCompleteTrueFalseAnswerDomain verifies only true and false are accepted.
func TestCompleteTrueFalseAnswerDomain(t *testing.T) {
	q := &TrueFalse{Header: Header{ID: "tf", Time: 1, Text: "Q"}, CorrectAnswerID: "maybe"}
	if err := Complete(q); err == nil {
		t.Fatalf("expected error for answer outside true/false")
	}
}

// TestValidateSetDuplicateIDs verifies ids are unique across a set.
func TestValidateSetDuplicateIDs(t *testing.T) {
	first := completeMultipleChoice()
	second := completeMultipleChoice()
	second.Time = 20
	err := ValidateSet([]Question{first, second})
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if validationErr.Issues[0].Field != "questions[1].id" {
		t.Fatalf("unexpected issue: %+v", validationErr.Issues)
	}
}

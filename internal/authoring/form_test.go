package authoring

import (
	"errors"
	"testing"

	"vidquiz/internal/question"
)

// TestFormMultipleChoiceLifecycle verifies save gating for a new question.
func TestFormMultipleChoiceLifecycle(t *testing.T) {
	form := NewForm(12)
	if form.CanSave() {
		t.Fatalf("fresh form must not be savable")
	}
	form.SetText("Pick A")
	entries := form.Entries()
	if err := form.SetEntryText(0, "A"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if err := form.SetEntryText(1, "B"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if form.CanSave() {
		t.Fatalf("form without answer must not be savable")
	}
	if err := form.SetCorrect(entries[0].ID); err != nil {
		t.Fatalf("set correct: %v", err)
	}
	if !form.CanSave() {
		t.Fatalf("expected savable form, problems: %+v", form.Problems())
	}
	built := form.Build().(*question.MultipleChoice)
	if built.Time != 12 || built.CorrectAnswerID != entries[0].ID {
		t.Fatalf("unexpected build: %+v", built)
	}
}

// TestFormEntryBounds verifies the option limits and answer clearing.
func TestFormEntryBounds(t *testing.T) {
	form := NewForm(0)
	if err := form.RemoveEntry(0); !errors.Is(err, ErrTooFewEntries) {
		t.Fatalf("expected ErrTooFewEntries, got %v", err)
	}
	for i := 0; i < question.MaxOptions-question.MinOptions; i++ {
		if err := form.AddEntry(); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := form.AddEntry(); !errors.Is(err, ErrTooManyEntries) {
		t.Fatalf("expected ErrTooManyEntries, got %v", err)
	}
	correct := form.Entries()[2].ID
	if err := form.SetCorrect(correct); err != nil {
		t.Fatalf("set correct: %v", err)
	}
	if err := form.RemoveEntry(2); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if form.Correct() != "" {
		t.Fatalf("removing the correct option must clear the answer")
	}
}

// TestFormKeepsInputAcrossKinds verifies kind switching while creating.
func TestFormKeepsInputAcrossKinds(t *testing.T) {
	form := NewForm(3)
	if err := form.SetEntryText(0, "kept"); err != nil {
		t.Fatalf("set text: %v", err)
	}
	if err := form.SetKind(question.KindTrueFalse); err != nil {
		t.Fatalf("set kind: %v", err)
	}
	if err := form.AddEntry(); err == nil {
		t.Fatalf("true/false has no options to add")
	}
	if err := form.SetCorrect("maybe"); err == nil {
		t.Fatalf("expected true/false answer domain error")
	}
	if err := form.SetKind(question.KindMultipleChoice); err != nil {
		t.Fatalf("set kind: %v", err)
	}
	if form.Entries()[0].Text != "kept" {
		t.Fatalf("expected option text kept across kind switches")
	}
}

// TestEditFormLocksKind verifies existing questions keep their kind.
func TestEditFormLocksKind(t *testing.T) {
	q := &question.Ordering{Header: question.Header{ID: "ord", Time: 8, Text: "Sort"}, Items: []question.AnswerOption{{ID: "1", Text: "one"}, {ID: "2", Text: "two"}}}
	form := EditForm(q)
	if !form.Editing() || form.ID() != "ord" || form.Kind() != question.KindOrdering {
		t.Fatalf("unexpected edit form state")
	}
	if err := form.SetKind(question.KindTrueFalse); !errors.Is(err, ErrKindLocked) {
		t.Fatalf("expected ErrKindLocked, got %v", err)
	}
	if err := form.MoveEntry(1, 0); err != nil {
		t.Fatalf("move: %v", err)
	}
	built := form.Build().(*question.Ordering)
	if built.Items[0].ID != "2" || q.Items[0].ID != "1" {
		t.Fatalf("expected reordered copy, got %+v", built.Items)
	}
	if !form.CanSave() {
		t.Fatalf("expected edited question to stay savable")
	}
}

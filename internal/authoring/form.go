package authoring

import (
	"errors"
	"fmt"
	"slices"

	"vidquiz/internal/judge"
	"vidquiz/internal/question"
)

var (
	// ErrKindLocked reports a kind change while editing an existing question.
	ErrKindLocked = errors.New("question kind cannot change while editing")
	// ErrTooManyEntries reports an add beyond the option limit.
	ErrTooManyEntries = fmt.Errorf("at most %d options", question.MaxOptions)
	// ErrTooFewEntries reports a removal below the option minimum.
	ErrTooFewEntries = fmt.Errorf("at least %d options", question.MinOptions)
)

// Form is the editing state of one question. It keeps the fields of every
// kind so switching kinds while creating does not lose input.
type Form struct {
	id      string
	time    float64
	editing bool
	kind    question.Kind
	text    string

	choiceOptions []question.AnswerOption
	choiceCorrect string
	tfCorrect     string
	orderItems    []question.AnswerOption
}

// NewForm starts a new MultipleChoice question at t.
func NewForm(t float64) *Form {
	return &Form{
		id:            question.NewID(),
		time:          t,
		kind:          question.KindMultipleChoice,
		choiceOptions: []question.AnswerOption{question.NewOption(), question.NewOption()},
		orderItems:    []question.AnswerOption{question.NewOption(), question.NewOption()},
	}
}

// EditForm loads q for editing. The kind is locked.
func EditForm(q question.Question) *Form {
	meta := q.Meta()
	f := NewForm(meta.Time)
	f.id = meta.ID
	f.editing = true
	f.kind = q.Kind()
	f.text = meta.Text
	switch typed := q.(type) {
	case *question.MultipleChoice:
		f.choiceOptions = slices.Clone(typed.Options)
		f.choiceCorrect = typed.CorrectAnswerID
	case *question.TrueFalse:
		f.tfCorrect = typed.CorrectAnswerID
	case *question.Ordering:
		f.orderItems = slices.Clone(typed.Items)
	}
	return f
}

func (f *Form) ID() string          { return f.id }
func (f *Form) Time() float64       { return f.time }
func (f *Form) Editing() bool       { return f.editing }
func (f *Form) Kind() question.Kind { return f.kind }
func (f *Form) Text() string        { return f.text }

// SetKind switches the question kind while creating.
func (f *Form) SetKind(kind question.Kind) error {
	if f.editing && kind != f.kind {
		return ErrKindLocked
	}
	if !question.ValidKind(kind) {
		return fmt.Errorf("unknown question kind %q", kind)
	}
	f.kind = kind
	return nil
}

// SetText sets the question text.
func (f *Form) SetText(text string) { f.text = text }

// Entries returns the options or items of the current kind. TrueFalse has
// none.
func (f *Form) Entries() []question.AnswerOption {
	switch f.kind {
	case question.KindMultipleChoice:
		return slices.Clone(f.choiceOptions)
	case question.KindOrdering:
		return slices.Clone(f.orderItems)
	default:
		return nil
	}
}

func (f *Form) entries() (*[]question.AnswerOption, error) {
	switch f.kind {
	case question.KindMultipleChoice:
		return &f.choiceOptions, nil
	case question.KindOrdering:
		return &f.orderItems, nil
	default:
		return nil, fmt.Errorf("%s has no editable options", f.kind)
	}
}

// SetEntryText sets the text of the entry at index.
func (f *Form) SetEntryText(index int, text string) error {
	list, err := f.entries()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(*list) {
		return fmt.Errorf("option %d out of range", index)
	}
	(*list)[index].Text = text
	return nil
}

// AddEntry appends an empty entry.
func (f *Form) AddEntry() error {
	list, err := f.entries()
	if err != nil {
		return err
	}
	if len(*list) >= question.MaxOptions {
		return ErrTooManyEntries
	}
	*list = append(*list, question.NewOption())
	return nil
}

// RemoveEntry removes the entry at index. Removing the correct option of a
// MultipleChoice question clears the answer.
func (f *Form) RemoveEntry(index int) error {
	list, err := f.entries()
	if err != nil {
		return err
	}
	if len(*list) <= question.MinOptions {
		return ErrTooFewEntries
	}
	if index < 0 || index >= len(*list) {
		return fmt.Errorf("option %d out of range", index)
	}
	removed := (*list)[index]
	*list = slices.Delete(*list, index, index+1)
	if f.kind == question.KindMultipleChoice && removed.ID == f.choiceCorrect {
		f.choiceCorrect = ""
	}
	return nil
}

// MoveEntry reorders entries. For Ordering questions the entry order is the
// canonical answer.
func (f *Form) MoveEntry(from, to int) error {
	list, err := f.entries()
	if err != nil {
		return err
	}
	moved, err := judge.Move(*list, from, to)
	if err != nil {
		return err
	}
	*list = moved
	return nil
}

// SetCorrect marks the answer: an option id for MultipleChoice, "true" or
// "false" for TrueFalse.
func (f *Form) SetCorrect(id string) error {
	switch f.kind {
	case question.KindMultipleChoice:
		for _, option := range f.choiceOptions {
			if option.ID == id {
				f.choiceCorrect = id
				return nil
			}
		}
		return fmt.Errorf("unknown option %q", id)
	case question.KindTrueFalse:
		if id != question.AnswerTrue && id != question.AnswerFalse {
			return fmt.Errorf("answer must be %q or %q", question.AnswerTrue, question.AnswerFalse)
		}
		f.tfCorrect = id
		return nil
	default:
		return fmt.Errorf("%s has no single answer", f.kind)
	}
}

// Correct returns the marked answer of a choice question.
func (f *Form) Correct() string {
	switch f.kind {
	case question.KindMultipleChoice:
		return f.choiceCorrect
	case question.KindTrueFalse:
		return f.tfCorrect
	default:
		return ""
	}
}

// Build returns the question described by the form.
func (f *Form) Build() question.Question {
	header := question.Header{ID: f.id, Time: f.time, Text: f.text}
	switch f.kind {
	case question.KindTrueFalse:
		return &question.TrueFalse{Header: header, CorrectAnswerID: f.tfCorrect}
	case question.KindOrdering:
		return &question.Ordering{Header: header, Items: slices.Clone(f.orderItems)}
	default:
		return &question.MultipleChoice{Header: header, Options: slices.Clone(f.choiceOptions), CorrectAnswerID: f.choiceCorrect}
	}
}

// CanSave reports whether the form describes a complete question.
func (f *Form) CanSave() bool {
	return question.CanSave(f.Build())
}

// Problems lists what still blocks saving.
func (f *Form) Problems() []question.Issue {
	var validationErr *question.ValidationError
	if errors.As(question.Complete(f.Build()), &validationErr) {
		return validationErr.Issues
	}
	return nil
}

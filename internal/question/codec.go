package question

import (
	"encoding/json"
	"fmt"
)

// Record is the flat wire shape of a question, shared by question files and
// exported players.
type Record struct {
	ID              string         `json:"id" yaml:"id"`
	Time            float64        `json:"time" yaml:"time"`
	QuestionText    string         `json:"questionText" yaml:"questionText"`
	Type            Kind           `json:"type" yaml:"type"`
	Options         []AnswerOption `json:"options,omitempty" yaml:"options,omitempty"`
	Items           []AnswerOption `json:"items,omitempty" yaml:"items,omitempty"`
	CorrectAnswerID *string        `json:"correctAnswerId,omitempty" yaml:"correctAnswerId,omitempty"`
}

type multipleChoiceWire struct {
	ID              string         `json:"id"`
	Time            float64        `json:"time"`
	QuestionText    string         `json:"questionText"`
	Type            Kind           `json:"type"`
	Options         []AnswerOption `json:"options"`
	CorrectAnswerID *string        `json:"correctAnswerId"`
}

type trueFalseWire struct {
	ID              string  `json:"id"`
	Time            float64 `json:"time"`
	QuestionText    string  `json:"questionText"`
	Type            Kind    `json:"type"`
	CorrectAnswerID *string `json:"correctAnswerId"`
}

type orderingWire struct {
	ID           string         `json:"id"`
	Time         float64        `json:"time"`
	QuestionText string         `json:"questionText"`
	Type         Kind           `json:"type"`
	Items        []AnswerOption `json:"items"`
}

// ToRecord converts q into its wire record.
func ToRecord(q Question) (Record, error) {
	meta := q.Meta()
	record := Record{ID: meta.ID, Time: meta.Time, QuestionText: meta.Text, Type: q.Kind()}
	switch typed := q.(type) {
	case *MultipleChoice:
		record.Options = nonNilOptions(typed.Options)
		record.CorrectAnswerID = nullable(typed.CorrectAnswerID)
	case *TrueFalse:
		record.CorrectAnswerID = nullable(typed.CorrectAnswerID)
	case *Ordering:
		record.Items = nonNilOptions(typed.Items)
	default:
		return Record{}, fmt.Errorf("unsupported question kind %T", q)
	}
	return record, nil
}

// FromRecord converts a wire record into a question. Fields that do not
// belong to the record's kind are rejected.
func FromRecord(record Record) (Question, error) {
	header := Header{ID: record.ID, Time: record.Time, Text: record.QuestionText}
	switch record.Type {
	case KindMultipleChoice:
		if record.Items != nil {
			return nil, fmt.Errorf("question %q: items are not allowed for %s", record.ID, record.Type)
		}
		return &MultipleChoice{Header: header, Options: record.Options, CorrectAnswerID: deref(record.CorrectAnswerID)}, nil
	case KindTrueFalse:
		if record.Options != nil || record.Items != nil {
			return nil, fmt.Errorf("question %q: options are not allowed for %s", record.ID, record.Type)
		}
		return &TrueFalse{Header: header, CorrectAnswerID: deref(record.CorrectAnswerID)}, nil
	case KindOrdering:
		if record.Options != nil || record.CorrectAnswerID != nil {
			return nil, fmt.Errorf("question %q: options and correctAnswerId are not allowed for %s", record.ID, record.Type)
		}
		return &Ordering{Header: header, Items: record.Items}, nil
	case "":
		return nil, fmt.Errorf("question %q: type is required", record.ID)
	default:
		return nil, fmt.Errorf("question %q: unknown type %q", record.ID, record.Type)
	}
}

// List is an ordered question set with the player wire encoding.
type List []Question

// MarshalJSON encodes the list in the exact field layout the player reads.
func (list List) MarshalJSON() ([]byte, error) {
	wire := make([]any, 0, len(list))
	for _, q := range list {
		meta := q.Meta()
		switch typed := q.(type) {
		case *MultipleChoice:
			wire = append(wire, multipleChoiceWire{
				ID: meta.ID, Time: meta.Time, QuestionText: meta.Text, Type: KindMultipleChoice,
				Options: nonNilOptions(typed.Options), CorrectAnswerID: nullable(typed.CorrectAnswerID),
			})
		case *TrueFalse:
			wire = append(wire, trueFalseWire{
				ID: meta.ID, Time: meta.Time, QuestionText: meta.Text, Type: KindTrueFalse,
				CorrectAnswerID: nullable(typed.CorrectAnswerID),
			})
		case *Ordering:
			wire = append(wire, orderingWire{
				ID: meta.ID, Time: meta.Time, QuestionText: meta.Text, Type: KindOrdering,
				Items: nonNilOptions(typed.Items),
			})
		default:
			return nil, fmt.Errorf("unsupported question kind %T", q)
		}
	}
	return json.Marshal(wire)
}

// UnmarshalJSON decodes a JSON array of question records.
func (list *List) UnmarshalJSON(data []byte) error {
	var records []Record
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	decoded, err := fromRecords(records)
	if err != nil {
		return err
	}
	*list = decoded
	return nil
}

func fromRecords(records []Record) (List, error) {
	out := make(List, 0, len(records))
	for i, record := range records {
		q, err := FromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("questions[%d]: %w", i, err)
		}
		out = append(out, q)
	}
	return out, nil
}

func nullable(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func nonNilOptions(options []AnswerOption) []AnswerOption {
	if options == nil {
		return []AnswerOption{}
	}
	return options
}

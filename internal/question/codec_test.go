package question

import (
	"encoding/json"
	"reflect"
	"testing"
)

// TestListMarshalWireLayout verifies the exact player field layout, including null answers.
func TestListMarshalWireLayout(t *testing.T) {
	list := List{
		&TrueFalse{Header: Header{ID: "tf", Time: 5, Text: "Sky is blue"}, CorrectAnswerID: AnswerTrue},
		&MultipleChoice{Header: Header{ID: "mc", Time: 12, Text: "Pick"}, Options: []AnswerOption{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}},
		&Ordering{Header: Header{ID: "ord", Time: 20, Text: "Sort"}, Items: []AnswerOption{{ID: "1", Text: "one"}, {ID: "2", Text: "two"}}},
	}
	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"id":"tf","time":5,"questionText":"Sky is blue","type":"TRUE_FALSE","correctAnswerId":"true"},` +
		`{"id":"mc","time":12,"questionText":"Pick","type":"MULTIPLE_CHOICE","options":[{"id":"a","text":"A"},{"id":"b","text":"B"}],"correctAnswerId":null},` +
		`{"id":"ord","time":20,"questionText":"Sort","type":"ORDERING","items":[{"id":"1","text":"one"},{"id":"2","text":"two"}]}]`
	if string(data) != want {
		t.Fatalf("unexpected wire layout:\n got %s\nwant %s", data, want)
	}
}

// TestListRoundTrip verifies decoding restores kinds, order, and fields.
func TestListRoundTrip(t *testing.T) {
	list := List{
		&MultipleChoice{Header: Header{ID: "mc", Time: 1.25, Text: "Pick"}, Options: []AnswerOption{{ID: "a", Text: "A"}, {ID: "b", Text: "B"}}, CorrectAnswerID: "b"},
		&Ordering{Header: Header{ID: "ord", Time: 2, Text: "Sort"}, Items: []AnswerOption{{ID: "1", Text: "one"}, {ID: "2", Text: "two"}}},
	}
	data, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded List
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(list, decoded) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", decoded, list)
	}
}

// TestFromRecordUnknownType verifies unknown kinds are rejected.
func TestFromRecordUnknownType(t *testing.T) {
	if _, err := FromRecord(Record{ID: "x", Type: "ESSAY"}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if _, err := FromRecord(Record{ID: "x"}); err == nil {
		t.Fatalf("expected error for missing type")
	}
}

// TestSortedIsStableAndDeep verifies ordering by time and independence from the input.
func TestSortedIsStableAndDeep(t *testing.T) {
	first := &TrueFalse{Header: Header{ID: "first", Time: 10, Text: "a"}, CorrectAnswerID: AnswerTrue}
	second := &TrueFalse{Header: Header{ID: "second", Time: 10, Text: "b"}, CorrectAnswerID: AnswerTrue}
	early := &TrueFalse{Header: Header{ID: "early", Time: 1, Text: "c"}, CorrectAnswerID: AnswerTrue}
	sorted := Sorted([]Question{first, second, early})
	ids := []string{sorted[0].Meta().ID, sorted[1].Meta().ID, sorted[2].Meta().ID}
	if !reflect.DeepEqual(ids, []string{"early", "first", "second"}) {
		t.Fatalf("unexpected order: %v", ids)
	}
	sorted[0].(*TrueFalse).Text = "changed"
	if early.Text != "c" {
		t.Fatalf("expected Sorted to deep copy")
	}
}

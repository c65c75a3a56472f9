package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"vidquiz/internal/media"
	"vidquiz/internal/question"
)

// VideoBytes is a minimal MP4 header: enough for type sniffing, not for
// decoding.
var VideoBytes = []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00mp42isom\x00\x00\x00\x08free")

// Video returns an in-memory MP4 source named lesson.mp4.
func Video(t testing.TB) *media.Source {
	t.Helper()
	video, err := media.FromBytes("lesson.mp4", VideoBytes)
	if err != nil {
		t.Fatalf("video fixture: %v", err)
	}
	return video
}

// WriteFile writes body to dir/name, creating parent directories.
func WriteFile(t testing.TB, dir, name string, body []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteVideo writes VideoBytes to dir/name.
func WriteVideo(t testing.TB, dir, name string) string {
	t.Helper()
	return WriteFile(t, dir, name, VideoBytes)
}

// Questions returns one complete question of each kind with fixed ids:
// "tf" at 2s (true), "mc" at 5s (option "mc-b"), "order" at 8s
// (items "o1", "o2", "o3").
func Questions() []question.Question {
	return []question.Question{
		&question.TrueFalse{
			Header:          question.Header{ID: "tf", Time: 2, Text: "The sky is blue."},
			CorrectAnswerID: question.AnswerTrue,
		},
		&question.MultipleChoice{
			Header: question.Header{ID: "mc", Time: 5, Text: "Pick the second letter."},
			Options: []question.AnswerOption{
				{ID: "mc-a", Text: "A"},
				{ID: "mc-b", Text: "B"},
				{ID: "mc-c", Text: "C"},
			},
			CorrectAnswerID: "mc-b",
		},
		&question.Ordering{
			Header: question.Header{ID: "order", Time: 8, Text: "Put the steps in order."},
			Items: []question.AnswerOption{
				{ID: "o1", Text: "Plan"},
				{ID: "o2", Text: "Record"},
				{ID: "o3", Text: "Publish"},
			},
		},
	}
}

// WriteQuestions writes questions to dir/name in the question file format.
func WriteQuestions(t testing.TB, dir, name string, questions []question.Question) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := question.WriteFile(path, question.File{Version: question.CurrentVersion, Questions: questions}); err != nil {
		t.Fatalf("write questions: %v", err)
	}
	return path
}

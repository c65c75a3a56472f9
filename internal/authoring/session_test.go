package authoring

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"vidquiz/internal/export"
	"vidquiz/internal/media"
	"vidquiz/internal/question"
)

func loadedSession(t *testing.T) *Session {
	t.Helper()
	video, err := media.FromBytes("lesson.mp4", []byte("video"))
	if err != nil {
		t.Fatalf("video: %v", err)
	}
	session := NewSession(nil)
	session.LoadVideo(video)
	return session
}

func trueFalse(id string, at float64) *question.TrueFalse {
	return &question.TrueFalse{Header: question.Header{ID: id, Time: at, Text: "Q " + id}, CorrectAnswerID: question.AnswerTrue}
}

// TestSaveReplacesOrAppends verifies save by id and the cleared editing state.
func TestSaveReplacesOrAppends(t *testing.T) {
	session := loadedSession(t)
	if err := session.Save(trueFalse("b", 10)); err != nil {
		t.Fatalf("save: %v", err)
	}
	session.BeginCreate(3)
	if err := session.Save(trueFalse("a", 3)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, pending := session.PendingTime(); pending {
		t.Fatalf("expected pending time cleared after save")
	}
	if _, err := session.Select("b"); err != nil {
		t.Fatalf("select: %v", err)
	}
	edited := trueFalse("b", 10)
	edited.Text = "changed"
	if err := session.Save(edited); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, selected := session.Selected(); selected {
		t.Fatalf("expected selection cleared after save")
	}
	questions := session.Questions()
	if len(questions) != 2 || questions[0].Meta().ID != "a" || questions[1].Meta().Text != "changed" {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

// TestSaveRejectsIncomplete verifies drafts never enter the set.
func TestSaveRejectsIncomplete(t *testing.T) {
	session := loadedSession(t)
	draft, err := question.NewDraft(question.KindOrdering, 4)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if err := session.Save(draft); !errors.Is(err, question.ErrIncomplete) {
		t.Fatalf("expected ErrIncomplete, got %v", err)
	}
	if len(session.Questions()) != 0 {
		t.Fatalf("expected empty set")
	}
}

// TestDeleteClearsSelection verifies deletion of the selected question.
func TestDeleteClearsSelection(t *testing.T) {
	session := loadedSession(t)
	for _, q := range []question.Question{trueFalse("a", 1), trueFalse("b", 2)} {
		if err := session.Save(q); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if _, err := session.Select("a"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if session.Delete("b") {
		if _, selected := session.Selected(); !selected {
			t.Fatalf("deleting another question must keep the selection")
		}
	}
	if !session.Delete("a") {
		t.Fatalf("expected a to be deleted")
	}
	if _, selected := session.Selected(); selected {
		t.Fatalf("expected selection cleared")
	}
	if session.Delete("a") {
		t.Fatalf("expected second delete to report false")
	}
}

// TestLoadVideoResetsState verifies a new video starts from an empty set.
func TestLoadVideoResetsState(t *testing.T) {
	session := loadedSession(t)
	if err := session.Save(trueFalse("a", 1)); err != nil {
		t.Fatalf("save: %v", err)
	}
	session.BeginCreate(7)
	video, _ := media.FromBytes("other.webm", []byte("other"))
	session.LoadVideo(video)
	if len(session.Questions()) != 0 {
		t.Fatalf("expected questions reset")
	}
	if _, pending := session.PendingTime(); pending {
		t.Fatalf("expected pending time reset")
	}
	if got, _ := session.Video(); got.Name != "other.webm" {
		t.Fatalf("unexpected video %s", got.Name)
	}
}

// TestExportWithoutVideo verifies the precondition and that write is never called.
func TestExportWithoutVideo(t *testing.T) {
	session := NewSession(nil)
	called := false
	err := session.Export(context.Background(), export.ModeHTML, func(context.Context, *media.Source, []question.Question) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrNoVideo) {
		t.Fatalf("expected ErrNoVideo, got %v", err)
	}
	if called {
		t.Fatalf("write must not run without a video")
	}
}

// TestExportFailureResetsFlag verifies failures are wrapped and state survives.
func TestExportFailureResetsFlag(t *testing.T) {
	session := loadedSession(t)
	if err := session.Save(trueFalse("a", 1)); err != nil {
		t.Fatalf("save: %v", err)
	}
	var sawExporting atomic.Bool
	boom := errors.New("disk full")
	err := session.Export(context.Background(), export.ModeZip, func(_ context.Context, _ *media.Source, questions []question.Question) error {
		sawExporting.Store(session.Exporting())
		questions[0].(*question.TrueFalse).Text = "mutated"
		return boom
	})
	var genErr *export.GenerationError
	if !errors.As(err, &genErr) || genErr.Mode != export.ModeZip || !errors.Is(err, boom) {
		t.Fatalf("expected zip generation error, got %v", err)
	}
	if !sawExporting.Load() {
		t.Fatalf("expected exporting flag during write")
	}
	if session.Exporting() {
		t.Fatalf("expected exporting flag cleared")
	}
	if session.Questions()[0].Meta().Text != "Q a" {
		t.Fatalf("export must not modify the question set")
	}
}

// TestImportValidates verifies imported sets go through set validation.
func TestImportValidates(t *testing.T) {
	session := loadedSession(t)
	if err := session.Import([]question.Question{trueFalse("a", 1), trueFalse("a", 2)}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if err := session.Import([]question.Question{trueFalse("a", 1)}); err != nil {
		t.Fatalf("import: %v", err)
	}
	if len(session.Questions()) != 1 {
		t.Fatalf("expected imported question")
	}
}

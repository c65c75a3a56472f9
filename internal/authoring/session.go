// Package authoring owns the author's editing state: the loaded video, the
// question set, the current selection, and the export guard.
package authoring

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"vidquiz/internal/export"
	"vidquiz/internal/logger"
	"vidquiz/internal/media"
	"vidquiz/internal/question"
)

var (
	// ErrNoVideo reports an export attempted before a video was loaded.
	ErrNoVideo = errors.New("load a video before exporting")
	// ErrExportInProgress reports an export started while another runs.
	ErrExportInProgress = errors.New("an export is already running")
	// ErrUnknownQuestion reports an id not present in the question set.
	ErrUnknownQuestion = errors.New("unknown question")
)

// ExportFunc writes an artifact for video and the sorted questions.
type ExportFunc func(ctx context.Context, video *media.Source, questions []question.Question) error

// Session is one authoring session. It is safe for concurrent use so an
// export may run off the UI goroutine.
type Session struct {
	mu         sync.Mutex
	log        *logger.Logger
	video      *media.Source
	questions  []question.Question
	selectedID string
	pending    *float64
	exporting  bool
	revision   int
}

// NewSession returns an empty session. log may be nil.
func NewSession(log *logger.Logger) *Session {
	return &Session{log: logger.OrNop(log)}
}

// LoadVideo replaces the video and resets the question set, the selection,
// and the pending creation time.
func (s *Session) LoadVideo(video *media.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.video = video
	s.questions = nil
	s.selectedID = ""
	s.pending = nil
	s.revision++
	if video != nil {
		s.log.Info("video loaded", "name", video.Name, "mime", video.MIME, "bytes", video.Size)
	}
}

// Video returns the loaded video.
func (s *Session) Video() (*media.Source, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.video, s.video != nil
}

// Import replaces the question set with a validated set, as when a question
// file is opened alongside the video.
func (s *Session) Import(questions []question.Question) error {
	normalized := question.NormalizeAll(questions)
	if err := question.ValidateSet(normalized); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = normalized
	s.selectedID = ""
	s.pending = nil
	s.revision++
	return nil
}

// Questions returns a time-sorted deep copy of the question set.
func (s *Session) Questions() []question.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return question.Sorted(s.questions)
}

// Revision increments on every change to the question set.
func (s *Session) Revision() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}

// BeginCreate starts a new question at t and clears the selection.
func (s *Session) BeginCreate(t float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t < 0 {
		t = 0
	}
	s.pending = &t
	s.selectedID = ""
}

// PendingTime returns the time of the question being created.
func (s *Session) PendingTime() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return 0, false
	}
	return *s.pending, true
}

// Select marks the question with id for editing and cancels creation.
func (s *Session) Select(id string) (question.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := question.IndexOf(s.questions, id)
	if index < 0 {
		return nil, fmt.Errorf("select %q: %w", id, ErrUnknownQuestion)
	}
	s.selectedID = id
	s.pending = nil
	return question.Clone(s.questions[index]), nil
}

// Selected returns the question selected for editing.
func (s *Session) Selected() (question.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := question.IndexOf(s.questions, s.selectedID)
	if s.selectedID == "" || index < 0 {
		return nil, false
	}
	return question.Clone(s.questions[index]), true
}

// ClearSelection cancels editing and creation.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = ""
	s.pending = nil
}

// Save stores q, replacing the question with the same id or appending it.
// Incomplete questions are rejected with the validation error and leave the
// set unchanged.
func (s *Session) Save(q question.Question) error {
	if q == nil {
		return fmt.Errorf("save: question is required")
	}
	q = question.Normalize(q)
	if err := question.Complete(q); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if index := question.IndexOf(s.questions, q.Meta().ID); index >= 0 {
		s.questions[index] = q
	} else {
		s.questions = append(s.questions, q)
	}
	s.selectedID = ""
	s.pending = nil
	s.revision++
	s.log.Debug("question saved", "id", q.Meta().ID, "kind", q.Kind(), "time", q.Meta().Time)
	return nil
}

// Delete removes the question with id. It reports whether a question was
// removed and clears the selection when it pointed at id.
func (s *Session) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := question.IndexOf(s.questions, id)
	if index < 0 {
		return false
	}
	s.questions = append(s.questions[:index], s.questions[index+1:]...)
	if s.selectedID == id {
		s.selectedID = ""
	}
	s.revision++
	s.log.Debug("question deleted", "id", id)
	return true
}

// Exporting reports whether an export is running.
func (s *Session) Exporting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exporting
}

// Export runs write over the current video and a snapshot of the question
// set. Without a video it fails with ErrNoVideo and write is not called.
// Failures from write are returned as *export.GenerationError. The exporting
// flag is always cleared and the question set is never modified.
func (s *Session) Export(ctx context.Context, mode export.Mode, write ExportFunc) error {
	s.mu.Lock()
	if s.video == nil {
		s.mu.Unlock()
		s.log.Warn("export refused", "mode", mode, "error", ErrNoVideo)
		return ErrNoVideo
	}
	if s.exporting {
		s.mu.Unlock()
		return ErrExportInProgress
	}
	s.exporting = true
	video := s.video
	snapshot := question.Sorted(s.questions)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.exporting = false
		s.mu.Unlock()
	}()

	log := s.log.With("mode", mode, "questions", len(snapshot))
	log.Info("export started")
	if err := write(ctx, video, snapshot); err != nil {
		err = export.Wrap(mode, err)
		log.Error("export failed", "error", err)
		return err
	}
	log.Info("export finished")
	return nil
}

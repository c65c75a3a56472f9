// Package trigger decides when a question becomes active during playback.
package trigger

import (
	"vidquiz/internal/question"
)

// Window is the tolerance, in seconds, after a question's time during which a
// playback sample still activates it.
const Window = 0.5

// MaxStep is the largest media advance between two samples. Anything wider
// could step over a whole window without a sample inside it.
const MaxStep = Window / 2

// Sample is one playback position report.
type Sample struct {
	Time    float64
	Seeking bool
	Paused  bool
}

// Engine tracks which questions already fired in the current playback.
// Engine is not safe for concurrent use.
type Engine struct {
	questions []question.Question
	fired     map[string]struct{}
}

// New returns an engine over a time-sorted snapshot of questions.
func New(questions []question.Question) *Engine {
	return &Engine{
		questions: question.Sorted(questions),
		fired:     map[string]struct{}{},
	}
}

// Questions returns the sorted snapshot the engine evaluates.
func (e *Engine) Questions() []question.Question {
	return e.questions
}

// Evaluate returns the first unfired question whose window contains the
// sample time and marks it fired. Samples taken while seeking or paused never
// match.
func (e *Engine) Evaluate(sample Sample) (question.Question, bool) {
	if sample.Seeking || sample.Paused {
		return nil, false
	}
	for _, q := range e.questions {
		meta := q.Meta()
		if _, done := e.fired[meta.ID]; done {
			continue
		}
		if sample.Time >= meta.Time && sample.Time < meta.Time+Window {
			e.fired[meta.ID] = struct{}{}
			return q, true
		}
	}
	return nil, false
}

// Rearm clears the fired mark of every question after position, so seeking
// back replays them. It returns the number of questions re-armed.
func (e *Engine) Rearm(position float64) int {
	removed := 0
	for _, q := range e.questions {
		meta := q.Meta()
		if meta.Time <= position {
			continue
		}
		if _, done := e.fired[meta.ID]; done {
			delete(e.fired, meta.ID)
			removed++
		}
	}
	return removed
}

// Fired reports whether the question with id fired and was not re-armed.
func (e *Engine) Fired(id string) bool {
	_, done := e.fired[id]
	return done
}

// Previous returns the time of the question sorted immediately before id, or
// 0 when id is the first question or unknown.
func (e *Engine) Previous(id string) float64 {
	index := question.IndexOf(e.questions, id)
	if index <= 0 {
		return 0
	}
	return e.questions[index-1].Meta().Time
}

// Replace swaps the question set. Fired marks of questions that no longer
// exist are dropped.
func (e *Engine) Replace(questions []question.Question) {
	e.questions = question.Sorted(questions)
	for id := range e.fired {
		if question.IndexOf(e.questions, id) < 0 {
			delete(e.fired, id)
		}
	}
}

// Reset clears every fired mark.
func (e *Engine) Reset() {
	clear(e.fired)
}

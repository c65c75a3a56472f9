package playback

import "vidquiz/internal/question"

// EventType identifies a playback event for observers.
type EventType string

const (
	// EventTriggered marks a question becoming active.
	EventTriggered EventType = "triggered"
	// EventJudged marks a submitted answer.
	EventJudged EventType = "judged"
	// EventResumed marks playback resuming after a result.
	EventResumed EventType = "resumed"
)

// Event carries one playback transition.
type Event struct {
	Type     EventType
	Question question.Question
	Correct  bool
	Position float64
}

// Observer receives playback events.
type Observer interface {
	OnPlaybackEvent(event Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnPlaybackEvent calls f.
func (f ObserverFunc) OnPlaybackEvent(event Event) { f(event) }

// Recorder collects events in order.
type Recorder struct {
	Events []Event
}

// OnPlaybackEvent appends event.
func (r *Recorder) OnPlaybackEvent(event Event) {
	r.Events = append(r.Events, event)
}

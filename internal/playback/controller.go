// Package playback binds the trigger and judging rules to a media element:
// it pauses on due questions, collects the viewer's answer, and branches
// playback on the verdict.
package playback

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"vidquiz/internal/judge"
	"vidquiz/internal/question"
	"vidquiz/internal/trigger"
)

var (
	// ErrNoActiveQuestion reports an answer action while no question is shown.
	ErrNoActiveQuestion = errors.New("no active question")
	// ErrNoSelection reports a choice submission without a selected option.
	ErrNoSelection = errors.New("no option selected")
	// ErrWrongState reports an action the current state does not accept.
	ErrWrongState = errors.New("action not allowed in current state")
	// ErrUnknownOption reports a selection outside the presented options.
	ErrUnknownOption = errors.New("unknown option")
)

// Media is the host media element the controller drives.
type Media interface {
	CurrentTime() float64
	Seek(t float64)
	Play()
	Pause()
	Paused() bool
	Seeking() bool
}

// State is the controller state.
type State int

const (
	// StatePlaying means no question is shown; the media may still be paused
	// by the viewer.
	StatePlaying State = iota
	// StateAwaitingSubmission means a question is shown and unanswered.
	StateAwaitingSubmission
	// StateShowingResult means the verdict is shown and Continue is pending.
	StateShowingResult
)

func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateAwaitingSubmission:
		return "awaiting_submission"
	case StateShowingResult:
		return "showing_result"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result is the verdict for the active question.
type Result struct {
	QuestionID string
	Correct    bool
}

// Controller is one playback session. It owns the fired set and the active
// question. Controller is not safe for concurrent use; drive it from the
// goroutine that delivers media events.
type Controller struct {
	media    Media
	engine   *trigger.Engine
	labels   judge.TrueFalseLabels
	rng      *rand.Rand
	observer Observer

	state    State
	active   question.Question
	options  []question.AnswerOption
	selected string
	result   Result
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the shuffle source for Ordering questions.
func WithRand(rng *rand.Rand) Option {
	return func(c *Controller) { c.rng = rng }
}

// WithObserver registers an event observer.
func WithObserver(observer Observer) Option {
	return func(c *Controller) { c.observer = observer }
}

// WithLabels sets the texts of the TrueFalse options.
func WithLabels(labels judge.TrueFalseLabels) Option {
	return func(c *Controller) { c.labels = labels }
}

// New returns a controller over media and a snapshot of questions.
func New(media Media, questions []question.Question, opts ...Option) *Controller {
	c := &Controller{
		media:  media,
		engine: trigger.New(questions),
		labels: judge.TrueFalseLabels{True: "True", False: "False"},
		state:  StatePlaying,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Active returns the question being shown, if any.
func (c *Controller) Active() (question.Question, bool) {
	return c.active, c.active != nil
}

// Options returns the presented options for a choice question or the
// current arrangement for an Ordering question.
func (c *Controller) Options() []question.AnswerOption {
	return slices.Clone(c.options)
}

// Selected returns the selected option id of a choice question.
func (c *Controller) Selected() string { return c.selected }

// Result returns the verdict while it is shown.
func (c *Controller) Result() (Result, bool) {
	return c.result, c.state == StateShowingResult
}

// Questions returns the time-sorted question snapshot.
func (c *Controller) Questions() []question.Question {
	return c.engine.Questions()
}

// Fired reports whether the question with id already fired in this pass.
func (c *Controller) Fired(id string) bool { return c.engine.Fired(id) }

// Replace swaps the question set during live editing.
func (c *Controller) Replace(questions []question.Question) {
	c.engine.Replace(questions)
}

// TimeUpdate evaluates the current media position. When a question is due
// the media is paused before TimeUpdate returns.
func (c *Controller) TimeUpdate() (question.Question, bool) {
	if c.state != StatePlaying {
		return nil, false
	}
	due, ok := c.engine.Evaluate(trigger.Sample{
		Time:    c.media.CurrentTime(),
		Seeking: c.media.Seeking(),
		Paused:  c.media.Paused(),
	})
	if !ok {
		return nil, false
	}
	c.media.Pause()
	c.active = due
	c.selected = ""
	c.result = Result{}
	c.state = StateAwaitingSubmission
	switch typed := due.(type) {
	case *question.Ordering:
		c.options = judge.Shuffle(typed.Items, c.rng)
	default:
		c.options = judge.PresentedOptions(due, c.labels)
	}
	c.emit(Event{Type: EventTriggered, Question: due, Position: c.media.CurrentTime()})
	return due, true
}

// Play starts playback and re-arms questions after the current position.
func (c *Controller) Play() error {
	if c.state != StatePlaying {
		return fmt.Errorf("play: %w (%s)", ErrWrongState, c.state)
	}
	c.resume()
	return nil
}

// Pause pauses the media. It is always allowed.
func (c *Controller) Pause() {
	c.media.Pause()
}

// Seek moves the media position while no question is shown.
func (c *Controller) Seek(t float64) error {
	if c.state != StatePlaying {
		return fmt.Errorf("seek: %w (%s)", ErrWrongState, c.state)
	}
	if t < 0 {
		t = 0
	}
	c.media.Seek(t)
	return nil
}

// Select marks optionID as the answer of the active choice question.
func (c *Controller) Select(optionID string) error {
	if err := c.require(StateAwaitingSubmission, "select"); err != nil {
		return err
	}
	if c.active.Kind() == question.KindOrdering {
		return fmt.Errorf("select: %w", judge.ErrAnswerKind)
	}
	for _, option := range c.options {
		if option.ID == optionID {
			c.selected = optionID
			return nil
		}
	}
	return fmt.Errorf("select %q: %w", optionID, ErrUnknownOption)
}

// Move reorders the arrangement of the active Ordering question.
func (c *Controller) Move(from, to int) error {
	if err := c.require(StateAwaitingSubmission, "move"); err != nil {
		return err
	}
	if c.active.Kind() != question.KindOrdering {
		return fmt.Errorf("move: %w", judge.ErrAnswerKind)
	}
	moved, err := judge.Move(c.options, from, to)
	if err != nil {
		return err
	}
	c.options = moved
	return nil
}

// Submit judges the current answer and shows the result.
func (c *Controller) Submit() (Result, error) {
	if err := c.require(StateAwaitingSubmission, "submit"); err != nil {
		return Result{}, err
	}
	var answer judge.Answer
	if c.active.Kind() == question.KindOrdering {
		answer = judge.ArrangementOf(c.options)
	} else {
		if c.selected == "" {
			return Result{}, fmt.Errorf("submit: %w", ErrNoSelection)
		}
		answer = judge.Choice{OptionID: c.selected}
	}
	correct, err := judge.Judge(c.active, answer)
	if err != nil {
		return Result{}, fmt.Errorf("submit: %w", err)
	}
	c.result = Result{QuestionID: c.active.Meta().ID, Correct: correct}
	c.state = StateShowingResult
	c.emit(Event{Type: EventJudged, Question: c.active, Correct: correct, Position: c.media.CurrentTime()})
	return c.result, nil
}

// Continue leaves the result, repositions the media on the verdict, and
// resumes playback. A correct answer skips past the trigger window; an
// incorrect one rewinds to the previous question, or to the start.
func (c *Controller) Continue() error {
	if err := c.require(StateShowingResult, "continue"); err != nil {
		return err
	}
	meta := c.active.Meta()
	if c.result.Correct {
		if past := meta.Time + trigger.Window; c.media.CurrentTime() < past {
			c.media.Seek(past)
		}
	} else {
		c.media.Seek(c.engine.Previous(meta.ID))
	}
	resumed := c.active
	correct := c.result.Correct
	c.active = nil
	c.options = nil
	c.selected = ""
	c.result = Result{}
	c.state = StatePlaying
	c.resume()
	c.emit(Event{Type: EventResumed, Question: resumed, Correct: correct, Position: c.media.CurrentTime()})
	return nil
}

func (c *Controller) resume() {
	c.engine.Rearm(c.media.CurrentTime())
	c.media.Play()
}

func (c *Controller) require(want State, action string) error {
	if c.active == nil {
		return fmt.Errorf("%s: %w", action, ErrNoActiveQuestion)
	}
	if c.state != want {
		return fmt.Errorf("%s: %w (%s)", action, ErrWrongState, c.state)
	}
	return nil
}

func (c *Controller) emit(event Event) {
	if c.observer == nil {
		return
	}
	c.observer.OnPlaybackEvent(event)
}

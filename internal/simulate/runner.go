package simulate

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"time"

	"vidquiz/internal/judge"
	"vidquiz/internal/logger"
	"vidquiz/internal/media"
	"vidquiz/internal/playback"
	"vidquiz/internal/question"
	"vidquiz/internal/trigger"
)

// DefaultTick is the media time between two time-update samples.
const DefaultTick = 250 * time.Millisecond

// Options configures a Runner.
type Options struct {
	Tick       time.Duration
	Rand       *rand.Rand
	Labels     judge.TrueFalseLabels
	Transcript io.Writer
	Logger     *logger.Logger
}

// Summary counts what happened during a run.
type Summary struct {
	Steps     int
	Triggered int
	Correct   int
	Incorrect int
	Position  float64
}

// Runner drives one controller through script steps.
type Runner struct {
	media   *media.Simulated
	ctrl    *playback.Controller
	tick    float64
	out     io.Writer
	log     *logger.Logger
	summary Summary
}

// New builds a runner over questions. Playback starts at script.Start and
// is playing before the first step.
func New(questions []question.Question, script Script, opts Options) *Runner {
	tick := opts.Tick
	if tick <= 0 {
		tick = DefaultTick
	}
	out := opts.Transcript
	if out == nil {
		out = io.Discard
	}
	r := &Runner{
		media: media.NewSimulated(script.Duration),
		tick:  tick.Seconds(),
		out:   out,
		log:   logger.OrNop(opts.Logger),
	}
	controllerOpts := []playback.Option{playback.WithObserver(playback.ObserverFunc(r.observe))}
	if opts.Labels != (judge.TrueFalseLabels{}) {
		controllerOpts = append(controllerOpts, playback.WithLabels(opts.Labels))
	}
	if opts.Rand != nil {
		controllerOpts = append(controllerOpts, playback.WithRand(opts.Rand))
	}
	r.ctrl = playback.New(r.media, questions, controllerOpts...)
	r.media.Seek(script.Start)
	r.media.Settle()
	return r
}

// Controller exposes the driven controller.
func (r *Runner) Controller() *playback.Controller { return r.ctrl }

// Media exposes the simulated element.
func (r *Runner) Media() *media.Simulated { return r.media }

// Run starts playback and applies steps in order. It stops at the first
// failing step; the summary covers the steps applied so far.
func (r *Runner) Run(ctx context.Context, steps []Step) (Summary, error) {
	if err := r.ctrl.Play(); err != nil {
		return r.summary, err
	}
	r.printf("play")
	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return r.summary, err
		}
		if err := r.Apply(step); err != nil {
			action, _ := step.Action()
			return r.summary, fmt.Errorf("step %d (%s): %w", i+1, action, err)
		}
		r.summary.Steps++
	}
	r.summary.Position = r.media.CurrentTime()
	return r.summary, nil
}

// Apply performs one step.
func (r *Runner) Apply(step Step) error {
	action, err := step.Action()
	if err != nil {
		return err
	}
	switch action {
	case ActionAdvance:
		r.printf("advance %.2fs", *step.Advance)
		r.advance(*step.Advance)
	case ActionSeek:
		if err := r.ctrl.Seek(*step.Seek); err != nil {
			return err
		}
		r.media.Settle()
		r.printf("seek")
	case ActionPlay:
		if err := r.ctrl.Play(); err != nil {
			return err
		}
		r.printf("play")
	case ActionPause:
		r.ctrl.Pause()
		r.printf("pause")
	case ActionSelect:
		option, err := r.option(step.Select)
		if err != nil {
			return err
		}
		if err := r.ctrl.Select(option.ID); err != nil {
			return err
		}
		r.printf("select %q", option.Text)
	case ActionOrder:
		if err := r.order(step.Order); err != nil {
			return err
		}
		r.printf("order %s", r.arrangement())
	case ActionMove:
		if err := r.ctrl.Move(step.Move.From, step.Move.To); err != nil {
			return err
		}
		r.printf("move %d -> %d: %s", step.Move.From, step.Move.To, r.arrangement())
	case ActionSubmit:
		if _, err := r.ctrl.Submit(); err != nil {
			return err
		}
	case ActionContinue:
		if err := r.ctrl.Continue(); err != nil {
			return err
		}
	}
	return nil
}

// advance moves media time forward one tick at a time, sampling after each
// tick the way a player's time-update event does. Ticks are capped at
// trigger.MaxStep. It stops early once the media pauses.
func (r *Runner) advance(seconds float64) {
	step := min(r.tick, trigger.MaxStep)
	for remaining := seconds; remaining > 1e-9; remaining -= step {
		r.media.Advance(min(step, remaining))
		r.ctrl.TimeUpdate()
		if r.media.Paused() {
			return
		}
	}
}

// option finds a presented option by id or by text.
func (r *Runner) option(ref string) (question.AnswerOption, error) {
	if _, ok := r.ctrl.Active(); !ok {
		return question.AnswerOption{}, playback.ErrNoActiveQuestion
	}
	for _, option := range r.ctrl.Options() {
		if option.ID == ref || option.Text == ref {
			return option, nil
		}
	}
	return question.AnswerOption{}, fmt.Errorf("%w: %q", playback.ErrUnknownOption, ref)
}

// order rearranges the items into refs with successive moves.
func (r *Runner) order(refs []string) error {
	if len(refs) != len(r.ctrl.Options()) {
		return fmt.Errorf("order lists %d items, the question has %d", len(refs), len(r.ctrl.Options()))
	}
	for target, ref := range refs {
		option, err := r.option(ref)
		if err != nil {
			return err
		}
		current := slices.IndexFunc(r.ctrl.Options(), func(o question.AnswerOption) bool { return o.ID == option.ID })
		if current < target {
			return fmt.Errorf("item %q listed twice", ref)
		}
		if current != target {
			if err := r.ctrl.Move(current, target); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) arrangement() string {
	texts := make([]string, 0, len(r.ctrl.Options()))
	for _, option := range r.ctrl.Options() {
		texts = append(texts, option.Text)
	}
	return fmt.Sprintf("%q", texts)
}

func (r *Runner) observe(event playback.Event) {
	meta := event.Question.Meta()
	switch event.Type {
	case playback.EventTriggered:
		r.summary.Triggered++
		r.printf("question %s at %.2f (%s): %s", meta.ID, meta.Time, event.Question.Kind(), meta.Text)
		for i, option := range r.ctrl.Options() {
			fmt.Fprintf(r.out, "          %d. %s\n", i+1, option.Text)
		}
	case playback.EventJudged:
		verdict := "incorrect"
		if event.Correct {
			verdict = "correct"
			r.summary.Correct++
		} else {
			r.summary.Incorrect++
		}
		r.printf("submit: %s", verdict)
	case playback.EventResumed:
		r.printf("continue: resumed")
	}
	r.log.Debug("playback event", "type", event.Type, "question", meta.ID, "correct", event.Correct, "position", event.Position)
}

// printf writes one transcript line stamped with the media position.
func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, "[%7.2f] %s\n", r.media.CurrentTime(), fmt.Sprintf(format, args...))
}

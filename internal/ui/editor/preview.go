package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vidquiz/internal/media"
	"vidquiz/internal/playback"
	"vidquiz/internal/question"
	"vidquiz/internal/trigger"
)

const previewSeekStep = 5

// preview is a playback session over simulated media.
type preview struct {
	media     *media.Simulated
	ctrl      *playback.Controller
	highlight int
	last      string
	gen       int
}

type tickMsg struct {
	gen int
}

func tick(interval time.Duration, gen int) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m Model) startPreview() (tea.Model, tea.Cmd) {
	questions := m.session.Questions()
	length := timelineLength(m.opts.Duration, m.cursor, questions)
	m.previewGen++
	p := &preview{media: media.NewSimulated(length), gen: m.previewGen}
	log := m.log
	opts := []playback.Option{
		playback.WithLabels(m.opts.Labels.TrueFalse()),
		playback.WithObserver(playback.ObserverFunc(func(event playback.Event) {
			p.last = describeEvent(event)
			log.Debug("preview event", "type", event.Type, "question", event.Question.Meta().ID, "correct", event.Correct, "position", event.Position)
		})),
	}
	if m.opts.Rand != nil {
		opts = append(opts, playback.WithRand(m.opts.Rand))
	}
	p.ctrl = playback.New(p.media, questions, opts...)
	p.media.Seek(m.cursor)
	if err := p.ctrl.Play(); err != nil {
		m.setError(err)
		return m, nil
	}
	m.preview = p
	m.mode = modePreview
	m.setStatus("Preview from " + formatClock(m.cursor))
	return m, tick(m.opts.Tick, p.gen)
}

func (m Model) stopPreview() Model {
	if m.preview != nil {
		m.cursor = m.preview.media.CurrentTime()
	}
	m.preview = nil
	m.mode = modeBrowse
	m.setStatus("Preview stopped at " + formatClock(m.cursor))
	return m
}

// tickPreview advances the simulated media by one tick and evaluates
// triggers, the way a player's timeupdate event does. Long ticks are sampled
// every trigger.MaxStep so no window is skipped.
func (m Model) tickPreview(msg tickMsg) (tea.Model, tea.Cmd) {
	p := m.preview
	if m.mode != modePreview || p == nil || msg.gen != p.gen {
		return m, nil
	}
	for remaining := m.opts.Tick.Seconds(); ; {
		step := min(trigger.MaxStep, remaining)
		p.media.Advance(step)
		if _, ok := p.ctrl.TimeUpdate(); ok {
			p.highlight = 0
		}
		remaining -= step
		if remaining <= 1e-9 || p.media.Paused() {
			break
		}
	}
	if p.media.Ended() && p.ctrl.State() == playback.StatePlaying {
		p.last = "Reached the end"
	}
	return m, tick(m.opts.Tick, p.gen)
}

func (m Model) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.playKeys
	p := m.preview
	if key.Matches(msg, keys.Exit) {
		return m.stopPreview(), nil
	}
	var err error
	switch p.ctrl.State() {
	case playback.StatePlaying:
		switch {
		case key.Matches(msg, keys.Toggle):
			if p.media.Paused() {
				err = p.ctrl.Play()
			} else {
				p.ctrl.Pause()
			}
		case key.Matches(msg, keys.Back):
			err = p.ctrl.Seek(p.media.CurrentTime() - previewSeekStep)
		case key.Matches(msg, keys.Forward):
			err = p.ctrl.Seek(p.media.CurrentTime() + previewSeekStep)
		}
	case playback.StateAwaitingSubmission:
		err = m.answerKey(msg)
	case playback.StateShowingResult:
		if key.Matches(msg, keys.Submit) {
			err = p.ctrl.Continue()
		}
	}
	if err != nil {
		m.setError(err)
	} else {
		m.status = ""
	}
	return m, nil
}

// answerKey handles keys while a question waits for an answer.
func (m Model) answerKey(msg tea.KeyMsg) error {
	keys := m.playKeys
	p := m.preview
	active, _ := p.ctrl.Active()
	options := p.ctrl.Options()
	ordering := active.Kind() == question.KindOrdering
	switch {
	case key.Matches(msg, keys.Up):
		p.highlight = max(p.highlight-1, 0)
	case key.Matches(msg, keys.Down):
		p.highlight = min(p.highlight+1, len(options)-1)
	case key.Matches(msg, keys.Choose):
		index := int(msg.Runes[0] - '1')
		if index >= len(options) {
			return nil
		}
		p.highlight = index
		if !ordering {
			return p.ctrl.Select(options[index].ID)
		}
	case key.Matches(msg, keys.Toggle):
		if !ordering {
			return p.ctrl.Select(options[p.highlight].ID)
		}
	case key.Matches(msg, keys.MoveUp):
		if ordering && p.highlight > 0 {
			if err := p.ctrl.Move(p.highlight, p.highlight-1); err != nil {
				return err
			}
			p.highlight--
		}
	case key.Matches(msg, keys.MoveDown):
		if ordering && p.highlight < len(options)-1 {
			if err := p.ctrl.Move(p.highlight, p.highlight+1); err != nil {
				return err
			}
			p.highlight++
		}
	case key.Matches(msg, keys.Submit):
		_, err := p.ctrl.Submit()
		return err
	}
	return nil
}

func describeEvent(event playback.Event) string {
	at := formatClock(event.Position)
	switch event.Type {
	case playback.EventTriggered:
		return fmt.Sprintf("%s question %q", at, truncate(event.Question.Meta().Text, 40))
	case playback.EventJudged:
		if event.Correct {
			return at + " answered correctly"
		}
		return at + " answered incorrectly"
	case playback.EventResumed:
		return "resumed at " + at
	default:
		return string(event.Type)
	}
}

func (m Model) renderPreview() string {
	p := m.preview
	noColor := m.opts.NoColor
	labels := m.opts.Labels
	var b strings.Builder

	state := "▶ playing"
	if p.media.Paused() {
		state = "❚❚ paused"
	}
	b.WriteString(fmt.Sprintf("%s  %s", state, formatClock(p.media.CurrentTime())))
	if p.last != "" {
		b.WriteString("  | " + p.last)
	}
	b.WriteByte('\n')

	active, ok := p.ctrl.Active()
	if !ok {
		return strings.TrimRight(b.String(), "\n")
	}
	b.WriteString(bold(active.Meta().Text, noColor))
	b.WriteByte('\n')
	ordering := active.Kind() == question.KindOrdering
	if ordering {
		b.WriteString(stylize(labels.OrderingHint, noColor, lipgloss.Color("242")))
		b.WriteByte('\n')
	}
	for i, option := range p.ctrl.Options() {
		pointer := "  "
		if i == p.highlight && p.ctrl.State() == playback.StateAwaitingSubmission {
			pointer = "› "
		}
		marker := fmt.Sprintf("%d.", i+1)
		if !ordering {
			marker = "( )"
			if option.ID == p.ctrl.Selected() {
				marker = "(•)"
			}
		}
		b.WriteString(pointer + marker + " " + option.Text)
		b.WriteByte('\n')
	}

	switch p.ctrl.State() {
	case playback.StateAwaitingSubmission:
		action := labels.Submit
		if ordering {
			action = labels.Check
		}
		b.WriteString(stylize("[enter] "+action, noColor, lipgloss.Color("33")))
	case playback.StateShowingResult:
		result, _ := p.ctrl.Result()
		if result.Correct {
			b.WriteString(stylize(labels.Correct, noColor, lipgloss.Color("34")))
		} else {
			b.WriteString(stylize(labels.Incorrect, noColor, lipgloss.Color("196")))
		}
		b.WriteString("  " + stylize("[enter] "+labels.Continue, noColor, lipgloss.Color("33")))
	}
	return b.String()
}

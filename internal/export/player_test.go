package export

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/dop251/goja"

	"vidquiz/internal/media"
	"vidquiz/internal/playback"
	"vidquiz/internal/question"
)

const fakeMediaJS = `
var media = {
  _t: 0, paused: true, seeking: false,
  get currentTime() { return this._t; },
  set currentTime(v) { this._t = v < 0 ? 0 : v; this.seeking = true; },
  play: function () { this.paused = false; },
  pause: function () { this.paused = true; },
  advance: function (dt) { this.seeking = false; if (!this.paused) { this._t += dt; } }
};
function arrange(ids) {
  for (var target = 0; target < ids.length; target++) {
    var opts = session.options();
    for (var i = 0; i < opts.length; i++) {
      if (opts[i].id === ids[target]) { session.move(i, target); break; }
    }
  }
}
`

// lockstep drives the Go controller and the exported script side by side.
type lockstep struct {
	t     *testing.T
	vm    *goja.Runtime
	media *media.Simulated
	ctrl  *playback.Controller
}

func newLockstep(t *testing.T, questions []question.Question) *lockstep {
	t.Helper()
	script, err := QuestionsScript(questions)
	if err != nil {
		t.Fatalf("questions script: %v", err)
	}
	vm := goja.New()
	for _, src := range []string{"var window = this;", PlayerScript(), string(script), fakeMediaJS,
		`var session = VidQuiz.createSession(window.interactiveQuestions, media, {labels: {"true": "True", "false": "False"}});`} {
		if _, err := vm.RunString(src); err != nil {
			t.Fatalf("load player: %v", err)
		}
	}
	m := media.NewSimulated(0)
	return &lockstep{
		t:     t,
		vm:    vm,
		media: m,
		ctrl:  playback.New(m, questions, playback.WithRand(rand.New(rand.NewPCG(3, 4)))),
	}
}

func (l *lockstep) js(code string) goja.Value {
	l.t.Helper()
	value, err := l.vm.RunString(code)
	if err != nil {
		l.t.Fatalf("js %q: %v", code, err)
	}
	return value
}

func (l *lockstep) compare(step string) {
	l.t.Helper()
	jsTime := l.js("media.currentTime").ToFloat()
	jsPaused := l.js("media.paused").ToBoolean()
	jsState := l.js("session.state()").String()
	if jsTime != l.media.CurrentTime() || jsPaused != l.media.Paused() || jsState != l.ctrl.State().String() {
		l.t.Fatalf("%s: diverged go(t=%v paused=%v state=%s) js(t=%v paused=%v state=%s)", step,
			l.media.CurrentTime(), l.media.Paused(), l.ctrl.State(), jsTime, jsPaused, jsState)
	}
}

func (l *lockstep) play() {
	l.t.Helper()
	if err := l.ctrl.Play(); err != nil {
		l.t.Fatalf("play: %v", err)
	}
	l.js("session.play()")
	l.compare("play")
}

// untilTrigger ticks both players until the expected question fires.
func (l *lockstep) untilTrigger(wantID string) {
	l.t.Helper()
	for i := 0; i < 400; i++ {
		l.media.Advance(0.25)
		l.js("media.advance(0.25)")
		goQ, goOK := l.ctrl.TimeUpdate()
		jsID := l.js("var q = session.timeUpdate(); q ? q.id : ''").String()
		goID := ""
		if goOK {
			goID = goQ.Meta().ID
		}
		if goID != jsID {
			l.t.Fatalf("trigger diverged at %v: go=%q js=%q", l.media.CurrentTime(), goID, jsID)
		}
		l.compare("tick")
		if goID != "" {
			if goID != wantID {
				l.t.Fatalf("expected %s to fire, got %s", wantID, goID)
			}
			return
		}
	}
	l.t.Fatalf("%s never fired", wantID)
}

func (l *lockstep) choose(optionID string, wantCorrect bool) {
	l.t.Helper()
	if err := l.ctrl.Select(optionID); err != nil {
		l.t.Fatalf("select: %v", err)
	}
	l.js(fmt.Sprintf("session.select(%q)", optionID))
	l.submit(wantCorrect)
}

func (l *lockstep) arrange(ids []string, wantCorrect bool) {
	l.t.Helper()
	for target, id := range ids {
		for from, item := range l.ctrl.Options() {
			if item.ID == id {
				if err := l.ctrl.Move(from, target); err != nil {
					l.t.Fatalf("move: %v", err)
				}
				break
			}
		}
	}
	list := "["
	for i, id := range ids {
		if i > 0 {
			list += ","
		}
		list += fmt.Sprintf("%q", id)
	}
	l.js("arrange(" + list + "])")
	l.submit(wantCorrect)
}

func (l *lockstep) submit(wantCorrect bool) {
	l.t.Helper()
	result, err := l.ctrl.Submit()
	if err != nil {
		l.t.Fatalf("submit: %v", err)
	}
	jsCorrect := l.js("session.submit().correct").ToBoolean()
	if result.Correct != wantCorrect || jsCorrect != wantCorrect {
		l.t.Fatalf("verdict: want %v, go %v, js %v", wantCorrect, result.Correct, jsCorrect)
	}
	l.compare("submit")
	if err := l.ctrl.Continue(); err != nil {
		l.t.Fatalf("continue: %v", err)
	}
	l.js(`session["continue"]()`)
	l.compare("continue")
}

// TestPlayerScriptMatchesController runs the full branching scenario through both players.
func TestPlayerScriptMatchesController(t *testing.T) {
	questions := []question.Question{
		&question.Ordering{Header: question.Header{ID: "ord", Time: 20, Text: "Sort"}, Items: []question.AnswerOption{{ID: "1", Text: "one"}, {ID: "2", Text: "two"}, {ID: "3", Text: "three"}}},
		&question.MultipleChoice{Header: question.Header{ID: "mc", Time: 12, Text: "Pick"}, Options: []question.AnswerOption{{ID: "A", Text: "A"}, {ID: "B", Text: "B"}}, CorrectAnswerID: "A"},
		&question.TrueFalse{Header: question.Header{ID: "tf", Time: 5, Text: "Sky"}, CorrectAnswerID: question.AnswerTrue},
	}
	l := newLockstep(t, questions)
	l.play()

	l.untilTrigger("tf")
	l.choose(question.AnswerFalse, false)
	if l.media.CurrentTime() != 0 {
		t.Fatalf("expected rewind to 0, got %v", l.media.CurrentTime())
	}
	l.untilTrigger("tf")
	l.choose(question.AnswerTrue, true)
	if l.media.CurrentTime() != 5.5 {
		t.Fatalf("expected 5.5, got %v", l.media.CurrentTime())
	}
	l.untilTrigger("mc")
	l.choose("B", false)
	if l.media.CurrentTime() != 5 {
		t.Fatalf("expected rewind to 5, got %v", l.media.CurrentTime())
	}
	l.untilTrigger("mc")
	l.choose("A", true)
	l.untilTrigger("ord")
	l.arrange([]string{"3", "2", "1"}, false)
	if l.media.CurrentTime() != 12 {
		t.Fatalf("expected rewind to 12, got %v", l.media.CurrentTime())
	}
	l.untilTrigger("ord")
	l.arrange([]string{"1", "2", "3"}, true)
	if l.media.CurrentTime() != 20.5 {
		t.Fatalf("expected 20.5, got %v", l.media.CurrentTime())
	}

	// Viewer scrubs back and presses play: earlier questions fire again.
	l.ctrl.Pause()
	l.js("session.pause()")
	if err := l.ctrl.Seek(3); err != nil {
		t.Fatalf("seek: %v", err)
	}
	l.js("session.seek(3)")
	l.play()
	l.untilTrigger("tf")
}

// TestPlayerScriptSortsStably verifies the script keeps declaration order on equal times.
func TestPlayerScriptSortsStably(t *testing.T) {
	vm := goja.New()
	if _, err := vm.RunString("var window = this;\n" + PlayerScript()); err != nil {
		t.Fatalf("load player: %v", err)
	}
	value, err := vm.RunString(`VidQuiz.sortQuestions([{id:"c",time:9},{id:"a",time:1},{id:"b",time:1}]).map(function(q){return q.id;}).join(",")`)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if value.String() != "a,b,c" {
		t.Fatalf("unexpected order %s", value.String())
	}
}

package export

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/dop251/goja"

	"vidquiz/internal/question"
)

// fakeDOMJS is just enough of a document and a <video> element for mount:
// element trees, class lists, listeners, and a video whose play() fires the
// native play event.
const fakeDOMJS = `
var document = (function () {
  var byId = {};
  var doc;
  function Node(tag) {
    var self = this;
    this.tagName = tag.toUpperCase();
    this.className = '';
    this.children = [];
    this.style = {};
    this.listeners = {};
    this._text = '';
    this.ownerDocument = doc;
    this.classList = {
      contains: function (c) { return self.className.split(' ').indexOf(c) >= 0; },
      add: function (c) { if (!this.contains(c)) { self.className = self.className ? self.className + ' ' + c : c; } },
      remove: function (c) { self.className = self.className.split(' ').filter(function (x) { return x && x !== c; }).join(' '); }
    };
  }
  Object.defineProperty(Node.prototype, 'textContent', {
    get: function () { return this._text + this.children.map(function (c) { return c.textContent; }).join(''); },
    set: function (v) { this._text = String(v); this.children = []; }
  });
  Node.prototype.appendChild = function (child) { this.children.push(child); return child; };
  Node.prototype.addEventListener = function (type, fn) { (this.listeners[type] = this.listeners[type] || []).push(fn); };
  Node.prototype.dispatch = function (type) {
    var event = { type: type, target: this, preventDefault: function () {} };
    (this.listeners[type] || []).slice().forEach(function (fn) { fn(event); });
  };
  Node.prototype.click = function () { if (!this.disabled) { this.dispatch('click'); } };
  Node.prototype.findAll = function (match, out) {
    out = out || [];
    this.children.forEach(function (c) { if (match(c)) { out.push(c); } c.findAll(match, out); });
    return out;
  };
  Node.prototype.querySelector = function (selector) {
    var match = selector.charAt(0) === '.'
      ? function (n) { return n.classList.contains(selector.slice(1)); }
      : function (n) { return n.tagName === selector.toUpperCase(); };
    return this.findAll(match)[0] || null;
  };
  doc = {
    createElement: function (tag) { return new Node(tag); },
    getElementById: function (id) { return byId[id] || null; },
    register: function (id, node) { node.id = id; byId[id] = node; return node; }
  };
  return doc;
})();

var video = document.createElement('video');
video._t = 0;
video.paused = true;
video.seeking = false;
Object.defineProperty(video, 'currentTime', {
  get: function () { return this._t; },
  set: function (v) { this._t = v < 0 ? 0 : v; this.seeking = true; }
});
video.play = function () {
  var wasPaused = this.paused;
  this.paused = false;
  if (wasPaused) { this.dispatch('play'); }
};
video.pause = function () { this.paused = true; };
video.advance = function (dt) {
  this.seeking = false;
  if (this.paused) { return; }
  this._t += dt;
  this.dispatch('timeupdate');
};

var root = document.register('vidquiz-root', document.createElement('div'));
root.appendChild(video);
var overlay = root.appendChild(document.createElement('div'));
overlay.className = 'vq-overlay';
var box = overlay.appendChild(document.createElement('div'));
box.className = 'vq-question';
document.register('vidquiz-config', document.createElement('script')).textContent = configJSON;

function playUntilQuestion(limit) {
  for (var i = 0; i < limit; i++) {
    video.advance(0.25);
    if (overlay.style.display === 'flex') { return box.children[0].textContent; }
  }
  return '';
}
function press(text) {
  var found = box.findAll(function (n) { return n.tagName === 'BUTTON' && n.textContent === text; });
  if (found.length !== 1) { throw new Error('expected one button ' + text + ', found ' + found.length); }
  found[0].click();
}
function drag(text, target) {
  var rows = box.findAll(function (n) { return n.classList.contains('vq-drag'); });
  for (var i = 0; i < rows.length; i++) {
    if (rows[i].textContent.indexOf(text) >= 0) {
      rows[i].dispatch('dragstart');
      rows[target].dispatch('drop');
      return;
    }
  }
  throw new Error('no row ' + text);
}
`

// viewer is a booted page: the generated question script, the player and a
// fake document.
type viewer struct {
	t  *testing.T
	vm *goja.Runtime
}

func bootViewer(t *testing.T, questions []question.Question) *viewer {
	t.Helper()
	script, err := QuestionsScript(questions)
	if err != nil {
		t.Fatalf("questions script: %v", err)
	}
	config, err := json.Marshal(playerConfig{Labels: DefaultOptions().Labels})
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	vm := goja.New()
	if err := vm.Set("configJSON", string(config)); err != nil {
		t.Fatalf("set config: %v", err)
	}
	for _, src := range []string{"var window = this;", PlayerScript(), string(script), fakeDOMJS, "var session = VidQuiz.boot(document);"} {
		if _, err := vm.RunString(src); err != nil {
			t.Fatalf("boot page: %v", err)
		}
	}
	return &viewer{t: t, vm: vm}
}

func (v *viewer) js(code string) goja.Value {
	v.t.Helper()
	value, err := v.vm.RunString(code)
	if err != nil {
		v.t.Fatalf("js %q: %v", code, err)
	}
	return value
}

func (v *viewer) press(label string) {
	v.t.Helper()
	v.js(fmt.Sprintf("press(%q)", label))
}

// expectQuestion plays until the overlay opens and checks the question text.
func (v *viewer) expectQuestion(text string, at float64) {
	v.t.Helper()
	if got := v.js("playUntilQuestion(400)").String(); got != text {
		v.t.Fatalf("expected question %q, got %q at %v", text, got, v.now())
	}
	if v.now() != at || !v.js("video.paused").ToBoolean() {
		v.t.Fatalf("expected a paused video at %v, got %v (paused=%v)", at, v.now(), v.js("video.paused").ToBoolean())
	}
}

// answer clicks the option and submit, checks the verdict and continues.
func (v *viewer) answer(option, submit string, wantCorrect bool, resumeAt float64) {
	v.t.Helper()
	if option != "" {
		v.press(option)
	}
	v.press(submit)
	verdict := DefaultOptions().Labels.Incorrect
	if wantCorrect {
		verdict = DefaultOptions().Labels.Correct
	}
	if !v.js(fmt.Sprintf("box.textContent.indexOf(%q) >= 0", verdict)).ToBoolean() {
		v.t.Fatalf("expected verdict %q in overlay %q", verdict, v.js("box.textContent").String())
	}
	v.press(DefaultOptions().Labels.Continue)
	if v.js("overlay.style.display").String() != "none" || v.js("video.paused").ToBoolean() {
		v.t.Fatalf("expected the overlay closed and the video playing")
	}
	if v.now() != resumeAt {
		v.t.Fatalf("expected playback to resume at %v, got %v", resumeAt, v.now())
	}
}

func (v *viewer) now() float64 {
	v.t.Helper()
	return v.js("video.currentTime").ToFloat()
}

// TestBootedPlayerBranchesOnClicks runs the end-to-end scenario through the page's DOM binding.
func TestBootedPlayerBranchesOnClicks(t *testing.T) {
	v := bootViewer(t, []question.Question{
		&question.MultipleChoice{Header: question.Header{ID: "mc", Time: 12, Text: "Pick"}, Options: []question.AnswerOption{{ID: "A", Text: "Alpha"}, {ID: "B", Text: "Beta"}}, CorrectAnswerID: "A"},
		&question.TrueFalse{Header: question.Header{ID: "tf", Time: 5, Text: "Sky"}, CorrectAnswerID: question.AnswerTrue},
	})
	labels := DefaultOptions().Labels
	v.js("video.play()")
	v.expectQuestion("Sky", 5)

	v.press(labels.Submit)
	if v.js("session.state()").String() != "awaiting_submission" || !v.js("session.result() === null").ToBoolean() {
		t.Fatalf("submit without a selection must be ignored")
	}
	v.js("video.play()")
	if !v.js("video.paused").ToBoolean() {
		t.Fatalf("play while a question is shown must pause again")
	}

	v.answer(labels.False, labels.Submit, false, 0)
	v.expectQuestion("Sky", 5)
	v.answer(labels.True, labels.Submit, true, 5.5)

	// Scrubbing back while playing fires no play event, so nothing re-arms.
	v.js("video.currentTime = 3")
	v.expectQuestion("Pick", 12)
	v.answer("Beta", labels.Submit, false, 5)
	v.expectQuestion("Pick", 12)
	v.answer("Alpha", labels.Submit, true, 12.5)

	// Pause, scrub back and press play: the play event re-arms both questions.
	v.js("video.pause(); video.currentTime = 3; video.play();")
	v.expectQuestion("Sky", 5)
}

// TestBootedPlayerDragsItems verifies drag and drop reorders items before checking.
func TestBootedPlayerDragsItems(t *testing.T) {
	v := bootViewer(t, []question.Question{
		&question.Ordering{Header: question.Header{ID: "ord", Time: 1, Text: "Sort"}, Items: []question.AnswerOption{{ID: "1", Text: "one"}, {ID: "2", Text: "two"}, {ID: "3", Text: "three"}}},
	})
	labels := DefaultOptions().Labels
	v.js("video.play()")
	v.expectQuestion("Sort", 1)
	if !v.js(fmt.Sprintf("box.textContent.indexOf(%q) >= 0", labels.OrderingHint)).ToBoolean() {
		t.Fatalf("expected the ordering hint")
	}
	v.js(`drag("one", 0); drag("two", 1); drag("three", 2);`)
	order := v.js(`session.options().map(function (o) { return o.id; }).join(",")`).String()
	if order != "1,2,3" {
		t.Fatalf("unexpected arrangement %s", order)
	}
	v.answer("", labels.Check, true, 1.5)
}

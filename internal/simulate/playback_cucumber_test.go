//go:build cucumber

package simulate

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"vidquiz/internal/playback"
	"vidquiz/internal/question"
)

// TestPlaybackScenarios runs the playback branching feature.
func TestPlaybackScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "playback_branching.feature")
	suite := godog.TestSuite{
		Name:                "playback-branching",
		ScenarioInitializer: InitializePlaybackScenario,
		Options: &godog.Options{
			Format:    "pretty",
			Paths:     []string{featurePath},
			Strict:    true,
			TestingT:  t,
			Randomize: 0,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializePlaybackScenario wires steps for playback scenarios.
func InitializePlaybackScenario(ctx *godog.ScenarioContext) {
	state := &playbackScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^a true/false question "([^"]+)" at ([\d.]+) seconds answered "(true|false)"$`, state.givenTrueFalse)
	ctx.Step(`^playback has started$`, state.givenStarted)
	ctx.Step(`^playback advances ([\d.]+) seconds$`, state.whenAdvance)
	ctx.Step(`^the viewer seeks to ([\d.]+) seconds$`, state.whenSeek)
	ctx.Step(`^the viewer answers "([^"]+)"$`, state.whenAnswer)
	ctx.Step(`^the viewer continues$`, state.whenContinue)
	ctx.Step(`^question "([^"]+)" is shown and the video is paused$`, state.thenShown)
	ctx.Step(`^no question is shown$`, state.thenNoneShown)
	ctx.Step(`^the verdict is "(correct|incorrect)"$`, state.thenVerdict)
	ctx.Step(`^playback resumes at ([\d.]+) seconds$`, state.thenResumesAt)
}

type playbackScenarioState struct {
	questions []question.Question
	runner    *Runner
}

func (s *playbackScenarioState) reset() {
	s.questions = nil
	s.runner = nil
}

func (s *playbackScenarioState) givenTrueFalse(id string, at float64, answer string) error {
	s.questions = append(s.questions, &question.TrueFalse{
		Header:          question.Header{ID: id, Time: at, Text: "Question " + id},
		CorrectAnswerID: answer,
	})
	return nil
}

func (s *playbackScenarioState) givenStarted() error {
	s.runner = New(s.questions, Script{}, Options{})
	return s.runner.Apply(Step{Play: true})
}

func (s *playbackScenarioState) whenAdvance(seconds float64) error {
	return s.runner.Apply(Step{Advance: &seconds})
}

func (s *playbackScenarioState) whenSeek(at float64) error {
	return s.runner.Apply(Step{Seek: &at})
}

func (s *playbackScenarioState) whenAnswer(optionID string) error {
	if err := s.runner.Apply(Step{Select: optionID}); err != nil {
		return err
	}
	return s.runner.Apply(Step{Submit: true})
}

func (s *playbackScenarioState) whenContinue() error {
	return s.runner.Apply(Step{Continue: true})
}

func (s *playbackScenarioState) thenShown(id string) error {
	active, ok := s.runner.Controller().Active()
	if !ok {
		return fmt.Errorf("expected question %q, none shown at %.2f", id, s.runner.Media().CurrentTime())
	}
	if active.Meta().ID != id {
		return fmt.Errorf("expected question %q, got %q", id, active.Meta().ID)
	}
	if !s.runner.Media().Paused() {
		return fmt.Errorf("expected the video to be paused")
	}
	return nil
}

func (s *playbackScenarioState) thenNoneShown() error {
	if active, ok := s.runner.Controller().Active(); ok {
		return fmt.Errorf("expected no question, got %q", active.Meta().ID)
	}
	return nil
}

func (s *playbackScenarioState) thenVerdict(verdict string) error {
	result, ok := s.runner.Controller().Result()
	if !ok {
		return fmt.Errorf("no verdict shown")
	}
	if result.Correct != (verdict == "correct") {
		return fmt.Errorf("expected %s verdict", verdict)
	}
	return nil
}

func (s *playbackScenarioState) thenResumesAt(at float64) error {
	if s.runner.Controller().State() != playback.StatePlaying || s.runner.Media().Paused() {
		return fmt.Errorf("expected playback to resume, state %s", s.runner.Controller().State())
	}
	if got := s.runner.Media().CurrentTime(); math.Abs(got-at) > 1e-9 {
		return fmt.Errorf("expected position %.2f, got %.2f", at, got)
	}
	return nil
}

// Package simulate replays scripted viewer actions against the playback
// controller over a simulated media element and records a transcript.
package simulate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Script is a step file: the simulated media length, where playback
// starts, and the viewer actions in order.
type Script struct {
	Duration float64 `yaml:"duration"`
	Start    float64 `yaml:"start"`
	Steps    []Step  `yaml:"steps"`
}

// Step is one viewer action. Exactly one field is set.
type Step struct {
	Advance  *float64  `yaml:"advance,omitempty"`
	Seek     *float64  `yaml:"seek,omitempty"`
	Play     bool      `yaml:"play,omitempty"`
	Pause    bool      `yaml:"pause,omitempty"`
	Select   string    `yaml:"select,omitempty"`
	Order    []string  `yaml:"order,omitempty"`
	Move     *MoveStep `yaml:"move,omitempty"`
	Submit   bool      `yaml:"submit,omitempty"`
	Continue bool      `yaml:"continue,omitempty"`
}

// MoveStep drags the item at From to To in the current arrangement.
type MoveStep struct {
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

// Action names.
const (
	ActionAdvance  = "advance"
	ActionSeek     = "seek"
	ActionPlay     = "play"
	ActionPause    = "pause"
	ActionSelect   = "select"
	ActionOrder    = "order"
	ActionMove     = "move"
	ActionSubmit   = "submit"
	ActionContinue = "continue"
)

// ErrInvalidScript wraps every step file problem.
var ErrInvalidScript = errors.New("invalid step file")

// Action returns the name of the single action the step holds.
func (s Step) Action() (string, error) {
	var set []string
	add := func(ok bool, name string) {
		if ok {
			set = append(set, name)
		}
	}
	add(s.Advance != nil, ActionAdvance)
	add(s.Seek != nil, ActionSeek)
	add(s.Play, ActionPlay)
	add(s.Pause, ActionPause)
	add(s.Select != "", ActionSelect)
	add(len(s.Order) > 0, ActionOrder)
	add(s.Move != nil, ActionMove)
	add(s.Submit, ActionSubmit)
	add(s.Continue, ActionContinue)
	switch len(set) {
	case 0:
		return "", errors.New("no action")
	case 1:
		return set[0], nil
	default:
		return "", fmt.Errorf("more than one action: %v", set)
	}
}

// LoadScript reads and parses a step file.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("read step file: %w", err)
	}
	return ParseScript(data)
}

// ParseScript decodes a single YAML document with known fields only and
// checks every step.
func ParseScript(data []byte) (Script, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Script{}, fmt.Errorf("%w: empty", ErrInvalidScript)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	var script Script
	if err := decoder.Decode(&script); err != nil {
		return Script{}, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	var extra yaml.Node
	if err := decoder.Decode(&extra); err != io.EOF {
		return Script{}, fmt.Errorf("%w: multiple YAML documents", ErrInvalidScript)
	}

	var problems []error
	if script.Duration < 0 {
		problems = append(problems, errors.New("duration: must not be negative"))
	}
	if script.Start < 0 {
		problems = append(problems, errors.New("start: must not be negative"))
	}
	if len(script.Steps) == 0 {
		problems = append(problems, errors.New("steps: at least one step is required"))
	}
	for i, step := range script.Steps {
		if _, err := step.Action(); err != nil {
			problems = append(problems, fmt.Errorf("steps[%d]: %w", i, err))
			continue
		}
		if step.Advance != nil && *step.Advance <= 0 {
			problems = append(problems, fmt.Errorf("steps[%d].advance: must be positive", i))
		}
		if step.Seek != nil && *step.Seek < 0 {
			problems = append(problems, fmt.Errorf("steps[%d].seek: must not be negative", i))
		}
	}
	if len(problems) > 0 {
		return Script{}, fmt.Errorf("%w: %w", ErrInvalidScript, errors.Join(problems...))
	}
	return script, nil
}

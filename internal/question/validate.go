package question

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalid is matched by every *ValidationError.
var ErrInvalid = errors.New("invalid question")

// ErrIncomplete reports a question that cannot be judged because its answer
// key is missing.
var ErrIncomplete = errors.New("question is incomplete")

// Issue captures a validation problem in a question or question set.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue

	incomplete bool
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question validation failed: %s", strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrInvalid, and ErrIncomplete for errors
// returned by Complete.
func (err *ValidationError) Unwrap() []error {
	if err.incomplete {
		return []error{ErrInvalid, ErrIncomplete}
	}
	return []error{ErrInvalid}
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

// Complete reports whether q may be saved: it needs text, a valid time and a
// full answer key for its kind.
func Complete(q Question) error {
	collector := &issueCollector{}
	checkQuestion(collector, "", q)
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues, incomplete: true}
}

// CanSave is Complete as a predicate, for surfaces that disable saving.
func CanSave(q Question) bool {
	return q != nil && Complete(q) == nil
}

// ValidateSet checks every question for completeness and enforces unique ids.
func ValidateSet(qs []Question) error {
	collector := &issueCollector{}
	seenIDs := map[string]struct{}{}
	for i, q := range qs {
		prefix := fmt.Sprintf("questions[%d].", i)
		checkQuestion(collector, prefix, q)
		if q == nil {
			continue
		}
		id := q.Meta().ID
		if id == "" {
			continue
		}
		if _, exists := seenIDs[id]; exists {
			collector.add(prefix+"id", fmt.Sprintf("duplicate id %q", id))
			continue
		}
		seenIDs[id] = struct{}{}
	}
	return collector.result()
}

func checkQuestion(collector *issueCollector, prefix string, q Question) {
	if q == nil {
		collector.add(strings.TrimSuffix(prefix, "."), "is required")
		return
	}
	meta := q.Meta()
	if strings.TrimSpace(meta.ID) == "" {
		collector.add(prefix+"id", "is required")
	}
	if math.IsNaN(meta.Time) || math.IsInf(meta.Time, 0) || meta.Time < 0 {
		collector.add(prefix+"time", "must be a non-negative number of seconds")
	}
	if strings.TrimSpace(meta.Text) == "" {
		collector.add(prefix+"questionText", "is required")
	}

	switch typed := q.(type) {
	case *MultipleChoice:
		checkOptions(collector, prefix+"options", typed.Options)
		switch {
		case typed.CorrectAnswerID == "":
			collector.add(prefix+"correctAnswerId", "is required")
		case !hasOption(typed.Options, typed.CorrectAnswerID):
			collector.add(prefix+"correctAnswerId", fmt.Sprintf("unknown option %q", typed.CorrectAnswerID))
		}
	case *TrueFalse:
		switch typed.CorrectAnswerID {
		case AnswerTrue, AnswerFalse:
		case "":
			collector.add(prefix+"correctAnswerId", "is required")
		default:
			collector.add(prefix+"correctAnswerId", fmt.Sprintf("must be %q or %q", AnswerTrue, AnswerFalse))
		}
	case *Ordering:
		checkOptions(collector, prefix+"items", typed.Items)
	default:
		collector.add(prefix+"type", fmt.Sprintf("unsupported question kind %T", q))
	}
}

func checkOptions(collector *issueCollector, field string, options []AnswerOption) {
	if len(options) < MinOptions || len(options) > MaxOptions {
		collector.add(field, fmt.Sprintf("must include %d to %d entries, got %d", MinOptions, MaxOptions, len(options)))
	}
	seen := map[string]struct{}{}
	for i, option := range options {
		entry := fmt.Sprintf("%s[%d]", field, i)
		if option.ID == "" {
			collector.add(entry+".id", "is required")
		} else if _, exists := seen[option.ID]; exists {
			collector.add(entry+".id", fmt.Sprintf("duplicate id %q", option.ID))
		} else {
			seen[option.ID] = struct{}{}
		}
		if strings.TrimSpace(option.Text) == "" {
			collector.add(entry+".text", "is required")
		}
	}
}

func hasOption(options []AnswerOption, id string) bool {
	for _, option := range options {
		if option.ID == id {
			return true
		}
	}
	return false
}

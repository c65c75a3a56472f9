package config

import (
	"fmt"
	"os"
	"path/filepath"

	"vidquiz/internal/question"
)

const defaultConfig = `version: 1
title: "Interactive Video"
locale: en
# labels:
#   submit: "Answer"
#   ordering_hint: "Drag the items into order."
output_dir: "./dist"
log:
  mode: dev
  level: info
preview:
  addr: "127.0.0.1:5000"
  tick_ms: 250
`

// SampleQuestionSet returns one question of every kind, for new projects.
func SampleQuestionSet() []question.Question {
	first, second, third := question.NewOption(), question.NewOption(), question.NewOption()
	first.Text, second.Text, third.Text = "Plan", "Record", "Publish"
	right, wrong := question.NewOption(), question.NewOption()
	right.Text, wrong.Text = "A timeline marker", "A subtitle"
	return []question.Question{
		&question.TrueFalse{
			Header:          question.Header{ID: question.NewID(), Time: 5, Text: "The video pauses when a question appears."},
			CorrectAnswerID: question.AnswerTrue,
		},
		&question.MultipleChoice{
			Header:          question.Header{ID: question.NewID(), Time: 15, Text: "What shows where a question sits?"},
			Options:         []question.AnswerOption{right, wrong},
			CorrectAnswerID: right.ID,
		},
		&question.Ordering{
			Header: question.Header{ID: question.NewID(), Time: 30, Text: "Put the steps in order."},
			Items:  []question.AnswerOption{first, second, third},
		},
	}
}

// Scaffold writes a default config and a sample question file under root.
// Existing files are never overwritten.
func Scaffold(root string) (string, string, error) {
	if root == "" {
		return "", "", fmt.Errorf("project root is required")
	}
	configPath := ConfigPath(root)
	questionsPath := filepath.Join(root, SampleQuestions)
	for _, path := range []string{configPath, questionsPath} {
		if info, err := os.Stat(path); err == nil {
			if info.IsDir() {
				return "", "", fmt.Errorf("%q is a directory", path)
			}
			return "", "", fmt.Errorf("file already exists at %q", path)
		} else if !os.IsNotExist(err) {
			return "", "", fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := os.MkdirAll(ConfigDir(root), 0o755); err != nil {
		return "", "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", "", fmt.Errorf("write config file: %w", err)
	}
	file := question.File{Version: question.CurrentVersion, Questions: SampleQuestionSet()}
	if err := question.WriteFile(questionsPath, file); err != nil {
		return "", "", err
	}
	return configPath, questionsPath, nil
}

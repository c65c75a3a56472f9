package config

import (
	"fmt"
	"strings"
)

// Config is the project configuration read from .vidquiz/config.yml.
type Config struct {
	Version   int               `yaml:"version" validate:"required,eq=1"`
	Title     string            `yaml:"title" validate:"required"`
	Locale    string            `yaml:"locale" validate:"required,oneof=en vi"`
	Labels    map[string]string `yaml:"labels,omitempty"`
	OutputDir string            `yaml:"output_dir" validate:"required"`
	Log       LogConfig         `yaml:"log"`
	Preview   PreviewConfig     `yaml:"preview"`
}

// LogConfig selects the zap preset and level.
type LogConfig struct {
	Mode  string `yaml:"mode" validate:"oneof=dev prod"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// PreviewConfig configures the preview server and the terminal preview clock.
type PreviewConfig struct {
	Addr   string `yaml:"addr" validate:"required,hostname_port"`
	TickMS int    `yaml:"tick_ms" validate:"gte=10,lt=500"`
}

// Default returns the configuration used when no config file exists.
func Default() Config {
	return Config{
		Version:   1,
		Title:     DefaultTitle,
		Locale:    DefaultLocale,
		OutputDir: DefaultOutputDir,
		Log:       LogConfig{Mode: "dev", Level: "info"},
		Preview:   PreviewConfig{Addr: DefaultPreview, TickMS: DefaultPreviewTick},
	}
}

// Issue captures a validation problem with a config field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError aggregates config validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error renders validation errors as a multi-line string.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "config validation failed"
	}
	lines := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		lines = append(lines, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return strings.Join(lines, "\n")
}

package cli

import (
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"vidquiz/internal/config"
	"vidquiz/internal/logger"
	"vidquiz/internal/media"
	"vidquiz/internal/question"
)

// project is the resolved configuration and logger shared by commands.
type project struct {
	config.Loaded
	log *logger.Logger
}

// configFlag registers the shared --config flag.
func configFlag(flags *flag.FlagSet) *string {
	return flags.String("config", "", "Path to config file (default: search for .vidquiz/config.yml)")
}

// loadProject resolves the config at configPath, or by searching upward from
// the working directory, and builds the logger it describes.
func loadProject(configPath string, stderr io.Writer) (project, error) {
	loaded, err := config.Resolve(strings.TrimSpace(configPath), "")
	if err != nil {
		return project{}, err
	}
	log, err := newLogger(loaded.Log, stderr)
	if err != nil {
		return project{}, fmt.Errorf("build logger: %w", err)
	}
	return project{Loaded: loaded, log: log}, nil
}

// newLogger is a test seam. Dev logs go to the command's stderr.
var newLogger = func(cfg config.LogConfig, stderr io.Writer) (*logger.Logger, error) {
	if cfg.Mode == "prod" {
		return logger.New(cfg.Mode, cfg.Level)
	}
	return logger.NewWriter(stderr, cfg.Level)
}

// outputPath resolves where an artifact of the given format goes. An empty
// out means the configured output directory; an existing directory gets the
// default artifact name appended.
func (p project) outputPath(out string, isDir func(string) bool, name string) string {
	out = strings.TrimSpace(out)
	if out == "" {
		dir := p.OutputDir
		if !filepath.IsAbs(dir) && p.Path != "" {
			dir = filepath.Join(p.Root, dir)
		}
		return filepath.Join(dir, name)
	}
	if isDir(out) {
		return filepath.Join(out, name)
	}
	return out
}

// loadQuestions reads a question file. An empty path yields an empty set.
func loadQuestions(path string) (question.File, error) {
	if strings.TrimSpace(path) == "" {
		return question.File{Version: question.CurrentVersion}, nil
	}
	return question.LoadFile(path)
}

// loadVideo opens the video named by the flag, falling back to the one the
// question file references relative to its own directory.
func loadVideo(flagValue, questionsPath string, file question.File) (*media.Source, error) {
	path := strings.TrimSpace(flagValue)
	if path == "" && file.Video != "" {
		path = file.Video
		if !filepath.IsAbs(path) && questionsPath != "" {
			path = filepath.Join(filepath.Dir(questionsPath), path)
		}
	}
	if path == "" {
		return nil, nil
	}
	return media.Open(path)
}

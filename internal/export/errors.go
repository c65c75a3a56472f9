package export

import (
	"errors"
	"fmt"
)

// Mode selects the artifact layout.
type Mode string

const (
	// ModeHTML is a single HTML file with the video inlined.
	ModeHTML Mode = "html"
	// ModeZip is the bundle packed into one archive.
	ModeZip Mode = "zip"
	// ModeDir is the bundle written into a directory.
	ModeDir Mode = "dir"
)

// ParseMode maps a format name to a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(value) {
	case ModeHTML, ModeZip, ModeDir:
		return Mode(value), nil
	default:
		return "", fmt.Errorf("unknown export format %q (want html, zip or dir)", value)
	}
}

// ErrNoSource reports an export without a video source.
var ErrNoSource = errors.New("video source is required")

// GenerationError reports a failure while building or writing an artifact.
type GenerationError struct {
	Mode Mode
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Mode, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// Wrap returns err as a *GenerationError for mode, keeping an existing one.
func Wrap(mode Mode, err error) error {
	if err == nil {
		return nil
	}
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return err
	}
	return &GenerationError{Mode: mode, Err: err}
}

package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNotTerminal reports an interactive command run without a TTY.
var ErrNotTerminal = errors.New("the editor needs an interactive terminal on stdin and stdout")

// editorMode captures how the terminal editor renders.
type editorMode struct {
	noColor bool
}

// isTerminal reports whether a stream is a TTY.
var isTerminal = defaultIsTerminal

// lookupEnv is a test seam for NO_COLOR.
var lookupEnv = os.LookupEnv

// resolveEditorMode checks both streams are terminals and decides on color.
func resolveEditorMode(colorMode string, stdin, stdout any) (editorMode, error) {
	if !isTerminal(stdin) || !isTerminal(stdout) {
		return editorMode{}, ErrNotTerminal
	}
	normalized := strings.ToLower(strings.TrimSpace(colorMode))
	if normalized == "" {
		normalized = "auto"
	}
	switch normalized {
	case "auto":
		_, noColor := lookupEnv("NO_COLOR")
		return editorMode{noColor: noColor}, nil
	case "always":
		return editorMode{}, nil
	case "never":
		return editorMode{noColor: true}, nil
	default:
		return editorMode{}, fmt.Errorf("invalid color mode %q (expected auto|always|never)", colorMode)
	}
}

// defaultIsTerminal inspects a stream for TTY support.
func defaultIsTerminal(stream any) bool {
	if stream == nil {
		return false
	}
	if file, ok := stream.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	if fder, ok := stream.(interface{ Fd() uintptr }); ok {
		return term.IsTerminal(int(fder.Fd()))
	}
	return false
}

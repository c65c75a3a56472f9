package editor

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"vidquiz/internal/authoring"
)

// Run starts the editor on the terminal and blocks until the author quits
// or ctx is cancelled.
func Run(ctx context.Context, session *authoring.Session, opts Options, in io.Reader, out io.Writer) error {
	if session == nil {
		return errors.New("editor: session is required")
	}
	if in == nil {
		in = os.Stdin
	}
	if out == nil {
		out = os.Stdout
	}
	program := tea.NewProgram(
		NewModel(session, opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

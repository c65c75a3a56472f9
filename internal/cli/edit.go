package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"vidquiz/internal/authoring"
	"vidquiz/internal/config"
	"vidquiz/internal/question"
	"vidquiz/internal/ui/editor"
)

// runEditor is a test seam for the terminal program.
var runEditor = editor.Run

// editInput and editOutput are the streams handed to the editor.
var (
	editInput  io.Reader = os.Stdin
	editOutput io.Writer = os.Stdout
)

// runEdit builds the handler for the edit command.
func runEdit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := configFlag(flags)
		videoPath := flags.String("video", "", "Video to author questions for (default: the question file's video)")
		questionsPath := flags.String("questions", "", "Question file to open and save (default: questions.yml in the project root)")
		color := flags.String("color", "auto", "Color output: auto, always or never")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		mode, err := resolveEditorMode(*color, editInput, editOutput)
		if err != nil {
			fmt.Fprintf(stderr, "Edit failed: %v\n", err)
			if errors.Is(err, ErrNotTerminal) {
				return ExitError
			}
			return ExitUsage
		}
		p, err := loadProject(*configPath, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		defer p.log.Sync()

		path := strings.TrimSpace(*questionsPath)
		if path == "" {
			path = filepath.Join(p.Root, config.SampleQuestions)
		}
		file, err := openQuestionFile(path)
		if err != nil {
			fmt.Fprintf(stderr, "Question file error:\n%v\n", err)
			return ExitError
		}
		video, err := loadVideo(*videoPath, path, file)
		if err != nil {
			fmt.Fprintf(stderr, "Edit failed: %v\n", err)
			return ExitError
		}

		session := authoring.NewSession(p.log)
		if video != nil {
			session.LoadVideo(video)
		}
		if err := session.Import(file.Questions); err != nil {
			fmt.Fprintf(stderr, "Question file error:\n%v\n", err)
			return ExitError
		}
		exp, err := newExporter(p, "")
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}

		videoRef := file.Video
		if strings.TrimSpace(*videoPath) != "" {
			videoRef = *videoPath
		}
		opts := editor.Options{
			NoColor: mode.noColor,
			Tick:    time.Duration(p.Preview.TickMS) * time.Millisecond,
			Labels:  exp.opts.Labels,
			Export:  exp.write,
			Save: func(questions []question.Question) (string, error) {
				out := question.File{Version: question.CurrentVersion, Video: videoRef, Questions: questions}
				if err := question.WriteFile(path, out); err != nil {
					return "", err
				}
				return path, nil
			},
			Logger: p.log,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := runEditor(ctx, session, opts, editInput, editOutput); err != nil {
			fmt.Fprintf(stderr, "Editor error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

// openQuestionFile loads path, treating a missing file as an empty set so a
// new project can start from nothing.
func openQuestionFile(path string) (question.File, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return question.File{Version: question.CurrentVersion}, nil
	}
	return question.LoadFile(path)
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"vidquiz/internal/authoring"
	"vidquiz/internal/export"
	"vidquiz/internal/media"
	"vidquiz/internal/question"
)

// exporter writes artifacts with the project's page options. The export
// command and the editor share it.
type exporter struct {
	project project
	opts    export.Options
	out     string
}

func newExporter(p project, out string) (exporter, error) {
	opts, err := p.ExportOptions()
	if err != nil {
		return exporter{}, err
	}
	return exporter{project: p, opts: opts, out: out}, nil
}

// write builds and saves one artifact and returns the path written.
func (e exporter) write(ctx context.Context, mode export.Mode, video *media.Source, questions []question.Question) (string, error) {
	artifact, err := export.Build(mode, video, questions, e.opts)
	if err != nil {
		return "", err
	}
	path := e.project.outputPath(e.out, isDir, export.DefaultName(mode))
	if err := export.Save(ctx, path, artifact); err != nil {
		return "", err
	}
	return path, nil
}

// run exports through the session so the no-video guard and the exporting
// flag apply the same way they do in the editor.
func (e exporter) run(ctx context.Context, session *authoring.Session, mode export.Mode) (string, error) {
	var written string
	err := session.Export(ctx, mode, func(ctx context.Context, video *media.Source, questions []question.Question) error {
		path, err := e.write(ctx, mode, video, questions)
		written = path
		return err
	})
	return written, err
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// runExport builds the handler for the export command.
func runExport(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := configFlag(flags)
		videoPath := flags.String("video", "", "Video file to embed (default: the question file's video)")
		questionsPath := flags.String("questions", "", "Question file (YAML or JSON)")
		format := flags.String("format", string(export.ModeHTML), "Artifact format: html, zip or dir")
		out := flags.String("out", "", "Output file or directory (default: config output_dir)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		mode, err := export.ParseMode(*format)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return ExitUsage
		}
		p, err := loadProject(*configPath, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		defer p.log.Sync()

		file, err := loadQuestions(*questionsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Question file error:\n%v\n", err)
			return ExitError
		}
		video, err := loadVideo(*videoPath, *questionsPath, file)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
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
		exp, err := newExporter(p, *out)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		path, err := exp.run(context.Background(), session, mode)
		if err != nil {
			fmt.Fprintf(stderr, "Export failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s (%d questions)\n", path, len(file.Questions))
		return ExitOK
	}
}

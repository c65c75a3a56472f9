package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"

	"vidquiz/internal/previewserver"
	"vidquiz/internal/question"
)

// servePreview is a test seam for running the preview server.
var servePreview = previewserver.Serve

// runServe builds the handler for the serve command.
func runServe(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := configFlag(flags)
		videoPath := flags.String("video", "", "Video file to serve (default: the question file's video)")
		questionsPath := flags.String("questions", "", "Question file, reread on every page load")
		addr := flags.String("addr", "", "Address to listen on (default: config preview.addr)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if strings.TrimSpace(*questionsPath) == "" {
			fmt.Fprintln(stderr, "Missing --questions")
			return ExitUsage
		}

		p, err := loadProject(*configPath, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}
		defer p.log.Sync()
		file, err := question.LoadFile(*questionsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Question file error:\n%v\n", err)
			return ExitError
		}
		video, err := loadVideo(*videoPath, *questionsPath, file)
		if err != nil {
			fmt.Fprintf(stderr, "Video error: %v\n", err)
			return ExitError
		}
		if video == nil {
			fmt.Fprintln(stderr, "Missing --video")
			return ExitUsage
		}
		opts, err := p.ExportOptions()
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}

		listenAddr := strings.TrimSpace(*addr)
		if listenAddr == "" {
			listenAddr = p.Preview.Addr
		}
		path := *questionsPath
		cfg := previewserver.Config{
			Addr:  listenAddr,
			Video: video,
			Questions: func() ([]question.Question, error) {
				current, err := question.LoadFile(path)
				if err != nil {
					return nil, err
				}
				return current.Questions, nil
			},
			Options: opts,
			Logger:  p.log,
			OnListen: func(bound net.Addr) {
				fmt.Fprintf(stdout, "Serving preview at http://%s\n", bound.String())
			},
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := servePreview(ctx, cfg); err != nil {
			fmt.Fprintf(stderr, "Server error: %v\n", err)
			return ExitError
		}
		return ExitOK
	}
}

package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"vidquiz/internal/question"
	"vidquiz/internal/simulate"
)

// runSimulate builds the handler for the simulate command.
func runSimulate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := configFlag(flags)
		questionsPath := flags.String("questions", "", "Question file (YAML or JSON)")
		stepsPath := flags.String("steps", "", "Step file describing the viewer actions")
		seed := flags.Uint64("seed", 1, "Seed for shuffling ordering items")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}
		if strings.TrimSpace(*questionsPath) == "" || strings.TrimSpace(*stepsPath) == "" {
			fmt.Fprintln(stderr, "Missing --questions or --steps")
			printCommandUsage(cmd, stderr)
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
		script, err := simulate.LoadScript(*stepsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Step file error:\n%v\n", err)
			return ExitError
		}
		labels, err := p.PlayerLabels()
		if err != nil {
			fmt.Fprintf(stderr, "Config error:\n%v\n", err)
			return ExitError
		}

		runner := simulate.New(file.Questions, script, simulate.Options{
			Tick:       time.Duration(p.Preview.TickMS) * time.Millisecond,
			Rand:       rand.New(rand.NewPCG(*seed, *seed)),
			Labels:     labels.TrueFalse(),
			Transcript: stdout,
			Logger:     p.log,
		})
		summary, err := runner.Run(context.Background(), script.Steps)
		if err != nil {
			fmt.Fprintf(stderr, "Simulation failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Done: %d steps, %d questions shown, %d correct, %d incorrect, stopped at %.2f\n",
			summary.Steps, summary.Triggered, summary.Correct, summary.Incorrect, summary.Position)
		return ExitOK
	}
}

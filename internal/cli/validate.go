package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"vidquiz/internal/question"
)

// runValidate builds the handler for the validate command.
func runValidate(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		configPath := configFlag(flags)
		questionsPath := flags.String("questions", "", "Question file to validate (YAML or JSON)")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		p, err := loadProject(*configPath, stderr)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		defer p.log.Sync()
		if p.Path == "" {
			fmt.Fprintln(stdout, "Config OK (defaults)")
		} else {
			fmt.Fprintf(stdout, "Config OK (%s)\n", p.Path)
		}

		if strings.TrimSpace(*questionsPath) == "" {
			return ExitOK
		}
		file, err := question.LoadFile(*questionsPath)
		if err != nil {
			fmt.Fprintf(stderr, "Validation failed:\n%s\n", err.Error())
			return ExitError
		}
		counts := map[question.Kind]int{}
		for _, q := range file.Questions {
			counts[q.Kind()]++
		}
		fmt.Fprintf(stdout, "Questions OK: %d (%d multiple choice, %d true/false, %d ordering)\n",
			len(file.Questions),
			counts[question.KindMultipleChoice],
			counts[question.KindTrueFalse],
			counts[question.KindOrdering])
		p.log.Debug("question file validated", "path", *questionsPath, "questions", len(file.Questions))
		return ExitOK
	}
}

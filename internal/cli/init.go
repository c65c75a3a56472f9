package cli

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"vidquiz/internal/config"
)

// runInit builds the handler for the init command.
func runInit(cmd *Command) func(args []string, stdout, stderr io.Writer) int {
	return func(args []string, stdout, stderr io.Writer) int {
		if wantsHelp(args) {
			printCommandUsage(cmd, stdout)
			return ExitOK
		}

		flags := flag.NewFlagSet(cmd.Name, flag.ContinueOnError)
		dir := flags.String("dir", "", "Project root (default: git root or working directory)")
		yes := flags.Bool("yes", false, "Answer yes to every prompt")
		if code, ok := parseFlags(cmd, flags, args, stdout, stderr); !ok {
			return code
		}

		root := strings.TrimSpace(*dir)
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			root = wd
			if gitRoot := discoverGitRoot(wd); gitRoot != "" {
				root = gitRoot
			}
		}
		root, err := filepath.Abs(root)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		configPath := config.ConfigPath(root)
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(stderr, "Init failed: config already exists at %q\n", configPath)
			return ExitError
		}

		in := initInput
		if in == nil {
			in = os.Stdin
		}
		reader := bufio.NewReader(in)
		if !*yes {
			confirm, err := promptYesNo(reader, stdout, fmt.Sprintf("Initialize vidquiz in %s?", root), true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
			if !confirm {
				fmt.Fprintln(stderr, "Init cancelled.")
				return ExitError
			}
		}

		configPath, questionsPath, err := config.Scaffold(root)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: %v\n", err)
			return ExitError
		}
		fmt.Fprintf(stdout, "Wrote %s\n", configPath)
		fmt.Fprintf(stdout, "Wrote %s\n", questionsPath)

		gitRoot := discoverGitRoot(root)
		if gitRoot == "" {
			return ExitOK
		}
		addGitignore := *yes
		if !addGitignore {
			addGitignore, err = promptYesNo(reader, stdout, "Add the export folder to .gitignore?", true)
			if err != nil {
				fmt.Fprintf(stderr, "Init failed: %v\n", err)
				return ExitError
			}
		}
		if !addGitignore {
			return ExitOK
		}
		outputDir := filepath.Join(root, config.DefaultOutputDir)
		updated, err := addGitignoreEntry(gitRoot, outputDir)
		if err != nil {
			fmt.Fprintf(stderr, "Init failed: update .gitignore: %v\n", err)
			return ExitError
		}
		if updated {
			fmt.Fprintf(stdout, "Updated %s\n", filepath.Join(gitRoot, ".gitignore"))
		}
		return ExitOK
	}
}

// initInput allows tests to override stdin for init prompts.
var initInput io.Reader = os.Stdin

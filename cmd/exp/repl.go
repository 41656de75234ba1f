// repl.go — interactive evaluation loop on liner.
//
// Each line is one complete expression, evaluated against the same immutable
// environment; the language has no assignment, so nothing persists across
// lines except the input history.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/ClaudiuCeia/exp"
)

const (
	historyFile = ".exp_history"
	prompt      = "exp> "
)

var (
	resultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newReplCmd() *cobra.Command {
	var lf limitFlags
	var envPath string

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "interactive expression evaluation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var env map[string]exp.Value
			var err error
			if envPath != "" {
				env, err = loadEnvFile(envPath)
				if err != nil {
					return err
				}
			}
			opts, err := lf.options(env)
			if err != nil {
				return err
			}
			runRepl(opts)
			return nil
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&envPath, "env", "", "YAML/JSON file providing the host environment")
	return cmd
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func runRepl(opts *exp.Options) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	if f, err := os.Open(historyPath()); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath()); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Printf("exp %s — Ctrl+D or :quit to exit\n", exp.Version)

	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			fmt.Println(noticeStyle.Render("(aborted)"))
			continue
		}
		if err == io.EOF {
			fmt.Println()
			return
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}
		if trimmed == ":quit" {
			return
		}
		line.AppendHistory(input)

		v, evalErr := exp.Evaluate(input, opts)
		if evalErr != nil {
			fmt.Print(renderError(input, evalErr))
			continue
		}
		fmt.Println(resultStyle.Render(exp.FormatValue(v)))
	}
}

// run.go — the run subcommand: evaluate one expression from a file or stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/ClaudiuCeia/exp"
	"github.com/ClaudiuCeia/exp/internal/diag"
)

func newRunCmd() *cobra.Command {
	var lf limitFlags
	var envPath string

	cmd := &cobra.Command{
		Use:   "run [file]",
		Short: "evaluate an expression from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args)
			if err != nil {
				return err
			}

			var env map[string]exp.Value
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

			v, evalErr := exp.Evaluate(src, opts)
			if evalErr != nil {
				fmt.Fprint(os.Stderr, renderError(src, evalErr))
				// Evaluation failures are exit code 1; usage problems
				// already returned above as cobra errors (code 2).
				os.Exit(1)
			}
			fmt.Fprintln(cmd.OutOrStdout(), exp.FormatValue(v))
			return nil
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVar(&envPath, "env", "", "YAML/JSON file providing the host environment")
	return cmd
}

func readSource(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", err
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func outputStyles() diag.Styles {
	if isatty.IsTerminal(os.Stderr.Fd()) {
		return diag.Colored()
	}
	return diag.Plain()
}

// renderError produces a caret snippet for any library error; errors without
// a position render as a bare message.
func renderError(src string, err error) string {
	st := outputStyles()

	var perr *exp.ParseError
	if errors.As(err, &perr) {
		return diag.Snippet(src, "parse error", perr.Message, perr.Index, perr.Index, st)
	}

	var eerr *exp.EvalError
	if errors.As(err, &eerr) {
		switch {
		case eerr.Kind == exp.ErrParse:
			return diag.Snippet(src, "parse error", eerr.Message, eerr.Index, eerr.Index, st)
		case eerr.Span != nil:
			header := fmt.Sprintf("eval error (%s)", eerr.Kind)
			return diag.Snippet(src, header, eerr.Message, eerr.Span.Start, eerr.Span.End, st)
		default:
			return st.Header.Render(err.Error()) + "\n"
		}
	}
	return err.Error() + "\n"
}

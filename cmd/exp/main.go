// Command exp evaluates expressions from files, stdin, or an interactive
// REPL.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ClaudiuCeia/exp"
)

func main() {
	root := &cobra.Command{
		Use:           "exp",
		Short:         "evaluate exp expressions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Accept --max_steps as --max-steps and friends.
	root.SetGlobalNormalizationFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})
	root.AddCommand(newRunCmd(), newReplCmd(), newVersionCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print the library version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), exp.Version)
		},
	}
}

// limitFlags maps the shared budget/policy flags onto Options.
type limitFlags struct {
	maxSteps int
	maxDepth int
	maxArray int
	unknown  string
}

func (lf *limitFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&lf.maxSteps, "max-steps", exp.DefaultMaxSteps, "step budget per evaluation")
	cmd.Flags().IntVar(&lf.maxDepth, "max-depth", exp.DefaultMaxDepth, "recursion depth limit")
	cmd.Flags().IntVar(&lf.maxArray, "max-array", exp.DefaultMaxArrayElements, "array literal element limit")
	cmd.Flags().StringVar(&lf.unknown, "unknown", "error", "unknown identifier policy: error or undefined")
}

func (lf *limitFlags) options(env map[string]exp.Value) (*exp.Options, error) {
	opts := exp.DefaultOptions()
	opts.Env = env
	opts.MaxSteps = lf.maxSteps
	opts.MaxDepth = lf.maxDepth
	opts.MaxArrayElements = lf.maxArray
	switch lf.unknown {
	case "error":
		opts.UnknownIdentifier = exp.ErrorOnUnknown
	case "undefined":
		opts.UnknownIdentifier = exp.UndefinedOnUnknown
	default:
		return nil, fmt.Errorf("invalid --unknown policy %q (want error or undefined)", lf.unknown)
	}
	return opts, nil
}

// Package cmd implements the rootfind sub-commands.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sandrolain/goroots"
	"github.com/sandrolain/goroots/pkg/solver"
)

// globalEnv holds the flags shared by every sub-command.
type globalEnv struct {
	verbose bool
}

// logger returns a text logger on w, at debug level when --verbose is set.
func (g *globalEnv) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewRootCmd returns the rootfind command with all sub-commands attached.
func NewRootCmd() *cobra.Command {
	g := &globalEnv{}
	root := &cobra.Command{
		Use:   "rootfind",
		Short: "Solve f(x) = 0 by bisection, chords or fixed-point iteration",
		Long: `Solve nonlinear equations of one variable.

Formulas are written in x with + - * / ^, implicit multiplication (2x) and
the functions sin cos tan exp ln log sqrt abs. For example:

	rootfind solve --method bisection --equation "x^3 - x - 1" --a 1 --b 2
	rootfind solve --method iteration --phi "(x + 1)^(1/3)" --x0 1.5
	rootfind serve --config rootfind.yaml
`,
		Version:       goroots.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log solver progress to stderr")

	root.AddCommand(
		getSolveCmd(g),
		getSampleCmd(),
		getServeCmd(),
	)
	return root
}

// Execute runs the root command and exits with status 1 on any error.
func Execute() {
	root := NewRootCmd()
	if err := root.ExecuteContext(context.Background()); err != nil {
		printError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// printError writes one line per field error.
func printError(w io.Writer, err error) {
	for _, e := range solver.FieldErrors(err) {
		switch {
		case e.Field != "" && e.Example != "":
			fmt.Fprintf(w, "error: %s: %s (e.g. %s)\n", e.Field, e.Message, e.Example)
		case e.Field != "":
			fmt.Fprintf(w, "error: %s: %s\n", e.Field, e.Message)
		default:
			fmt.Fprintf(w, "error: %s\n", e.Message)
		}
	}
}

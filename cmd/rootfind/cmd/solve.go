package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sandrolain/goroots/pkg/solver"
	"github.com/sandrolain/goroots/pkg/types"
)

// solveEnv provides the environment for the solve command.
type solveEnv struct {
	global *globalEnv
	method string
	format string
	raw    solver.RawParams
}

// getSolveCmd returns the definition of the solve command.
func getSolveCmd(g *globalEnv) *cobra.Command {
	env := &solveEnv{global: g}
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a root of an equation",
		Long: `
Finds a root of f(x) = 0.

bisection and chord search the interval [a, b], over which the equation must
change sign. iteration repeats x = phi(x) from x0.
`,
		Args: cobra.NoArgs,
		RunE: env.runSolveCmd,
	}

	d := solver.DefaultParams()
	cmd.Flags().StringVar(&env.method, "method", "bisection", "bisection, chord or iteration")
	cmd.Flags().StringVar(&env.format, "format", "json", "Output format: json or table")
	cmd.Flags().StringVar(&env.raw.Equation, "equation", d.Equation, "f(x) for bisection and chord")
	cmd.Flags().StringVar(&env.raw.PhiEquation, "phi", d.PhiEquation, "phi(x) for iteration")
	cmd.Flags().StringVar(&env.raw.A, "a", fmt.Sprint(d.A), "Left end of the interval")
	cmd.Flags().StringVar(&env.raw.B, "b", fmt.Sprint(d.B), "Right end of the interval")
	cmd.Flags().StringVar(&env.raw.X0, "x0", fmt.Sprint(d.X0), "Starting point for iteration")
	cmd.Flags().StringVar(&env.raw.Epsilon, "epsilon", fmt.Sprint(d.Epsilon), "Tolerance")
	cmd.Flags().StringVar(&env.raw.MaxIterations, "max-iterations", fmt.Sprint(d.MaxIterations), "Iteration cap")
	return cmd
}

func (s *solveEnv) runSolveCmd(cmd *cobra.Command, _ []string) error {
	if s.format != "json" && s.format != "table" {
		return types.NewError(types.ErrInvalidInput, fmt.Sprintf("unknown format %q", s.format), -1).
			WithField("format").WithExample("json")
	}
	method, err := solver.ParseMethod(s.method)
	if err != nil {
		return err
	}
	params, err := solver.ParseParams(method, s.raw)
	if err != nil {
		return err
	}

	res, err := solver.Solve(method, params, solver.WithLogger(s.global.logger(cmd.ErrOrStderr())))
	if err != nil {
		return err
	}

	if s.format == "table" {
		return writeTable(cmd.OutOrStdout(), res)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// writeTable prints the iteration trace followed by a summary.
func writeTable(w io.Writer, res *types.SolveResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	switch res.Method {
	case solver.MethodBisection.String():
		fmt.Fprintln(tw, "n\ta\tb\tc\tf(c)\t|b-a|")
	case solver.MethodChord.String():
		fmt.Fprintln(tw, "n\ta\tb\tx\tf(x)\t|dx|")
	default:
		fmt.Fprintln(tw, "n\tx prev\tx\t|dx|")
	}
	for _, step := range res.Iterations {
		switch s := step.(type) {
		case types.BisectionStep:
			fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\n", s.N, s.A, s.B, s.C, s.FC, s.Error)
		case types.ChordStep:
			fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\n", s.N, s.A, s.B, s.X, s.FX, s.Error)
		case types.FixedPointStep:
			fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\n", s.N, s.XPrev, s.XCurr, s.Error)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	status := "converged"
	if !res.Converged {
		status = "did not converge"
	}
	_, err := fmt.Fprintf(w, "\nroot = %.8f  residual = %.2e  %s after %d iterations\n",
		res.Root, res.Residual, status, res.IterationCount)
	return err
}

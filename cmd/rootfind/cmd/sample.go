package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/sandrolain/goroots"
	"github.com/sandrolain/goroots/pkg/evaluator"
	"github.com/sandrolain/goroots/pkg/solver"
	"github.com/sandrolain/goroots/pkg/types"
)

type sampleEnv struct {
	equation string
	from, to float64
	points   int
}

// getSampleCmd returns the definition of the sample command.
func getSampleCmd() *cobra.Command {
	env := &sampleEnv{}
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Evaluate a formula at evenly spaced points",
		Long: `
Evaluates the formula at --points values spread evenly over [from, to] and
prints them as JSON. Points where the formula is undefined are left out.
`,
		Args: cobra.NoArgs,
		RunE: env.runSampleCmd,
	}
	cmd.Flags().StringVar(&env.equation, "equation", solver.DefaultParams().Equation, "Formula in x")
	cmd.Flags().Float64Var(&env.from, "from", -5, "Start of the range")
	cmd.Flags().Float64Var(&env.to, "to", 5, "End of the range")
	cmd.Flags().IntVar(&env.points, "points", 101, "Number of samples")
	return cmd
}

func (s *sampleEnv) runSampleCmd(cmd *cobra.Command, _ []string) error {
	expr, err := goroots.Compile(s.equation)
	if err != nil {
		if e := types.AsError(err); e != nil {
			return e.WithField(solver.FieldEquation)
		}
		return err
	}
	points, err := evaluator.Sample(evaluator.New().Bind(expr), s.from, s.to, s.points)
	if err != nil {
		return err
	}
	return json.NewEncoder(cmd.OutOrStdout()).Encode(struct {
		Points []evaluator.Point `json:"points"`
	}{points})
}

package cli

import (
	"math"

	"github.com/spf13/cobra"

	"github.com/kbukum/iterx/numeric"
	"github.com/kbukum/iterx/validation"
)

func newRangeCmd(a *app) *cobra.Command {
	var (
		step float64
		opts pipelineOptions
	)
	cmd := &cobra.Command{
		Use:   "range [start] end",
		Short: "Emit numbers from start (default 0) up to but excluding end",
		Long: `Emit numbers from start up to but excluding end. The sequence counts down
when start is greater than end; only the magnitude of --step is used.`,
		Example: `  iterx range 5
  iterx range 10 0 --step 3
  iterx range 1 11 --reduce product`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			var start, end float64
			var err error
			if len(args) == 2 {
				if start, err = parseNumber("range", args[0]); err != nil {
					return err
				}
			}
			if end, err = parseNumber("range", args[len(args)-1]); err != nil {
				return err
			}

			if !cmd.Flags().Changed("step") {
				step = a.cfg.Range.Step
			}
			if err := validation.New().
				NonZero("step", step).
				Custom(!math.IsNaN(step), "step", "must be a number").
				Validate(); err != nil {
				return err
			}

			src := numeric.RangeStep(start, end, step)
			return a.runPipeline(cmd.Context(), cmd.OutOrStdout(), src, &opts)
		},
	}
	cmd.Flags().Float64Var(&step, "step", 1, "distance between values (default from config)")
	bindPipelineFlags(cmd.Flags(), &opts)
	return cmd
}

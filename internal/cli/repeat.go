package cli

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/iterx/iterator"
	"github.com/kbukum/iterx/validation"
)

func newRepeatCmd(a *app) *cobra.Command {
	var (
		times int
		opts  pipelineOptions
	)
	cmd := &cobra.Command{
		Use:   "repeat value",
		Short: "Emit the same number repeatedly",
		Example: `  iterx repeat 2 --times 10 --reduce product
  iterx repeat 7 --take 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.validate(); err != nil {
				return err
			}
			if err := validation.New().
				Custom(!unbounded(times, &opts), "times", "set --times or --take, the sequence is otherwise infinite").
				Validate(); err != nil {
				return err
			}
			v, err := parseNumber("repeat", args[0])
			if err != nil {
				return err
			}

			var src *iterator.Iterator[float64]
			if times >= 0 {
				src = iterator.RepeatN(v, times)
			} else {
				src = iterator.Repeat(v)
			}
			return a.runPipeline(cmd.Context(), cmd.OutOrStdout(), src, &opts)
		},
	}
	cmd.Flags().IntVar(&times, "times", -1, "number of repetitions (-1 repeats forever)")
	bindPipelineFlags(cmd.Flags(), &opts)
	return cmd
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/jask/tally/internal/testdata"
)

var sampleOpts testdata.Options

var sampleCmd = &cobra.Command{
	Use:         "sample",
	Short:       "Write a sample bank export to stdout",
	Args:        cobra.NoArgs,
	Annotations: noStore,
	RunE: func(cmd *cobra.Command, args []string) error {
		return testdata.Write(cmd.OutOrStdout(), sampleOpts)
	},
}

func init() {
	layout := (*string)(&sampleOpts.Layout)
	sampleCmd.Flags().StringVar(layout, "layout", string(testdata.SingleAmount), "amount, split or categorized")
	sampleCmd.Flags().IntVar(&sampleOpts.Rows, "rows", 20, "number of data rows")
	sampleCmd.Flags().Uint64Var(&sampleOpts.Seed, "seed", 1, "random seed")
}

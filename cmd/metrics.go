package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reviewkit/reviewkit/output"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <review-id>",
	Short: "Show the synthesized quality metrics for a review",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		record, err := p.store.GetReview(args[0])
		if err != nil {
			return err
		}

		metrics, err := p.store.MetricsForReview(record.ID)
		if err != nil {
			return err
		}

		ui := output.New()
		ui.PrintRecord(record)
		return ui.PrintMetrics(metrics)
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}

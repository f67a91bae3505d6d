package cmd

import (
	"github.com/spf13/cobra"

	"github.com/reviewkit/reviewkit/output"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <review-id>",
	Short: "Show the stored feedback for a review, most urgent first",
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

		items, err := p.store.FeedbackForReview(record.ID)
		if err != nil {
			return err
		}

		ui := output.New()
		ui.PrintRecord(record)
		return ui.PrintFeedback(items)
	},
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
}

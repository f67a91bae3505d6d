package cmd

import (
	"fmt"

	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	"github.com/reviewkit/reviewkit/models"
	"github.com/reviewkit/reviewkit/output"
)

var (
	analyzeAllPending  bool
	analyzeRetryFailed bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [review-id...]",
	Short: "Run or re-run analysis for review records",
	Long: `Analyze (re-)runs the full pipeline for the given review ids. Completed
and failed records may always be re-analyzed; prior metrics and feedback are
replaced wholesale. A record already being analyzed is rejected.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeAllPending, "all-pending", false, "analyze every pending record")
	analyzeCmd.Flags().BoolVar(&analyzeRetryFailed, "retry-failed", false, "re-run every failed record")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	p, err := newPipeline()
	if err != nil {
		return err
	}
	defer p.Close()

	ids := args
	for _, status := range selectedStatuses() {
		records, err := p.store.ListReviews(status, 0)
		if err != nil {
			return err
		}
		for _, record := range records {
			ids = append(ids, record.ID)
		}
	}

	if len(ids) == 0 {
		return fmt.Errorf("no review ids given (use --all-pending or --retry-failed to select by status)")
	}

	result, err := p.controller.AnalyzeBatch(cmd.Context(), ids)
	if err != nil {
		return err
	}

	ui := output.New()
	for _, id := range result.Completed {
		record, err := p.store.GetReview(id)
		if err != nil {
			return err
		}
		ui.PrintRecord(record)
	}
	for _, failure := range result.Failed {
		logger.Errorf("review %s: %v", failure.ID, failure.Err)
	}

	if len(result.Failed) > 0 {
		return fmt.Errorf("%d of %d record(s) failed analysis", len(result.Failed), len(ids))
	}
	return nil
}

func selectedStatuses() []models.ReviewStatus {
	var statuses []models.ReviewStatus
	if analyzeAllPending {
		statuses = append(statuses, models.StatusPending)
	}
	if analyzeRetryFailed {
		statuses = append(statuses, models.StatusFailed)
	}
	return statuses
}

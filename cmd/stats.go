package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reviewkit/reviewkit/models"
	"github.com/reviewkit/reviewkit/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show review counts by status and recent activity",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline()
		if err != nil {
			return err
		}
		defer p.Close()

		stats, err := p.store.GetStats()
		if err != nil {
			return err
		}

		ui := output.New()
		table := ui.Table([]string{"STAT", "VALUE"})

		rows := [][]string{
			{"total_reviews", fmt.Sprintf("%d", stats.Total)},
			{"pending", fmt.Sprintf("%d", stats.ByStatus[models.StatusPending])},
			{"analyzing", fmt.Sprintf("%d", stats.ByStatus[models.StatusAnalyzing])},
			{"completed", fmt.Sprintf("%d", stats.ByStatus[models.StatusCompleted])},
			{"failed", fmt.Sprintf("%d", stats.ByStatus[models.StatusFailed])},
			{"reviews_last_30_days", fmt.Sprintf("%d", stats.RecentMonth)},
			{"feedback_items", fmt.Sprintf("%d", stats.FeedbackRows)},
		}
		for _, row := range rows {
			if err := table.Append(row); err != nil {
				return err
			}
		}
		return table.Render()
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

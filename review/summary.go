package review

import (
	"fmt"
	"strings"

	"github.com/reviewkit/reviewkit/models"
)

// genericSummary is used when neither the model nor the issue counters
// produced anything to say.
const genericSummary = "Code analysis completed."

// BuildSummary concatenates the model's summary, if any, with template
// sentences keyed on the issue counters, and a congratulatory fallback when
// no critical or major issues exist.
func BuildSummary(aiReview *models.AIReview, metrics *models.Metrics) string {
	var parts []string

	if aiReview != nil && strings.TrimSpace(aiReview.Summary) != "" {
		parts = append(parts, strings.TrimSpace(aiReview.Summary))
	}

	if metrics != nil {
		if metrics.CriticalIssues > 0 {
			parts = append(parts, fmt.Sprintf("Found %d critical issue(s) that require immediate attention.", metrics.CriticalIssues))
		}
		if metrics.MajorIssues > 0 {
			parts = append(parts, fmt.Sprintf("Found %d major issue(s) that should be addressed.", metrics.MajorIssues))
		}
		if metrics.MinorIssues > 0 {
			parts = append(parts, fmt.Sprintf("Found %d minor issue(s) to consider.", metrics.MinorIssues))
		}
		if metrics.CriticalIssues == 0 && metrics.MajorIssues == 0 {
			parts = append(parts, "Great job! No critical or major issues were found.")
		}
	}

	if len(parts) == 0 {
		return genericSummary
	}
	return strings.Join(parts, " ")
}

package review

import (
	"github.com/samber/lo"

	"github.com/reviewkit/reviewkit/models"
)

// Documented metric defaults, used whenever a source of truth is absent.
const (
	defaultComplexityScore      = 7.0
	defaultMaintainabilityScore = 7.0
	defaultSecurityScore        = 8.0
	defaultPerformanceScore     = 7.0
)

// ComplexityBucketScore maps a cyclomatic complexity onto a quality score.
// This is a pure function and always overrides any model-suggested
// complexity score: the structural estimate is a hard signal, the model's
// opinion on complexity is not trusted.
func ComplexityBucketScore(cyclomatic int) float64 {
	switch {
	case cyclomatic <= 5:
		return 9.0
	case cyclomatic <= 10:
		return 7.0
	case cyclomatic <= 15:
		return 5.0
	default:
		return 3.0
	}
}

// SynthesizeMetrics merges model-reported quality metrics with the
// heuristically derived scores into one Metrics record. Model sub-scores are
// only trusted in structured mode.
func SynthesizeMetrics(aiReview *models.AIReview, static *models.StaticAnalysisResult) *models.Metrics {
	metrics := &models.Metrics{
		ComplexityScore:      models.Score(defaultComplexityScore),
		MaintainabilityScore: models.Score(defaultMaintainabilityScore),
		SecurityScore:        models.Score(defaultSecurityScore),
		PerformanceScore:     models.Score(defaultPerformanceScore),
	}

	if aiReview != nil && aiReview.StructuredAnalysis {
		if cm := aiReview.CodeMetrics; cm != nil {
			if cm.MaintainabilityScore != nil {
				metrics.MaintainabilityScore = cm.MaintainabilityScore
			}
			if cm.PerformanceScore != nil {
				metrics.PerformanceScore = cm.PerformanceScore
			}
			if cm.SecurityScore != nil {
				metrics.SecurityScore = cm.SecurityScore
			}
		}

		for _, issue := range aiReview.Issues {
			switch models.Severity(issue.Severity) {
			case models.SeverityCritical:
				metrics.CriticalIssues++
			case models.SeverityMajor:
				metrics.MajorIssues++
			default:
				metrics.MinorIssues++
			}
		}
		metrics.Suggestions = len(aiReview.Suggestions)
	}

	if static != nil {
		if static.Complexity.Status == models.StatusOK {
			metrics.ComplexityScore = models.Score(ComplexityBucketScore(static.Complexity.CyclomaticComplexity))
		}
		if static.Pylint.Status == models.StatusOK {
			metrics.PylintScore = models.Score(lintScore(static.Pylint))
		}
		metrics.SecurityVulnerabilities = len(static.Security)
	}

	return metrics
}

// lintScore derives a bounded score from the lint report: the default score
// minus a graded penalty per violation kind, floored at zero.
func lintScore(report models.LintReport) float64 {
	penalty := lo.SumBy(report.Violations, func(v models.LintViolation) float64 {
		switch v.Type {
		case "error", "fatal":
			return 1.0
		case "warning":
			return 0.5
		default: // convention, refactor, info
			return 0.1
		}
	})

	score := report.Score - penalty
	if score < 0 {
		return 0
	}
	return score
}

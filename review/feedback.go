package review

import (
	"github.com/reviewkit/reviewkit/models"
)

// NormalizeFeedback converts model issues/suggestions and static findings
// into one feedback list with a consistent severity/category vocabulary.
// Generation order is fixed: model issues, model suggestions, syntax errors,
// security findings. Presentation ordering is applied by the store on read,
// not here.
func NormalizeFeedback(aiReview *models.AIReview, static *models.StaticAnalysisResult) []models.FeedbackItem {
	var items []models.FeedbackItem

	if aiReview != nil && aiReview.StructuredAnalysis {
		for _, issue := range aiReview.Issues {
			severity := models.Severity(issue.Severity)
			if !severity.Valid() {
				severity = models.SeverityMinor
			}
			category := models.Category(issue.Category)
			if !category.Valid() {
				category = models.CategoryStyle
			}
			title := issue.Title
			if title == "" {
				title = "Code Issue"
			}

			items = append(items, models.FeedbackItem{
				Severity:    severity,
				Category:    category,
				Title:       title,
				Description: issue.Description,
				Suggestion:  issue.Suggestion,
				LineNumber:  issue.LineNumber,
				Confidence:  clampConfidence(issue.Confidence, 0.8),
			})
		}

		for _, suggestion := range aiReview.Suggestions {
			category := models.Category(suggestion.Category)
			if !category.Valid() {
				category = models.CategoryBestPractice
			}
			title := suggestion.Title
			if title == "" {
				title = "Improvement Suggestion"
			}

			items = append(items, models.FeedbackItem{
				Severity:    models.SeveritySuggestion,
				Category:    category,
				Title:       title,
				Description: suggestion.Description,
				Suggestion:  suggestion.Description,
				Confidence:  0.8,
			})
		}
	}

	if static != nil {
		for _, syntaxErr := range static.SyntaxErrors() {
			items = append(items, models.FeedbackItem{
				Severity:    models.SeverityCritical,
				Category:    models.CategoryBug,
				Title:       "Syntax Error",
				Description: syntaxErr.Message,
				LineNumber:  syntaxErr.Line,
				Confidence:  1.0,
			})
		}

		for _, finding := range static.Security {
			items = append(items, models.FeedbackItem{
				Severity:    models.SeverityMajor,
				Category:    models.CategorySecurity,
				Title:       "Security Concern",
				Description: finding.Message,
				LineNumber:  finding.Line,
				CodeSnippet: finding.Code,
				Confidence:  0.9,
			})
		}
	}

	return items
}

// clampConfidence bounds a confidence to [0,1], substituting the default for
// an absent (zero) value.
func clampConfidence(confidence, fallback float64) float64 {
	if confidence == 0 {
		return fallback
	}
	if confidence < 0 {
		return 0
	}
	if confidence > 1 {
		return 1
	}
	return confidence
}

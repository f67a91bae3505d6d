package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReview_StructuredResponse(t *testing.T) {
	response := `{
		"overall_quality_score": 8.5,
		"summary": "Solid code overall",
		"strengths": ["clear naming"],
		"issues": [
			{"severity": "major", "category": "security", "title": "Shell injection",
			 "description": "Command built from user input", "line_number": 12,
			 "suggestion": "Use an argument vector", "confidence": 0.9}
		],
		"suggestions": [
			{"category": "performance", "title": "Cache results", "description": "Memoize", "impact": "medium"}
		],
		"code_metrics": {"maintainability_score": 7.5, "security_score": 6.0}
	}`

	review := ParseReview(response)

	require.True(t, review.StructuredAnalysis)
	assert.Equal(t, 8.5, review.OverallQualityScore)
	assert.Equal(t, "Solid code overall", review.Summary)
	require.Len(t, review.Issues, 1)
	assert.Equal(t, "major", review.Issues[0].Severity)
	assert.Equal(t, 12, review.Issues[0].LineNumber)
	require.Len(t, review.Suggestions, 1)
	require.NotNil(t, review.CodeMetrics)
	require.NotNil(t, review.CodeMetrics.MaintainabilityScore)
	assert.Equal(t, 7.5, *review.CodeMetrics.MaintainabilityScore)
	assert.Nil(t, review.CodeMetrics.ReadabilityScore)
}

func TestParseReview_FencedResponse(t *testing.T) {
	response := "```json\n{\"summary\": \"ok\", \"issues\": []}\n```"

	review := ParseReview(response)

	assert.True(t, review.StructuredAnalysis)
	assert.Equal(t, "ok", review.Summary)
}

func TestParseReview_ProseDegradesToRawSummary(t *testing.T) {
	prose := "The code looks fine to me, although I would rename a few things."

	review := ParseReview(prose)

	// The degraded flag is the single signal for downstream consumers; the
	// raw text is preserved verbatim.
	assert.False(t, review.StructuredAnalysis)
	assert.Equal(t, prose, review.Summary)
	assert.Empty(t, review.Issues)
}

func TestParseReview_SchemaViolationDegrades(t *testing.T) {
	// Valid JSON but missing the required summary field.
	response := `{"overall_quality_score": 5.0}`

	review := ParseReview(response)

	assert.False(t, review.StructuredAnalysis)
	assert.Equal(t, response, review.Summary)
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no_fence", `{"a": 1}`, `{"a": 1}`},
		{"plain_fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"json_fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding_space", "  {\"a\": 1}  ", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripFences(tt.in))
		})
	}
}

func TestBuildPrompt_EmbedsCodeAndLanguage(t *testing.T) {
	prompt := buildPrompt("print('hi')", "python")

	assert.Contains(t, prompt, "```python")
	assert.Contains(t, prompt, "print('hi')")
	assert.Contains(t, prompt, "overall_quality_score")
	assert.Contains(t, prompt, "code_metrics")
}

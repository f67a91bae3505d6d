package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewkit/reviewkit/models"
)

type stubLinter struct {
	report models.LintReport
	panics bool
}

func (s *stubLinter) Name() string { return "stub" }

func (s *stubLinter) Lint(ctx context.Context, code, language string) models.LintReport {
	if s.panics {
		panic("linter exploded")
	}
	return s.report
}

func TestAggregator_ComposesSubResults(t *testing.T) {
	linter := &stubLinter{report: models.LintReport{Status: models.StatusOK, Score: 10.0}}
	aggregator := NewAggregator(linter)

	code := "def f():\n    eval(x)\n"
	result := aggregator.Run(context.Background(), code, "python")

	require.NotNil(t, result)
	assert.Equal(t, models.StatusOK, result.SyntaxCheck.Status)
	assert.Equal(t, models.StatusOK, result.Complexity.Status)
	assert.Equal(t, models.StatusOK, result.Pylint.Status)
	require.Len(t, result.Security, 1)
	assert.Equal(t, 2, result.Security[0].Line)
}

func TestAggregator_LanguageGating(t *testing.T) {
	linter := &stubLinter{report: models.LintReport{Status: models.StatusOK}}
	aggregator := NewAggregator(linter)

	result := aggregator.Run(context.Background(), "eval(something)", "java")

	// Language-specific analyzers degrade, the security scan still runs.
	assert.Equal(t, models.StatusDegraded, result.SyntaxCheck.Status)
	assert.Equal(t, models.StatusDegraded, result.Complexity.Status)
	require.Len(t, result.Security, 1)
}

func TestAggregator_LinterPanicIsContained(t *testing.T) {
	aggregator := NewAggregator(&stubLinter{panics: true})

	result := aggregator.Run(context.Background(), "x = 1\n", "python")

	// The panicking sub-analyzer fails closed; the others still report.
	assert.Equal(t, models.StatusErrored, result.Pylint.Status)
	assert.NotEmpty(t, result.Pylint.Error)
	assert.Equal(t, models.StatusOK, result.SyntaxCheck.Status)
	assert.Equal(t, models.StatusOK, result.Complexity.Status)
}

func TestStaticAnalysisResult_SyntaxErrors(t *testing.T) {
	result := &models.StaticAnalysisResult{
		SyntaxCheck: models.SyntaxCheck{
			Status: models.StatusOK,
			Valid:  false,
			Errors: []models.SyntaxError{{Line: 3, Message: "invalid syntax"}},
		},
	}
	assert.Len(t, result.SyntaxErrors(), 1)

	valid := &models.StaticAnalysisResult{
		SyntaxCheck: models.SyntaxCheck{Status: models.StatusOK, Valid: true},
	}
	assert.Empty(t, valid.SyntaxErrors())

	degraded := &models.StaticAnalysisResult{
		SyntaxCheck: models.SyntaxCheck{Status: models.StatusDegraded},
	}
	assert.Empty(t, degraded.SyntaxErrors())
}

package pylint

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reviewkit/reviewkit/models"
)

func testConfig() models.LinterConfig {
	return models.LinterConfig{
		Binary:       "pylint",
		DefaultScore: 10.0,
		Timeout:      10 * time.Second,
	}
}

func TestPylint_UnsupportedLanguage(t *testing.T) {
	linter := New(testConfig())

	report := linter.Lint(context.Background(), "package main", "go")

	assert.Equal(t, models.StatusDegraded, report.Status)
	assert.Equal(t, 10.0, report.Score)
	assert.NotEmpty(t, report.Error)
}

func TestPylint_MissingBinaryDegrades(t *testing.T) {
	config := testConfig()
	config.Binary = "definitely-not-a-linter-binary"
	linter := New(config)

	report := linter.Lint(context.Background(), "x = 1\n", "python")

	// A missing linter is advisory output lost, never a pipeline failure.
	assert.Equal(t, models.StatusDegraded, report.Status)
	assert.Equal(t, 10.0, report.Score)
	assert.NotEmpty(t, report.Error)
}

func TestPylint_ParseStructuredOutput(t *testing.T) {
	linter := New(testConfig())

	output := `[
		{"type": "convention", "module": "tmp", "line": 1, "column": 0,
		 "message": "Missing module docstring", "symbol": "missing-module-docstring",
		 "message-id": "C0114"},
		{"type": "error", "module": "tmp", "line": 4, "column": 2,
		 "message": "Undefined variable 'y'", "symbol": "undefined-variable",
		 "message-id": "E0602"}
	]`

	report := linter.parseOutput([]byte(output))

	assert.Equal(t, models.StatusOK, report.Status)
	require.Len(t, report.Violations, 2)
	assert.Equal(t, "convention", report.Violations[0].Type)
	assert.Equal(t, 1, report.Violations[0].Line)
	assert.Equal(t, "undefined-variable", report.Violations[1].Symbol)
	assert.Empty(t, report.RawOutput)
}

func TestPylint_UnparseableOutputDegrades(t *testing.T) {
	linter := New(testConfig())

	raw := "Traceback (most recent call last):\n  something went wrong\n"
	report := linter.parseOutput([]byte(raw))

	assert.Equal(t, models.StatusDegraded, report.Status)
	assert.Equal(t, 10.0, report.Score)
	assert.Empty(t, report.Violations)
	assert.Equal(t, raw, report.RawOutput)
}

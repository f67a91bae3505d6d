// Package pylint adapts the external pylint process to the analysis
// pipeline. The linter is treated as an advisory black box: a crash, missing
// binary, timeout or unparseable output degrades the report, it never fails
// the pipeline.
package pylint

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/flanksource/commons/logger"

	"github.com/reviewkit/reviewkit/languages"
	"github.com/reviewkit/reviewkit/models"
)

// pylintMessage is the raw shape of one entry in pylint's JSON output.
type pylintMessage struct {
	Type      string `json:"type"`
	Module    string `json:"module"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Message   string `json:"message"`
	Symbol    string `json:"symbol"`
	MessageID string `json:"message-id"`
}

// Pylint invokes the configured pylint binary against a transient
// materialization of the submission.
type Pylint struct {
	config models.LinterConfig
}

// New creates a pylint adapter with the given configuration.
func New(config models.LinterConfig) *Pylint {
	return &Pylint{config: config}
}

// Name returns the linter name.
func (p *Pylint) Name() string {
	return p.config.Binary
}

// Lint materializes the code to a temporary file, runs pylint with JSON
// output, and normalizes the result. The temporary file is removed on every
// exit path. A non-zero exit from pylint is expected when violations are
// found and is not treated as an error.
func (p *Pylint) Lint(ctx context.Context, code, language string) models.LintReport {
	report := models.LintReport{Score: p.config.DefaultScore}

	if !languages.IsLintable(language) {
		report.Status = models.StatusDegraded
		report.Error = fmt.Sprintf("linting not supported for language %q", language)
		return report
	}

	tmpFile, err := os.CreateTemp("", "reviewkit-*.py")
	if err != nil {
		report.Status = models.StatusErrored
		report.Error = fmt.Sprintf("failed to create temp file: %v", err)
		return report
	}
	defer os.Remove(tmpFile.Name())

	if _, err := tmpFile.WriteString(code); err != nil {
		tmpFile.Close()
		report.Status = models.StatusErrored
		report.Error = fmt.Sprintf("failed to write temp file: %v", err)
		return report
	}
	if err := tmpFile.Close(); err != nil {
		report.Status = models.StatusErrored
		report.Error = fmt.Sprintf("failed to close temp file: %v", err)
		return report
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	args := append([]string{tmpFile.Name(), "--output-format=json"}, p.config.Args...)
	cmd := exec.CommandContext(ctx, p.config.Binary, args...)

	logger.Debugf("Executing: %s %s", p.config.Binary, strings.Join(args, " "))

	output, err := cmd.CombinedOutput()
	if err != nil {
		// Pylint exits non-zero whenever it reports messages. With output
		// present that is advisory, not a failure.
		if _, ok := err.(*exec.ExitError); !ok || len(output) == 0 {
			logger.Warnf("pylint execution failed: %v", err)
			report.Status = models.StatusDegraded
			report.Error = fmt.Sprintf("linter execution failed: %v", err)
			report.RawOutput = string(output)
			return report
		}
	}

	return p.parseOutput(output)
}

// parseOutput normalizes pylint's JSON output, degrading to the raw text
// when it cannot be parsed as structured data.
func (p *Pylint) parseOutput(output []byte) models.LintReport {
	report := models.LintReport{
		Status: models.StatusOK,
		Score:  p.config.DefaultScore,
	}

	var messages []pylintMessage
	if err := json.Unmarshal(output, &messages); err != nil {
		logger.Debugf("Failed to parse pylint JSON output: %v", err)
		report.Status = models.StatusDegraded
		report.RawOutput = string(output)
		return report
	}

	for _, msg := range messages {
		report.Violations = append(report.Violations, models.LintViolation{
			Type:      msg.Type,
			Line:      msg.Line,
			Column:    msg.Column,
			Message:   msg.Message,
			Symbol:    msg.Symbol,
			MessageID: msg.MessageID,
		})
	}

	return report
}

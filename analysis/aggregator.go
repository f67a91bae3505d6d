package analysis

import (
	"context"
	"fmt"

	"github.com/flanksource/commons/logger"

	"github.com/reviewkit/reviewkit/models"
)

// Linter is the external-linter adapter consumed by the aggregator. The
// returned report carries its own status; implementations never fail the
// pipeline.
type Linter interface {
	Name() string
	Lint(ctx context.Context, code, language string) models.LintReport
}

// Aggregator composes the sub-analyzers into one StaticAnalysisResult. It
// fails closed at the result-object level: a sub-analyzer panic or error is
// recorded on that sub-result and aggregation continues with whatever
// sub-results exist.
type Aggregator struct {
	syntax     *SyntaxAnalyzer
	complexity *ComplexityEstimator
	security   *SecurityScanner
	linter     Linter
}

// NewAggregator creates an aggregator over the given linter adapter.
func NewAggregator(linter Linter) *Aggregator {
	return &Aggregator{
		syntax:     NewSyntaxAnalyzer(),
		complexity: NewComplexityEstimator(),
		security:   NewSecurityScanner(),
		linter:     linter,
	}
}

// Run executes all sub-analyzers sequentially. Language-specific analyzers
// degrade on unsupported languages; the security scan runs unconditionally.
func (a *Aggregator) Run(ctx context.Context, code, language string) *models.StaticAnalysisResult {
	result := &models.StaticAnalysisResult{}

	runGuarded("syntax", func() {
		result.SyntaxCheck = a.syntax.Check(ctx, code, language)
	}, func(reason string) {
		result.SyntaxCheck = models.SyntaxCheck{Status: models.StatusErrored, Error: reason}
	})

	runGuarded("lint", func() {
		result.Pylint = a.linter.Lint(ctx, code, language)
	}, func(reason string) {
		result.Pylint = models.LintReport{Status: models.StatusErrored, Error: reason}
	})

	runGuarded("complexity", func() {
		result.Complexity = a.complexity.Estimate(ctx, code, language)
	}, func(reason string) {
		result.Complexity = models.ComplexityInfo{Status: models.StatusErrored, Error: reason}
	})

	runGuarded("security", func() {
		result.Security = a.security.Scan(code)
	}, func(reason string) {
		logger.Warnf("security scan failed: %s", reason)
		result.Security = nil
	})

	return result
}

// runGuarded runs one sub-analyzer behind a recover barrier so that a panic
// in a parser binding is downgraded to a failed sub-result.
func runGuarded(name string, fn func(), onPanic func(reason string)) {
	defer func() {
		if r := recover(); r != nil {
			reason := fmt.Sprintf("%s analyzer panicked: %v", name, r)
			logger.Errorf(reason)
			onPanic(reason)
		}
	}()
	fn()
}

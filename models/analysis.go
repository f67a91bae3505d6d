package models

// ResultStatus tags a sub-analyzer result. Analyzers never return raw errors
// past the aggregator; a failure is folded into the result as StatusFailed
// with the reason in Error, and a result that could not be fully produced
// (e.g. unsupported language) is StatusDegraded.
type ResultStatus string

const (
	StatusOK       ResultStatus = "ok"
	StatusDegraded ResultStatus = "degraded"
	StatusErrored  ResultStatus = "failed"
)

// SyntaxError is a single parse error with its 1-based line number.
type SyntaxError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// SyntaxCheck is the result of the syntax/structure analyzer. Valid is only
// meaningful when Status is ok; a degraded check means validity is unknown.
type SyntaxCheck struct {
	Status    ResultStatus  `json:"status"`
	Valid     bool          `json:"valid"`
	Errors    []SyntaxError `json:"errors"`
	Functions int           `json:"functions"`
	Classes   int           `json:"classes"`
	Error     string        `json:"error,omitempty"`
}

// ComplexityInfo is the whole-submission structural complexity estimate.
// CyclomaticComplexity starts at 1 and increments once per branching,
// looping or exception-handling construct.
type ComplexityInfo struct {
	Status               ResultStatus `json:"status"`
	Functions            int          `json:"functions"`
	Classes              int          `json:"classes"`
	Lines                int          `json:"lines"`
	MaxNestingDepth      int          `json:"max_nesting_depth"`
	CyclomaticComplexity int          `json:"cyclomatic_complexity"`
	Error                string       `json:"error,omitempty"`
}

// SecurityFinding is one (line, rule) match from the heuristic scanner.
type SecurityFinding struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// LintViolation is one normalized message from the external linter.
type LintViolation struct {
	Type      string `json:"type"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Message   string `json:"message"`
	Symbol    string `json:"symbol,omitempty"`
	MessageID string `json:"message-id,omitempty"`
}

// LintReport is the normalized output of the external linter. When the
// linter's output cannot be parsed the report degrades to the default score
// with the captured text preserved in RawOutput.
type LintReport struct {
	Status     ResultStatus    `json:"status"`
	Score      float64         `json:"score"`
	Violations []LintViolation `json:"violations"`
	RawOutput  string          `json:"raw_output,omitempty"`
	Error      string          `json:"error,omitempty"`
}

// StaticAnalysisResult composes all analyzer-side checks for one submission.
type StaticAnalysisResult struct {
	SyntaxCheck SyntaxCheck       `json:"syntax_check"`
	Pylint      LintReport        `json:"pylint"`
	Complexity  ComplexityInfo    `json:"complexity"`
	Security    []SecurityFinding `json:"security"`
}

// SyntaxErrors returns the parse errors, empty unless the check ran and the
// code was invalid.
func (r *StaticAnalysisResult) SyntaxErrors() []SyntaxError {
	if r == nil || r.SyntaxCheck.Status != StatusOK || r.SyntaxCheck.Valid {
		return nil
	}
	return r.SyntaxCheck.Errors
}

// AIIssue is a single issue reported by the model.
type AIIssue struct {
	Severity    string  `json:"severity"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	LineNumber  int     `json:"line_number,omitempty"`
	Suggestion  string  `json:"suggestion,omitempty"`
	Confidence  float64 `json:"confidence,omitempty"`
}

// AISuggestion is a non-blocking improvement proposed by the model.
type AISuggestion struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact,omitempty"`
}

// AICodeMetrics are the model-reported sub-scores.
type AICodeMetrics struct {
	ReadabilityScore     *float64 `json:"readability_score,omitempty"`
	MaintainabilityScore *float64 `json:"maintainability_score,omitempty"`
	PerformanceScore     *float64 `json:"performance_score,omitempty"`
	SecurityScore        *float64 `json:"security_score,omitempty"`
}

// AIReview is the structured review returned by the external model. When the
// model does not honor the JSON contract the response is wrapped verbatim in
// Summary with StructuredAnalysis false, so downstream consumers detect
// degraded mode from the single flag rather than guessing from shape.
type AIReview struct {
	OverallQualityScore float64        `json:"overall_quality_score,omitempty"`
	Summary             string         `json:"summary"`
	Strengths           []string       `json:"strengths,omitempty"`
	Issues              []AIIssue      `json:"issues,omitempty"`
	Suggestions         []AISuggestion `json:"suggestions,omitempty"`
	CodeMetrics         *AICodeMetrics `json:"code_metrics,omitempty"`

	StructuredAnalysis bool `json:"structured_analysis"`
}

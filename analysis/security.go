package analysis

import (
	"regexp"
	"strings"

	"github.com/reviewkit/reviewkit/models"
)

// securityRule pairs a compiled pattern with its finding message.
type securityRule struct {
	pattern *regexp.Regexp
	message string
}

// securityRules is the fixed, ordered rule list. Order matters: findings on
// the same line are emitted in rule order.
var securityRules = []securityRule{
	{regexp.MustCompile(`eval\s*\(`), "Use of eval() can be dangerous"},
	{regexp.MustCompile(`exec\s*\(`), "Use of exec() can be dangerous"},
	{regexp.MustCompile(`__import__\s*\(`), "Dynamic imports should be reviewed"},
	{regexp.MustCompile(`input\s*\(.*\)`), "input() without validation can be risky"},
	{regexp.MustCompile(`pickle\.loads?\s*\(`), "Pickle can execute arbitrary code"},
	{regexp.MustCompile(`subprocess\.(call|run|Popen)`), "Subprocess calls should be reviewed"},
	{regexp.MustCompile(`os\.system\s*\(`), "os.system() can be dangerous"},
}

// SecurityScanner flags dangerous constructs with a line-oriented pattern
// match. It is stateless and deterministic: every line is checked against
// every rule, and a line may produce multiple findings.
type SecurityScanner struct{}

// NewSecurityScanner creates a security scanner.
func NewSecurityScanner() *SecurityScanner {
	return &SecurityScanner{}
}

// Scan returns one finding per (line, rule) match with the 1-based line
// number and the trimmed matched line as evidence.
func (s *SecurityScanner) Scan(code string) []models.SecurityFinding {
	var findings []models.SecurityFinding

	for lineIdx, line := range strings.Split(code, "\n") {
		for _, rule := range securityRules {
			if rule.pattern.MatchString(line) {
				findings = append(findings, models.SecurityFinding{
					Line:    lineIdx + 1,
					Message: rule.message,
					Code:    strings.TrimSpace(line),
				})
			}
		}
	}

	return findings
}

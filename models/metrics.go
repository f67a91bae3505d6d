package models

import "time"

// Metrics holds the synthesized quality metrics for one review. Score fields
// are bounded to [0,10]; a nil score means "unknown", which is distinct from
// zero. Counters are non-negative.
type Metrics struct {
	ID       uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID string `json:"-" gorm:"column:review_id;not null;uniqueIndex"`

	ComplexityScore      *float64 `json:"complexity_score,omitempty" gorm:"column:complexity_score"`
	MaintainabilityScore *float64 `json:"maintainability_score,omitempty" gorm:"column:maintainability_score"`
	SecurityScore        *float64 `json:"security_score,omitempty" gorm:"column:security_score"`
	PerformanceScore     *float64 `json:"performance_score,omitempty" gorm:"column:performance_score"`
	PylintScore          *float64 `json:"pylint_score,omitempty" gorm:"column:pylint_score"`

	CriticalIssues          int `json:"critical_issues" gorm:"column:critical_issues;default:0"`
	MajorIssues             int `json:"major_issues" gorm:"column:major_issues;default:0"`
	MinorIssues             int `json:"minor_issues" gorm:"column:minor_issues;default:0"`
	Suggestions             int `json:"suggestions" gorm:"column:suggestions;default:0"`
	SecurityVulnerabilities int `json:"security_vulnerabilities" gorm:"column:security_vulnerabilities;default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName specifies the table name for Metrics.
func (Metrics) TableName() string {
	return "analysis_metrics"
}

// Score returns a pointer to a bounded score value.
func Score(v float64) *float64 {
	return &v
}

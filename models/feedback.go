package models

import "time"

// Severity classifies how urgent a feedback item is.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityMajor      Severity = "major"
	SeverityMinor      Severity = "minor"
	SeveritySuggestion Severity = "suggestion"
)

// Rank returns the presentation rank of a severity, lower is more urgent.
// Unknown severities sort after suggestions.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityMajor:
		return 1
	case SeverityMinor:
		return 2
	case SeveritySuggestion:
		return 3
	default:
		return 4
	}
}

// Valid reports whether s is one of the known severities.
func (s Severity) Valid() bool {
	return s.Rank() < 4
}

// Category classifies what a feedback item is about.
type Category string

const (
	CategoryBug           Category = "bug"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
	CategoryStyle         Category = "style"
	CategoryStructure     Category = "structure"
	CategoryBestPractice  Category = "best_practice"
	CategoryDocumentation Category = "documentation"
)

var knownCategories = map[Category]struct{}{
	CategoryBug: {}, CategorySecurity: {}, CategoryPerformance: {},
	CategoryStyle: {}, CategoryStructure: {}, CategoryBestPractice: {},
	CategoryDocumentation: {},
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := knownCategories[c]
	return ok
}

// FeedbackItem is one normalized, severity-tagged finding or suggestion
// attached to a review. Items are replaced wholesale on every analysis run.
type FeedbackItem struct {
	ID       uint     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID string   `json:"-" gorm:"column:review_id;not null;index"`
	Severity Severity `json:"severity" gorm:"column:severity;not null"`
	Category Category `json:"category" gorm:"column:category;not null"`

	Title       string `json:"title" gorm:"column:title;not null"`
	Description string `json:"description" gorm:"column:description"`
	Suggestion  string `json:"suggestion,omitempty" gorm:"column:suggestion"`

	LineNumber   int    `json:"line_number,omitempty" gorm:"column:line_number"`
	ColumnNumber int    `json:"column_number,omitempty" gorm:"column:column_number"`
	CodeSnippet  string `json:"code_snippet,omitempty" gorm:"column:code_snippet"`

	// Confidence is in [0,1].
	Confidence float64 `json:"confidence" gorm:"column:confidence_score"`

	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName specifies the table name for FeedbackItem.
func (FeedbackItem) TableName() string {
	return "review_feedback"
}

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ReviewStatus is the lifecycle state of a review record.
type ReviewStatus string

const (
	StatusPending   ReviewStatus = "pending"
	StatusAnalyzing ReviewStatus = "analyzing"
	StatusCompleted ReviewStatus = "completed"
	StatusFailed    ReviewStatus = "failed"
)

// IsTerminal reports whether the status is a resting state. Terminal does not
// mean immutable: completed and failed records may be re-analyzed.
func (s ReviewStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// SubmissionKind distinguishes uploaded files from pasted text.
type SubmissionKind string

const (
	SubmissionFile SubmissionKind = "file"
	SubmissionText SubmissionKind = "text"
)

// Submission is the raw code artifact under review. It is written once at
// creation time and read-only afterwards; Size and LineCount are derived from
// Content exactly once.
type Submission struct {
	Kind             SubmissionKind `json:"kind" gorm:"column:submission_kind;not null" yaml:"kind"`
	OriginalFilename string         `json:"original_filename,omitempty" gorm:"column:original_filename" yaml:"original_filename,omitempty"`
	Language         string         `json:"language" gorm:"column:language;not null;default:python" yaml:"language"`
	Content          string         `json:"-" gorm:"column:code_content" yaml:"-"`
	Size             int            `json:"size" gorm:"column:file_size" yaml:"size"`
	LineCount        int            `json:"line_count" gorm:"column:lines_of_code" yaml:"line_count"`
}

// NewSubmission builds a submission and computes its derived fields.
func NewSubmission(kind SubmissionKind, filename, language, content string) Submission {
	return Submission{
		Kind:             kind,
		OriginalFilename: filename,
		Language:         strings.ToLower(strings.TrimSpace(language)),
		Content:          content,
		Size:             len(content),
		LineCount:        countLines(content),
	}
}

func countLines(content string) int {
	if content == "" {
		return 0
	}
	return len(strings.Split(content, "\n"))
}

// ReviewRecord tracks one analysis attempt's lifecycle and results.
//
// Invariants enforced by the lifecycle controller:
//   - status=completed implies CompletedAt set and ErrorMessage empty
//   - status=failed implies ErrorMessage set
//   - status=analyzing always transitions on pipeline completion or failure
type ReviewRecord struct {
	ID         string       `json:"id" gorm:"primaryKey;column:id"`
	Submission Submission   `json:"submission" gorm:"embedded"`
	Status     ReviewStatus `json:"status" gorm:"column:status;not null;default:pending;index"`

	AIAnalysis     *AIReview             `json:"ai_analysis,omitempty" gorm:"column:ai_analysis;serializer:json"`
	StaticAnalysis *StaticAnalysisResult `json:"static_analysis,omitempty" gorm:"column:static_analysis;serializer:json"`
	Summary        string                `json:"summary,omitempty" gorm:"column:analysis_summary"`
	ErrorMessage   string                `json:"error_message,omitempty" gorm:"column:error_message"`

	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty" gorm:"column:analysis_completed_at"`
}

// TableName specifies the table name for ReviewRecord.
func (ReviewRecord) TableName() string {
	return "review_records"
}

// NewReviewRecord creates a pending record for a submission.
func NewReviewRecord(sub Submission) *ReviewRecord {
	return &ReviewRecord{
		ID:         uuid.NewString(),
		Submission: sub,
		Status:     StatusPending,
	}
}

// ShortID returns the first segment of the record's UUID for display.
func (r *ReviewRecord) ShortID() string {
	if i := strings.IndexByte(r.ID, '-'); i > 0 {
		return r.ID[:i]
	}
	return r.ID
}

package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/reviewkit/reviewkit/models"
)

var (
	// ErrNotFound is returned when a review record does not exist.
	ErrNotFound = errors.New("review record not found")

	// ErrAlreadyAnalyzing is returned when an analyzing-state entry is
	// attempted on a record that is already analyzing. This signals a
	// duplicate trigger and is not retried automatically.
	ErrAlreadyAnalyzing = errors.New("analysis already in progress")
)

// feedbackOrder is the presentation ordering applied on read: severity rank
// first, recency second.
const feedbackOrder = `CASE severity
		WHEN 'critical' THEN 0
		WHEN 'major' THEN 1
		WHEN 'minor' THEN 2
		WHEN 'suggestion' THEN 3
		ELSE 4 END, created_at DESC, id DESC`

// Store provides CRUD for review records and the atomic completion commit.
type Store struct {
	db *gorm.DB
}

// NewStore wraps an opened database.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CreateReview persists a new record.
func (s *Store) CreateReview(record *models.ReviewRecord) error {
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to create review record: %w", err)
	}
	return nil
}

// GetReview loads one record by id.
func (s *Store) GetReview(id string) (*models.ReviewRecord, error) {
	var record models.ReviewRecord
	if err := s.db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load review record: %w", err)
	}
	return &record, nil
}

// ListReviews returns records, optionally filtered by status, newest first.
func (s *Store) ListReviews(status models.ReviewStatus, limit int) ([]models.ReviewRecord, error) {
	query := s.db.Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var records []models.ReviewRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list review records: %w", err)
	}
	return records, nil
}

// BeginAnalysis transitions a record into analyzing. The transition is a
// single conditional UPDATE so that concurrent triggers on the same id race
// on the row, not on a read-modify-write: exactly one wins, the rest get
// ErrAlreadyAnalyzing. The state change is durable before any analysis work
// starts, so a crash mid-run leaves an observably stuck analyzing record.
func (s *Store) BeginAnalysis(id string) error {
	result := s.db.Model(&models.ReviewRecord{}).
		Where("id = ? AND status <> ?", id, models.StatusAnalyzing).
		Updates(map[string]any{
			"status":     models.StatusAnalyzing,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to enter analyzing state: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		if _, err := s.GetReview(id); err != nil {
			return err
		}
		return ErrAlreadyAnalyzing
	}
	return nil
}

// FailAnalysis records a pipeline failure on the record.
func (s *Store) FailAnalysis(id, message string) error {
	result := s.db.Model(&models.ReviewRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":        models.StatusFailed,
			"error_message": message,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to record analysis failure: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CompleteAnalysis commits a successful run as one atomic unit: the record's
// result fields and completed status, a full replacement of its metrics row
// and a full replacement of its feedback set. Partial writes are never
// observable; any error rolls the whole commit back.
func (s *Store) CompleteAnalysis(
	id string,
	static *models.StaticAnalysisResult,
	aiReview *models.AIReview,
	summary string,
	metrics *models.Metrics,
	items []models.FeedbackItem,
) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var record models.ReviewRecord
		if err := tx.First(&record, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now()
		record.Status = models.StatusCompleted
		record.StaticAnalysis = static
		record.AIAnalysis = aiReview
		record.Summary = summary
		record.ErrorMessage = ""
		record.CompletedAt = &now
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("failed to save review record: %w", err)
		}

		if err := tx.Where("review_id = ?", id).Delete(&models.Metrics{}).Error; err != nil {
			return fmt.Errorf("failed to clear metrics: %w", err)
		}
		metrics.ID = 0
		metrics.ReviewID = id
		if err := tx.Create(metrics).Error; err != nil {
			return fmt.Errorf("failed to save metrics: %w", err)
		}

		if err := tx.Where("review_id = ?", id).Delete(&models.FeedbackItem{}).Error; err != nil {
			return fmt.Errorf("failed to clear feedback: %w", err)
		}
		for i := range items {
			items[i].ID = 0
			items[i].ReviewID = id
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return fmt.Errorf("failed to save feedback: %w", err)
			}
		}

		return nil
	})
}

// FeedbackForReview returns the stored feedback set in presentation order:
// severity rank descending in urgency, most recent first within a rank.
func (s *Store) FeedbackForReview(id string) ([]models.FeedbackItem, error) {
	var items []models.FeedbackItem
	err := s.db.Where("review_id = ?", id).
		Order(feedbackOrder).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	return items, nil
}

// MetricsForReview returns the metrics row for a record, or ErrNotFound.
func (s *Store) MetricsForReview(id string) (*models.Metrics, error) {
	var metrics models.Metrics
	if err := s.db.First(&metrics, "review_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load metrics: %w", err)
	}
	return &metrics, nil
}

// Stats summarizes the store for the stats command.
type Stats struct {
	Total        int64                        `json:"total"`
	ByStatus     map[models.ReviewStatus]int64 `json:"by_status"`
	RecentMonth  int64                        `json:"reviews_last_30_days"`
	FeedbackRows int64                        `json:"feedback_items"`
}

// GetStats counts records by status plus recent activity.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{ByStatus: make(map[models.ReviewStatus]int64)}

	if err := s.db.Model(&models.ReviewRecord{}).Count(&stats.Total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}

	type statusCount struct {
		Status models.ReviewStatus
		N      int64
	}
	var counts []statusCount
	err := s.db.Model(&models.ReviewRecord{}).
		Select("status, count(*) as n").
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews by status: %w", err)
	}
	for _, c := range counts {
		stats.ByStatus[c.Status] = c.N
	}

	cutoff := time.Now().AddDate(0, 0, -30)
	err = s.db.Model(&models.ReviewRecord{}).
		Where("created_at >= ?", cutoff).
		Count(&stats.RecentMonth).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count recent reviews: %w", err)
	}

	if err := s.db.Model(&models.FeedbackItem{}).Count(&stats.FeedbackRows).Error; err != nil {
		return nil, fmt.Errorf("failed to count feedback items: %w", err)
	}

	return stats, nil
}

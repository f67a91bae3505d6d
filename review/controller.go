// Package review reconciles analyzer outputs into canonical metrics,
// feedback and summaries, and owns the review lifecycle state machine.
package review

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/flanksource/commons/logger"
	"golang.org/x/time/rate"

	"github.com/reviewkit/reviewkit/analysis"
	"github.com/reviewkit/reviewkit/internal/db"
	"github.com/reviewkit/reviewkit/models"
)

// ErrEmptySubmission is returned when a record has no readable source
// content; the run is failed before any analyzer starts.
var ErrEmptySubmission = errors.New("submission has no readable source content")

// AIReviewer is the external-model client consumed by the controller. A
// returned error is a pipeline-level failure; degraded (unstructured)
// reviews are returned as values, not errors.
type AIReviewer interface {
	Review(ctx context.Context, code, language string) (*models.AIReview, error)
}

// Controller drives submissions through pending, analyzing and the terminal
// states. Every run ends in completed or failed before Analyze returns;
// nothing is fire-and-forget.
type Controller struct {
	store    *db.Store
	static   *analysis.Aggregator
	reviewer AIReviewer
	limiter  *rate.Limiter
}

// NewController wires the pipeline. ratePerMinute paces model calls during
// bulk analysis; zero disables pacing.
func NewController(store *db.Store, static *analysis.Aggregator, reviewer AIReviewer, ratePerMinute int) *Controller {
	var limiter *rate.Limiter
	if ratePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(ratePerMinute)/60.0), 1)
	}
	return &Controller{
		store:    store,
		static:   static,
		reviewer: reviewer,
		limiter:  limiter,
	}
}

// Analyze runs the full pipeline for one record. Entry into analyzing is a
// store-level compare-and-swap, persisted before any analyzer runs; a
// duplicate trigger gets db.ErrAlreadyAnalyzing. Any pipeline error
// transitions the record to failed with the error recorded, and is also
// returned to the caller.
//
// Syntax errors in the submission are deliberately non-fatal: the run
// completes and the error surfaces as a critical feedback item.
func (c *Controller) Analyze(ctx context.Context, id string) (*models.ReviewRecord, error) {
	if err := c.store.BeginAnalysis(id); err != nil {
		return nil, err
	}

	record, err := c.store.GetReview(id)
	if err != nil {
		return nil, c.fail(id, fmt.Errorf("failed to load submission: %w", err))
	}

	content := record.Submission.Content
	if strings.TrimSpace(content) == "" {
		return nil, c.fail(id, ErrEmptySubmission)
	}

	language := record.Submission.Language
	logger.Infof("analyzing review %s (%s, %d lines)", record.ShortID(), language, record.Submission.LineCount)

	static := c.static.Run(ctx, content, language)

	aiReview, err := c.reviewer.Review(ctx, content, language)
	if err != nil {
		return nil, c.fail(id, fmt.Errorf("AI review failed: %w", err))
	}

	metrics := SynthesizeMetrics(aiReview, static)
	items := NormalizeFeedback(aiReview, static)
	summary := BuildSummary(aiReview, metrics)

	if err := c.store.CompleteAnalysis(id, static, aiReview, summary, metrics, items); err != nil {
		return nil, c.fail(id, fmt.Errorf("failed to persist analysis results: %w", err))
	}

	logger.Infof("review %s completed: %d feedback item(s)", record.ShortID(), len(items))
	return c.store.GetReview(id)
}

// fail records the pipeline failure on the record and returns the original
// error. This is the single point where an analysis crash becomes a
// queryable fact.
func (c *Controller) fail(id string, cause error) error {
	logger.Errorf("analysis of review %s failed: %v", id, cause)
	if err := c.store.FailAnalysis(id, cause.Error()); err != nil {
		logger.Errorf("failed to record failure for review %s: %v", id, err)
	}
	return cause
}

// BatchFailure pairs a record id with the error that stopped its run.
type BatchFailure struct {
	ID  string
	Err error
}

// BatchResult summarizes a bulk analysis run.
type BatchResult struct {
	Completed []string
	Failed    []BatchFailure
}

// AnalyzeBatch runs the pipeline for each record sequentially: each item's
// full pipeline runs to completion before the next starts, paced by the
// configured rate limit on model calls. Per-record failures are collected,
// not fatal to the batch.
func (c *Controller) AnalyzeBatch(ctx context.Context, ids []string) (*BatchResult, error) {
	result := &BatchResult{}

	for _, id := range ids {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return result, fmt.Errorf("bulk analysis interrupted: %w", err)
			}
		}

		if _, err := c.Analyze(ctx, id); err != nil {
			result.Failed = append(result.Failed, BatchFailure{ID: id, Err: err})
			continue
		}
		result.Completed = append(result.Completed, id)
	}

	return result, nil
}

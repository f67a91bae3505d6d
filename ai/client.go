// Package ai implements the external-model review client. It owns the
// prompt contract and the defensive handling of responses that violate it:
// a reply that does not validate as the expected JSON schema is wrapped as
// an unstructured summary, while transport, auth and timeout failures are
// returned as errors for the lifecycle controller to record.
package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/flanksource/commons/logger"

	"github.com/reviewkit/reviewkit/models"
)

// Client sends code review requests to the external model.
type Client struct {
	api    *anthropic.Client
	config models.AIConfig
}

// NewClient creates a review client from the injected configuration.
func NewClient(config models.AIConfig) *Client {
	opts := []option.RequestOption{}
	if config.APIKey != "" {
		opts = append(opts, option.WithAPIKey(config.APIKey))
	}
	if config.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(config.Endpoint))
	}
	client := anthropic.NewClient(opts...)
	return &Client{
		api:    &client,
		config: config,
	}
}

// Review requests a structured review of the code. Exactly one attempt is
// made; the caller decides what a failure means for the run. A reply that
// parses and validates against the schema is returned verbatim with
// StructuredAnalysis true, anything else is degraded to an unstructured
// summary.
func (c *Client) Review(ctx context.Context, code, language string) (*models.AIReview, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.config.Model),
		MaxTokens:   c.config.MaxTokens,
		Temperature: anthropic.Float(c.config.Temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(buildPrompt(code, language))),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("model request failed: %w", err)
	}

	var text string
	for _, block := range msg.Content {
		if block.Type == "text" {
			text = block.Text
			break
		}
	}
	if text == "" {
		return nil, fmt.Errorf("no text content in model response")
	}

	logger.Debugf("model used %d input / %d output tokens", msg.Usage.InputTokens, msg.Usage.OutputTokens)

	return ParseReview(text), nil
}

// ParseReview converts raw model output into an AIReview, degrading to the
// unstructured-summary shape when the output does not honor the contract.
func ParseReview(text string) *models.AIReview {
	candidate := stripFences(text)

	if validateReview(candidate) {
		var review models.AIReview
		if err := json.Unmarshal([]byte(candidate), &review); err == nil {
			review.StructuredAnalysis = true
			return &review
		}
	}

	logger.Debugf("model response is not a structured review, keeping raw summary")
	return &models.AIReview{
		Summary:            text,
		StructuredAnalysis: false,
	}
}

// Package dify implements the client for the Dify workflow/chat backend.
// The bot forwards each user message as a blocking chat run and hands the
// raw answer payload to the answer parser.
package dify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/swatchbot/swatchbot/internal/logger"
	"github.com/swatchbot/swatchbot/internal/metrics"
)

// maxErrorBodyBytes caps how much of an upstream error body is logged.
const maxErrorBodyBytes = 2048

// Client calls the Dify chat-messages API.
type Client struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	logger     *logger.Logger
	metrics    *metrics.Metrics
}

// NewClient creates a Dify client. The timeout bounds the whole blocking
// chat run, not just connection setup.
func NewClient(apiURL, apiKey string, timeout time.Duration, log *logger.Logger, m *metrics.Metrics) *Client {
	return &Client{
		apiURL:     apiURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     log.WithModule("dify"),
		metrics:    m,
	}
}

type chatRequest struct {
	Inputs       map[string]string `json:"inputs"`
	Query        string            `json:"query"`
	ResponseMode string            `json:"response_mode"`
	User         string            `json:"user"`
}

type chatResponse struct {
	Answer json.RawMessage `json:"answer"`
}

// Ready reports whether the backend endpoint is reachable. Any HTTP
// response counts as reachable, including auth errors; this probes the
// network path, not the credential.
func (c *Client) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.apiURL, http.NoBody)
	if err != nil {
		return fmt.Errorf("create readiness request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("chat backend unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}

// SendQuery runs one blocking chat request and returns the raw answer
// field. The answer bytes are opaque here; shape recovery belongs to the
// answer package.
func (c *Client) SendQuery(ctx context.Context, query, userID string) (json.RawMessage, error) {
	payload, err := json.Marshal(chatRequest{
		Inputs:       map[string]string{"user_text": query},
		Query:        query,
		ResponseMode: "blocking",
		User:         userID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start).Seconds()
	if err != nil {
		c.metrics.RecordBackendRequest("error", duration)
		return nil, fmt.Errorf("chat backend request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.RecordBackendRequest("error", duration)
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.logger.WithField("status", resp.StatusCode).
			WithField("body", string(body)).
			Error("Chat backend returned non-2xx")
		return nil, fmt.Errorf("chat backend status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		c.metrics.RecordBackendRequest("error", duration)
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	c.metrics.RecordBackendRequest("success", duration)
	c.logger.WithField("duration_s", duration).
		WithField("answer_bytes", len(parsed.Answer)).
		Debug("Chat backend call completed")

	return parsed.Answer, nil
}

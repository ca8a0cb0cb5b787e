// Package fetch retrieves guideline documents over HTTP. Non-success status
// codes and malformed payloads surface identically as fetch errors, so the
// resolver can treat every failure as "try the next path".
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/seoku/promptforge/internal/models"
)

// DefaultTimeout bounds a single document fetch.
const DefaultTimeout = 15 * time.Second

// Client fetches and decodes guideline documents.
type Client struct {
	http *http.Client
}

// NewClient creates a fetch client. A zero timeout falls back to
// DefaultTimeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
	}
}

// Guideline fetches the document at url, bypassing intermediate caches, and
// returns the parsed document together with the raw payload so callers can
// persist the exact bytes that were served.
func (c *Client) Guideline(ctx context.Context, url string) (*models.GuidelineDocument, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch guideline: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, nil, fmt.Errorf("failed to fetch guideline: status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read guideline body: %w", err)
	}

	doc, err := Parse(raw)
	if err != nil {
		return nil, nil, err
	}
	return doc, raw, nil
}

// Parse decodes a raw guideline document.
func Parse(raw []byte) (*models.GuidelineDocument, error) {
	var doc models.GuidelineDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse guideline document: %w", err)
	}
	return &doc, nil
}

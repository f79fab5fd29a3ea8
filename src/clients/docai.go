// Package clients holds the outbound HTTP boundary: the document-AI API the
// source XML comes from and the webhook sink the converted document goes to.
package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// DocAIClient fetches annotation exports from the document-AI API.
type DocAIClient struct {
	urlTemplate string
	token       string
	httpClient  *http.Client
}

// NewDocAIClient builds a client for the given URL template, which must
// carry {queue_id} and {annotation_id} placeholders.
func NewDocAIClient(urlTemplate, token string, timeout time.Duration) *DocAIClient {
	return &DocAIClient{
		urlTemplate: urlTemplate,
		token:       token,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// FetchAnnotationXML retrieves the raw XML export for one annotation.
// Failures wrap ErrUpstreamFetch; there are no retries.
func (c *DocAIClient) FetchAnnotationXML(ctx context.Context, queueID, annotationID int) (string, error) {
	url := strings.NewReplacer(
		"{queue_id}", strconv.Itoa(queueID),
		"{annotation_id}", strconv.Itoa(annotationID),
	).Replace(c.urlTemplate)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: building request: %v", ErrUpstreamFetch, err)
	}
	req.Header.Set("Authorization", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: unexpected status %s", ErrUpstreamFetch, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response body: %v", ErrUpstreamFetch, err)
	}
	return string(body), nil
}

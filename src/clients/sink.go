package clients

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type sinkPayload struct {
	AnnotationID int    `json:"annotationId"`
	Content      string `json:"content"`
}

// SinkClient delivers converted documents to the configured webhook.
type SinkClient struct {
	url        string
	httpClient *http.Client
}

func NewSinkClient(url string, timeout time.Duration) *SinkClient {
	return &SinkClient{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Deliver posts the document base64-encoded together with its annotation id.
// Failures wrap ErrSinkDelivery; there are no retries and no partial
// deliveries.
func (c *SinkClient) Deliver(ctx context.Context, annotationID int, content string) error {
	payload := sinkPayload{
		AnnotationID: annotationID,
		Content:      base64.StdEncoding.EncodeToString([]byte(content)),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: encoding payload: %v", ErrSinkDelivery, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ErrSinkDelivery, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSinkDelivery, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %s", ErrSinkDelivery, resp.Status)
	}
	return nil
}

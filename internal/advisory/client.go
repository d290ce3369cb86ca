// Package advisory is the HTTP client for the remote advisory service.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sapatmohit/smart-farming-ai-agent/internal/domain"
)

const (
	chatPath   = "/api/chat"
	healthPath = "/health"

	// unknownError is used when a failed call carries no readable error body
	unknownError = "Unknown error"
)

// ErrMalformedResponse indicates a 2xx answer that could not be understood
var ErrMalformedResponse = errors.New("malformed advisory response")

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("advisory service returned %d: %s", e.Code, e.Message)
}

// chatResponse is the wire form of a 2xx answer. Answer is a pointer so a
// body without one can be told apart from an empty answer.
type chatResponse struct {
	Answer           *string  `json:"answer"`
	Sources          []string `json:"sources"`
	Confidence       string   `json:"confidence"`
	DetectedLanguage string   `json:"detected_language"`
}

// Client talks to the advisory service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL. A zero timeout means the call is
// bounded only by the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Ask sends a query and returns the advisory answer
func (c *Client) Ask(ctx context.Context, req domain.AdvisoryRequest) (*domain.AdvisoryResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatPath, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Message: errorMessage(body)}
	}

	var wire *chatResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if wire == nil || wire.Answer == nil {
		return nil, fmt.Errorf("%w: missing answer", ErrMalformedResponse)
	}
	conf, err := domain.ParseConfidence(wire.Confidence)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &domain.AdvisoryResponse{
		Answer:           *wire.Answer,
		Sources:          wire.Sources,
		Confidence:       conf,
		DetectedLanguage: wire.DetectedLanguage,
	}, nil
}

// Health reports whether the service answers its health check
func (c *Client) Health(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

func errorMessage(body []byte) string {
	var apiErr domain.APIError
	if err := json.Unmarshal(body, &apiErr); err != nil || apiErr.Error == "" {
		return unknownError
	}
	return apiErr.Error
}

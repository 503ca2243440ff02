package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/jonathan/resume-studio/internal/types"
)

// Response MIME types understood by the gateway.
const (
	MIMEJSON = "application/json"
	MIMEText = "text/plain"
)

// ErrBlocked is returned when the gateway refuses to answer for content
// safety reasons.
var ErrBlocked = errors.New("generation blocked by safety filters")

// ErrEmptyResponse is returned when the gateway answers without any text.
var ErrEmptyResponse = errors.New("gateway returned an empty response")

// Request is everything the gateway needs to produce a reply for one mode.
// Prompt wording lives in the gateway; the request only names the feature
// and carries the user's inputs.
type Request struct {
	Feature          types.Mode        `json:"feature"`
	Model            string            `json:"model"`
	Inputs           map[string]string `json:"inputs"`
	ResponseSchema   json.RawMessage   `json:"response_schema,omitempty"`
	ResponseMIMEType string            `json:"response_mime_type"`
	Temperature      float32           `json:"temperature"`
}

// Client is an abstraction over the generation gateway
type Client interface {
	// Generate returns the raw reply text for req
	Generate(ctx context.Context, req Request) (string, error)
	// Close releases any resources held by the client
	Close() error
}

// GatewayError is a non-2xx answer from the gateway.
type GatewayError struct {
	StatusCode int
	Message    string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway returned status %d: %s", e.StatusCode, e.Message)
}

// Retryable reports whether the request may succeed if sent again.
func (e *GatewayError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

type gatewayResponse struct {
	Text         string `json:"text"`
	Blocked      bool   `json:"blocked,omitempty"`
	FinishReason string `json:"finish_reason,omitempty"`
	Error        string `json:"error,omitempty"`
}

// GatewayClient implements Client by POSTing requests to <GatewayURL>/generate.
type GatewayClient struct {
	httpClient *http.Client
	endpoint   string
	config     *Config
	newBackOff func() backoff.BackOff
}

// NewGatewayClient creates a client for the gateway named in config.
func NewGatewayClient(config *Config) (*GatewayClient, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.GatewayURL == "" {
		return nil, fmt.Errorf("gateway URL is required")
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultConfig().Timeout
	}

	return &GatewayClient{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   strings.TrimRight(config.GatewayURL, "/") + "/generate",
		config:     config,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.InitialInterval = 500 * time.Millisecond
			bo.MaxInterval = 5 * time.Second
			return bo
		},
	}, nil
}

// Model returns the configured model name for a mode.
func (c *GatewayClient) Model(mode types.Mode) string {
	return c.config.GetModel(TierFor(mode))
}

// Generate sends req, retrying transport failures, 429 and 5xx answers.
func (c *GatewayClient) Generate(ctx context.Context, req Request) (string, error) {
	if req.Model == "" {
		req.Model = c.Model(req.Feature)
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gateway request: %w", err)
	}

	attempt := 0
	operation := func() (string, error) {
		attempt++
		text, err := c.send(ctx, body)
		if err == nil {
			return text, nil
		}

		var gwErr *GatewayError
		if errors.Is(err, ErrBlocked) || errors.Is(err, ErrEmptyResponse) ||
			(errors.As(err, &gwErr) && !gwErr.Retryable()) {
			return "", backoff.Permanent(err)
		}
		log.Printf("[gateway] %s attempt %d failed: %v", req.Feature, attempt, err)
		return "", err
	}

	maxTries := c.config.MaxAttempts
	if maxTries == 0 {
		maxTries = 1
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(maxTries))
}

func (c *GatewayClient) send(ctx context.Context, body []byte) (string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create gateway request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read gateway response: %w", err)
	}

	var parsed gatewayResponse
	// Error bodies are not guaranteed to be JSON.
	decodeErr := json.Unmarshal(data, &parsed)

	if parsed.Blocked || strings.EqualFold(parsed.FinishReason, "SAFETY") {
		return "", ErrBlocked
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := parsed.Error
		if decodeErr != nil {
			msg = strings.TrimSpace(string(data))
		}
		return "", &GatewayError{StatusCode: resp.StatusCode, Message: msg}
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode gateway response: %w", decodeErr)
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return "", ErrEmptyResponse
	}

	return parsed.Text, nil
}

// Close releases idle connections.
func (c *GatewayClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// Package registry talks to the voucher Registry over HTTP.
package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"
	"wom-connector/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// maxResponseBytes bounds Registry response bodies.
const maxResponseBytes = 4 << 20

// HTTPClient interface for testability.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPTransport implements ports.RegistryTransport with JSON over HTTP.
type HTTPTransport struct {
	baseURL string
	client  HTTPClient
	log     zerolog.Logger
}

// NewHTTPTransport creates a transport for the Registry at scheme://domain/api/.
func NewHTTPTransport(scheme, domain string, client HTTPClient, log zerolog.Logger) *HTTPTransport {
	if scheme == "" {
		scheme = "https"
	}
	return &HTTPTransport{
		baseURL: fmt.Sprintf("%s://%s/api/", scheme, strings.TrimSuffix(domain, "/")),
		client:  client,
		log:     logger.Component(log, "registry"),
	}
}

// NewHTTPClient returns the default client used for Registry calls.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// BaseURL returns the API root all paths are resolved against.
func (t *HTTPTransport) BaseURL() string {
	return t.baseURL
}

// Post sends body as JSON and decodes a 200 response into out.
func (t *HTTPTransport) Post(ctx context.Context, path string, body any, out any) error {
	return t.post(ctx, path, nil, body, out)
}

// PostAuth is Post with HTTP basic credentials.
func (t *HTTPTransport) PostAuth(ctx context.Context, path string, auth ports.BasicAuth, body any, out any) error {
	return t.post(ctx, path, &auth, body, out)
}

func (t *HTTPTransport) post(ctx context.Context, path string, auth *ports.BasicAuth, body any, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("building %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if auth != nil {
		req.SetBasicAuth(auth.Username, auth.Password)
	}

	resp, err := t.do(req, path)
	if err != nil {
		return err
	}

	if out == nil || len(resp) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp, out); err != nil {
		return apperror.ErrMalformedResponse(path, err)
	}
	return nil
}

// Get fetches path and returns the raw body of a 200 response.
func (t *HTTPTransport) Get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building %s request: %w", path, err)
	}
	return t.do(req, path)
}

func (t *HTTPTransport) do(req *http.Request, path string) ([]byte, error) {
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		t.log.Warn().Err(err).Str("path", path).Str("request_id", requestID).Msg("Registry unreachable")
		return nil, apperror.ErrTransport(path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, apperror.ErrTransport(path, err)
	}

	t.log.Debug().
		Str("method", req.Method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Str("request_id", requestID).
		Msg("Registry call")

	if resp.StatusCode != http.StatusOK {
		return nil, apperror.ErrProtocol(path, resp.StatusCode)
	}
	return body, nil
}

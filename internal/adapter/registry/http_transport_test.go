package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient implements HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func newServerTransport(t *testing.T, handler http.HandlerFunc) *HTTPTransport {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	host := strings.TrimPrefix(srv.URL, "http://")
	return NewHTTPTransport("http", host, srv.Client(), zerolog.Nop())
}

func TestNewHTTPTransport_BaseURL(t *testing.T) {
	tr := NewHTTPTransport("", "wom.example.org/", &mockHTTPClient{}, zerolog.Nop())
	assert.Equal(t, "https://wom.example.org/api/", tr.BaseURL())
}

func TestPost_Success(t *testing.T) {
	tr := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/voucher/create", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "abc", body["nonce"])

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"payload":"ZW52ZWxvcGU="}`))
	})

	var out struct {
		Payload string `json:"payload"`
	}
	err := tr.Post(context.Background(), "v1/voucher/create", map[string]string{"nonce": "abc"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "ZW52ZWxvcGU=", out.Payload)
}

func TestPostAuth_SendsBasicCredentials(t *testing.T) {
	tr := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "admin@example.org", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, "/api/v1/auth/source", r.URL.Path)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"sources":[]}`))
	})

	var out struct {
		Sources []any `json:"sources"`
	}
	err := tr.PostAuth(context.Background(), ports.PathSourceLogin, ports.BasicAuth{Username: "admin@example.org", Password: "secret"}, nil, &out)
	require.NoError(t, err)
	assert.NotNil(t, out.Sources)
}

func TestPost_NoCredentials(t *testing.T) {
	tr := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
		_, _, ok := r.BasicAuth()
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, tr.Post(context.Background(), ports.PathVoucherVerify, map[string]string{}, nil))
}

func TestPost_NilOutDiscardsBody(t *testing.T) {
	tr := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	err := tr.Post(context.Background(), "v1/voucher/verify", map[string]string{"payload": "x"}, nil)
	assert.NoError(t, err)
}

func TestPost_NonSuccessIsProtocolFailure(t *testing.T) {
	for _, status := range []int{http.StatusBadRequest, http.StatusNotFound, http.StatusInternalServerError, http.StatusCreated} {
		tr := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		err := tr.Post(context.Background(), "v1/payment/confirm", struct{}{}, nil)
		require.Error(t, err)

		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperror.KindProtocol, appErr.Kind)
		assert.Equal(t, status, appErr.UpstreamStatus)
	}
}

func TestPost_MalformedBody(t *testing.T) {
	tr := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})

	var out map[string]any
	err := tr.Post(context.Background(), "v1/payment/info", struct{}{}, &out)
	assert.Equal(t, "PRO_003", apperror.CodeOf(err))
}

func TestPost_NetworkError(t *testing.T) {
	tr := NewHTTPTransport("https", "wom.example.org", &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		},
	}, zerolog.Nop())

	err := tr.Post(context.Background(), "v1/voucher/create", struct{}{}, nil)
	assert.Equal(t, "PRO_002", apperror.CodeOf(err))
	assert.True(t, apperror.IsKind(err, apperror.KindProtocol))
}

func TestPost_ContextCancelled(t *testing.T) {
	tr := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := tr.Post(ctx, "v1/voucher/create", struct{}{}, nil)
	assert.Equal(t, "PRO_002", apperror.CodeOf(err))
}

func TestGet_ReturnsRawBody(t *testing.T) {
	tr := NewHTTPTransport("https", "wom.example.org", &mockHTTPClient{
		doFunc: func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "https://wom.example.org/api/v1/auth/key", req.URL.String())
			return &http.Response{
				StatusCode: http.StatusOK,
				Body:       io.NopCloser(strings.NewReader("-----BEGIN PUBLIC KEY-----")),
			}, nil
		},
	}, zerolog.Nop())

	body, err := tr.Get(context.Background(), "v1/auth/key")
	require.NoError(t, err)
	assert.Equal(t, "-----BEGIN PUBLIC KEY-----", string(body))
}

func TestGet_NotFound(t *testing.T) {
	tr := newServerTransport(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := tr.Get(context.Background(), "v2/aims")
	assert.Equal(t, "PRO_001", apperror.CodeOf(err))
}

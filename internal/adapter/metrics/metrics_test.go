package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wom-connector/internal/core/ports"
	"wom-connector/internal/core/ports/mocks"
	"wom-connector/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "ok"},
		{apperror.ErrInvalidArgument("x"), "argument"},
		{apperror.ErrCrypto("x", nil), "crypto"},
		{apperror.ErrProtocol(ports.PathPaymentConfirm, 400), "protocol"},
		{apperror.ErrInsufficientVouchers(2, 1), "insufficient_vouchers"},
		{apperror.ErrRateLimitExceeded(), "gateway"},
		{errors.New("boom"), "internal"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Outcome(tt.err))
	}
}

func TestInstrumentedTransport(t *testing.T) {
	m := New()
	next := mocks.NewMockRegistryTransport(gomock.NewController(t))
	tr := WrapTransport(next, m)
	ctx := context.Background()

	next.EXPECT().Post(ctx, ports.PathVoucherCreate, "body", nil).Return(nil)
	next.EXPECT().Post(ctx, ports.PathVoucherVerify, "body", nil).Return(apperror.ErrProtocol(ports.PathVoucherVerify, 500))
	next.EXPECT().Get(ctx, ports.PathAuthKey).Return([]byte("pem"), nil)
	next.EXPECT().PostAuth(ctx, ports.PathSourceLogin, ports.BasicAuth{Username: "a", Password: "b"}, nil, nil).Return(apperror.ErrProtocol(ports.PathSourceLogin, 401))

	require.NoError(t, tr.Post(ctx, ports.PathVoucherCreate, "body", nil))
	require.Error(t, tr.Post(ctx, ports.PathVoucherVerify, "body", nil))
	data, err := tr.Get(ctx, ports.PathAuthKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("pem"), data)
	require.Error(t, tr.PostAuth(ctx, ports.PathSourceLogin, ports.BasicAuth{Username: "a", Password: "b"}, nil, nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.registryCalls.WithLabelValues(ports.PathVoucherCreate, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registryCalls.WithLabelValues(ports.PathVoucherVerify, "protocol")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registryCalls.WithLabelValues(ports.PathAuthKey, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.registryCalls.WithLabelValues(ports.PathSourceLogin, "protocol")))
	assert.Equal(t, 4, testutil.CollectAndCount(m.registryLatency))
}

func TestObserveHTTPAndHandler(t *testing.T) {
	m := New()
	m.ObserveHTTP(http.MethodPost, "/api/v1/pocket/pay", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/v1/pocket/pay", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "unmatched", "404")))

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "wom_connector_http_requests_total")
	assert.Contains(t, string(body), "go_goroutines")
}

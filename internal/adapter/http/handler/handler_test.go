package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wom-connector/internal/adapter/http/middleware"
	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/internal/core/ports/mocks"
	"wom-connector/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testDeps struct {
	auth      *mocks.MockAuthService
	token     *mocks.MockTokenService
	handshake *mocks.MockHandshakeService
	wallet    *mocks.MockWalletService
	aims      *mocks.MockAimCatalog
}

func newTestRouter(t *testing.T, withWallet bool) (*gin.Engine, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	d := testDeps{
		auth:      mocks.NewMockAuthService(ctrl),
		token:     mocks.NewMockTokenService(ctrl),
		handshake: mocks.NewMockHandshakeService(ctrl),
		wallet:    mocks.NewMockWalletService(ctrl),
		aims:      mocks.NewMockAimCatalog(ctrl),
	}
	deps := RouterDeps{
		AuthSvc:      d.auth,
		TokenSvc:     d.token,
		HandshakeSvc: d.handshake,
		AimCatalog:   d.aims,
		Logger:       zerolog.Nop(),
	}
	if withWallet {
		deps.WalletSvc = d.wallet
	}
	return SetupRouter(deps), d
}

func (d testDeps) authorize(operator string) {
	d.token.EXPECT().Validate("good-token").Return(&ports.TokenClaims{Operator: operator}, nil).AnyTimes()
}

func doJSON(r http.Handler, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer() map[string]string {
	return map[string]string{"Authorization": "Bearer good-token"}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// --- Auth ---

func TestLogin_Success(t *testing.T) {
	r, d := newTestRouter(t, false)
	expiry := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	d.auth.EXPECT().Login(gomock.Any(), "alice", "s3cret<>").Return("jwt-token", expiry, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "alice", "password": "s3cret<>"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "jwt-token", data["token"])
	assert.Equal(t, float64(expiry.Unix()), data["expiry"])
}

func TestLogin_ValidationError(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "alice"}, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "ARG_001", decode(t, w)["error_code"])
}

func TestLogin_InvalidCredentials(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.auth.EXPECT().Login(gomock.Any(), "alice", "wrong").Return("", time.Time{}, apperror.ErrInvalidCredentials())

	w := doJSON(r, http.MethodPost, "/api/v1/auth/login",
		map[string]string{"username": "alice", "password": "wrong"}, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", decode(t, w)["error_code"])
}

// --- Health ---

func TestHealthCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	pg := mocks.NewMockHealthChecker(ctrl)
	rd := mocks.NewMockHealthChecker(ctrl)
	pg.EXPECT().Name().Return("postgresql").AnyTimes()
	rd.EXPECT().Name().Return("redis").AnyTimes()

	t.Run("healthy", func(t *testing.T) {
		pg.EXPECT().Ping(gomock.Any()).Return(nil)
		rd.EXPECT().Ping(gomock.Any()).Return(nil)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
		HealthCheck(pg, rd)(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", decode(t, w)["status"])
	})

	t.Run("degraded", func(t *testing.T) {
		pg.EXPECT().Ping(gomock.Any()).Return(nil)
		rd.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)
		HealthCheck(pg, rd)(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		resp := decode(t, w)
		assert.Equal(t, "degraded", resp["status"])
		deps := resp["dependencies"].(map[string]any)
		assert.Equal(t, "unhealthy", deps["redis"].(map[string]any)["status"])
		assert.Equal(t, "healthy", deps["postgresql"].(map[string]any)["status"])
	})
}

// --- Handshakes ---

func TestIssueVouchers_RequiresToken(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.token.EXPECT().Validate("bad").Return(nil, errors.New("expired"))

	w := doJSON(r, http.MethodPost, "/api/v1/instrument/vouchers", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/instrument/vouchers", nil, map[string]string{"Authorization": "Bearer bad"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_003", decode(t, w)["error_code"])
}

func TestIssueVouchers_Success(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.authorize("acme")
	otc := uuid.New()
	ts := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

	d.handshake.EXPECT().
		IssueVouchers(gomock.Any(), "acme", "key-1", []domain.VoucherSpec{{
			Aim: "H", Latitude: 44.5, Longitude: 12.2, Timestamp: ts, Count: 3, CreationMode: domain.CreationModeStandard,
		}}, ports.IssueOptions{Nonce: "n-1", Password: "1234"}).
		Return(&domain.VoucherRequest{Otc: otc, Password: "1234", Link: "https://wom.example.org/vouchers/" + otc.String()}, nil)

	headers := bearer()
	headers[middleware.HeaderIdempotencyKey] = "key-1"
	w := doJSON(r, http.MethodPost, "/api/v1/instrument/vouchers", map[string]any{
		"vouchers": []map[string]any{{
			"aim": "H", "latitude": 44.5, "longitude": 12.2, "timestamp": ts, "count": 3, "creation_mode": "Standard",
		}},
		"nonce":    "n-1",
		"password": "1234",
	}, headers)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, otc.String(), data["otc"])
	assert.Equal(t, "1234", data["password"])
	assert.Contains(t, data["link"], otc.String())
}

func TestIssueVouchers_ValidationError(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.authorize("acme")

	for name, body := range map[string]any{
		"no batches":   map[string]any{"vouchers": []any{}},
		"bad latitude": map[string]any{"vouchers": []map[string]any{{"aim": "H", "latitude": 91, "count": 1}}},
		"unsafe aim":   map[string]any{"vouchers": []map[string]any{{"aim": "<b>", "count": 1}}},
		"bad mode":     map[string]any{"vouchers": []map[string]any{{"aim": "H", "count": 1, "creation_mode": "Later"}}},
	} {
		t.Run(name, func(t *testing.T) {
			w := doJSON(r, http.MethodPost, "/api/v1/instrument/vouchers", body, bearer())
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "ARG_001", decode(t, w)["error_code"])
		})
	}
}

func TestIssueVouchers_UpstreamFailure(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.authorize("acme")
	d.handshake.EXPECT().IssueVouchers(gomock.Any(), "acme", "", gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrProtocol("voucher/create", 403))

	w := doJSON(r, http.MethodPost, "/api/v1/instrument/vouchers",
		map[string]any{"vouchers": []map[string]any{{"aim": "H", "count": 1}}}, bearer())

	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "PRO_001", resp["error_code"])
	assert.Equal(t, float64(403), resp["upstream_status"])
}

func TestRegisterPayment_Success(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.authorize("shop")
	otc := uuid.New()
	aim := "E"

	d.handshake.EXPECT().
		RegisterPayment(gomock.Any(), "shop", "pay-7", ports.PaymentParams{
			Amount:       5,
			PocketAckURL: "https://shop.example.org/ok",
			Filter:       &domain.SimpleFilter{Aim: &aim},
			Persistent:   true,
		}).
		Return(&domain.PaymentRequest{Otc: otc, Password: "9876", Link: "https://wom.example.org/payment/" + otc.String()}, nil)

	headers := bearer()
	headers[middleware.HeaderIdempotencyKey] = "pay-7"
	w := doJSON(r, http.MethodPost, "/api/v1/pos/payments", map[string]any{
		"amount":         5,
		"pocket_ack_url": "https://shop.example.org/ok",
		"filter":         map[string]any{"aim": "E"},
		"persistent":     true,
	}, headers)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, otc.String(), data["otc"])
	assert.Equal(t, "9876", data["password"])
}

func TestRegisterPayment_RejectsBadAckURL(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.authorize("shop")

	w := doJSON(r, http.MethodPost, "/api/v1/pos/payments",
		map[string]any{"amount": 5, "pocket_ack_url": "javascript:alert(1)"}, bearer())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterPayment_FeatureDisabled(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.authorize("shop")
	d.handshake.EXPECT().RegisterPayment(gomock.Any(), "shop", "", gomock.Any()).
		Return(nil, apperror.ErrFeatureDisabled("pos"))

	w := doJSON(r, http.MethodPost, "/api/v1/pos/payments",
		map[string]any{"amount": 1, "pocket_ack_url": "https://shop.example.org"}, bearer())

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "GTW_001", decode(t, w)["error_code"])
}

func TestPaymentStatus(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.authorize("shop")
	otc := uuid.New()
	performed := time.Date(2024, 6, 2, 10, 30, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		d.handshake.EXPECT().PaymentStatus(gomock.Any(), otc).Return(&domain.PaymentStatus{
			Persistent:       false,
			HasBeenPerformed: true,
			Confirmations:    []domain.PaymentConfirmation{{PerformedAt: performed}},
		}, nil)

		w := doJSON(r, http.MethodGet, "/api/v1/pos/payments/"+otc.String(), nil, bearer())

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		data := decode(t, w)["data"].(map[string]any)
		assert.Equal(t, true, data["has_been_performed"])
		assert.Equal(t, []any{"2024-06-02T10:30:00Z"}, data["performed_at"])
	})

	t.Run("bad otc", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/v1/pos/payments/not-a-uuid", nil, bearer())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// --- Aims ---

func TestAims(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.authorize("acme")
	d.aims.EXPECT().GetAims(gomock.Any()).Return([]domain.Aim{
		{Code: "H", Titles: map[string]string{"en": "Health"}, Order: 1},
	}, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/aims", nil, bearer())

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "H", data[0].(map[string]any)["code"])
}

// --- Pocket ---

func TestPocket_Disabled(t *testing.T) {
	r, d := newTestRouter(t, false)
	d.authorize("acme")

	w := doJSON(r, http.MethodGet, "/api/v1/pocket/vouchers", nil, bearer())

	assert.Equal(t, http.StatusNotImplemented, w.Code)
	assert.Equal(t, "GTW_001", decode(t, w)["error_code"])
}

func TestPocket_Collect(t *testing.T) {
	r, d := newTestRouter(t, true)
	d.authorize("acme")
	otc := uuid.New()

	d.wallet.EXPECT().Collect(gomock.Any(), otc, "1234", &domain.GeoCoords{Latitude: 43.7, Longitude: 12.6}).Return(2, nil)
	d.wallet.EXPECT().Vouchers(gomock.Any()).Return(make([]domain.Voucher, 5))

	w := doJSON(r, http.MethodPost, "/api/v1/pocket/collect", map[string]any{
		"otc": otc.String(), "password": "1234", "location": map[string]any{"latitude": 43.7, "longitude": 12.6},
	}, bearer())

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["received"])
	assert.Equal(t, float64(5), data["held"])
}

func TestPocket_CollectRejectsBadOtc(t *testing.T) {
	r, d := newTestRouter(t, true)
	d.authorize("acme")

	w := doJSON(r, http.MethodPost, "/api/v1/pocket/collect",
		map[string]any{"otc": "abc", "password": "1234"}, bearer())

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPocket_Pay(t *testing.T) {
	r, d := newTestRouter(t, true)
	d.authorize("acme")
	otc := uuid.New()

	t.Run("success", func(t *testing.T) {
		d.wallet.EXPECT().Pay(gomock.Any(), otc, "1234").Return("https://shop.example.org/ok", nil)

		w := doJSON(r, http.MethodPost, "/api/v1/pocket/pay", map[string]any{"otc": otc.String(), "password": "1234"}, bearer())

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "https://shop.example.org/ok", decode(t, w)["data"].(map[string]any)["ack_url"])
	})

	t.Run("insufficient vouchers", func(t *testing.T) {
		d.wallet.EXPECT().Pay(gomock.Any(), otc, "1234").Return("", apperror.ErrInsufficientVouchers(3, 1))

		w := doJSON(r, http.MethodPost, "/api/v1/pocket/pay", map[string]any{"otc": otc.String(), "password": "1234"}, bearer())

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "VCH_001", decode(t, w)["error_code"])
	})
}

func TestPocket_VouchersHidesSecrets(t *testing.T) {
	r, d := newTestRouter(t, true)
	d.authorize("acme")
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	d.wallet.EXPECT().Vouchers(gomock.Any()).Return([]domain.Voucher{
		domain.NewVoucher(domain.MustIdentifier("42"), "top-secret", "E", 1, 2, ts),
	})

	w := doJSON(r, http.MethodGet, "/api/v1/pocket/vouchers", nil, bearer())

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "top-secret")
	data := decode(t, w)["data"].([]any)
	require.Len(t, data, 1)
	assert.Equal(t, "42", data[0].(map[string]any)["id"])
	assert.Equal(t, "2024-01-02T03:04:05Z", data[0].(map[string]any)["timestamp"])
}

func TestRouter_SetsRequestID(t *testing.T) {
	r, _ := newTestRouter(t, false)

	w := doJSON(r, http.MethodGet, "/api/v1/aims", nil, nil)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
	assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), decode(t, w)["request_id"])
}

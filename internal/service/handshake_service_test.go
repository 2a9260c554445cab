package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/internal/core/ports/mocks"
	"wom-connector/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type handshakeMocks struct {
	issuer    *mocks.MockVoucherIssuer
	registrar *mocks.MockPaymentRegistrar
	cache     *mocks.MockIdempotencyCache
}

func setupHandshakeService(t *testing.T) (*HandshakeServiceImpl, handshakeMocks) {
	ctrl := gomock.NewController(t)
	m := handshakeMocks{
		issuer:    mocks.NewMockVoucherIssuer(ctrl),
		registrar: mocks.NewMockPaymentRegistrar(ctrl),
		cache:     mocks.NewMockIdempotencyCache(ctrl),
	}
	return NewHandshakeService(m.issuer, m.registrar, m.cache, zerolog.Nop()), m
}

func TestHandshakeService_IssueVouchers_CachesResult(t *testing.T) {
	svc, m := setupHandshakeService(t)
	ctx := context.Background()
	specs := []domain.VoucherSpec{{Aim: "E", Count: 2}}
	req := domain.NewVoucherRequest("wom.example.org", uuid.New(), "1234")

	m.cache.EXPECT().Get(ctx, "issue:alice:batch-1").Return(nil, nil)
	m.issuer.EXPECT().RequestVouchers(ctx, specs, ports.IssueOptions{}).Return(req, nil)
	m.cache.EXPECT().Set(ctx, "issue:alice:batch-1", gomock.Any(), idempotencyTTL).
		DoAndReturn(func(_ context.Context, _ string, value []byte, _ any) error {
			var stored domain.VoucherRequest
			require.NoError(t, json.Unmarshal(value, &stored))
			assert.Equal(t, *req, stored)
			return nil
		})

	got, err := svc.IssueVouchers(ctx, "alice", "batch-1", specs, ports.IssueOptions{})
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestHandshakeService_IssueVouchers_Replay(t *testing.T) {
	svc, m := setupHandshakeService(t)
	ctx := context.Background()
	req := domain.NewVoucherRequest("wom.example.org", uuid.New(), "1234")
	data, err := json.Marshal(req)
	require.NoError(t, err)

	m.cache.EXPECT().Get(ctx, "issue:alice:batch-1").Return(data, nil)

	got, err := svc.IssueVouchers(ctx, "alice", "batch-1", []domain.VoucherSpec{{Aim: "E"}}, ports.IssueOptions{})
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestHandshakeService_IssueVouchers_NoKeySkipsCache(t *testing.T) {
	svc, m := setupHandshakeService(t)
	ctx := context.Background()
	req := domain.NewVoucherRequest("wom.example.org", uuid.New(), "1234")

	m.issuer.EXPECT().RequestVouchers(ctx, gomock.Any(), gomock.Any()).Return(req, nil)

	_, err := svc.IssueVouchers(ctx, "alice", "", []domain.VoucherSpec{{Aim: "E"}}, ports.IssueOptions{})
	require.NoError(t, err)
}

func TestHandshakeService_IssueVouchers_CacheDownRunsHandshake(t *testing.T) {
	svc, m := setupHandshakeService(t)
	ctx := context.Background()
	req := domain.NewVoucherRequest("wom.example.org", uuid.New(), "1234")

	m.cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, errors.New("connection refused"))
	m.issuer.EXPECT().RequestVouchers(ctx, gomock.Any(), gomock.Any()).Return(req, nil)
	m.cache.EXPECT().Set(ctx, gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))

	got, err := svc.IssueVouchers(ctx, "alice", "k", []domain.VoucherSpec{{Aim: "E"}}, ports.IssueOptions{})
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestHandshakeService_IssueVouchers_FailureNotCached(t *testing.T) {
	svc, m := setupHandshakeService(t)
	ctx := context.Background()

	m.cache.EXPECT().Get(ctx, gomock.Any()).Return(nil, nil)
	m.issuer.EXPECT().RequestVouchers(ctx, gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrProtocol("v1/voucher/create", 400))

	_, err := svc.IssueVouchers(ctx, "alice", "k", []domain.VoucherSpec{{Aim: "E"}}, ports.IssueOptions{})
	assert.True(t, apperror.IsKind(err, apperror.KindProtocol))
}

func TestHandshakeService_RegisterPayment(t *testing.T) {
	svc, m := setupHandshakeService(t)
	ctx := context.Background()
	params := ports.PaymentParams{Amount: 3, PocketAckURL: "https://shop.example.org/ok"}
	req := domain.NewPaymentRequest("wom.example.org", uuid.New(), "9876")

	m.cache.EXPECT().Get(ctx, "register:bob:till-1").Return(nil, nil)
	m.registrar.EXPECT().RequestPayment(ctx, params).Return(req, nil)
	m.cache.EXPECT().Set(ctx, "register:bob:till-1", gomock.Any(), idempotencyTTL).Return(nil)

	got, err := svc.RegisterPayment(ctx, "bob", "till-1", params)
	require.NoError(t, err)
	assert.Equal(t, req, got)
}

func TestHandshakeService_PaymentStatus(t *testing.T) {
	svc, m := setupHandshakeService(t)
	otc := uuid.New()
	status := &domain.PaymentStatus{HasBeenPerformed: true}

	m.registrar.EXPECT().GetPaymentStatus(gomock.Any(), otc).Return(status, nil)

	got, err := svc.PaymentStatus(context.Background(), otc)
	require.NoError(t, err)
	assert.True(t, got.HasBeenPerformed)
}

func TestHandshakeService_DisabledRoles(t *testing.T) {
	svc := NewHandshakeService(nil, nil, nil, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.IssueVouchers(ctx, "alice", "", nil, ports.IssueOptions{})
	assert.Equal(t, "GTW_001", apperror.CodeOf(err))

	_, err = svc.RegisterPayment(ctx, "alice", "", ports.PaymentParams{})
	assert.Equal(t, "GTW_001", apperror.CodeOf(err))

	_, err = svc.PaymentStatus(ctx, uuid.New())
	assert.Equal(t, "GTW_001", apperror.CodeOf(err))
}

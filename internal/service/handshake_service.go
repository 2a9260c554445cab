package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const idempotencyTTL = 24 * time.Hour

// HandshakeServiceImpl implements ports.HandshakeService.
// A nil issuer or registrar disables the matching operations.
type HandshakeServiceImpl struct {
	issuer     ports.VoucherIssuer
	registrar  ports.PaymentRegistrar
	idempCache ports.IdempotencyCache
	log        zerolog.Logger
}

// NewHandshakeService creates a new HandshakeServiceImpl. idempCache may be nil.
func NewHandshakeService(
	issuer ports.VoucherIssuer,
	registrar ports.PaymentRegistrar,
	idempCache ports.IdempotencyCache,
	log zerolog.Logger,
) *HandshakeServiceImpl {
	return &HandshakeServiceImpl{
		issuer:     issuer,
		registrar:  registrar,
		idempCache: idempCache,
		log:        log,
	}
}

// IssueVouchers runs the issuance handshake once per idempotency key.
func (s *HandshakeServiceImpl) IssueVouchers(ctx context.Context, operator, idempotencyKey string, specs []domain.VoucherSpec, opts ports.IssueOptions) (*domain.VoucherRequest, error) {
	if s.issuer == nil {
		return nil, apperror.ErrFeatureDisabled("Voucher issuance")
	}

	key := idempotencyCacheKey("issue", operator, idempotencyKey)
	var cached domain.VoucherRequest
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	req, err := s.issuer.RequestVouchers(ctx, specs, opts)
	if err != nil {
		return nil, err
	}

	s.remember(ctx, key, req)
	s.log.Info().
		Str("operator", operator).
		Str("otc", req.Otc.String()).
		Int("specs", len(specs)).
		Msg("Vouchers issued")
	return req, nil
}

// RegisterPayment runs the payment registration handshake once per idempotency key.
func (s *HandshakeServiceImpl) RegisterPayment(ctx context.Context, operator, idempotencyKey string, params ports.PaymentParams) (*domain.PaymentRequest, error) {
	if s.registrar == nil {
		return nil, apperror.ErrFeatureDisabled("Payment registration")
	}

	key := idempotencyCacheKey("register", operator, idempotencyKey)
	var cached domain.PaymentRequest
	if s.lookup(ctx, key, &cached) {
		return &cached, nil
	}

	req, err := s.registrar.RequestPayment(ctx, params)
	if err != nil {
		return nil, err
	}

	s.remember(ctx, key, req)
	s.log.Info().
		Str("operator", operator).
		Str("otc", req.Otc.String()).
		Int("amount", params.Amount).
		Msg("Payment registered")
	return req, nil
}

// PaymentStatus queries the Registry for a payment registered by this gateway's POS.
func (s *HandshakeServiceImpl) PaymentStatus(ctx context.Context, otc uuid.UUID) (*domain.PaymentStatus, error) {
	if s.registrar == nil {
		return nil, apperror.ErrFeatureDisabled("Payment registration")
	}
	return s.registrar.GetPaymentStatus(ctx, otc)
}

// lookup reports whether key holds a cached result and decodes it into out.
// Cache failures fall through to a fresh handshake.
func (s *HandshakeServiceImpl) lookup(ctx context.Context, key string, out any) bool {
	if s.idempCache == nil || key == "" {
		return false
	}

	cached, err := s.idempCache.Get(ctx, key)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("redis idempotency check failed, running handshake")
		return false
	}
	if cached == nil {
		return false
	}
	if err := json.Unmarshal(cached, out); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("discarding unreadable idempotency entry")
		return false
	}

	s.log.Info().Str("key", key).Msg("Idempotent replay")
	return true
}

func (s *HandshakeServiceImpl) remember(ctx context.Context, key string, result any) {
	if s.idempCache == nil || key == "" {
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to encode idempotency entry")
		return
	}
	if err := s.idempCache.Set(ctx, key, data, idempotencyTTL); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("failed to cache idempotency in redis")
	}
}

// idempotencyCacheKey scopes a caller's key by operation and operator.
// An empty caller key disables caching.
func idempotencyCacheKey(op, operator, key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s:%s", op, operator, key)
}

package service

import (
	"context"
	"sync"

	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PocketService implements ports.WalletService: the gateway's single Pocket,
// serialized by a mutex and written through to a VoucherRepository.
type PocketService struct {
	mu     sync.Mutex
	pocket *Pocket
	repo   ports.VoucherRepository
	log    zerolog.Logger
}

// NewPocketService wraps pocket. Call Load before serving requests.
func NewPocketService(pocket *Pocket, repo ports.VoucherRepository, log zerolog.Logger) *PocketService {
	return &PocketService{
		pocket: pocket,
		repo:   repo,
		log:    log,
	}
}

// Load fills the ledger from the repository.
func (s *PocketService) Load(ctx context.Context) error {
	vouchers, err := s.repo.List(ctx)
	if err != nil {
		return apperror.ErrDatabaseError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pocket.AddVouchers(vouchers)

	s.log.Info().Int("vouchers", s.pocket.VoucherCount()).Msg("Pocket ledger loaded")
	return nil
}

// Collect redeems the vouchers behind otc and stores them. It returns the
// number of vouchers received. A nil location redeems without a position.
func (s *PocketService) Collect(ctx context.Context, otc uuid.UUID, password string, location *domain.GeoCoords) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vouchers, err := s.pocket.collect(ctx, otc, password, location)
	if err != nil {
		return 0, err
	}

	if err := s.repo.Save(ctx, vouchers); err != nil {
		s.log.Error().Err(err).Str("otc", otc.String()).Int("vouchers", len(vouchers)).
			Msg("Collected vouchers held in memory only")
		return len(vouchers), apperror.ErrDatabaseError(err)
	}
	return len(vouchers), nil
}

// Pay settles the payment behind otc from the ledger and deletes the spent vouchers.
func (s *PocketService) Pay(ctx context.Context, otc uuid.UUID, password string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ackURL, spent, err := s.pocket.payMatching(ctx, otc, password)
	if err != nil {
		return "", err
	}

	ids := make([]domain.Identifier, 0, len(spent))
	for _, v := range spent {
		ids = append(ids, v.ID)
	}
	// The Registry already accepted the payment, so a failed delete only leaves
	// stale rows that a later payment would be refused for.
	if err := s.repo.Delete(ctx, ids); err != nil {
		s.log.Error().Err(err).Str("otc", otc.String()).Int("vouchers", len(ids)).
			Msg("Failed to delete spent vouchers")
	}
	return ackURL, nil
}

// Vouchers returns a copy of the ledger.
func (s *PocketService) Vouchers(_ context.Context) []domain.Voucher {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pocket.Vouchers()
}

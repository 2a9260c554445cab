package ports

import (
	"context"
	"time"

	"wom-connector/internal/core/domain"
)

// VoucherRepository persists the gateway Pocket's ledger.
type VoucherRepository interface {
	// List returns all stored vouchers in insertion order.
	List(ctx context.Context) ([]domain.Voucher, error)
	// Save inserts vouchers, ignoring ids already stored.
	Save(ctx context.Context, vouchers []domain.Voucher) error
	Delete(ctx context.Context, ids []domain.Identifier) error
}

// IdempotencyCache is the Redis-layer idempotency check (fast path).
type IdempotencyCache interface {
	Get(ctx context.Context, key string) ([]byte, error) // Returns cached response JSON or nil
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// NonceStore manages nonce uniqueness for caller-supplied handshake nonces.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, senderID string, nonce string, ttl time.Duration) (bool, error)
}

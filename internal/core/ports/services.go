package ports

import (
	"context"
	"time"

	"wom-connector/internal/core/domain"

	"github.com/google/uuid"
)

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(operator string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Operator string
}

// AuthService authenticates gateway operators.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// --- Connector roles as used by the gateway ---

// VoucherIssuer runs the issuance handshake.
type VoucherIssuer interface {
	RequestVouchers(ctx context.Context, specs []domain.VoucherSpec, opts IssueOptions) (*domain.VoucherRequest, error)
}

// IssueOptions holds optional issuance inputs. Zero values are generated.
type IssueOptions struct {
	Nonce    string
	Password string
}

// PaymentRegistrar runs the payment registration handshake and status queries.
type PaymentRegistrar interface {
	RequestPayment(ctx context.Context, params PaymentParams) (*domain.PaymentRequest, error)
	GetPaymentStatus(ctx context.Context, otc uuid.UUID) (*domain.PaymentStatus, error)
}

// PaymentParams holds the inputs of a payment registration.
type PaymentParams struct {
	Amount       int
	PocketAckURL string
	PosAckURL    string
	Filter       *domain.SimpleFilter
	Persistent   bool
	Nonce        string
	Password     string
}

// AimCatalog lists the Registry's aims.
type AimCatalog interface {
	GetAims(ctx context.Context) ([]domain.Aim, error)
}

// WalletService is the gateway's serialized, persisted Pocket.
type WalletService interface {
	Collect(ctx context.Context, otc uuid.UUID, password string, location *domain.GeoCoords) (int, error)
	Pay(ctx context.Context, otc uuid.UUID, password string) (string, error)
	Vouchers(ctx context.Context) []domain.Voucher
}

// HandshakeService fronts the instrument and POS for gateway operators.
// Issuance and registration with the same idempotency key return the first
// result instead of starting a second handshake.
type HandshakeService interface {
	IssueVouchers(ctx context.Context, operator, idempotencyKey string, specs []domain.VoucherSpec, opts IssueOptions) (*domain.VoucherRequest, error)
	RegisterPayment(ctx context.Context, operator, idempotencyKey string, params PaymentParams) (*domain.PaymentRequest, error)
	PaymentStatus(ctx context.Context, otc uuid.UUID) (*domain.PaymentStatus, error)
}

package ports

import "context"

// Registry endpoint paths, relative to https://{domain}/api/.
const (
	PathVoucherCreate   = "v1/voucher/create"
	PathVoucherVerify   = "v1/voucher/verify"
	PathVoucherRedeem   = "v1/voucher/redeem"
	PathPaymentRegister = "v1/payment/register"
	PathPaymentVerify   = "v1/payment/verify"
	PathPaymentInfo     = "v1/payment/info"
	PathPaymentConfirm  = "v1/payment/confirm"
	PathPaymentStatus   = "v1/payment/status"
	PathAuthKey         = "v1/auth/key"
	PathAims            = "v2/aims"

	PathMerchantLogin     = "v2/auth/merchant"
	PathSourceLogin       = "v1/auth/source"
	PathSourceAPIKey      = "v1/auth/apikey/create"
	PathAPIKeyCredentials = "v1/auth/apikey"
)

// BasicAuth is an account's email and password, sent as HTTP basic credentials.
type BasicAuth struct {
	Username string
	Password string
}

// RegistryTransport moves JSON messages to and from the Registry.
// Implementations return apperror ProtocolFailure for non-success statuses.
type RegistryTransport interface {
	// Post sends body as JSON to path and decodes the response into out (nil to discard).
	Post(ctx context.Context, path string, body any, out any) error
	// PostAuth is Post on behalf of the account in auth.
	PostAuth(ctx context.Context, path string, auth BasicAuth, body any, out any) error
	// Get fetches path and returns the raw response body.
	Get(ctx context.Context, path string) ([]byte, error)
}

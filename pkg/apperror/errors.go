package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError for callers that branch on failure type.
type Kind string

const (
	KindArgument     Kind = "ARGUMENT"
	KindCrypto       Kind = "CRYPTO"
	KindProtocol     Kind = "PROTOCOL"
	KindInsufficient Kind = "INSUFFICIENT_VOUCHERS"
	KindGateway      Kind = "GATEWAY"
	KindInternal     Kind = "INTERNAL"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code           string `json:"error_code"`
	Message        string `json:"message"`
	Kind           Kind   `json:"-"`
	HTTPStatus     int    `json:"-"`
	UpstreamStatus int    `json:"-"` // Registry status for PROTOCOL errors
	Err            error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Kind:       kindOf(code),
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		Kind:       kindOf(code),
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// IsKind reports whether err (or anything it wraps) is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

func kindOf(code string) Kind {
	if len(code) < 3 {
		return KindInternal
	}
	switch code[:3] {
	case "ARG":
		return KindArgument
	case "CRY":
		return KindCrypto
	case "PRO":
		return KindProtocol
	case "VCH":
		return KindInsufficient
	case "GTW", "AUT", "RAT":
		return KindGateway
	default:
		return KindInternal
	}
}

// ---- Caller arguments (ARG) ----

func ErrInvalidArgument(message string) *AppError {
	return New("ARG_001", message, http.StatusBadRequest)
}

// ErrKeyRole reports a public key passed where a private key is required, or vice versa.
func ErrKeyRole(message string) *AppError {
	return New("ARG_002", message, http.StatusBadRequest)
}

func ErrNonceReused() *AppError {
	return New("ARG_003", "Nonce has already been used", http.StatusConflict)
}

// ---- Cryptography (CRY) ----

func ErrCrypto(message string, err error) *AppError {
	return Wrap("CRY_001", message, http.StatusBadGateway, err)
}

// ---- Registry protocol (PRO) ----

// ErrProtocol reports a non-success status returned by the Registry for operation op.
func ErrProtocol(op string, status int) *AppError {
	e := New("PRO_001", fmt.Sprintf("Registry %s failed with status %d", op, status), http.StatusBadGateway)
	e.UpstreamStatus = status
	return e
}

// ErrTransport reports a Registry call that never produced a status (network, TLS, timeout).
func ErrTransport(op string, err error) *AppError {
	return Wrap("PRO_002", fmt.Sprintf("Registry %s unreachable", op), http.StatusBadGateway, err)
}

// ErrMalformedResponse reports a success status whose body could not be decoded.
func ErrMalformedResponse(op string, err error) *AppError {
	return Wrap("PRO_003", fmt.Sprintf("Registry %s returned a malformed body", op), http.StatusBadGateway, err)
}

// ---- Vouchers (VCH) ----

func ErrInsufficientVouchers(required, available int) *AppError {
	return New("VCH_001",
		fmt.Sprintf("Payment requires %d vouchers, only %d satisfy its filter", required, available),
		http.StatusConflict)
}

// ---- Gateway (GTW / AUTH / RATE) ----

func ErrInvalidCredentials() *AppError {
	return New("AUTH_001", "Invalid credentials", http.StatusUnauthorized)
}

func ErrInvalidToken() *AppError {
	return New("AUTH_003", "Invalid or expired token", http.StatusUnauthorized)
}

func ErrRateLimitExceeded() *AppError {
	return New("RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
}

// ErrFeatureDisabled reports a gateway route whose role (instrument, POS) is not configured.
func ErrFeatureDisabled(feature string) *AppError {
	return New("GTW_001", fmt.Sprintf("%s is not configured on this gateway", feature), http.StatusNotImplemented)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap("SYS_001", "Internal database error", http.StatusInternalServerError, err)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns an ARG_001-style validation error for malformed gateway input.
func Validation(message string) *AppError {
	return New("ARG_001", message, http.StatusBadRequest)
}

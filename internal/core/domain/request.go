package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// VoucherRequest is the handle produced by a completed issuance handshake.
// It is handed to the voucher receiver, who redeems it once.
type VoucherRequest struct {
	Otc      uuid.UUID `json:"otc"`
	Password string    `json:"password"`
	Link     string    `json:"link"`
}

// NewVoucherRequest builds the handle for an issuance accepted by the Registry at domain.
func NewVoucherRequest(domain string, otc uuid.UUID, password string) *VoucherRequest {
	return &VoucherRequest{
		Otc:      otc,
		Password: password,
		Link:     fmt.Sprintf("https://%s/vouchers/%s", domain, CompactUUID(otc)),
	}
}

// PaymentRequest is the handle produced by a completed payment registration.
type PaymentRequest struct {
	Otc      uuid.UUID `json:"otc"`
	Password string    `json:"password"`
	Link     string    `json:"link"`
}

// NewPaymentRequest builds the handle for a payment accepted by the Registry at domain.
func NewPaymentRequest(domain string, otc uuid.UUID, password string) *PaymentRequest {
	return &PaymentRequest{
		Otc:      otc,
		Password: password,
		Link:     fmt.Sprintf("https://%s/payment/%s", domain, CompactUUID(otc)),
	}
}

// CompactUUID formats u as 32 lowercase hex digits without dashes.
func CompactUUID(u uuid.UUID) string {
	return strings.ReplaceAll(u.String(), "-", "")
}

// NewNonce returns a fresh random nonce in compact form.
func NewNonce() string {
	return CompactUUID(uuid.New())
}

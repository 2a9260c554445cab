package dto

import (
	"time"

	"wom-connector/internal/core/domain"

	"github.com/google/uuid"
)

// LoginRequest is the request body for operator login.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64"`
	Password string `json:"password" binding:"required,max=128" sanitize:"-"`
}

// LoginResponse is the response body for successful login.
type LoginResponse struct {
	Token  string `json:"token"`
	Expiry int64  `json:"expiry"` // Unix timestamp
}

// VoucherSpec describes one batch of identical vouchers to issue.
type VoucherSpec struct {
	Aim          string     `json:"aim" binding:"required,max=16,safe_id"`
	Latitude     float64    `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude    float64    `json:"longitude" binding:"gte=-180,lte=180"`
	Timestamp    *time.Time `json:"timestamp,omitempty"`
	Count        int        `json:"count" binding:"gte=0,lte=10000"`
	CreationMode string     `json:"creation_mode,omitempty" binding:"omitempty,oneof=Standard SetLocationOnRedeem"`
}

// IssueVouchersRequest is the request body for voucher issuance.
type IssueVouchersRequest struct {
	Vouchers []VoucherSpec `json:"vouchers" binding:"required,min=1,max=100,dive"`
	Nonce    string        `json:"nonce,omitempty" binding:"omitempty,max=64,safe_id"`
	Password string        `json:"password,omitempty" binding:"omitempty,max=32" sanitize:"-"`
}

// RegisterPaymentRequest is the request body for payment registration.
type RegisterPaymentRequest struct {
	Amount       int                  `json:"amount" binding:"required,gt=0"`
	PocketAckURL string               `json:"pocket_ack_url" binding:"required,safe_url"`
	PosAckURL    string               `json:"pos_ack_url,omitempty" binding:"omitempty,safe_url"`
	Filter       *domain.SimpleFilter `json:"filter,omitempty"`
	Persistent   bool                 `json:"persistent"`
	Nonce        string               `json:"nonce,omitempty" binding:"omitempty,max=64,safe_id"`
	Password     string               `json:"password,omitempty" binding:"omitempty,max=32" sanitize:"-"`
}

// HandleResponse is the OTC handle returned by issuance and registration.
type HandleResponse struct {
	Otc      string `json:"otc"`
	Password string `json:"password"`
	Link     string `json:"link"`
}

// Location is a WGS 84 position supplied when redeeming.
type Location struct {
	Latitude  float64 `json:"latitude" binding:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" binding:"gte=-180,lte=180"`
}

// CollectRequest is the request body for redeeming vouchers into the gateway pocket.
type CollectRequest struct {
	Otc      string    `json:"otc" binding:"required,uuid"`
	Password string    `json:"password" binding:"required,max=32" sanitize:"-"`
	Location *Location `json:"location,omitempty"`
}

// CollectResponse reports a redemption.
type CollectResponse struct {
	Received int `json:"received"`
	Held     int `json:"held"`
}

// PayRequest is the request body for paying from the gateway pocket.
type PayRequest struct {
	Otc      string `json:"otc" binding:"required,uuid"`
	Password string `json:"password" binding:"required,max=32" sanitize:"-"`
}

// PayResponse carries the acknowledgment URL returned by the Registry.
type PayResponse struct {
	AckURL string `json:"ack_url"`
}

// VoucherResponse is a held voucher without its secret.
type VoucherResponse struct {
	ID        string  `json:"id"`
	Aim       string  `json:"aim"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp string  `json:"timestamp"`
}

// PaymentStatusResponse is the POS view of a registered payment.
type PaymentStatusResponse struct {
	Otc              string   `json:"otc"`
	Persistent       bool     `json:"persistent"`
	HasBeenPerformed bool     `json:"has_been_performed"`
	PerformedAt      []string `json:"performed_at"`
}

// ToVoucherSpecs converts the request batches, defaulting the timestamp to now.
func (r IssueVouchersRequest) ToVoucherSpecs(now time.Time) []domain.VoucherSpec {
	specs := make([]domain.VoucherSpec, 0, len(r.Vouchers))
	for _, v := range r.Vouchers {
		ts := now
		if v.Timestamp != nil {
			ts = *v.Timestamp
		}
		specs = append(specs, domain.VoucherSpec{
			Aim:          v.Aim,
			Latitude:     v.Latitude,
			Longitude:    v.Longitude,
			Timestamp:    ts.UTC(),
			Count:        v.Count,
			CreationMode: domain.CreationMode(v.CreationMode),
		})
	}
	return specs
}

// NewHandleResponse renders an OTC handle.
func NewHandleResponse(otc uuid.UUID, password, link string) HandleResponse {
	return HandleResponse{Otc: otc.String(), Password: password, Link: link}
}

// NewVoucherResponses renders held vouchers, dropping their secrets.
func NewVoucherResponses(vouchers []domain.Voucher) []VoucherResponse {
	out := make([]VoucherResponse, 0, len(vouchers))
	for _, v := range vouchers {
		out = append(out, VoucherResponse{
			ID:        v.ID.String(),
			Aim:       v.Aim,
			Latitude:  v.Latitude,
			Longitude: v.Longitude,
			Timestamp: v.Timestamp.Format(time.RFC3339),
		})
	}
	return out
}

// NewPaymentStatusResponse renders a Registry payment status.
func NewPaymentStatusResponse(otc uuid.UUID, s *domain.PaymentStatus) PaymentStatusResponse {
	performed := make([]string, 0, len(s.Confirmations))
	for _, c := range s.Confirmations {
		performed = append(performed, c.PerformedAt.UTC().Format(time.RFC3339))
	}
	return PaymentStatusResponse{
		Otc:              otc.String(),
		Persistent:       s.Persistent,
		HasBeenPerformed: s.HasBeenPerformed,
		PerformedAt:      performed,
	}
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Registry wire messages. Request bodies carry their confidential part as an
// encrypted "payload"; the *Content types are what the payload decodes to.

// Envelope is a message whose only field is an encrypted payload.
type Envelope struct {
	Payload string `json:"payload"`
}

// ---- voucher/create ----

type VoucherCreateRequest struct {
	SourceID Identifier `json:"sourceId"`
	Nonce    string     `json:"nonce"`
	Payload  string     `json:"payload"`
}

type VoucherCreateContent struct {
	SourceID Identifier          `json:"sourceId"`
	Nonce    string              `json:"nonce"`
	Password string              `json:"password,omitempty"`
	Vouchers []VoucherCreateInfo `json:"vouchers"`
}

type VoucherCreateInfo struct {
	Aim          string       `json:"aim"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Timestamp    time.Time    `json:"timestamp"`
	Count        int          `json:"count"`
	CreationMode CreationMode `json:"creationMode"`
}

// TransferResponseContent answers voucher/create and payment/register.
type TransferResponseContent struct {
	RegistryURL string    `json:"registryUrl"`
	Nonce       string    `json:"nonce"`
	Otc         uuid.UUID `json:"otc"`
	Password    string    `json:"password"`
	Link        string    `json:"link,omitempty"`
	Count       int       `json:"count,omitempty"`
}

// OtcContent is the body of voucher/verify and payment/verify.
type OtcContent struct {
	Otc uuid.UUID `json:"otc"`
}

// ---- voucher/redeem ----

type VoucherRedeemContent struct {
	Otc            uuid.UUID  `json:"otc"`
	Password       string     `json:"password"`
	SessionKey     string     `json:"sessionKey"`
	RedeemLocation *GeoCoords `json:"redeemLocation,omitempty"`
}

type VoucherRedeemResponseContent struct {
	SourceID   Identifier `json:"sourceId"`
	SourceName string     `json:"sourceName"`
	Vouchers   []Voucher  `json:"vouchers"`
}

// ---- payment/register ----

type PaymentRegisterRequest struct {
	PosID   Identifier `json:"posId"`
	Nonce   string     `json:"nonce"`
	Payload string     `json:"payload"`
}

type PaymentRegisterContent struct {
	PosID        Identifier    `json:"posId"`
	Nonce        string        `json:"nonce"`
	Password     string        `json:"password,omitempty"`
	Amount       int           `json:"amount"`
	SimpleFilter *SimpleFilter `json:"simpleFilter,omitempty"`
	PocketAckURL string        `json:"pocketAckUrl"`
	PosAckURL    string        `json:"posAckUrl,omitempty"`
	Persistent   bool          `json:"persistent"`
}

// ---- payment/info ----

// SessionContent opens a payment/info exchange answered under SessionKey.
type SessionContent struct {
	Otc        uuid.UUID `json:"otc"`
	Password   string    `json:"password"`
	SessionKey string    `json:"sessionKey"`
}

type PaymentInfoResponseContent struct {
	PosID        Identifier    `json:"posId"`
	PosName      string        `json:"posName"`
	Amount       int           `json:"amount"`
	SimpleFilter *SimpleFilter `json:"simpleFilter,omitempty"`
	Persistent   bool          `json:"persistent"`
}

// ---- payment/confirm ----

type PaymentConfirmContent struct {
	Otc        uuid.UUID      `json:"otc"`
	Password   string         `json:"password"`
	SessionKey string         `json:"sessionKey"`
	Vouchers   []VoucherProof `json:"vouchers"`
}

type PaymentConfirmResponseContent struct {
	AckURL string `json:"ackUrl"`
}

// ---- payment/status ----

type PaymentStatusRequest struct {
	PosID   Identifier `json:"posId"`
	Payload string     `json:"payload"`
}

type PaymentStatusContent struct {
	PosID Identifier `json:"posId"`
	Otc   uuid.UUID  `json:"otc"`
}

// PaymentStatus is what the Registry reports about a registered payment.
type PaymentStatus struct {
	Persistent       bool                  `json:"persistent"`
	HasBeenPerformed bool                  `json:"hasBeenPerformed"`
	Confirmations    []PaymentConfirmation `json:"confirmations"`
}

type PaymentConfirmation struct {
	PerformedAt time.Time `json:"performedAt"`
}

// PaymentInfo describes a payment as seen by the paying Pocket.
type PaymentInfo struct {
	PosID      Identifier
	PosName    string
	Amount     int
	Filter     *SimpleFilter
	Persistent bool
}

// AimList is the body of GET v2/aims.
type AimList struct {
	Aims []Aim `json:"aims"`
}

package domain

import "time"

// Voucher is a spendable voucher held in a Pocket. Identity is ID only.
type Voucher struct {
	ID        Identifier `json:"id"`
	Secret    string     `json:"secret"`
	Aim       string     `json:"aim"`
	Latitude  float64    `json:"latitude"`
	Longitude float64    `json:"longitude"`
	Timestamp time.Time  `json:"timestamp"`
}

// NewVoucher builds a Voucher, normalizing its timestamp to UTC.
func NewVoucher(id Identifier, secret, aim string, latitude, longitude float64, timestamp time.Time) Voucher {
	return Voucher{
		ID:        id,
		Secret:    secret,
		Aim:       aim,
		Latitude:  latitude,
		Longitude: longitude,
		Timestamp: timestamp.UTC(),
	}
}

// Proof returns the id/secret pair presented to the Registry when spending.
func (v Voucher) Proof() VoucherProof {
	return VoucherProof{ID: v.ID, Secret: v.Secret}
}

// VoucherProof identifies a voucher being spent.
type VoucherProof struct {
	ID     Identifier `json:"id"`
	Secret string     `json:"secret"`
}

// CreationMode controls when the Registry fixes a voucher's location.
type CreationMode string

const (
	CreationModeStandard            CreationMode = "Standard"
	CreationModeSetLocationOnRedeem CreationMode = "SetLocationOnRedeem"
)

// VoucherSpec describes a batch of identical vouchers to issue.
type VoucherSpec struct {
	Aim          string       `json:"aim"`
	Latitude     float64      `json:"latitude"`
	Longitude    float64      `json:"longitude"`
	Timestamp    time.Time    `json:"timestamp"`
	Count        int          `json:"count"`
	CreationMode CreationMode `json:"creationMode"`
}

// GeoCoords is a WGS 84 position.
type GeoCoords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Aim is an entry of the Registry's aim catalogue.
type Aim struct {
	Code   string            `json:"code"`
	Titles map[string]string `json:"titles"`
	Order  int               `json:"order"`
}

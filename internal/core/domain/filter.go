package domain

import (
	"math"
	"strings"
	"time"
)

// SimpleFilter constrains which vouchers can satisfy a payment.
// Every non-nil clause must hold.
type SimpleFilter struct {
	Aim    *string `json:"aim,omitempty"`    // aim code prefix
	Bounds *Bounds `json:"bounds,omitempty"` // geographic rectangle
	MaxAge *int64  `json:"maxAge,omitempty"` // days
}

// Bounds is a rectangle given by two opposite [lat, lng] corners.
type Bounds struct {
	LeftTop     [2]float64 `json:"leftTop"`
	RightBottom [2]float64 `json:"rightBottom"`
}

// Contains reports whether (lat, lng) lies inside the rectangle, edges included.
// The corners may be given in either order.
func (b Bounds) Contains(lat, lng float64) bool {
	minLat := math.Min(b.LeftTop[0], b.RightBottom[0])
	maxLat := math.Max(b.LeftTop[0], b.RightBottom[0])
	minLng := math.Min(b.LeftTop[1], b.RightBottom[1])
	maxLng := math.Max(b.LeftTop[1], b.RightBottom[1])

	return lat >= minLat && lat <= maxLat && lng >= minLng && lng <= maxLng
}

// maxAgeDays is the largest age in days a time.Duration can hold; larger
// limits accept every voucher.
const maxAgeDays = int64(math.MaxInt64 / int64(24*time.Hour))

// Matches evaluates the filter against v at instant now. A nil filter matches every voucher.
func (f *SimpleFilter) Matches(v Voucher, now time.Time) bool {
	if f == nil {
		return true
	}
	if f.Aim != nil && !strings.HasPrefix(v.Aim, *f.Aim) {
		return false
	}
	if f.Bounds != nil && !f.Bounds.Contains(v.Latitude, v.Longitude) {
		return false
	}
	if f.MaxAge != nil && *f.MaxAge < maxAgeDays && now.Sub(v.Timestamp) > time.Duration(*f.MaxAge)*24*time.Hour {
		return false
	}
	return true
}

// MatchVouchers returns the vouchers satisfying f, preserving input order.
func MatchVouchers(f *SimpleFilter, vouchers []Voucher, now time.Time) []Voucher {
	matched := make([]Voucher, 0, len(vouchers))
	for _, v := range vouchers {
		if f.Matches(v, now) {
			matched = append(matched, v)
		}
	}
	return matched
}

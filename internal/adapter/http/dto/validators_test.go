package dto

import (
	"testing"
	"time"

	"wom-connector/internal/core/domain"

	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeStruct_TrimsWhitespaceButNotPasswords(t *testing.T) {
	req := LoginRequest{
		Username: "  alice  ",
		Password: "  p&ss <1234>  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "alice", req.Username)
	assert.Equal(t, "  p&ss <1234>  ", req.Password)
}

func TestSanitizeStruct_EscapesHTML(t *testing.T) {
	req := RegisterPaymentRequest{
		Amount:       1,
		PocketAckURL: " https://shop.example.org/<script>  ",
	}
	SanitizeStruct(&req)

	assert.Equal(t, "https://shop.example.org/&lt;script&gt;", req.PocketAckURL)
}

func TestSanitizeStruct_NonPointerIsNoOp(t *testing.T) {
	s := "hello"
	SanitizeStruct(s) // should not panic
}

func TestSafeID(t *testing.T) {
	for _, tc := range []string{"E", "src-1_nonce", "a.b.c", "ABC-def_GHI.123"} {
		assert.True(t, safeStringRe.MatchString(tc), "expected valid: %s", tc)
	}
	for _, tc := range []string{"ref 001", "ref<001>", "ref;DROP", "", "ref\n001"} {
		assert.False(t, safeStringRe.MatchString(tc), "expected invalid: %s", tc)
	}
}

func TestBinding_RegisterPaymentRequest(t *testing.T) {
	valid := RegisterPaymentRequest{Amount: 2, PocketAckURL: "https://shop.example.org/thanks"}
	require.NoError(t, binding.Validator.ValidateStruct(&valid))

	tests := []struct {
		name string
		req  RegisterPaymentRequest
	}{
		{"zero amount", RegisterPaymentRequest{Amount: 0, PocketAckURL: "https://a.org"}},
		{"missing ack url", RegisterPaymentRequest{Amount: 1}},
		{"ftp ack url", RegisterPaymentRequest{Amount: 1, PocketAckURL: "ftp://a.org/x"}},
		{"relative ack url", RegisterPaymentRequest{Amount: 1, PocketAckURL: "/thanks"}},
		{"nonce with spaces", RegisterPaymentRequest{Amount: 1, PocketAckURL: "https://a.org", Nonce: "a b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, binding.Validator.ValidateStruct(&tt.req))
		})
	}
}

func TestBinding_IssueVouchersRequest(t *testing.T) {
	valid := IssueVouchersRequest{Vouchers: []VoucherSpec{{Aim: "H", Latitude: 43.7, Longitude: 12.6, Count: 5}}}
	require.NoError(t, binding.Validator.ValidateStruct(&valid))

	tests := []struct {
		name string
		req  IssueVouchersRequest
	}{
		{"no batches", IssueVouchersRequest{}},
		{"missing aim", IssueVouchersRequest{Vouchers: []VoucherSpec{{Count: 1}}}},
		{"latitude out of range", IssueVouchersRequest{Vouchers: []VoucherSpec{{Aim: "H", Latitude: 91}}}},
		{"negative count", IssueVouchersRequest{Vouchers: []VoucherSpec{{Aim: "H", Count: -1}}}},
		{"unknown mode", IssueVouchersRequest{Vouchers: []VoucherSpec{{Aim: "H", CreationMode: "Later"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, binding.Validator.ValidateStruct(&tt.req))
		})
	}
}

func TestToVoucherSpecs(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	fixed := time.Date(2024, 5, 1, 8, 0, 0, 0, time.FixedZone("CET", 3600))
	req := IssueVouchersRequest{Vouchers: []VoucherSpec{
		{Aim: "E", Count: 2},
		{Aim: "H", Timestamp: &fixed, CreationMode: "SetLocationOnRedeem"},
	}}

	specs := req.ToVoucherSpecs(now)
	require.Len(t, specs, 2)
	assert.Equal(t, now, specs[0].Timestamp)
	assert.Equal(t, 2, specs[0].Count)
	assert.Equal(t, fixed.UTC(), specs[1].Timestamp)
	assert.Equal(t, domain.CreationModeSetLocationOnRedeem, specs[1].CreationMode)
}

func TestNewVoucherResponses_DropsSecrets(t *testing.T) {
	v := domain.NewVoucher(domain.MustIdentifier("42"), "top-secret", "E", 1, 2, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))

	out := NewVoucherResponses([]domain.Voucher{v})
	require.Len(t, out, 1)
	assert.Equal(t, VoucherResponse{ID: "42", Aim: "E", Latitude: 1, Longitude: 2, Timestamp: "2024-01-02T03:04:05Z"}, out[0])
}

func TestNewPaymentStatusResponse(t *testing.T) {
	otc := uuid.New()
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	out := NewPaymentStatusResponse(otc, &domain.PaymentStatus{
		Persistent:       true,
		HasBeenPerformed: true,
		Confirmations:    []domain.PaymentConfirmation{{PerformedAt: at}},
	})
	assert.Equal(t, otc.String(), out.Otc)
	assert.Equal(t, []string{"2024-01-02T03:04:05Z"}, out.PerformedAt)
}

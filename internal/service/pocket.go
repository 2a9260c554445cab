package service

import (
	"context"
	"encoding/base64"
	"time"

	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Pocket holds vouchers and spends them.
//
// A Pocket is not safe for concurrent use: callers sharing one across
// goroutines must serialize CollectVouchers and the Pay operations.
type Pocket struct {
	client *Client
	log    zerolog.Logger
	now    func() time.Time

	vouchers map[domain.Identifier]domain.Voucher
	order    []domain.Identifier
}

// VoucherCount returns the number of vouchers in the ledger.
func (p *Pocket) VoucherCount() int {
	return len(p.vouchers)
}

// Vouchers returns a copy of the ledger in insertion order.
func (p *Pocket) Vouchers() []domain.Voucher {
	out := make([]domain.Voucher, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, p.vouchers[id])
	}
	return out
}

// AddVouchers inserts vouchers, ignoring ids already held.
// It reports whether the ledger changed.
func (p *Pocket) AddVouchers(vouchers []domain.Voucher) bool {
	changed := false
	for _, v := range vouchers {
		if v.ID.IsZero() {
			continue
		}
		if _, ok := p.vouchers[v.ID]; ok {
			continue
		}
		v.Timestamp = v.Timestamp.UTC()
		p.vouchers[v.ID] = v
		p.order = append(p.order, v.ID)
		changed = true
	}
	return changed
}

func (p *Pocket) removeVouchers(spent []domain.Voucher) {
	gone := make(map[domain.Identifier]struct{}, len(spent))
	for _, v := range spent {
		delete(p.vouchers, v.ID)
		gone[v.ID] = struct{}{}
	}

	kept := p.order[:0]
	for _, id := range p.order {
		if _, ok := gone[id]; !ok {
			kept = append(kept, id)
		}
	}
	p.order = kept
}

// CollectVouchers redeems the vouchers behind otc into the ledger and returns them.
func (p *Pocket) CollectVouchers(ctx context.Context, otc uuid.UUID, password string) ([]domain.Voucher, error) {
	return p.collect(ctx, otc, password, nil)
}

// CollectVouchersAt redeems vouchers whose location is fixed at redemption time
// (creation mode SetLocationOnRedeem) at the given position.
func (p *Pocket) CollectVouchersAt(ctx context.Context, otc uuid.UUID, password string, location domain.GeoCoords) ([]domain.Voucher, error) {
	return p.collect(ctx, otc, password, &location)
}

func (p *Pocket) collect(ctx context.Context, otc uuid.UUID, password string, location *domain.GeoCoords) ([]domain.Voucher, error) {
	if otc == uuid.Nil {
		return nil, apperror.ErrInvalidArgument("otc must not be empty")
	}

	sessionKey, err := p.client.envelope.GenerateSessionKey()
	if err != nil {
		return nil, err
	}

	var content domain.VoucherRedeemResponseContent
	if err := p.exchange(ctx, ports.PathVoucherRedeem, domain.VoucherRedeemContent{
		Otc:            otc,
		Password:       password,
		SessionKey:     base64.StdEncoding.EncodeToString(sessionKey),
		RedeemLocation: location,
	}, sessionKey, &content); err != nil {
		return nil, err
	}

	before := len(p.vouchers)
	p.AddVouchers(content.Vouchers)

	p.log.Info().
		Str("source_id", content.SourceID.String()).
		Str("source_name", content.SourceName).
		Int("received", len(content.Vouchers)).
		Int("added", len(p.vouchers)-before).
		Msg("Vouchers collected")

	return content.Vouchers, nil
}

// GetPaymentInfo asks the Registry what the payment behind otc requires.
func (p *Pocket) GetPaymentInfo(ctx context.Context, otc uuid.UUID, password string) (*domain.PaymentInfo, error) {
	if otc == uuid.Nil {
		return nil, apperror.ErrInvalidArgument("otc must not be empty")
	}

	sessionKey, err := p.client.envelope.GenerateSessionKey()
	if err != nil {
		return nil, err
	}

	var content domain.PaymentInfoResponseContent
	if err := p.exchange(ctx, ports.PathPaymentInfo, domain.SessionContent{
		Otc:        otc,
		Password:   password,
		SessionKey: base64.StdEncoding.EncodeToString(sessionKey),
	}, sessionKey, &content); err != nil {
		return nil, err
	}

	return &domain.PaymentInfo{
		PosID:      content.PosID,
		PosName:    content.PosName,
		Amount:     content.Amount,
		Filter:     content.SimpleFilter,
		Persistent: content.Persistent,
	}, nil
}

// PayWithMatchingVouchers settles the payment behind otc with the first
// vouchers, in ledger order, that satisfy its filter. The spent vouchers are
// removed only once the Registry confirms the payment; on any failure the
// ledger is unchanged.
func (p *Pocket) PayWithMatchingVouchers(ctx context.Context, otc uuid.UUID, password string) (string, error) {
	ackURL, _, err := p.payMatching(ctx, otc, password)
	return ackURL, err
}

// payMatching is PayWithMatchingVouchers that also returns the spent vouchers.
func (p *Pocket) payMatching(ctx context.Context, otc uuid.UUID, password string) (string, []domain.Voucher, error) {
	info, err := p.GetPaymentInfo(ctx, otc, password)
	if err != nil {
		return "", nil, err
	}

	selected, err := p.SelectVouchers(info.Filter, info.Amount)
	if err != nil {
		p.log.Error().
			Str("otc", otc.String()).
			Int("required", info.Amount).
			Int("held", len(p.vouchers)).
			Msg("Not enough matching vouchers")
		return "", nil, err
	}

	ackURL, err := p.Pay(ctx, otc, password, selected)
	if err != nil {
		return "", nil, err
	}

	p.removeVouchers(selected)

	p.log.Info().
		Str("otc", otc.String()).
		Str("pos_name", info.PosName).
		Int("spent", len(selected)).
		Int("remaining", len(p.vouchers)).
		Msg("Payment performed")

	return ackURL, selected, nil
}

// SelectVouchers returns the first amount ledger vouchers matching filter.
func (p *Pocket) SelectVouchers(filter *domain.SimpleFilter, amount int) ([]domain.Voucher, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidArgument("payment amount must be positive")
	}

	matched := domain.MatchVouchers(filter, p.Vouchers(), p.now())
	if len(matched) < amount {
		return nil, apperror.ErrInsufficientVouchers(amount, len(matched))
	}
	return matched[:amount], nil
}

// Pay confirms the payment behind otc with the given vouchers and returns the
// acknowledgment URL. The vouchers need not be in the ledger, and the ledger is
// never modified.
func (p *Pocket) Pay(ctx context.Context, otc uuid.UUID, password string, vouchers []domain.Voucher) (string, error) {
	if otc == uuid.Nil {
		return "", apperror.ErrInvalidArgument("otc must not be empty")
	}
	if len(vouchers) == 0 {
		return "", apperror.ErrInvalidArgument("at least one voucher is required")
	}

	proofs := make([]domain.VoucherProof, 0, len(vouchers))
	for _, v := range vouchers {
		proofs = append(proofs, v.Proof())
	}

	sessionKey, err := p.client.envelope.GenerateSessionKey()
	if err != nil {
		return "", err
	}

	var content domain.PaymentConfirmResponseContent
	if err := p.exchange(ctx, ports.PathPaymentConfirm, domain.PaymentConfirmContent{
		Otc:        otc,
		Password:   password,
		SessionKey: base64.StdEncoding.EncodeToString(sessionKey),
		Vouchers:   proofs,
	}, sessionKey, &content); err != nil {
		return "", err
	}

	return content.AckURL, nil
}

// exchange sends content encrypted for the Registry and opens the reply,
// which the Registry encrypts under sessionKey.
func (p *Pocket) exchange(ctx context.Context, path string, content any, sessionKey []byte, out any) error {
	registryKey, err := p.client.RegistryPublicKey(ctx)
	if err != nil {
		return err
	}

	payload, err := p.client.envelope.Encrypt(content, registryKey)
	if err != nil {
		return err
	}

	p.log.Debug().Str("path", path).Msg("Sending session request")

	var resp domain.Envelope
	if err := p.client.transport.Post(ctx, path, domain.Envelope{Payload: payload}, &resp); err != nil {
		return err
	}
	return p.client.envelope.SessionDecrypt(resp.Payload, sessionKey, out)
}

package service

import (
	"context"
	"strings"

	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PointOfSale registers payments that Pockets can settle.
type PointOfSale struct {
	client *Client
	id     domain.Identifier
	key    *domain.AsymmetricKey
	log    zerolog.Logger
}

// ID returns the POS id.
func (p *PointOfSale) ID() domain.Identifier {
	return p.id
}

// RequestPayment runs the register and verify phases of a payment.
func (p *PointOfSale) RequestPayment(ctx context.Context, params ports.PaymentParams) (*domain.PaymentRequest, error) {
	if params.Amount <= 0 {
		return nil, apperror.ErrInvalidArgument("amount must be positive")
	}
	if strings.TrimSpace(params.PocketAckURL) == "" {
		return nil, apperror.ErrInvalidArgument("pocket acknowledgment URL must not be empty")
	}

	registryKey, err := p.client.RegistryPublicKey(ctx)
	if err != nil {
		return nil, err
	}
	nonce, err := p.client.nonce(ctx, p.id, params.Nonce)
	if err != nil {
		return nil, err
	}

	payload, err := p.client.envelope.Encrypt(domain.PaymentRegisterContent{
		PosID:        p.id,
		Nonce:        nonce,
		Password:     params.Password,
		Amount:       params.Amount,
		SimpleFilter: params.Filter,
		PocketAckURL: params.PocketAckURL,
		PosAckURL:    params.PosAckURL,
		Persistent:   params.Persistent,
	}, registryKey)
	if err != nil {
		return nil, err
	}

	p.log.Debug().Str("nonce", nonce).Int("amount", params.Amount).Msg("Registering payment")

	var registered domain.Envelope
	if err := p.client.transport.Post(ctx, ports.PathPaymentRegister, domain.PaymentRegisterRequest{
		PosID:   p.id,
		Nonce:   nonce,
		Payload: payload,
	}, &registered); err != nil {
		return nil, err
	}

	var content domain.TransferResponseContent
	if err := p.client.envelope.Decrypt(registered.Payload, p.key, &content); err != nil {
		return nil, err
	}

	verify, err := p.client.envelope.Encrypt(domain.OtcContent{Otc: content.Otc}, registryKey)
	if err != nil {
		return nil, err
	}
	if err := p.client.transport.Post(ctx, ports.PathPaymentVerify, domain.Envelope{Payload: verify}, nil); err != nil {
		p.log.Warn().Err(err).Str("otc", content.Otc.String()).Msg("Payment verification failed, OTC discarded")
		return nil, err
	}

	p.log.Info().
		Str("otc", content.Otc.String()).
		Int("amount", params.Amount).
		Bool("persistent", params.Persistent).
		Msg("Payment registered")

	return domain.NewPaymentRequest(p.client.domain, content.Otc, content.Password), nil
}

// GetPaymentStatus asks the Registry whether the payment identified by otc was performed.
func (p *PointOfSale) GetPaymentStatus(ctx context.Context, otc uuid.UUID) (*domain.PaymentStatus, error) {
	if otc == uuid.Nil {
		return nil, apperror.ErrInvalidArgument("otc must not be empty")
	}

	registryKey, err := p.client.RegistryPublicKey(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := p.client.envelope.Encrypt(domain.PaymentStatusContent{PosID: p.id, Otc: otc}, registryKey)
	if err != nil {
		return nil, err
	}

	var resp domain.PaymentStatusRequest
	if err := p.client.transport.Post(ctx, ports.PathPaymentStatus, domain.PaymentStatusRequest{
		PosID:   p.id,
		Payload: payload,
	}, &resp); err != nil {
		return nil, err
	}

	var status domain.PaymentStatus
	if err := p.client.envelope.Decrypt(resp.Payload, p.key, &status); err != nil {
		return nil, err
	}

	p.log.Debug().
		Str("otc", otc.String()).
		Bool("performed", status.HasBeenPerformed).
		Int("confirmations", len(status.Confirmations)).
		Msg("Payment status retrieved")

	return &status, nil
}

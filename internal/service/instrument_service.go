package service

import (
	"context"
	"fmt"
	"strings"

	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"

	"github.com/rs/zerolog"
)

// Instrument issues vouchers on behalf of a source.
type Instrument struct {
	client *Client
	id     domain.Identifier
	key    *domain.AsymmetricKey
	log    zerolog.Logger
}

// ID returns the source id.
func (i *Instrument) ID() domain.Identifier {
	return i.id
}

// RequestVouchers runs the create and verify phases for a batch of vouchers.
// The returned request is only usable once both phases succeeded; a failed
// verify leaves the created OTC unusable.
func (i *Instrument) RequestVouchers(ctx context.Context, specs []domain.VoucherSpec, opts ports.IssueOptions) (*domain.VoucherRequest, error) {
	infos, err := voucherInfos(specs)
	if err != nil {
		return nil, err
	}

	registryKey, err := i.client.RegistryPublicKey(ctx)
	if err != nil {
		return nil, err
	}
	nonce, err := i.client.nonce(ctx, i.id, opts.Nonce)
	if err != nil {
		return nil, err
	}

	payload, err := i.client.envelope.Encrypt(domain.VoucherCreateContent{
		SourceID: i.id,
		Nonce:    nonce,
		Password: opts.Password,
		Vouchers: infos,
	}, registryKey)
	if err != nil {
		return nil, err
	}

	i.log.Debug().Str("nonce", nonce).Int("specs", len(infos)).Msg("Requesting voucher creation")

	var created domain.Envelope
	if err := i.client.transport.Post(ctx, ports.PathVoucherCreate, domain.VoucherCreateRequest{
		SourceID: i.id,
		Nonce:    nonce,
		Payload:  payload,
	}, &created); err != nil {
		return nil, err
	}

	var content domain.TransferResponseContent
	if err := i.client.envelope.Decrypt(created.Payload, i.key, &content); err != nil {
		return nil, err
	}

	i.log.Debug().Str("otc", content.Otc.String()).Msg("Voucher creation accepted, verifying")

	verify, err := i.client.envelope.Encrypt(domain.OtcContent{Otc: content.Otc}, registryKey)
	if err != nil {
		return nil, err
	}
	if err := i.client.transport.Post(ctx, ports.PathVoucherVerify, domain.Envelope{Payload: verify}, nil); err != nil {
		i.log.Warn().Err(err).Str("otc", content.Otc.String()).Msg("Voucher verification failed, OTC discarded")
		return nil, err
	}

	i.log.Info().
		Str("otc", content.Otc.String()).
		Int("count", totalCount(infos)).
		Msg("Vouchers issued")

	return domain.NewVoucherRequest(i.client.domain, content.Otc, content.Password), nil
}

func voucherInfos(specs []domain.VoucherSpec) ([]domain.VoucherCreateInfo, error) {
	if len(specs) == 0 {
		return nil, apperror.ErrInvalidArgument("at least one voucher spec is required")
	}

	infos := make([]domain.VoucherCreateInfo, 0, len(specs))
	for n, s := range specs {
		if strings.TrimSpace(s.Aim) == "" {
			return nil, apperror.ErrInvalidArgument(fmt.Sprintf("voucher spec %d: aim must not be empty", n))
		}
		if s.Count < 0 {
			return nil, apperror.ErrInvalidArgument(fmt.Sprintf("voucher spec %d: count must not be negative", n))
		}
		if s.Latitude < -90 || s.Latitude > 90 || s.Longitude < -180 || s.Longitude > 180 {
			return nil, apperror.ErrInvalidArgument(fmt.Sprintf("voucher spec %d: coordinates out of range", n))
		}

		count := s.Count
		if count == 0 {
			count = 1
		}
		mode := s.CreationMode
		if mode == "" {
			mode = domain.CreationModeStandard
		}

		infos = append(infos, domain.VoucherCreateInfo{
			Aim:          s.Aim,
			Latitude:     s.Latitude,
			Longitude:    s.Longitude,
			Timestamp:    s.Timestamp.UTC(),
			Count:        count,
			CreationMode: mode,
		})
	}
	return infos, nil
}

func totalCount(infos []domain.VoucherCreateInfo) int {
	total := 0
	for _, info := range infos {
		total += info.Count
	}
	return total
}

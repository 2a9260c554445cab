package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"
	"wom-connector/pkg/keyfile"
	"wom-connector/pkg/logger"

	"github.com/rs/zerolog"
)

// DefaultNonceTTL is how long a caller-supplied nonce is remembered.
const DefaultNonceTTL = 24 * time.Hour

// ClientConfig is the Registry a Client talks to.
type ClientConfig struct {
	Domain string
	// RegistryPublicKey may be nil, in which case it is fetched from the Registry on first use.
	RegistryPublicKey *domain.AsymmetricKey
}

// Client is the shared entry point for the Instrument, PointOfSale and Pocket roles.
// It owns the transport and the Registry's public key; it is safe for concurrent use.
type Client struct {
	domain    string
	transport ports.RegistryTransport
	envelope  *EnvelopeService
	log       zerolog.Logger

	nonces   ports.NonceStore
	nonceTTL time.Duration

	keyMu       sync.Mutex
	registryKey *domain.AsymmetricKey
}

// NewClient creates a Client. The transport is created by the caller and reused for the
// Client's lifetime.
func NewClient(cfg ClientConfig, transport ports.RegistryTransport, envelope *EnvelopeService, log zerolog.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Domain) == "" {
		return nil, apperror.ErrInvalidArgument("registry domain must not be empty")
	}
	if transport == nil {
		return nil, apperror.ErrInvalidArgument("registry transport must not be nil")
	}
	if cfg.RegistryPublicKey != nil && cfg.RegistryPublicKey.IsPrivate() {
		cfg.RegistryPublicKey = cfg.RegistryPublicKey.Public()
	}

	return &Client{
		domain:      cfg.Domain,
		transport:   transport,
		envelope:    envelope,
		log:         logger.Component(log, "client"),
		nonceTTL:    DefaultNonceTTL,
		registryKey: cfg.RegistryPublicKey,
	}, nil
}

// UseNonceStore makes the Client reject caller-supplied nonces it has already sent.
func (c *Client) UseNonceStore(store ports.NonceStore, ttl time.Duration) {
	c.nonces = store
	if ttl > 0 {
		c.nonceTTL = ttl
	}
}

// Domain returns the Registry domain.
func (c *Client) Domain() string {
	return c.domain
}

// Envelope returns the crypto engine used by the Client.
func (c *Client) Envelope() *EnvelopeService {
	return c.envelope
}

// RegistryPublicKey returns the configured Registry key, fetching it once from
// the Registry when none was configured. A failed fetch is retried on the next call.
func (c *Client) RegistryPublicKey(ctx context.Context) (*domain.AsymmetricKey, error) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()

	if c.registryKey != nil {
		return c.registryKey, nil
	}

	c.log.Debug().Msg("Fetching registry public key")
	raw, err := c.transport.Get(ctx, ports.PathAuthKey)
	if err != nil {
		return nil, err
	}
	key, err := keyfile.ParsePublicKey(raw)
	if err != nil {
		return nil, apperror.ErrMalformedResponse(ports.PathAuthKey, err)
	}

	c.registryKey = key
	c.log.Info().Int("key_bits", key.Size()*8).Msg("Registry public key loaded")
	return key, nil
}

// GetAims lists the aims known to the Registry.
func (c *Client) GetAims(ctx context.Context) ([]domain.Aim, error) {
	raw, err := c.transport.Get(ctx, ports.PathAims)
	if err != nil {
		return nil, err
	}

	var list domain.AimList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, apperror.ErrMalformedResponse(ports.PathAims, err)
	}
	return list.Aims, nil
}

// NewInstrument returns the issuing role for source id. key must be private.
func (c *Client) NewInstrument(id domain.Identifier, key *domain.AsymmetricKey) (*Instrument, error) {
	if id.IsZero() {
		return nil, apperror.ErrInvalidArgument("instrument id must not be empty")
	}
	if !key.IsPrivate() {
		return nil, apperror.ErrKeyRole("instrument key must be private")
	}
	return &Instrument{
		client: c,
		id:     id,
		key:    key,
		log:    logger.Component(c.log, "instrument").With().Str("source_id", id.String()).Logger(),
	}, nil
}

// NewPointOfSale returns the payee role for POS id. key must be private.
func (c *Client) NewPointOfSale(id domain.Identifier, key *domain.AsymmetricKey) (*PointOfSale, error) {
	if id.IsZero() {
		return nil, apperror.ErrInvalidArgument("pos id must not be empty")
	}
	if !key.IsPrivate() {
		return nil, apperror.ErrKeyRole("pos key must be private")
	}
	return &PointOfSale{
		client: c,
		id:     id,
		key:    key,
		log:    logger.Component(c.log, "pos").With().Str("pos_id", id.String()).Logger(),
	}, nil
}

// NewPocket returns an empty Pocket.
func (c *Client) NewPocket() *Pocket {
	return &Pocket{
		client:   c,
		vouchers: make(map[domain.Identifier]domain.Voucher),
		now:      time.Now,
		log:      logger.Component(c.log, "pocket"),
	}
}

// nonce returns supplied, or a fresh nonce when empty. Supplied nonces are
// checked against the nonce store, if any.
func (c *Client) nonce(ctx context.Context, senderID domain.Identifier, supplied string) (string, error) {
	if supplied == "" {
		return domain.NewNonce(), nil
	}
	if c.nonces == nil {
		return supplied, nil
	}

	fresh, err := c.nonces.CheckAndSet(ctx, senderID.String(), supplied, c.nonceTTL)
	if err != nil {
		return "", fmt.Errorf("checking nonce: %w", err)
	}
	if !fresh {
		return "", apperror.ErrNonceReused()
	}
	return supplied, nil
}

package service

import (
	"context"
	"fmt"
	"strings"

	"wom-connector/internal/core/domain"
	"wom-connector/internal/core/ports"
	"wom-connector/pkg/apperror"
	"wom-connector/pkg/keyfile"
)

func accountAuth(email, password string) (ports.BasicAuth, error) {
	if strings.TrimSpace(email) == "" {
		return ports.BasicAuth{}, apperror.ErrInvalidArgument("email must not be empty")
	}
	if password == "" {
		return ports.BasicAuth{}, apperror.ErrInvalidArgument("password must not be empty")
	}
	return ports.BasicAuth{Username: email, Password: password}, nil
}

// LoginAsMerchant returns the profile of a merchant account, including the
// key pairs of its points of sale.
func (c *Client) LoginAsMerchant(ctx context.Context, email, password string) (*domain.MerchantLogin, error) {
	auth, err := accountAuth(email, password)
	if err != nil {
		return nil, err
	}

	var out domain.MerchantLogin
	if err := c.transport.PostAuth(ctx, ports.PathMerchantLogin, auth, nil, &out); err != nil {
		return nil, err
	}
	c.log.Info().Str("email", out.Email).Int("merchants", len(out.Merchants)).Msg("Merchant logged in")
	return &out, nil
}

// LoginAsSource returns the sources an account administers.
func (c *Client) LoginAsSource(ctx context.Context, email, password string) (*domain.SourceLogin, error) {
	auth, err := accountAuth(email, password)
	if err != nil {
		return nil, err
	}

	var out domain.SourceLogin
	if err := c.transport.PostAuth(ctx, ports.PathSourceLogin, auth, nil, &out); err != nil {
		return nil, err
	}
	c.log.Info().Int("sources", len(out.Sources)).Msg("Source administrator logged in")
	return &out, nil
}

// CreateSourceAPIKey asks the Registry for an API key acting as sourceID.
// Repeating the call with the same selector returns the same key.
func (c *Client) CreateSourceAPIKey(ctx context.Context, sourceID domain.Identifier, email, password, selector string) (string, error) {
	if sourceID.IsZero() {
		return "", apperror.ErrInvalidArgument("source id must not be empty")
	}
	if strings.TrimSpace(selector) == "" {
		return "", apperror.ErrInvalidArgument("api key selector must not be empty")
	}
	auth, err := accountAuth(email, password)
	if err != nil {
		return "", err
	}

	var out domain.SourceAPIKey
	if err := c.transport.PostAuth(ctx, ports.PathSourceAPIKey, auth, domain.SourceAPIKeyRequest{
		SourceID: sourceID,
		Selector: selector,
	}, &out); err != nil {
		return "", err
	}
	if out.APIKey == "" {
		return "", apperror.ErrMalformedResponse(ports.PathSourceAPIKey, fmt.Errorf("empty api key"))
	}
	return out.APIKey, nil
}

// InstrumentFromAPIKey exchanges a source API key for the source's
// credentials and returns the matching Instrument.
func (c *Client) InstrumentFromAPIKey(ctx context.Context, apiKey string) (*Instrument, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, apperror.ErrInvalidArgument("api key must not be empty")
	}

	var creds domain.APIKeyCredentials
	if err := c.transport.Post(ctx, ports.PathAPIKeyCredentials, domain.APIKeyCredentialsRequest{APIKey: apiKey}, &creds); err != nil {
		return nil, err
	}
	if creds.EntityKind != domain.APIKeyKindSource {
		return nil, apperror.ErrMalformedResponse(ports.PathAPIKeyCredentials,
			fmt.Errorf("api key belongs to a %q, not a source", creds.EntityKind))
	}
	key, err := keyfile.ParsePrivateKey([]byte(creds.PrivateKey))
	if err != nil {
		return nil, apperror.ErrMalformedResponse(ports.PathAPIKeyCredentials, err)
	}
	return c.NewInstrument(creds.EntityID, key)
}

// CreateInstrument obtains an API key for sourceID with the account's
// credentials and returns the Instrument it unlocks.
func (c *Client) CreateInstrument(ctx context.Context, sourceID domain.Identifier, email, password, selector string) (*Instrument, error) {
	apiKey, err := c.CreateSourceAPIKey(ctx, sourceID, email, password, selector)
	if err != nil {
		return nil, err
	}
	instrument, err := c.InstrumentFromAPIKey(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	if instrument.ID() != sourceID {
		return nil, apperror.ErrMalformedResponse(ports.PathAPIKeyCredentials,
			fmt.Errorf("api key unlocks source %s, want %s", instrument.ID(), sourceID))
	}
	return instrument, nil
}

package domain

// APIKeyKindSource marks API keys that act on behalf of a source.
const APIKeyKindSource = "source"

// MerchantLogin is the profile returned to a merchant account.
type MerchantLogin struct {
	Name      string     `json:"name"`
	Surname   string     `json:"surname"`
	Email     string     `json:"email"`
	Merchants []Merchant `json:"merchants"`
}

// Merchant is a business owning one or more points of sale.
type Merchant struct {
	ID         Identifier       `json:"id"`
	Name       string           `json:"name"`
	FiscalCode string           `json:"fiscalCode"`
	Address    string           `json:"address,omitempty"`
	ZipCode    string           `json:"zipCode,omitempty"`
	City       string           `json:"city,omitempty"`
	Country    string           `json:"country,omitempty"`
	POS        []POSCredentials `json:"pos"`
}

// POSCredentials carries a point of sale's id and PEM key pair.
type POSCredentials struct {
	ID         Identifier `json:"id"`
	Name       string     `json:"name"`
	PrivateKey string     `json:"privateKey"`
	PublicKey  string     `json:"publicKey"`
}

// SourceLogin lists the sources an account administers.
type SourceLogin struct {
	Sources []SourceCredentials `json:"sources"`
}

// SourceCredentials carries a source's id and PEM key pair.
type SourceCredentials struct {
	ID         Identifier `json:"id"`
	Name       string     `json:"name"`
	URL        string     `json:"url,omitempty"`
	PrivateKey string     `json:"privateKey"`
	PublicKey  string     `json:"publicKey"`
}

// SourceAPIKeyRequest is the body of POST v1/auth/apikey/create.
type SourceAPIKeyRequest struct {
	SourceID Identifier `json:"sourceId"`
	Selector string     `json:"selector"`
}

// SourceAPIKey is the Registry's answer to SourceAPIKeyRequest. The same
// source and selector always yield the same key.
type SourceAPIKey struct {
	SourceID Identifier `json:"sourceId"`
	Selector string     `json:"selector"`
	Kind     string     `json:"kind"`
	APIKey   string     `json:"apiKey"`
}

// APIKeyCredentialsRequest is the body of POST v1/auth/apikey.
type APIKeyCredentialsRequest struct {
	APIKey string `json:"apiKey"`
}

// APIKeyCredentials are the entity and key pair an API key unlocks.
type APIKeyCredentials struct {
	EntityKind string     `json:"entityKind"`
	EntityID   Identifier `json:"entityId"`
	PrivateKey string     `json:"privateKey"`
	PublicKey  string     `json:"publicKey"`
}

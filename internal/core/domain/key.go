package domain

import (
	"crypto/rsa"

	"wom-connector/pkg/apperror"
)

// AsymmetricKey is an RSA key whose role (public or private) is explicit.
// A private key also carries its public half.
type AsymmetricKey struct {
	public  *rsa.PublicKey
	private *rsa.PrivateKey
}

// NewPrivateKey wraps an RSA private key.
func NewPrivateKey(k *rsa.PrivateKey) (*AsymmetricKey, error) {
	if k == nil {
		return nil, apperror.ErrInvalidArgument("private key must not be nil")
	}
	return &AsymmetricKey{public: &k.PublicKey, private: k}, nil
}

// NewPublicKey wraps an RSA public key.
func NewPublicKey(k *rsa.PublicKey) (*AsymmetricKey, error) {
	if k == nil {
		return nil, apperror.ErrInvalidArgument("public key must not be nil")
	}
	return &AsymmetricKey{public: k}, nil
}

// IsPrivate reports whether the key can decrypt and sign.
func (k *AsymmetricKey) IsPrivate() bool {
	return k != nil && k.private != nil
}

// Public returns the public half of the key.
func (k *AsymmetricKey) Public() *AsymmetricKey {
	if k == nil {
		return nil
	}
	return &AsymmetricKey{public: k.public}
}

// RSAPublic returns the public half; it is never nil.
func (k *AsymmetricKey) RSAPublic() *rsa.PublicKey {
	return k.public
}

// RSAPrivate returns nil for public keys.
func (k *AsymmetricKey) RSAPrivate() *rsa.PrivateKey {
	return k.private
}

// Size is the modulus length in bytes.
func (k *AsymmetricKey) Size() int {
	return k.public.Size()
}

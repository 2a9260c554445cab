// Package keyfile reads and writes the PEM key files used by instruments,
// points of sale and the Registry.
package keyfile

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"

	"wom-connector/internal/core/domain"
)

// DefaultBits is the modulus size of generated keys.
const DefaultBits = 4096

var errNoPEM = errors.New("no PEM block found")

// ParsePrivateKey decodes a PKCS#1 ("RSA PRIVATE KEY") or PKCS#8 ("PRIVATE KEY") PEM block.
func ParsePrivateKey(data []byte) (*domain.AsymmetricKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errNoPEM
	}

	switch block.Type {
	case "RSA PRIVATE KEY":
		k, err := x509.ParsePKCS1PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing PKCS#1 private key: %w", err)
		}
		return domain.NewPrivateKey(k)
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing PKCS#8 private key: %w", err)
		}
		k, ok := parsed.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("unsupported private key type %T", parsed)
		}
		return domain.NewPrivateKey(k)
	default:
		return nil, fmt.Errorf("unexpected PEM block %q", block.Type)
	}
}

// ParsePublicKey decodes a PKIX ("PUBLIC KEY") or PKCS#1 ("RSA PUBLIC KEY") PEM block.
func ParsePublicKey(data []byte) (*domain.AsymmetricKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, errNoPEM
	}

	switch block.Type {
	case "PUBLIC KEY":
		parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing PKIX public key: %w", err)
		}
		k, ok := parsed.(*rsa.PublicKey)
		if !ok {
			return nil, fmt.Errorf("unsupported public key type %T", parsed)
		}
		return domain.NewPublicKey(k)
	case "RSA PUBLIC KEY":
		k, err := x509.ParsePKCS1PublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("parsing PKCS#1 public key: %w", err)
		}
		return domain.NewPublicKey(k)
	default:
		return nil, fmt.Errorf("unexpected PEM block %q", block.Type)
	}
}

// LoadPrivateKey reads a private key file.
func LoadPrivateKey(path string) (*domain.AsymmetricKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return ParsePrivateKey(data)
}

// LoadPublicKey reads a public key file.
func LoadPublicKey(path string) (*domain.AsymmetricKey, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}
	return ParsePublicKey(data)
}

// EncodePrivateKey returns key as a PKCS#1 PEM block.
func EncodePrivateKey(key *domain.AsymmetricKey) ([]byte, error) {
	if !key.IsPrivate() {
		return nil, errors.New("key is not private")
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key.RSAPrivate()),
	}), nil
}

// EncodePublicKey returns the public half of key as a PKIX PEM block.
func EncodePublicKey(key *domain.AsymmetricKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(key.RSAPublic())
	if err != nil {
		return nil, fmt.Errorf("marshaling public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// Generate creates a new RSA key pair.
func Generate(bits int) (*domain.AsymmetricKey, error) {
	k, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, fmt.Errorf("generating RSA key: %w", err)
	}
	return domain.NewPrivateKey(k)
}

// WritePair writes key to privPath (mode 0600) and its public half to pubPath.
func WritePair(key *domain.AsymmetricKey, privPath, pubPath string) error {
	privPEM, err := EncodePrivateKey(key)
	if err != nil {
		return err
	}
	pubPEM, err := EncodePublicKey(key)
	if err != nil {
		return err
	}

	if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	if err := os.WriteFile(pubPath, pubPEM, 0o644); err != nil {
		return fmt.Errorf("writing public key: %w", err)
	}
	return nil
}

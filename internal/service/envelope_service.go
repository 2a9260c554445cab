package service

import (
	"bytes"
	"crypto"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"

	"wom-connector/internal/core/domain"
	"wom-connector/pkg/apperror"
	"wom-connector/pkg/logger"

	"github.com/rs/zerolog"
)

const (
	// pkcs1Overhead is the minimum PKCS#1 v1.5 padding per RSA block.
	pkcs1Overhead = 11

	// SessionKeySize is the length of an AES-256 session key in bytes.
	SessionKeySize = 32
)

var errVerification = errors.New("rsa verification error")

// EnvelopeService builds and opens the Registry's crypto envelopes:
// chunked RSA PKCS#1 v1.5 (encrypt/decrypt with type 2 padding, sign/verify
// with type 1) and AES-256-CBC session envelopes. It is stateless and safe
// for concurrent use.
type EnvelopeService struct {
	random io.Reader
	log    zerolog.Logger
}

// NewEnvelopeService creates an envelope engine drawing randomness from crypto/rand.
func NewEnvelopeService(log zerolog.Logger) *EnvelopeService {
	return &EnvelopeService{
		random: rand.Reader,
		log:    logger.Component(log, "envelope"),
	}
}

// ---- Byte-level asymmetric primitives ----

// AsymmetricEncrypt encrypts payload for the owner of the public key.
func (s *EnvelopeService) AsymmetricEncrypt(payload []byte, key *domain.AsymmetricKey) ([]byte, error) {
	if key == nil || key.IsPrivate() {
		return nil, apperror.ErrKeyRole("public key of receiver required for encryption")
	}
	pub := key.RSAPublic()
	out, err := s.chunk("encrypt", payload, key.Size()-pkcs1Overhead, key.Size(), func(block []byte) ([]byte, error) {
		return rsa.EncryptPKCS1v15(s.random, pub, block)
	})
	if err != nil {
		return nil, apperror.ErrCrypto("Asymmetric encryption failed", err)
	}
	return out, nil
}

// AsymmetricDecrypt reverses AsymmetricEncrypt with the matching private key.
func (s *EnvelopeService) AsymmetricDecrypt(payload []byte, key *domain.AsymmetricKey) ([]byte, error) {
	if !key.IsPrivate() {
		return nil, apperror.ErrKeyRole("private key of receiver required for decryption")
	}
	priv := key.RSAPrivate()
	out, err := s.chunk("decrypt", payload, key.Size(), key.Size()-pkcs1Overhead, func(block []byte) ([]byte, error) {
		return rsa.DecryptPKCS1v15(nil, priv, block)
	})
	if err != nil {
		return nil, apperror.ErrCrypto("Asymmetric decryption failed", err)
	}
	return out, nil
}

// AsymmetricSign encrypts payload with the sender's private key (PKCS#1 block type 1).
func (s *EnvelopeService) AsymmetricSign(payload []byte, key *domain.AsymmetricKey) ([]byte, error) {
	if !key.IsPrivate() {
		return nil, apperror.ErrKeyRole("private key of sender required for signing")
	}
	priv := key.RSAPrivate()
	out, err := s.chunk("sign", payload, key.Size()-pkcs1Overhead, key.Size(), func(block []byte) ([]byte, error) {
		return rsa.SignPKCS1v15(nil, priv, crypto.Hash(0), block)
	})
	if err != nil {
		return nil, apperror.ErrCrypto("Signing failed", err)
	}
	return out, nil
}

// AsymmetricVerify recovers a payload produced by AsymmetricSign using the sender's public key.
func (s *EnvelopeService) AsymmetricVerify(payload []byte, key *domain.AsymmetricKey) ([]byte, error) {
	if key == nil || key.IsPrivate() {
		return nil, apperror.ErrKeyRole("public key of sender required for verification")
	}
	pub := key.RSAPublic()
	out, err := s.chunk("verify", payload, key.Size(), key.Size()-pkcs1Overhead, func(block []byte) ([]byte, error) {
		return recoverSigned(pub, block)
	})
	if err != nil {
		return nil, apperror.ErrCrypto("Signature verification failed", err)
	}
	return out, nil
}

// chunk splits payload into ceil(len/inBlk) blocks, transforms each one and
// concatenates the results. The output is trimmed to the bytes actually produced.
func (s *EnvelopeService) chunk(op string, payload []byte, inBlk, outBlk int, fn func([]byte) ([]byte, error)) ([]byte, error) {
	if inBlk <= 0 {
		return nil, apperror.ErrCrypto("RSA key too small for PKCS#1 v1.5", nil)
	}

	blocks := (len(payload) + inBlk - 1) / inBlk
	out := make([]byte, 0, blocks*outBlk)
	for i := 0; i < blocks; i++ {
		start := i * inBlk
		end := min(start+inBlk, len(payload))

		processed, err := fn(payload[start:end])
		if err != nil {
			return nil, fmt.Errorf("%s block %d: %w", op, i+1, err)
		}
		out = append(out, processed...)
	}

	s.log.Trace().
		Str("op", op).
		Int("input_bytes", len(payload)).
		Int("blocks", blocks).
		Int("output_bytes", len(out)).
		Msg("RSA chunked transform")

	return out, nil
}

// recoverSigned computes block^e mod n and strips PKCS#1 type 1 padding
// (00 01 FF.. 00 data, at least eight FF bytes).
func recoverSigned(pub *rsa.PublicKey, block []byte) ([]byte, error) {
	k := pub.Size()
	if len(block) != k {
		return nil, errVerification
	}

	c := new(big.Int).SetBytes(block)
	if c.Cmp(pub.N) >= 0 {
		return nil, errVerification
	}
	m := new(big.Int).Exp(c, big.NewInt(int64(pub.E)), pub.N)

	em := m.FillBytes(make([]byte, k))
	if em[0] != 0x00 || em[1] != 0x01 {
		return nil, errVerification
	}

	i := 2
	for i < k && em[i] == 0xff {
		i++
	}
	if i == k || em[i] != 0x00 || i-2 < 8 {
		return nil, errVerification
	}
	return em[i+1:], nil
}

// ---- Object envelopes ----

// Encrypt serializes payload and encrypts it for the receiver (confidentiality only).
func (s *EnvelopeService) Encrypt(payload any, receiverPublicKey *domain.AsymmetricKey) (string, error) {
	if receiverPublicKey == nil || receiverPublicKey.IsPrivate() {
		return "", apperror.ErrKeyRole("public key of receiver required for encryption")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding envelope content: %w", err)
	}
	enc, err := s.AsymmetricEncrypt(raw, receiverPublicKey)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(enc), nil
}

// Decrypt opens an envelope produced by Encrypt and decodes it into out.
func (s *EnvelopeService) Decrypt(payload string, receiverPrivateKey *domain.AsymmetricKey, out any) error {
	if !receiverPrivateKey.IsPrivate() {
		return apperror.ErrKeyRole("private key of receiver required for decryption")
	}
	raw, err := decodeBase64(payload)
	if err != nil {
		return err
	}
	plain, err := s.AsymmetricDecrypt(raw, receiverPrivateKey)
	if err != nil {
		return err
	}
	return decodeContent(plain, out)
}

// Sign serializes payload and signs it with the sender's private key.
func (s *EnvelopeService) Sign(payload any, senderPrivateKey *domain.AsymmetricKey) (string, error) {
	if !senderPrivateKey.IsPrivate() {
		return "", apperror.ErrKeyRole("private key of sender required for signing")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding envelope content: %w", err)
	}
	signed, err := s.AsymmetricSign(raw, senderPrivateKey)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(signed), nil
}

// Verify opens an envelope produced by Sign and decodes it into out.
func (s *EnvelopeService) Verify(payload string, senderPublicKey *domain.AsymmetricKey, out any) error {
	if senderPublicKey == nil || senderPublicKey.IsPrivate() {
		return apperror.ErrKeyRole("public key of sender required for verification")
	}
	raw, err := decodeBase64(payload)
	if err != nil {
		return err
	}
	plain, err := s.AsymmetricVerify(raw, senderPublicKey)
	if err != nil {
		return err
	}
	return decodeContent(plain, out)
}

// SignAndEncrypt signs payload with the sender's private key, then encrypts
// the signed bytes for the receiver.
func (s *EnvelopeService) SignAndEncrypt(payload any, senderPrivateKey, receiverPublicKey *domain.AsymmetricKey) (string, error) {
	if !senderPrivateKey.IsPrivate() {
		return "", apperror.ErrKeyRole("private key of sender required for signing")
	}
	if receiverPublicKey == nil || receiverPublicKey.IsPrivate() {
		return "", apperror.ErrKeyRole("public key of receiver required for encryption")
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding envelope content: %w", err)
	}
	signed, err := s.AsymmetricSign(raw, senderPrivateKey)
	if err != nil {
		return "", err
	}
	enc, err := s.AsymmetricEncrypt(signed, receiverPublicKey)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(enc), nil
}

// DecryptAndVerify reverses SignAndEncrypt. A wrong key at either stage is a CryptoFailure.
func (s *EnvelopeService) DecryptAndVerify(payload string, senderPublicKey, receiverPrivateKey *domain.AsymmetricKey, out any) error {
	if senderPublicKey == nil || senderPublicKey.IsPrivate() {
		return apperror.ErrKeyRole("public key of sender required for verification")
	}
	if !receiverPrivateKey.IsPrivate() {
		return apperror.ErrKeyRole("private key of receiver required for decryption")
	}

	raw, err := decodeBase64(payload)
	if err != nil {
		return err
	}
	signed, err := s.AsymmetricDecrypt(raw, receiverPrivateKey)
	if err != nil {
		return err
	}
	plain, err := s.AsymmetricVerify(signed, senderPublicKey)
	if err != nil {
		return err
	}
	return decodeContent(plain, out)
}

// ---- Session envelopes ----

// GenerateSessionKey returns a fresh random AES-256 key.
func (s *EnvelopeService) GenerateSessionKey() ([]byte, error) {
	key := make([]byte, SessionKeySize)
	if _, err := io.ReadFull(s.random, key); err != nil {
		return nil, fmt.Errorf("generating session key: %w", err)
	}
	return key, nil
}

// SessionEncrypt serializes payload and encrypts it with AES-256-CBC under a
// random IV. Output is base64(IV || ciphertext).
func (s *EnvelopeService) SessionEncrypt(payload any, key []byte) (string, error) {
	if len(key) != SessionKeySize {
		return "", apperror.ErrInvalidArgument(fmt.Sprintf("session key must be %d bytes, got %d", SessionKeySize, len(key)))
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding envelope content: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("creating cipher: %w", err)
	}

	padded := pkcs7Pad(raw, aes.BlockSize)
	out := make([]byte, aes.BlockSize+len(padded))
	iv := out[:aes.BlockSize]
	if _, err := io.ReadFull(s.random, iv); err != nil {
		return "", fmt.Errorf("generating IV: %w", err)
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out[aes.BlockSize:], padded)

	s.log.Trace().Int("input_bytes", len(raw)).Int("output_bytes", len(out)).Msg("AES-CBC encrypt")

	return base64.StdEncoding.EncodeToString(out), nil
}

// SessionDecrypt opens a session envelope and decodes it into out.
func (s *EnvelopeService) SessionDecrypt(payload string, key []byte, out any) error {
	if len(key) != SessionKeySize {
		return apperror.ErrCrypto(fmt.Sprintf("session key must be %d bytes, got %d", SessionKeySize, len(key)), nil)
	}
	raw, err := decodeBase64(payload)
	if err != nil {
		return err
	}
	if len(raw) < aes.BlockSize {
		return apperror.ErrCrypto("Session payload too short to contain IV", nil)
	}

	iv, ciphertext := raw[:aes.BlockSize], raw[aes.BlockSize:]
	if len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return apperror.ErrCrypto("Session payload is not a whole number of blocks", nil)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return apperror.ErrCrypto("Creating session cipher failed", err)
	}

	plain := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plain, ciphertext)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return apperror.ErrCrypto("Session decryption failed", err)
	}

	s.log.Trace().Int("input_bytes", len(raw)).Int("output_bytes", len(plain)).Msg("AES-CBC decrypt")

	return decodeContent(plain, out)
}

func pkcs7Pad(data []byte, size int) []byte {
	n := size - len(data)%size
	return append(bytes.Clone(data), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, size int) ([]byte, error) {
	if len(data) == 0 || len(data)%size != 0 {
		return nil, errors.New("invalid padded length")
	}
	n := int(data[len(data)-1])
	if n == 0 || n > size {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-n], nil
}

func decodeBase64(payload string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, apperror.ErrCrypto("Envelope is not valid base64", err)
	}
	return raw, nil
}

func decodeContent(plain []byte, out any) error {
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(plain, out); err != nil {
		return apperror.ErrCrypto("Envelope content is malformed", err)
	}
	return nil
}

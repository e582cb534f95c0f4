package security

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	sealedValueVersion = "v1"
	sealPurposePrefix  = "hospitalconnect.seal."
	sealKeyInfo        = "hospitalconnect.sealer.v1"
)

var (
	ErrInvalidSealedValue = errors.New("invalid sealed value")
	errSealPurpose        = errors.New("seal purpose is required")
)

// Sealer encrypts small values (cookies, stored drafts) with
// XChaCha20-Poly1305. The purpose is bound as associated data, so a value
// sealed for one purpose never opens under another.
type Sealer struct {
	aead cipher.AEAD
}

func NewSealer(secretKey []byte) (*Sealer, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("sealer secret key is required")
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, secretKey, nil, []byte(sealKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("derive sealer key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init sealer aead: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

func (sealer *Sealer) Seal(purpose string, plaintext []byte) (string, error) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return "", errSealPurpose
	}

	nonce := make([]byte, sealer.aead.NonceSize(), sealer.aead.NonceSize()+len(plaintext)+sealer.aead.Overhead())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate seal nonce: %w", err)
	}

	payload := sealer.aead.Seal(nonce, nonce, plaintext, []byte(sealPurposePrefix+purpose))
	return sealedValueVersion + "." + base64.RawURLEncoding.EncodeToString(payload), nil
}

func (sealer *Sealer) Open(purpose string, sealed string) ([]byte, error) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, errSealPurpose
	}

	version, encoded, found := strings.Cut(strings.TrimSpace(sealed), ".")
	if !found || version != sealedValueVersion || encoded == "" {
		return nil, ErrInvalidSealedValue
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidSealedValue
	}

	nonceSize := sealer.aead.NonceSize()
	if len(payload) <= nonceSize {
		return nil, ErrInvalidSealedValue
	}
	plaintext, err := sealer.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], []byte(sealPurposePrefix+purpose))
	if err != nil {
		return nil, ErrInvalidSealedValue
	}
	return plaintext, nil
}

package session

import (
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"time"

	apperrors "github.com/jrsteele09/captal-web/internal/errors"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const sealerInfo = "captal-cookie-v1"

// Sealer encrypts and authenticates cookie values. The cookie name is bound as
// additional data, so a sealed value only opens under the name it was sealed for.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer derives an XChaCha20-Poly1305 key from secret
func NewSealer(secret string) (*Sealer, error) {
	if secret == "" {
		return nil, fmt.Errorf("[session NewSealer] %w: empty secret", apperrors.ErrInvalidInput)
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(sealerInfo)), key); err != nil {
		return nil, fmt.Errorf("[session NewSealer] derive key: %w", err)
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("[session NewSealer] cipher: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

func (s *Sealer) Seal(name, value string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize(), s.aead.NonceSize()+len(value)+s.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("[session Seal] nonce: %w", err)
	}
	sealed := s.aead.Seal(nonce, nonce, []byte(value), []byte(name))
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

func (s *Sealer) Open(name, sealed string) (string, error) {
	data, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidToken, "[session Open] decode %s", name)
	}
	if len(data) < s.aead.NonceSize() {
		return "", fmt.Errorf("[session Open] %s: %w", name, apperrors.ErrInvalidToken)
	}
	nonce, ciphertext := data[:s.aead.NonceSize()], data[s.aead.NonceSize():]
	plain, err := s.aead.Open(nil, nonce, ciphertext, []byte(name))
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidToken, "[session Open] %s", name)
	}
	return string(plain), nil
}

// SealedStore wraps a Store, sealing values on the way in and opening them on the way out.
// Values that fail to open read as absent.
type SealedStore struct {
	Store
	sealer *Sealer
}

var _ Store = SealedStore{}

func NewSealedStore(store Store, sealer *Sealer) SealedStore {
	return SealedStore{Store: store, sealer: sealer}
}

func (s SealedStore) Get(name string) (string, bool) {
	sealed, ok := s.Store.Get(name)
	if !ok {
		return "", false
	}
	value, err := s.sealer.Open(name, sealed)
	if err != nil {
		return "", false
	}
	return value, true
}

func (s SealedStore) Set(name, value string, expiresAt time.Time) {
	sealed, err := s.sealer.Seal(name, value)
	if err != nil {
		s.Store.Clear(name)
		return
	}
	s.Store.Set(name, sealed, expiresAt)
}

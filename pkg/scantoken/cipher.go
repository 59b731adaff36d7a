package scantoken

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

// Named cipher algorithms. Selection is always explicit via configuration;
// the two ECB variants exist for wire compatibility with tokens already in
// circulation and are never silently interchangeable with GCM.
const (
	// AlgorithmECB derives an AES-128 key from SHA-256(secret) truncated to
	// 16 bytes and encrypts in ECB mode with PKCS#7 padding. Deterministic:
	// no IV. This is the default wire format for scanner tokens.
	AlgorithmECB = "aes-ecb"

	// AlgorithmECBLegacy uses a fixed 16-byte key verbatim (no derivation)
	// and the URL-safe Base64 alphabet. Kept only for the one legacy token
	// path; do not issue new tokens with it.
	AlgorithmECBLegacy = "aes-ecb-legacy"

	// AlgorithmGCM derives an AES-256 key from SHA-256(secret) and encrypts
	// with AES-GCM, random nonce prepended to the ciphertext. Opt-in
	// replacement mode; tokens are not compatible with the ECB variants.
	AlgorithmGCM = "aes-gcm"
)

// ErrCrypto is the single error kind for every cipher-level failure. Invalid
// Base64, padding mismatch, truncated ciphertext and GCM auth failure all
// collapse into it so a caller cannot distinguish "wrong key" from
// "corrupted data".
var ErrCrypto = errors.New("scantoken: cipher operation failed")

// Cipher turns plaintext into a Base64 transport string and back.
// Implementations are stateless and safe for concurrent use.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
	Algorithm() string
}

// NewCipher constructs the named algorithm from the shared secret.
// An empty secret or unknown algorithm is a configuration-time failure.
func NewCipher(algorithm, secret string) (Cipher, error) {
	if secret == "" {
		return nil, fmt.Errorf("%w: empty secret", ErrCrypto)
	}

	switch algorithm {
	case AlgorithmECB:
		sum := sha256.Sum256([]byte(secret))
		return &ecbCipher{key: sum[:16], encoding: base64.StdEncoding, algorithm: AlgorithmECB}, nil
	case AlgorithmECBLegacy:
		key := []byte(secret)
		if len(key) != 16 {
			return nil, fmt.Errorf("%w: legacy key must be exactly 16 bytes, got %d", ErrCrypto, len(key))
		}
		return &ecbCipher{key: key, encoding: base64.URLEncoding, algorithm: AlgorithmECBLegacy}, nil
	case AlgorithmGCM:
		sum := sha256.Sum256([]byte(secret))
		return &gcmCipher{key: sum[:]}, nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q", ErrCrypto, algorithm)
	}
}

// ecbCipher implements AES in ECB mode with PKCS#7 padding. ECB has no
// semantic security (identical plaintext blocks produce identical ciphertext
// blocks); it is kept for wire compatibility, not chosen.
type ecbCipher struct {
	key       []byte
	encoding  *base64.Encoding
	algorithm string
}

func (c *ecbCipher) Algorithm() string { return c.algorithm }

func (c *ecbCipher) Encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCrypto, err)
	}

	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())
	out := make([]byte, len(padded))
	for i := 0; i < len(padded); i += block.BlockSize() {
		block.Encrypt(out[i:i+block.BlockSize()], padded[i:i+block.BlockSize()])
	}

	return c.encoding.EncodeToString(out), nil
}

func (c *ecbCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := c.encoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: invalid transport encoding", ErrCrypto)
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCrypto, err)
	}

	if len(raw) == 0 || len(raw)%block.BlockSize() != 0 {
		return "", fmt.Errorf("%w: ciphertext not block-aligned", ErrCrypto)
	}

	out := make([]byte, len(raw))
	for i := 0; i < len(raw); i += block.BlockSize() {
		block.Decrypt(out[i:i+block.BlockSize()], raw[i:i+block.BlockSize()])
	}

	plain, err := pkcs7Unpad(out, block.BlockSize())
	if err != nil {
		return "", fmt.Errorf("%w: padding check failed", ErrCrypto)
	}
	return string(plain), nil
}

// gcmCipher implements AES-256-GCM with the nonce prepended to the
// ciphertext, the same layout the signing-key encryption uses.
type gcmCipher struct {
	key []byte
}

func (c *gcmCipher) Algorithm() string { return AlgorithmGCM }

func (c *gcmCipher) Encrypt(plaintext string) (string, error) {
	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("%w: %v", ErrCrypto, err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *gcmCipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: invalid transport encoding", ErrCrypto)
	}

	gcm, err := c.aead()
	if err != nil {
		return "", err
	}

	if len(raw) < gcm.NonceSize() {
		return "", fmt.Errorf("%w: ciphertext too short", ErrCrypto)
	}

	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	plain, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: authentication failed", ErrCrypto)
	}
	return string(plain), nil
}

func (c *gcmCipher) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCrypto, err)
	}
	return gcm, nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}

	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding byte")
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("inconsistent padding")
		}
	}
	return data[:len(data)-n], nil
}

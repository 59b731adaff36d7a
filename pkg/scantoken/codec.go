package scantoken

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"
)

// Decode failure kinds. All cipher-level failures surface as
// ErrDecryptionFailed so the caller cannot build a decryption oracle.
var (
	ErrDecryptionFailed = errors.New("scantoken: decryption failed")
	ErrExpired          = errors.New("scantoken: token expired")
)

// NonceLength is the number of hex characters in an issuance nonce.
const NonceLength = 8

// Issued is the result of encoding a user identity into a QR token.
type Issued struct {
	// Token is the Base64 transport string, safe to render into a QR code.
	Token string

	// Nonce is an informational uniqueness marker carried alongside the
	// token. It is not bound into the ciphertext.
	Nonce string

	IssuedAt time.Time
}

// Codec encodes user identities into encrypted QR tokens and decodes scanned
// tokens back into messages. Construct one at composition time with the
// configured cipher; it is stateless and safe for concurrent use.
type Codec struct {
	cipher Cipher

	// MaxAge bounds how old a decoded token may be. Zero disables the check,
	// which matches the historical behaviour of issued tokens never expiring.
	MaxAge time.Duration

	now func() time.Time
}

// NewCodec wraps the given cipher. maxAge <= 0 disables expiry.
func NewCodec(c Cipher, maxAge time.Duration) *Codec {
	return &Codec{cipher: c, MaxAge: maxAge, now: time.Now}
}

// WithClock overrides the codec's clock. Intended for tests that need
// deterministic timestamps or to simulate token age.
func (c *Codec) WithClock(now func() time.Time) *Codec {
	c.now = now
	return c
}

// Encode produces the encrypted token for userID, stamped with the current
// UTC time. It has no side effects; persisting the token against the user
// record is the caller's responsibility.
func (c *Codec) Encode(userID string) (Issued, error) {
	if userID == "" {
		return Issued{}, fmt.Errorf("%w: empty userId", ErrMalformed)
	}

	issuedAt := c.now().UTC()
	msg := Message{
		UserID:       userID,
		TimestampUTC: issuedAt.Format(time.RFC3339),
	}

	token, err := c.cipher.Encrypt(msg.Marshal())
	if err != nil {
		return Issued{}, err
	}

	nonce, err := newNonce()
	if err != nil {
		return Issued{}, err
	}

	return Issued{Token: token, Nonce: nonce, IssuedAt: issuedAt}, nil
}

// Decode decrypts and parses a scanned token.
//
// Failure kinds: empty input or unparseable plaintext is ErrMalformed; any
// cipher failure is ErrDecryptionFailed; a stale timestamp is ErrExpired when
// MaxAge is set.
func (c *Codec) Decode(token string) (Message, error) {
	if token == "" {
		return Message{}, fmt.Errorf("%w: empty token", ErrMalformed)
	}

	plain, err := c.cipher.Decrypt(token)
	if err != nil {
		return Message{}, ErrDecryptionFailed
	}

	msg, err := ParseMessage(plain)
	if err != nil {
		return Message{}, err
	}

	if c.MaxAge > 0 {
		issuedAt, err := time.Parse(time.RFC3339, msg.TimestampUTC)
		if err != nil {
			// With expiry enforced an unreadable timestamp cannot pass.
			return Message{}, ErrExpired
		}
		if c.now().UTC().Sub(issuedAt) > c.MaxAge {
			return Message{}, ErrExpired
		}
	}

	return msg, nil
}

// Algorithm reports the underlying cipher algorithm name.
func (c *Codec) Algorithm() string { return c.cipher.Algorithm() }

func newNonce() (string, error) {
	buf := make([]byte, NonceLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("scantoken: failed to generate nonce: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

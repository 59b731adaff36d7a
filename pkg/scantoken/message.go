package scantoken

import (
	"encoding/json"
	"errors"
)

// ErrMalformed reports input that is not a well-formed scanner message or
// token: invalid transport string, invalid JSON, or a missing userId.
var ErrMalformed = errors.New("scantoken: malformed message")

// Message is the plaintext payload carried inside a QR token.
//
// TimestampUTC is opaque at this layer: it is recorded at issuance and only
// interpreted when an expiry policy is enabled on the Codec. Unknown fields
// in the wire payload are ignored on parse so the format can grow.
type Message struct {
	UserID       string `json:"userId"`
	TimestampUTC string `json:"timestampUTC"`
}

// Marshal serializes the message to its wire form. Total: a well-formed
// in-memory message always serializes.
func (m Message) Marshal() string {
	b, _ := json.Marshal(m)
	return string(b)
}

// ParseMessage parses the decrypted plaintext back into a Message. A message
// without a userId is malformed, not a valid empty identity.
func ParseMessage(s string) (Message, error) {
	var m Message
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return Message{}, ErrMalformed
	}
	if m.UserID == "" {
		return Message{}, ErrMalformed
	}
	return m, nil
}

package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var ErrInvalidSignature = errors.New("callback signature is invalid")

// Signer signs and checks callback bodies with HMAC-SHA256 over the raw body,
// hex encoded.
type Signer struct {
	secret []byte
}

// NewSigner creates a signer keyed with the shared gateway secret.
func NewSigner(secret string) Signer {
	return Signer{secret: []byte(secret)}
}

// Sign returns the hex HMAC-SHA256 of body.
func (s Signer) Sign(body []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares in constant time. It returns ErrInvalidSignature on mismatch.
func (s Signer) Verify(body []byte, signature string) error {
	presented, err := hex.DecodeString(signature)
	if err != nil || len(s.secret) == 0 {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(body)
	if !hmac.Equal(mac.Sum(nil), presented) {
		return ErrInvalidSignature
	}
	return nil
}

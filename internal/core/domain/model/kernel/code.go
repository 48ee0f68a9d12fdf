package kernel

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"

	"marketplace/internal/pkg/errs"
)

// ConfirmationCodeLength is the number of digits a person reads aloud at a hand-off.
const ConfirmationCodeLength = 4

var (
	codeSpace = big.NewInt(10_000)

	// ErrConfirmationCodeIsNotConstructed is returned when using a zero-value code.
	ErrConfirmationCodeIsNotConstructed = errs.NewValueIsRequiredError("confirmation code must be created via NewConfirmationCode")
)

// ConfirmationCode is a short numeric secret proving a physical hand-off took place.
type ConfirmationCode struct {
	value string
}

// NewConfirmationCode draws a code from crypto/rand.
func NewConfirmationCode() (ConfirmationCode, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return ConfirmationCode{}, fmt.Errorf("generate confirmation code: %w", err)
	}
	return ConfirmationCode{value: fmt.Sprintf("%0*d", ConfirmationCodeLength, n.Int64())}, nil
}

// RestoreConfirmationCode accepts a previously generated code.
func RestoreConfirmationCode(s string) (ConfirmationCode, error) {
	if !isCode(s) {
		return ConfirmationCode{}, errs.NewValueIsInvalidErrorWithCause("confirmation code",
			fmt.Errorf("expected %d digits", ConfirmationCodeLength))
	}
	return ConfirmationCode{value: s}, nil
}

// Matches compares in constant time.
func (c ConfirmationCode) Matches(presented string) bool {
	if c.value == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(presented)) == 1
}

func (c ConfirmationCode) IsEqual(other ConfirmationCode) bool {
	return c.value == other.value
}

func (c ConfirmationCode) Validate() error {
	if c.value == "" {
		return ErrConfirmationCodeIsNotConstructed
	}
	return nil
}

func (c ConfirmationCode) String() string {
	return c.value
}

func isCode(s string) bool {
	if len(s) != ConfirmationCodeLength {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

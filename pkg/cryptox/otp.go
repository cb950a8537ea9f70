package cryptox

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

// ResetCodeDigits is the length of emailed password-reset codes.
const ResetCodeDigits = 4

// GenerateResetCode produces a numeric one-time code for the password-reset
// flow. Each call derives the code from a fresh random secret and counter,
// so codes are independent and uniformly distributed over the digit range.
func GenerateResetCode() (string, error) {
	var buf [28]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("cryptox: generate reset code: %w", err)
	}

	secret := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString(buf[:20])
	counter := binary.BigEndian.Uint64(buf[20:])

	code, err := hotp.GenerateCodeCustom(secret, counter, hotp.ValidateOpts{
		Digits:    otp.Digits(ResetCodeDigits),
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("cryptox: generate reset code: %w", err)
	}

	return code, nil
}

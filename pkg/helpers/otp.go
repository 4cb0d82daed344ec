package helpers

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenOTPCode generates a secure random 6-digit code as a zero-padded
// string, uniform over the full 000000-999999 space.
func GenOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// HashOTPCode computes the keyed HMAC-SHA256 digest of a code as hex.
// Only this hash is ever persisted.
func HashOTPCode(secret []byte, code string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

// OTPCodeMatches compares a candidate code against a stored hash without
// leaking which byte differed.
func OTPCodeMatches(secret []byte, code, storedHash string) bool {
	return hmac.Equal([]byte(HashOTPCode(secret, code)), []byte(storedHash))
}

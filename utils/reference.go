package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	bookingRefPattern = regexp.MustCompile(`^[A-Z]{3}\d{4}\d{4}$`)
	paymentRefPattern = regexp.MustCompile(`^PAY\d{6}[A-Z0-9]{6}$`)
	receiptPattern    = regexp.MustCompile(`^RCP\d{4}\d{5}$`)
	prefixPattern     = regexp.MustCompile(`^[A-Z]{3}$`)
)

// randomDigits returns n decimal digits from crypto/rand, avoiding the
// modulo bias of a naive byte read.
func randomDigits(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteString(d.String())
	}
	return sb.String(), nil
}

// GenerateBookingReference produces a candidate like "HTL20260482":
// 3-letter prefix + year + 4 random digits. Uniqueness is the caller's
// job (probe the store and retry).
func GenerateBookingReference(prefix string, now time.Time) (string, error) {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if !prefixPattern.MatchString(prefix) {
		prefix = "HTL"
	}
	digits, err := randomDigits(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d%s", prefix, now.Year(), digits), nil
}

// GeneratePaymentReference produces "PAY" + YYMMDD + 6 uppercase
// hex characters drawn from a fresh UUID.
func GeneratePaymentReference(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return fmt.Sprintf("PAY%s%s", now.Format("060102"), suffix)
}

// GenerateReceiptNumber produces "RCP" + year + 5 random digits.
func GenerateReceiptNumber(now time.Time) (string, error) {
	digits, err := randomDigits(5)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("RCP%d%s", now.Year(), digits), nil
}

func IsValidBookingReference(ref string) bool { return bookingRefPattern.MatchString(ref) }
func IsValidPaymentReference(ref string) bool { return paymentRefPattern.MatchString(ref) }
func IsValidReceiptNumber(ref string) bool    { return receiptPattern.MatchString(ref) }

package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refNow = time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)

func TestGenerateBookingReference(t *testing.T) {
	ref, err := GenerateBookingReference("HTL", refNow)
	require.NoError(t, err)
	assert.True(t, IsValidBookingReference(ref), "got %q", ref)
	assert.True(t, strings.HasPrefix(ref, "HTL2026"))
}

func TestGenerateBookingReferencePrefixFallback(t *testing.T) {
	for _, bad := range []string{"", "h", "HOTEL", "12A", "ht!"} {
		ref, err := GenerateBookingReference(bad, refNow)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(ref, "HTL"), "prefix %q produced %q", bad, ref)
	}

	// Lowercase prefixes are normalized, not rejected.
	ref, err := GenerateBookingReference("sea", refNow)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "SEA"))
}

func TestGeneratePaymentReference(t *testing.T) {
	ref := GeneratePaymentReference(refNow)
	assert.True(t, IsValidPaymentReference(ref), "got %q", ref)
	assert.True(t, strings.HasPrefix(ref, "PAY260830"))
}

func TestGenerateReceiptNumber(t *testing.T) {
	receipt, err := GenerateReceiptNumber(refNow)
	require.NoError(t, err)
	assert.True(t, IsValidReceiptNumber(receipt), "got %q", receipt)
	assert.True(t, strings.HasPrefix(receipt, "RCP2026"))
}

func TestReferenceValidators(t *testing.T) {
	assert.True(t, IsValidBookingReference("HTL20260482"))
	assert.False(t, IsValidBookingReference("HT20260482"))
	assert.False(t, IsValidBookingReference("htl20260482"))
	assert.False(t, IsValidBookingReference("HTL2026048"))

	assert.True(t, IsValidPaymentReference("PAY260830A1B2C3"))
	assert.False(t, IsValidPaymentReference("PAY26083A1B2C3"))

	assert.True(t, IsValidReceiptNumber("RCP202600042"))
	assert.False(t, IsValidReceiptNumber("RCP20260042"))
}

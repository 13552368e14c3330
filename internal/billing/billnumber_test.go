package billing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextBillNumber(t *testing.T) {
	assert.Equal(t, "IB-0010", NextBillNumber("IB-0009"))
	assert.Equal(t, "IB-0001", NextBillNumber(""))
	assert.Equal(t, "IB-0001", NextBillNumber("IB-abc"))
	assert.Equal(t, "IB-0001", NextBillNumber("XX-0042"))
	// Width grows past four digits instead of wrapping.
	assert.Equal(t, "IB-10000", NextBillNumber("IB-9999"))
}

func TestFallbackBillNumber(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	got := FallbackBillNumber(now)
	assert.True(t, strings.HasPrefix(got, BillNumberPrefix))
	assert.Equal(t, "IB-1741942800", got)
}

package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BillNumberPrefix is fixed — existing printed bills carry it.
const BillNumberPrefix = "IB-"

// NextBillNumber returns the number that follows the highest issued one.
// Numbers increase monotonically from the highest suffix ever issued and are
// independent of deletions: after IB-0001..IB-0009 the next is IB-0010 even if
// earlier bills were removed. An empty highest starts the series at IB-0001.
func NextBillNumber(highest string) string {
	n := 0
	if suffix, ok := strings.CutPrefix(highest, BillNumberPrefix); ok {
		if parsed, err := strconv.Atoi(suffix); err == nil {
			n = parsed
		}
	}
	return fmt.Sprintf("%s%04d", BillNumberPrefix, n+1)
}

// FallbackBillNumber is used when the highest-number lookup fails: a
// timestamp-derived placeholder keeps the save path alive instead of turning a
// read failure into a hard write failure.
func FallbackBillNumber(now time.Time) string {
	return fmt.Sprintf("%s%d", BillNumberPrefix, now.Unix())
}

package reconcile

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountFromRaw converts a raw integer minor-unit balance into its human
// decimal representation: "150000000" at 6 decimals becomes "150". Trailing
// zeros never survive decimal's canonical form.
func AmountFromRaw(raw string, decimals int) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid raw balance %q: %w", raw, err)
	}
	if !value.IsInteger() {
		return decimal.Zero, fmt.Errorf("raw balance %q is not an integer", raw)
	}
	return value.Shift(int32(-decimals)), nil
}

package migration

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
)

// ToBaseUnits converts a UI amount into raw token units.
func ToBaseUnits(amount decimal.Decimal, decimals uint8) (uint64, error) {
	raw := amount.Shift(int32(decimals))
	if raw.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", amount)
	}
	if !raw.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than %d decimals", amount, decimals)
	}
	n := raw.BigInt()
	if !n.IsUint64() {
		return 0, fmt.Errorf("amount %s overflows u64", amount)
	}
	return n.Uint64(), nil
}

func ParseAmount(s string, decimals uint8) (uint64, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	return ToBaseUnits(amount, decimals)
}

func FormatAmount(raw uint64, decimals uint8) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(raw), -int32(decimals)).String()
}

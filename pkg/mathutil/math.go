package mathutil

import (
	"math/big"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.DivisionPrecision = 8
}

// Div takes two uint64 numbers and divides them x / y and returns the result as decimal.Decimal
func Div(x, y uint64) decimal.Decimal {
	X := decimal.NewFromBigInt(new(big.Int).SetUint64(x), 0)
	Y := decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	return X.Div(Y)
}

// MulFloat multiplies the float x by the uint64 y and returns the result as
// decimal.Decimal
func MulFloat(x float64, y uint64) decimal.Decimal {
	X := decimal.NewFromFloat(x)
	Y := decimal.NewFromBigInt(new(big.Int).SetUint64(y), 0)
	return X.Mul(Y)
}

// RoundUint64 rounds d to the nearest integer, halves away from zero. Negative
// values are returned as zero.
func RoundUint64(d decimal.Decimal) uint64 {
	d = d.Round(0)
	if d.IsNegative() {
		return 0
	}
	return d.BigInt().Uint64()
}

// FromBaseUnits converts an integer amount expressed in base units, like a
// token balance, into a decimal with the given precision.
func FromBaseUnits(amount string, decimals int) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, err
	}
	return d.Shift(-int32(decimals)), nil
}

package mathutil

import "github.com/shopspring/decimal"

// FeeRate converts a fee per kilobyte into the fee unit of a coin (ie.
// sat/byte, Gwei), rounded to the nearest integer.
func FeeRate(feePerKb, feeUnitAmount uint64) uint64 {
	if feeUnitAmount == 0 {
		return 0
	}
	return RoundUint64(Div(feePerKb, feeUnitAmount))
}

// FeePerKb converts a fee rate expressed in the fee unit of a coin back to a
// fee per kilobyte, rounded to the nearest integer.
func FeePerKb(feeRate float64, feeUnitAmount uint64) uint64 {
	return RoundUint64(MulFloat(feeRate, feeUnitAmount))
}

// IsAbove returns whether the amount in base units, converted with the given
// precision, is greater or equal than threshold.
func IsAbove(amount string, decimals int, threshold decimal.Decimal) bool {
	d, err := FromBaseUnits(amount, decimals)
	if err != nil {
		return false
	}
	return d.GreaterThanOrEqual(threshold)
}

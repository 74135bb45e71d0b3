package application

import (
	"fmt"
	"math"
	"strconv"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/pkg/mathutil"
)

// BuildFeeOptions transforms the fee levels of chain into fee options, in
// reverse order. When isSpeedUp is set, options paying less than speedUpMin
// per kB are disabled.
func BuildFeeOptions(
	chain string, levels []domain.FeeLevel, isSpeedUp bool, speedUpMin uint64,
) []domain.FeeOption {
	feeInfo := domain.GetFeeInfo(chain)
	labels := domain.FeeLevelLabels(chain)
	isEVM := domain.IsEVMChain(chain)

	options := make([]domain.FeeOption, 0, len(levels))
	for i := len(levels) - 1; i >= 0; i-- {
		lvl := levels[i]
		feePerSatByte := mathutil.FeeRate(lvl.FeePerKb, feeInfo.FeeUnitAmount)

		opt := domain.FeeOption{
			Level:           lvl.Level,
			UILevel:         labels[lvl.Level],
			FeePerKb:        lvl.FeePerKb,
			NbBlocks:        lvl.NbBlocks,
			FeeUnit:         feeInfo.FeeUnit,
			FeePerSatByte:   feePerSatByte,
			UIFeePerSatByte: fmt.Sprintf("%d %s", feePerSatByte, feeInfo.FeeUnit),
		}
		if isEVM {
			opt.AvgConfirmationTime = domain.EVMAvgConfirmationTime[lvl.Level]
		} else {
			opt.AvgConfirmationTime = avgConfirmationTime(
				lvl.NbBlocks, feeInfo.BlockTime,
			)
		}
		if isSpeedUp && speedUpMin > 0 {
			opt.Disabled = lvl.FeePerKb < speedUpMin
		}

		options = append(options, opt)
	}
	return options
}

func avgConfirmationTime(nbBlocks int, blockTime float64) string {
	min := float64(nbBlocks) * blockTime
	hours := int(math.Floor(min / 60))
	switch {
	case hours == 1:
		return "within an hour"
	case hours > 1:
		return fmt.Sprintf("within %d hours", hours)
	default:
		return fmt.Sprintf(
			"within %s minutes", strconv.FormatFloat(min, 'f', -1, 64),
		)
	}
}

// SpeedUpMinFeePerKb returns the minimum fee per kB a replacement tx must
// pay. For btc that's the cheapest level paying at least customFeePerKb, or
// customFeePerKb itself if none does. For other coins it's the priority
// level. The boolean is false if no minimum could be determined.
func SpeedUpMinFeePerKb(
	coin string, levels []domain.FeeLevel, customFeePerKb uint64,
) (uint64, bool) {
	if coin == "btc" {
		var min uint64
		found := false
		for _, lvl := range levels {
			if lvl.FeePerKb < customFeePerKb {
				continue
			}
			if !found || lvl.FeePerKb < min {
				min = lvl.FeePerKb
				found = true
			}
		}
		if !found {
			return customFeePerKb, customFeePerKb > 0
		}
		return min, true
	}

	for _, lvl := range levels {
		if lvl.Level == domain.FeeLevelPriority && lvl.FeePerKb > 0 {
			return lvl.FeePerKb, true
		}
	}
	return 0, false
}

// RecommendedFees returns the bounds a custom fee is checked against,
// expressed in fee units. A non zero speedUpMin replaces the lowest level as
// minimum recommended fee.
func RecommendedFees(
	levels []domain.FeeLevel, feeUnitAmount, speedUpMin uint64,
) domain.FeeBounds {
	if len(levels) <= 0 {
		return domain.FeeBounds{MinAllowed: domain.FeeMin}
	}

	minValue, maxValue := levels[0].FeePerKb, levels[0].FeePerKb
	for _, lvl := range levels[1:] {
		if lvl.FeePerKb < minValue {
			minValue = lvl.FeePerKb
		}
		if lvl.FeePerKb > maxValue {
			maxValue = lvl.FeePerKb
		}
	}
	if speedUpMin > 0 {
		minValue = speedUpMin
	}

	maxRecommended := mathutil.FeeRate(maxValue, feeUnitAmount)
	return domain.FeeBounds{
		MinRecommended: mathutil.FeeRate(minValue, feeUnitAmount),
		MaxRecommended: maxRecommended,
		MinAllowed:     domain.FeeMin,
		MaxAllowed:     maxRecommended * domain.FeeMultiplier,
	}
}

// CheckCustomFee validates the custom fee rate against bounds.
func CheckCustomFee(fee float64, bounds domain.FeeBounds) domain.FeeCheck {
	check := func(status domain.FeeCheckStatus, blocking bool) domain.FeeCheck {
		return domain.FeeCheck{
			Status:    status,
			Blocking:  blocking,
			FeeBounds: bounds,
		}
	}

	if fee == 0 || math.IsNaN(fee) {
		return check(domain.FeeCheckRequired, true)
	}

	minAllowed := float64(bounds.MinAllowed)
	maxAllowed := float64(bounds.MaxAllowed)
	if fee < minAllowed {
		return check(domain.FeeCheckMinError, true)
	}
	if bounds.MaxAllowed > 0 && fee > maxAllowed {
		return check(domain.FeeCheckMaxError, true)
	}

	status := domain.FeeCheckOK
	if fee > minAllowed && fee < float64(bounds.MinRecommended) {
		status = domain.FeeCheckMinWarning
	}
	if bounds.MaxAllowed > 0 && fee > float64(bounds.MaxRecommended) {
		status = domain.FeeCheckMaxWarning
	}
	return check(status, false)
}

// CustomFeePerKb converts a custom fee rate in fee units to a fee per kB.
func CustomFeePerKb(feePerUnit float64, feeUnitAmount uint64) uint64 {
	return mathutil.FeePerKb(feePerUnit, feeUnitAmount)
}

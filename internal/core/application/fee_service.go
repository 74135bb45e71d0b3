package application

import (
	"context"
	"strings"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/JerryMichels/bitpay-app/pkg/mathutil"
	log "github.com/sirupsen/logrus"
)

type FeeService interface {
	GetFeeOptions(
		ctx context.Context, req FeeOptionsRequest,
	) (*FeeOptionsResult, error)
	CheckCustomFee(
		ctx context.Context, req CheckFeeRequest,
	) (*domain.FeeCheck, error)
}

type feeService struct {
	feeLevels ports.FeeLevelProvider
	network   string
}

func NewFeeService(
	feeLevels ports.FeeLevelProvider, network string,
) (FeeService, error) {
	if feeLevels == nil {
		return nil, ErrNullFeeLevelProvider
	}
	if network == "" {
		network = domain.NetworkMainnet
	}
	return &feeService{feeLevels, network}, nil
}

func (s *feeService) GetFeeOptions(
	ctx context.Context, req FeeOptionsRequest,
) (*FeeOptionsResult, error) {
	coin := strings.ToLower(req.Coin)
	chain := strings.ToLower(req.Chain)
	if chain == "" {
		chain = coin
	}
	if _, ok := domain.GetCoinInfo(chain); !ok {
		return nil, domain.ErrUnsupportedCurrency
	}
	network := req.Network
	if network == "" {
		network = s.network
	}

	feeRequests.WithLabelValues(chain).Inc()

	levels, err := s.feeLevels.GetFeeLevels(ctx, chain, network)
	if err != nil {
		return nil, err
	}
	if len(levels) <= 0 {
		return nil, domain.ErrEmptyFeeLevels
	}

	feeInfo := domain.GetFeeInfo(chain)

	var speedUpMin uint64
	if req.IsSpeedUp {
		if min, ok := SpeedUpMinFeePerKb(coin, levels, req.CustomFeePerKb); ok {
			speedUpMin = min
		}
		log.Debugf("speed up min fee per kb for %s: %d", coin, speedUpMin)
	}

	result := &FeeOptionsResult{
		Options:            BuildFeeOptions(chain, levels, req.IsSpeedUp, speedUpMin),
		Bounds:             RecommendedFees(levels, feeInfo.FeeUnitAmount, speedUpMin),
		FeeUnit:            feeInfo.FeeUnit,
		FeeUnitAmount:      feeInfo.FeeUnitAmount,
		SpeedUpMinFeePerKb: speedUpMin,
	}
	for _, opt := range result.Options {
		if opt.Level == req.FeeLevel {
			result.SelectedFeePerUnit = opt.FeePerSatByte
		}
	}
	if req.CustomFeePerKb > 0 {
		result.CustomFeePerUnit = mathutil.FeeRate(
			req.CustomFeePerKb, feeInfo.FeeUnitAmount,
		)
	}
	return result, nil
}

func (s *feeService) CheckCustomFee(
	ctx context.Context, req CheckFeeRequest,
) (*domain.FeeCheck, error) {
	result, err := s.GetFeeOptions(ctx, req.FeeOptionsRequest)
	if err != nil {
		return nil, err
	}
	check := CheckCustomFee(req.FeePerUnit, result.Bounds)
	return &check, nil
}

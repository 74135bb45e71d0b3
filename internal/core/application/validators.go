package application

import (
	"regexp"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	supportedCoinRule = validation.By(func(value interface{}) error {
		coin, _ := value.(string)
		if _, ok := domain.GetCoinInfo(coin); !ok {
			return domain.ErrUnsupportedCurrency
		}
		return nil
	})
	networkRule = validation.In(
		domain.NetworkMainnet, domain.NetworkTestnet, domain.NetworkRegtest,
	)
	seedTypeRule = validation.In(
		domain.SeedTypeNew, domain.SeedTypeMnemonic,
		domain.SeedTypeExtendedPrivateKey,
	)
	endpointRule = validation.Match(regexp.MustCompile(`^https?://`))
)

func (r CreateKeyRequest) validate() error {
	if len(r.Currencies) <= 0 {
		return ErrEmptyCurrencies
	}
	for _, c := range r.Currencies {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return validation.ValidateStruct(&r.Options,
		validation.Field(&r.Options.Network, networkRule),
		validation.Field(&r.Options.Account, validation.Min(0)),
	)
}

func (r AddWalletRequest) validate() error {
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.KeyID, validation.Required),
	); err != nil {
		return err
	}
	if err := r.Currency.Validate(); err != nil {
		return err
	}
	return validation.ValidateStruct(&r.Options,
		validation.Field(&r.Options.Network, networkRule),
		validation.Field(
			&r.Options.Account, validation.Min(0), validation.Max(domain.MaxAccountIndex),
		),
	)
}

func validateKeyOptions(opts domain.KeyOptions) error {
	return validation.ValidateStruct(&opts,
		validation.Field(&opts.SeedType, validation.Required, seedTypeRule),
		validation.Field(&opts.Mnemonic, validation.When(
			opts.SeedType == domain.SeedTypeMnemonic, validation.Required,
		)),
		validation.Field(&opts.ExtendedPrivateKey, validation.When(
			opts.SeedType == domain.SeedTypeExtendedPrivateKey, validation.Required,
		)),
		validation.Field(&opts.Coin, validation.Required, supportedCoinRule),
		validation.Field(&opts.Chain, validation.Required, supportedCoinRule),
		validation.Field(&opts.Network, networkRule),
		validation.Field(&opts.Account, validation.Min(0)),
		validation.Field(&opts.M, validation.Min(1)),
		validation.Field(&opts.N, validation.Min(opts.M)),
	)
}

func validateWebhook(hook Webhook) error {
	return validation.ValidateStruct(&hook,
		validation.Field(&hook.Endpoint, validation.Required, endpointRule),
	)
}

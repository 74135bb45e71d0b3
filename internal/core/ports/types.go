package ports

import (
	"context"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
)

// TokenBalance is the balance of an ERC20 token held by some address.
type TokenBalance struct {
	Token        domain.Token
	Balance      string
	PossibleSpam bool
}

// EmailPrefs are the preferences stored when subscribing a wallet to email
// notifications.
type EmailPrefs struct {
	Email    string
	Language string
	Unit     string
}

// TokenInfoProvider returns the on-chain metadata of a token contract.
type TokenInfoProvider interface {
	GetTokenInfo(
		ctx context.Context, chain, network, address string,
	) (*domain.Token, error)
}

// TokenBalanceProvider lists the ERC20 balances of an address.
type TokenBalanceProvider interface {
	GetERC20Balances(
		ctx context.Context, chain, network, address string,
	) ([]TokenBalance, error)
}

// FeeLevelProvider returns the current fee levels of a coin.
type FeeLevelProvider interface {
	GetFeeLevels(
		ctx context.Context, coin, network string,
	) ([]domain.FeeLevel, error)
}

// Notifier subscribes wallets to the notification channels.
type Notifier interface {
	SubscribePush(
		ctx context.Context, creds *domain.Credentials, externalUserID string,
	) error
	SubscribeEmail(
		ctx context.Context, creds *domain.Credentials, prefs EmailPrefs,
	) error
}

package application

import "errors"

var (
	// ErrNullWalletClient ...
	ErrNullWalletClient = errors.New("wallet client must not be null")
	// ErrNullRepoManager ...
	ErrNullRepoManager = errors.New("repository manager must not be null")
	// ErrNullFeeLevelProvider ...
	ErrNullFeeLevelProvider = errors.New("fee level provider must not be null")
	// ErrNullTokenBalanceProvider is returned when detecting tokens without a
	// balance provider configured.
	ErrNullTokenBalanceProvider = errors.New(
		"token balance provider is not configured",
	)
	// ErrInvalidAssociatedWallet is returned when the parent of a token wallet
	// is not a chain wallet of the token chain.
	ErrInvalidAssociatedWallet = errors.New(
		"associated wallet must be a chain wallet of the same chain",
	)
	// ErrEmptyCurrencies ...
	ErrEmptyCurrencies = errors.New("at least one currency is required")
	// ErrWebhookManagerNotInitialized is returned when attempting to manage
	// webhooks without a pubsub service configured.
	ErrWebhookManagerNotInitialized = errors.New("webhook manager is not initialized")
	// ErrInvalidTopic ...
	ErrInvalidTopic = errors.New("topic is invalid")
)

package domain

import "errors"

var (
	// ErrKeyNotFound is returned when the requested key does not exist.
	ErrKeyNotFound = errors.New("key not found")
	// ErrWalletNotFound ...
	ErrWalletNotFound = errors.New("wallet not found")
	// ErrNullWallet ...
	ErrNullWallet = errors.New("wallet must not be null")
	// ErrWalletAlreadyExists is returned when adding a wallet whose
	// coin, chain, network and account are already taken in the key.
	ErrWalletAlreadyExists = errors.New("wallet already exists")
	// ErrAccountLimitReached is returned when every account index up to
	// MaxAccountIndex is already registered for the same coin and network.
	ErrAccountLimitReached = errors.New(
		"20 Wallet limit from the same coin and network has been reached",
	)
	// ErrUnsupportedCurrency ...
	ErrUnsupportedCurrency = errors.New("currency is not supported")
	// ErrMissingTokenAddress ...
	ErrMissingTokenAddress = errors.New("token address is missing")
	// ErrInvalidTokenAddress ...
	ErrInvalidTokenAddress = errors.New("token address is not a valid hex address")
	// ErrTokenOptsNotFound is returned when no descriptor can be found for a
	// token, neither among the known tokens nor among the custom ones.
	ErrTokenOptsNotFound = errors.New("could not find token options")
	// ErrEmptyFeeLevels ...
	ErrEmptyFeeLevels = errors.New("could not get fee levels")
	// ErrInvalidPassword is returned when the key password is wrong.
	ErrInvalidPassword = errors.New("password is not valid")
	// ErrNullSettings ...
	ErrNullSettings = errors.New("settings must not be null")
)

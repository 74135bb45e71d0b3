package bws

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSeedData is returned when importing a key without mnemonic or
	// extended private key.
	ErrMissingSeedData = errors.New("seed data is missing")
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is not valid")
	// ErrUnsupportedExportVersion ...
	ErrUnsupportedExportVersion = errors.New("key export version is not supported")
	// ErrMissingWalletID is returned when requesting a wallet not registered
	// yet.
	ErrMissingWalletID = errors.New("credentials are not bound to any wallet")
	// ErrUnsupportedCoin ...
	ErrUnsupportedCoin = errors.New("coin is not supported")
)

// Error is an error returned by the wallet service.
type Error struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("bws: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("bws: %s: %s", e.Code, e.Message)
}

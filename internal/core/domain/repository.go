package domain

import "context"

// KeyRepository is the abstraction for any kind of database intended to
// persist Keys together with their wallets.
type KeyRepository interface {
	// AddKey adds a new key to the repository.
	AddKey(ctx context.Context, key *Key) error
	// GetKey returns the key with the given id.
	GetKey(ctx context.Context, keyID string) (*Key, error)
	// GetAllKeys returns all keys.
	GetAllKeys(ctx context.Context) ([]Key, error)
	// UpdateKey updates the state of a key. The closure function let's to
	// commit multiple changes to a certain key in a transactional way.
	UpdateKey(
		ctx context.Context,
		keyID string, updateFn func(k *Key) (*Key, error),
	) error
	// DeleteKey removes a key from the repository.
	DeleteKey(ctx context.Context, keyID string) error
}

// SettingsRepository persists the AppSettings.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (*AppSettings, error)
	UpdateSettings(
		ctx context.Context, updateFn func(s *AppSettings) (*AppSettings, error),
	) error
}

// TokenRepository persists the custom tokens registered at wallet creation.
type TokenRepository interface {
	AddTokens(ctx context.Context, tokens ...Token) error
	GetAllTokens(ctx context.Context) ([]Token, error)
	GetTokensForChain(ctx context.Context, chain string) ([]Token, error)
}

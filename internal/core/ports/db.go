package ports

import "github.com/JerryMichels/bitpay-app/internal/core/domain"

// RepoManager interface defines the methods for keys, settings and tokens.
type RepoManager interface {
	KeyRepository() domain.KeyRepository
	SettingsRepository() domain.SettingsRepository
	TokenRepository() domain.TokenRepository

	Close()
}

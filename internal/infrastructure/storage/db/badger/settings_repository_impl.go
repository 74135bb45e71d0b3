package dbbadger

import (
	"context"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const settingsKey = "settings"

type settingsRepositoryImpl struct {
	store *badgerhold.Store
}

func NewSettingsRepositoryImpl(store *badgerhold.Store) domain.SettingsRepository {
	return settingsRepositoryImpl{store}
}

// GetSettings returns nil if the settings were never stored.
func (r settingsRepositoryImpl) GetSettings(
	ctx context.Context,
) (*domain.AppSettings, error) {
	var settings domain.AppSettings
	if err := r.store.Get(settingsKey, &settings); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &settings, nil
}

// UpdateSettings calls updateFn with the current settings, nil if never
// stored, and upserts the result.
func (r settingsRepositoryImpl) UpdateSettings(
	ctx context.Context,
	updateFn func(s *domain.AppSettings) (*domain.AppSettings, error),
) error {
	tx := r.store.Badger().NewTransaction(true)
	defer tx.Discard()

	var current *domain.AppSettings
	var settings domain.AppSettings
	if err := r.store.TxGet(tx, settingsKey, &settings); err != nil {
		if err != badgerhold.ErrNotFound {
			return err
		}
	} else {
		current = &settings
	}

	updated, err := updateFn(current)
	if err != nil {
		return err
	}
	if updated == nil {
		return domain.ErrNullSettings
	}

	if err := r.store.TxUpsert(tx, settingsKey, *updated); err != nil {
		return err
	}
	return tx.Commit()
}

package dbbadger

import (
	"context"
	"sort"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type keyRepositoryImpl struct {
	store *badgerhold.Store
}

// NewKeyRepositoryImpl initialize a badger implementation of the
// domain.KeyRepository.
func NewKeyRepositoryImpl(store *badgerhold.Store) domain.KeyRepository {
	return keyRepositoryImpl{store}
}

func (r keyRepositoryImpl) AddKey(ctx context.Context, key *domain.Key) error {
	if key == nil {
		return ErrNullKey
	}
	if err := r.store.Insert(key.ID, *key); err != nil {
		if err == badgerhold.ErrKeyExists {
			return ErrKeyAlreadyExists
		}
		return err
	}
	return nil
}

func (r keyRepositoryImpl) GetKey(
	ctx context.Context, keyID string,
) (*domain.Key, error) {
	var key domain.Key
	if err := r.store.Get(keyID, &key); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrKeyNotFound
		}
		return nil, err
	}
	return &key, nil
}

func (r keyRepositoryImpl) GetAllKeys(ctx context.Context) ([]domain.Key, error) {
	var keys []domain.Key
	if err := r.store.Find(&keys, nil); err != nil {
		return nil, err
	}
	sort.SliceStable(keys, func(i, j int) bool {
		return keys[i].CreatedAt < keys[j].CreatedAt
	})
	return keys, nil
}

// UpdateKey runs updateFn and stores its result within the same badger
// transaction, so concurrent updates of the same key make all but one
// commit to fail with a conflict.
func (r keyRepositoryImpl) UpdateKey(
	ctx context.Context,
	keyID string, updateFn func(k *domain.Key) (*domain.Key, error),
) error {
	tx := r.store.Badger().NewTransaction(true)
	defer tx.Discard()

	var key domain.Key
	if err := r.store.TxGet(tx, keyID, &key); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrKeyNotFound
		}
		return err
	}

	updatedKey, err := updateFn(&key)
	if err != nil {
		return err
	}

	if err := r.store.TxUpdate(tx, keyID, *updatedKey); err != nil {
		return err
	}
	return tx.Commit()
}

func (r keyRepositoryImpl) DeleteKey(ctx context.Context, keyID string) error {
	if err := r.store.Delete(keyID, domain.Key{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrKeyNotFound
		}
		return err
	}
	return nil
}

package dbbadger

import (
	"context"
	"strings"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type tokenRepositoryImpl struct {
	store *badgerhold.Store
}

func NewTokenRepositoryImpl(store *badgerhold.Store) domain.TokenRepository {
	return tokenRepositoryImpl{store}
}

// AddTokens stores the given custom tokens, overwriting the ones with the
// same address and chain.
func (r tokenRepositoryImpl) AddTokens(
	ctx context.Context, tokens ...domain.Token,
) error {
	tx := r.store.Badger().NewTransaction(true)
	defer tx.Discard()

	for _, t := range tokens {
		t.Address = strings.ToLower(t.Address)
		t.Chain = strings.ToLower(t.Chain)
		if err := r.store.TxUpsert(tx, t.Key(), t); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r tokenRepositoryImpl) GetAllTokens(
	ctx context.Context,
) ([]domain.Token, error) {
	return r.findTokens(nil)
}

func (r tokenRepositoryImpl) GetTokensForChain(
	ctx context.Context, chain string,
) ([]domain.Token, error) {
	query := badgerhold.Where("Chain").Eq(strings.ToLower(chain))
	return r.findTokens(query)
}

func (r tokenRepositoryImpl) findTokens(
	query *badgerhold.Query,
) ([]domain.Token, error) {
	var tokens []domain.Token
	if err := r.store.Find(&tokens, query); err != nil {
		return nil, err
	}
	return tokens, nil
}

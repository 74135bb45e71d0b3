package dbbadger_test

import (
	"fmt"
	"testing"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	dbbadger "github.com/JerryMichels/bitpay-app/internal/infrastructure/storage/db/badger"
	"github.com/stretchr/testify/require"
)

func newTestRepoManager(t *testing.T) ports.RepoManager {
	repoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func newTestKey(id string, createdAt int64, coins ...string) *domain.Key {
	key := domain.NewKey(id, "fingerprint-"+id, "export-"+id, false)
	key.CreatedAt = createdAt
	for i, coin := range coins {
		key.Wallets = append(key.Wallets, &domain.Wallet{
			ID:    fmt.Sprintf("%s-wallet-%d", id, i),
			KeyID: id,
			Credentials: domain.Credentials{
				WalletID: fmt.Sprintf("%s-wallet-%d", id, i),
				Coin:     coin,
				Chain:    coin,
				Network:  domain.NetworkMainnet,
			},
			Coin:    coin,
			Chain:   coin,
			Network: domain.NetworkMainnet,
		})
	}
	return key
}

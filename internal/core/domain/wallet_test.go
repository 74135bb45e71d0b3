package domain_test

import (
	"testing"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/stretchr/testify/require"
)

func TestWalletAddToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		chain         string
		expectedPrefs domain.Preferences
	}{
		{"eth", domain.Preferences{TokenAddresses: []string{"0xabc"}}},
		{"matic", domain.Preferences{MaticTokenAddresses: []string{"0xabc"}}},
		{"op", domain.Preferences{OpTokenAddresses: []string{"0xabc"}}},
		{"arb", domain.Preferences{ArbTokenAddresses: []string{"0xabc"}}},
		{"base", domain.Preferences{BaseTokenAddresses: []string{"0xabc"}}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.chain, func(t *testing.T) {
			w := newChainWallet("w", tt.chain, 0)
			w.AddToken("w-0xabc", "0xabc")
			w.AddToken("w-0xabc", "0xabc")

			require.Equal(t, []string{"w-0xabc"}, w.Tokens)
			require.NotNil(t, w.Preferences)
			require.Equal(t, tt.expectedPrefs, *w.Preferences)
			require.True(t, w.HasToken("0xABC"))
			require.False(t, w.HasToken("0xdef"))
		})
	}
}

func TestPreferencesAddTokenAddress(t *testing.T) {
	t.Parallel()

	prefs := &domain.Preferences{}
	require.True(t, prefs.AddTokenAddress("ETH", "0x1"))
	require.True(t, prefs.AddTokenAddress("eth", "0x1"))
	require.True(t, prefs.AddTokenAddress("eth", "0x2"))
	require.False(t, prefs.AddTokenAddress("btc", "0x3"))
	require.Equal(t, []string{"0x1", "0x2"}, prefs.TokenAddresses)
}

func TestNewWallet(t *testing.T) {
	t.Parallel()

	creds := domain.Credentials{
		WalletID:   "id",
		WalletName: "savings",
		Coin:       "btc",
		Chain:      "btc",
		Network:    domain.NetworkTestnet,
		Account:    3,
	}
	w := domain.NewWallet(creds, "Bitcoin", "btc")
	require.Equal(t, "id", w.ID)
	require.Equal(t, "savings", w.WalletName)
	require.Equal(t, 3, w.Account)
	require.Equal(t, domain.NetworkTestnet, w.Network)
	require.Equal(t, "Bitcoin", w.CurrencyName)
	require.False(t, w.IsToken())
}

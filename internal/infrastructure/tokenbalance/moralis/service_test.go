package moralis_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/JerryMichels/bitpay-app/internal/infrastructure/tokenbalance/moralis"
	"github.com/stretchr/testify/require"
)

const walletAddress = "0x8ba1f109551bD432803012645Ac136ddd64DBA72"

func TestGetERC20Balances(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("X-API-Key") != "key" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			require.Equal(t, "/"+walletAddress+"/erc20", r.URL.Path)
			switch r.URL.Query().Get("chain") {
			case "0x89":
				_, _ = w.Write([]byte(`[{
					"token_address": "0x2791BCA1F2DE4661ED88A30C99A7A9449AA84174",
					"symbol": "USDC",
					"name": "USD Coin (PoS)",
					"decimals": 6,
					"balance": "1500000",
					"possible_spam": false
				}, {
					"token_address": "0x0000000000000000000000000000000000000bad",
					"symbol": "SCAM",
					"name": "Scam",
					"decimals": 18,
					"balance": "1",
					"possible_spam": true
				}]`))
			default:
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"bad chain"}`))
			}
		},
	))
	defer server.Close()

	svc, err := moralis.NewService(server.URL, "key", 0)
	require.NoError(t, err)

	balances, err := svc.GetERC20Balances(context.Background(), "matic", "livenet", walletAddress)
	require.NoError(t, err)
	require.Len(t, balances, 2)
	require.Equal(t, "0x2791bca1f2de4661ed88a30c99a7a9449aa84174", balances[0].Token.Address)
	require.Equal(t, "matic", balances[0].Token.Chain)
	require.Equal(t, 6, balances[0].Token.Decimals)
	require.Equal(t, "1500000", balances[0].Balance)
	require.False(t, balances[0].PossibleSpam)
	require.True(t, balances[1].PossibleSpam)

	_, err = svc.GetERC20Balances(context.Background(), "eth", "livenet", walletAddress)
	require.Error(t, err)

	_, err = svc.GetERC20Balances(context.Background(), "btc", "livenet", walletAddress)
	require.ErrorIs(t, err, moralis.ErrUnsupportedChain)

	unauthorized, err := moralis.NewService(server.URL, "wrong", 0)
	require.NoError(t, err)
	_, err = unauthorized.GetERC20Balances(context.Background(), "matic", "livenet", walletAddress)
	require.Error(t, err)
}

func TestNewService(t *testing.T) {
	_, err := moralis.NewService("", "", 0)
	require.Error(t, err)

	_, err = moralis.NewService("::", "key", 0)
	require.Error(t, err)

	_, err = moralis.NewService("", "key", 0)
	require.NoError(t, err)
}

package erc20_test

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/infrastructure/tokeninfo/erc20"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/stretchr/testify/require"
)

const tokenAddress = "0x2791Bca1f2de4661ED88A30C99A7a9449Aa84174"

type fakeContract struct {
	abi     abi.ABI
	outputs map[string]interface{}
	err     error
}

func (f fakeContract) CallContract(
	_ context.Context, msg ethereum.CallMsg, _ *big.Int,
) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	method, err := f.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	out, ok := f.outputs[method.Name]
	if !ok {
		return nil, nil
	}
	return method.Outputs.Pack(out)
}

func newFakeContract(t *testing.T, outputs map[string]interface{}, err error) fakeContract {
	parsed, perr := abi.JSON(strings.NewReader(`[
		{"inputs":[],"name":"name","outputs":[{"name":"","type":"string"}],"type":"function"},
		{"inputs":[],"name":"symbol","outputs":[{"name":"","type":"string"}],"type":"function"},
		{"inputs":[],"name":"decimals","outputs":[{"name":"","type":"uint8"}],"type":"function"}
	]`))
	require.NoError(t, perr)
	return fakeContract{parsed, outputs, err}
}

func TestGetTokenInfo(t *testing.T) {
	svc, err := erc20.NewServiceWithCallers(map[string]erc20.ContractCaller{
		"matic": newFakeContract(t, map[string]interface{}{
			"name": "USD Coin (PoS)", "symbol": "USDC", "decimals": uint8(6),
		}, nil),
		"eth": newFakeContract(t, map[string]interface{}{}, nil),
		"arb": newFakeContract(t, nil, errors.New("rpc down")),
	})
	require.NoError(t, err)

	t.Run("valid", func(t *testing.T) {
		token, err := svc.GetTokenInfo(context.Background(), "MATIC", "livenet", tokenAddress)
		require.NoError(t, err)
		require.Equal(t, &domain.Token{
			Symbol:   "USDC",
			Name:     "USD Coin (PoS)",
			Decimals: 6,
			Address:  strings.ToLower(tokenAddress),
			Chain:    "matic",
		}, token)
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name    string
			chain   string
			address string
			err     error
		}{
			{"invalid address", "matic", "0x1234", domain.ErrInvalidTokenAddress},
			{"not a contract", "eth", tokenAddress, erc20.ErrNotAContract},
			{"missing endpoint", "op", tokenAddress, erc20.ErrMissingEndpoint},
		}
		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.GetTokenInfo(context.Background(), tt.chain, "livenet", tt.address)
				require.ErrorIs(t, err, tt.err)
			})
		}

		_, err := svc.GetTokenInfo(context.Background(), "arb", "livenet", tokenAddress)
		require.EqualError(t, err, "rpc down")
	})
}

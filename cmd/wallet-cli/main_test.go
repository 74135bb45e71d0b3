package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		str      string
		expected map[string]interface{}
	}{
		{
			str: "BTC:btc",
			expected: map[string]interface{}{
				"chain": "btc", "currency_abbreviation": "btc",
			},
		},
		{
			str: "eth:USDC:0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
			expected: map[string]interface{}{
				"chain":                 "eth",
				"currency_abbreviation": "usdc",
				"is_token":              true,
				"token_address":         "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.str, func(t *testing.T) {
			currency, err := parseCurrency(tt.str)
			require.NoError(t, err)
			require.Equal(t, tt.expected, currency)
		})
	}

	for _, str := range []string{"btc", "eth:usdc:0x1:extra"} {
		_, err := parseCurrency(str)
		require.Error(t, err)
	}
}

func TestParseErrorResponse(t *testing.T) {
	err := parseErrorResponse(404, `{"error":"key not found"}`)
	require.EqualError(t, err, "key not found (status 404)")

	err = parseErrorResponse(502, "bad gateway\n")
	require.EqualError(t, err, "status 502: bad gateway")
}

func TestMerge(t *testing.T) {
	merged := merge(
		map[string]string{"rpcserver": "localhost:9950", "network": "livenet"},
		map[string]string{"network": "testnet"},
	)
	require.Equal(t, map[string]string{
		"rpcserver": "localhost:9950", "network": "testnet",
	}, merged)
}

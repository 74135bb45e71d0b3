package domain

import (
	"fmt"
	"strings"
)

// Token describes an ERC20-like contract.
type Token struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Decimals int    `json:"decimals"`
	Address  string `json:"address"`
	Chain    string `json:"chain,omitempty"`
}

// TokenKey builds the key used to index token options, ie. the lowercase
// contract address suffixed with the chain: <address>_e.<chain>.
func TokenKey(address, chain string) string {
	return fmt.Sprintf(
		"%s_e.%s", strings.ToLower(address), strings.ToLower(chain),
	)
}

// Key returns the index key of the token.
func (t Token) Key() string {
	return TokenKey(t.Address, t.Chain)
}

// KnownTokensByAddress are the tokens supported out of the box.
var KnownTokensByAddress = func() map[string]Token {
	list := []Token{
		{"usdc", "USD Coin", 6, "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", "eth"},
		{"usdt", "Tether USD", 6, "0xdac17f958d2ee523a2206206994597c13d831ec7", "eth"},
		{"dai", "Dai Stablecoin", 18, "0x6b175474e89094c44da98b954eedeac495271d0f", "eth"},
		{"wbtc", "Wrapped BTC", 8, "0x2260fac5e5542a773aa44fbcfedf7c193bc2c599", "eth"},
		{"usdc", "USD Coin", 6, "0x3c499c542cef5e3811e1192ce70d8cc03d5c3359", "matic"},
		{"usdc", "USD Coin", 6, "0xaf88d065e77c8cc2239327c5edb3a432268e5831", "arb"},
		{"usdc", "USD Coin", 6, "0x833589fcd6edb6e08f4c7c32d4f71b54bda02913", "base"},
		{"usdc", "USD Coin", 6, "0x0b2c639c533813f4aa9d7837caf62653d097ff85", "op"},
	}
	tokens := make(map[string]Token, len(list))
	for _, t := range list {
		tokens[t.Key()] = t
	}
	return tokens
}()

// TokenOpts is the set of token descriptors indexed by TokenKey.
type TokenOpts map[string]Token

// NewTokenOpts merges the known tokens with the given custom ones. Custom
// tokens never shadow known ones.
func NewTokenOpts(custom ...Token) TokenOpts {
	opts := make(TokenOpts, len(KnownTokensByAddress)+len(custom))
	for _, t := range custom {
		opts[t.Key()] = t
	}
	for k, t := range KnownTokensByAddress {
		opts[k] = t
	}
	return opts
}

// Get returns the token descriptor for the given address on chain.
func (o TokenOpts) Get(address, chain string) (Token, bool) {
	t, ok := o[TokenKey(address, chain)]
	return t, ok
}

// Add registers a token descriptor.
func (o TokenOpts) Add(t Token) {
	o[t.Key()] = t
}

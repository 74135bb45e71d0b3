package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// CreateOptions are the per-call settings used when registering a wallet.
type CreateOptions struct {
	Network         string `json:"network,omitempty"`
	Account         int    `json:"account"`
	CustomAccount   bool   `json:"custom_account,omitempty"`
	UseNativeSegwit bool   `json:"use_native_segwit,omitempty"`
	SegwitVersion   int    `json:"segwit_version,omitempty"`
	SingleAddress   bool   `json:"single_address,omitempty"`
	WalletName      string `json:"wallet_name,omitempty"`
	Password        string `json:"-"`
}

// WithDefaults returns a copy of the options with the unset network
// replaced by the given one, or mainnet if empty.
func (o CreateOptions) WithDefaults(network string) CreateOptions {
	if o.Network == "" {
		o.Network = network
	}
	if o.Network == "" {
		o.Network = NetworkMainnet
	}
	if o.Account < 0 {
		o.Account = 0
	}
	return o
}

// KeyOptions are the options to create a key from existing material and
// register its first wallet.
type KeyOptions struct {
	SeedType           string `json:"seed_type"`
	Mnemonic           string `json:"mnemonic,omitempty"`
	ExtendedPrivateKey string `json:"extended_private_key,omitempty"`
	Passphrase         string `json:"passphrase,omitempty"`
	UseLegacyCoinType  bool   `json:"use_legacy_coin_type,omitempty"`
	UseLegacyPurpose   bool   `json:"use_legacy_purpose,omitempty"`

	Coin            string `json:"coin,omitempty"`
	Chain           string `json:"chain,omitempty"`
	Network         string `json:"network,omitempty"`
	Account         int    `json:"account"`
	N               int    `json:"n,omitempty"`
	M               int    `json:"m,omitempty"`
	Name            string `json:"name,omitempty"`
	MyName          string `json:"my_name,omitempty"`
	SingleAddress   bool   `json:"single_address,omitempty"`
	UseNativeSegwit bool   `json:"use_native_segwit,omitempty"`
	Password        string `json:"-"`
}

// Seed types accepted by KeyOptions.
const (
	SeedTypeNew                = "new"
	SeedTypeMnemonic           = "mnemonic"
	SeedTypeExtendedPrivateKey = "extendedPrivateKey"
)

// WithDefaults fills the unset fields the same way the wallet client does.
func (o KeyOptions) WithDefaults() KeyOptions {
	if o.SeedType == "" {
		o.SeedType = SeedTypeNew
	}
	if o.Coin == "" {
		o.Coin = "btc"
	}
	if o.Chain == "" {
		o.Chain = o.Coin
	}
	if o.Network == "" {
		o.Network = NetworkMainnet
	}
	if o.N <= 0 {
		o.N = 1
	}
	if o.M <= 0 {
		o.M = 1
	}
	if o.MyName == "" {
		o.MyName = "me"
	}
	if o.Name == "" {
		if info, ok := GetCoinInfo(o.Coin); ok {
			o.Name = info.Name
		}
	}
	return o
}

// Currency is the coin or token a wallet is requested for.
type Currency struct {
	Chain        string `json:"chain"`
	Abbreviation string `json:"currency_abbreviation"`
	IsToken      bool   `json:"is_token,omitempty"`
	TokenAddress string `json:"token_address,omitempty"`
	Decimals     int    `json:"decimals,omitempty"`
	Logo         string `json:"logo,omitempty"`
}

// Validate checks the currency can be handled by the orchestrator.
func (c Currency) Validate() error {
	if _, ok := GetCoinInfo(c.Chain); !ok {
		return ErrUnsupportedCurrency
	}
	if !c.IsToken {
		if _, ok := GetCoinInfo(c.Abbreviation); !ok {
			return ErrUnsupportedCurrency
		}
		return nil
	}
	if !IsEVMChain(c.Chain) {
		return ErrUnsupportedCurrency
	}
	if c.TokenAddress == "" {
		return ErrMissingTokenAddress
	}
	if !common.IsHexAddress(c.TokenAddress) {
		return ErrInvalidTokenAddress
	}
	return nil
}

// Normalized returns the currency with lowercase chain and abbreviation.
func (c Currency) Normalized() Currency {
	c.Chain = strings.ToLower(c.Chain)
	c.Abbreviation = strings.ToLower(c.Abbreviation)
	c.TokenAddress = strings.ToLower(c.TokenAddress)
	return c
}

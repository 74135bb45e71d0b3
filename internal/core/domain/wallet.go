package domain

import (
	"strings"
	"time"
)

// Credentials are the wallet client credentials of a single wallet. They
// are produced and interpreted by the wallet client, this package only
// reads the identifying fields.
type Credentials struct {
	WalletID       string `json:"wallet_id"`
	CopayerID      string `json:"copayer_id"`
	WalletName     string `json:"wallet_name,omitempty"`
	Coin           string `json:"coin"`
	Chain          string `json:"chain"`
	Network        string `json:"network"`
	Account        int    `json:"account"`
	RootPath       string `json:"root_path,omitempty"`
	XPubKey        string `json:"xpub_key,omitempty"`
	RequestPrivKey string `json:"request_priv_key,omitempty"`
	WalletPrivKey  string `json:"wallet_priv_key,omitempty"`
	M              int    `json:"m"`
	N              int    `json:"n"`
	AddressType    string `json:"address_type,omitempty"`
	Token          *Token `json:"token,omitempty"`
}

// IsToken returns whether the credentials refer to a token wallet.
func (c Credentials) IsToken() bool {
	return c.Token != nil
}

// Preferences are the wallet preferences stored on the wallet service. EVM
// chain wallets keep there the contract addresses of their token wallets.
type Preferences struct {
	TokenAddresses      []string `json:"token_addresses,omitempty"`
	MaticTokenAddresses []string `json:"matic_token_addresses,omitempty"`
	OpTokenAddresses    []string `json:"op_token_addresses,omitempty"`
	ArbTokenAddresses   []string `json:"arb_token_addresses,omitempty"`
	BaseTokenAddresses  []string `json:"base_token_addresses,omitempty"`
	Email               string   `json:"email,omitempty"`
	Language            string   `json:"language,omitempty"`
	Unit                string   `json:"unit,omitempty"`
}

// AddTokenAddress appends the address to the list of the given chain. It
// returns false for chains that do not keep a token list.
func (p *Preferences) AddTokenAddress(chain, address string) bool {
	var list *[]string
	switch strings.ToLower(chain) {
	case "eth":
		list = &p.TokenAddresses
	case "matic":
		list = &p.MaticTokenAddresses
	case "op":
		list = &p.OpTokenAddresses
	case "arb":
		list = &p.ArbTokenAddresses
	case "base":
		list = &p.BaseTokenAddresses
	default:
		return false
	}
	for _, a := range *list {
		if a == address {
			return true
		}
	}
	*list = append(*list, address)
	return true
}

// Wallet is a registered blockchain account owned by a Key.
type Wallet struct {
	ID                   string       `json:"id"`
	KeyID                string       `json:"key_id"`
	Credentials          Credentials  `json:"credentials"`
	Coin                 string       `json:"coin"`
	Chain                string       `json:"chain"`
	Network              string       `json:"network"`
	Account              int          `json:"account"`
	CurrencyName         string       `json:"currency_name"`
	CurrencyAbbreviation string       `json:"currency_abbreviation"`
	WalletName           string       `json:"wallet_name,omitempty"`
	ReceiveAddress       string       `json:"receive_address,omitempty"`
	Tokens               []string     `json:"tokens,omitempty"`
	Preferences          *Preferences `json:"preferences,omitempty"`
	ParentWalletID       string       `json:"parent_wallet_id,omitempty"`
	CreatedAt            int64        `json:"created_at"`
}

// NewWallet builds a wallet from the credentials returned by the client and
// the display metadata computed by the caller.
func NewWallet(
	creds Credentials, currencyName, currencyAbbreviation string,
) *Wallet {
	return &Wallet{
		ID:                   creds.WalletID,
		Credentials:          creds,
		Coin:                 creds.Coin,
		Chain:                creds.Chain,
		Network:              creds.Network,
		Account:              creds.Account,
		CurrencyName:         currencyName,
		CurrencyAbbreviation: currencyAbbreviation,
		WalletName:           creds.WalletName,
		CreatedAt:            time.Now().Unix(),
	}
}

// IsToken returns whether the wallet is a token wallet.
func (w *Wallet) IsToken() bool {
	return w.Credentials.IsToken()
}

// AddToken links the token wallet with the given id to this chain wallet and
// records its contract address in the preferences.
func (w *Wallet) AddToken(tokenWalletID, tokenAddress string) {
	for _, id := range w.Tokens {
		if id == tokenWalletID {
			return
		}
	}
	w.Tokens = append(w.Tokens, tokenWalletID)
	if w.Preferences == nil {
		w.Preferences = &Preferences{}
	}
	w.Preferences.AddTokenAddress(w.Chain, tokenAddress)
}

// HasToken returns whether a token wallet for the given contract address is
// already linked to this wallet.
func (w *Wallet) HasToken(tokenAddress string) bool {
	tokenAddress = strings.ToLower(tokenAddress)
	for _, id := range w.Tokens {
		if strings.Contains(strings.ToLower(id), tokenAddress) {
			return true
		}
	}
	return false
}

// sameSlot returns whether both wallets occupy the same
// (coin, chain, network, account) slot.
func (w *Wallet) sameSlot(other *Wallet) bool {
	return !w.IsToken() && !other.IsToken() &&
		strings.EqualFold(w.Coin, other.Coin) &&
		strings.EqualFold(w.Chain, other.Chain) &&
		w.Network == other.Network &&
		w.Account == other.Account
}

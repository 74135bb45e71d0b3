package httphandler

import (
	"github.com/JerryMichels/bitpay-app/internal/core/domain"
)

type createKeyRequest struct {
	Currencies []domain.Currency    `json:"currencies" binding:"required"`
	Options    domain.CreateOptions `json:"options"`
	Password   string               `json:"password"`
}

type importKeyRequest struct {
	domain.KeyOptions
	Password string `json:"password"`
}

type addWalletRequest struct {
	Currency           domain.Currency      `json:"currency" binding:"required"`
	AssociatedWalletID string               `json:"associated_wallet_id"`
	Options            domain.CreateOptions `json:"options"`
	Context            string               `json:"context"`
	Password           string               `json:"password"`
}

type detectTokensRequest struct {
	Password string `json:"password"`
}

type checkFeeRequest struct {
	Chain          string  `json:"chain"`
	Network        string  `json:"network"`
	FeeLevel       string  `json:"fee_level"`
	IsSpeedUp      bool    `json:"is_speed_up"`
	CustomFeePerKb uint64  `json:"custom_fee_per_kb"`
	FeePerUnit     float64 `json:"fee_per_unit"`
}

type webhookRequest struct {
	Topic    string `json:"topic" binding:"required"`
	Endpoint string `json:"endpoint" binding:"required"`
	Secret   string `json:"secret"`
}

type feeOptionsResponse struct {
	Options            []domain.FeeOption `json:"options"`
	Bounds             domain.FeeBounds   `json:"bounds"`
	FeeUnit            string             `json:"fee_unit"`
	FeeUnitAmount      uint64             `json:"fee_unit_amount"`
	SelectedFeePerUnit uint64             `json:"selected_fee_per_unit"`
	SpeedUpMinFeePerKb uint64             `json:"speed_up_min_fee_per_kb,omitempty"`
	CustomFeePerUnit   uint64             `json:"custom_fee_per_unit,omitempty"`
}

// keyInfo is the public view of a key, without its export.
type keyInfo struct {
	ID             string       `json:"id"`
	Fingerprint    string       `json:"fingerprint"`
	Encrypted      bool         `json:"encrypted"`
	BackupComplete bool         `json:"backup_complete"`
	CreatedAt      int64        `json:"created_at"`
	Wallets        []walletInfo `json:"wallets"`
}

// walletInfo is the public view of a wallet, without its private keys.
type walletInfo struct {
	ID                   string   `json:"id"`
	KeyID                string   `json:"key_id"`
	Coin                 string   `json:"coin"`
	Chain                string   `json:"chain"`
	Network              string   `json:"network"`
	Account              int      `json:"account"`
	RootPath             string   `json:"root_path,omitempty"`
	XPubKey              string   `json:"xpub_key,omitempty"`
	CurrencyName         string   `json:"currency_name"`
	CurrencyAbbreviation string   `json:"currency_abbreviation"`
	WalletName           string   `json:"wallet_name,omitempty"`
	ReceiveAddress       string   `json:"receive_address,omitempty"`
	TokenAddress         string   `json:"token_address,omitempty"`
	Tokens               []string `json:"tokens,omitempty"`
	ParentWalletID       string   `json:"parent_wallet_id,omitempty"`
	CreatedAt            int64    `json:"created_at"`
}

func newKeyInfo(k *domain.Key) keyInfo {
	wallets := make([]walletInfo, 0, len(k.Wallets))
	for _, w := range k.Wallets {
		wallets = append(wallets, newWalletInfo(w))
	}
	return keyInfo{
		ID:             k.ID,
		Fingerprint:    k.Fingerprint,
		Encrypted:      k.Encrypted,
		BackupComplete: k.BackupComplete,
		CreatedAt:      k.CreatedAt,
		Wallets:        wallets,
	}
}

func newWalletInfo(w *domain.Wallet) walletInfo {
	info := walletInfo{
		ID:                   w.ID,
		KeyID:                w.KeyID,
		Coin:                 w.Coin,
		Chain:                w.Chain,
		Network:              w.Network,
		Account:              w.Account,
		RootPath:             w.Credentials.RootPath,
		XPubKey:              w.Credentials.XPubKey,
		CurrencyName:         w.CurrencyName,
		CurrencyAbbreviation: w.CurrencyAbbreviation,
		WalletName:           w.WalletName,
		ReceiveAddress:       w.ReceiveAddress,
		Tokens:               w.Tokens,
		ParentWalletID:       w.ParentWalletID,
		CreatedAt:            w.CreatedAt,
	}
	if w.IsToken() {
		info.TokenAddress = w.Credentials.Token.Address
	}
	return info
}

func newWalletInfoList(list []*domain.Wallet) []walletInfo {
	wallets := make([]walletInfo, 0, len(list))
	for _, w := range list {
		wallets = append(wallets, newWalletInfo(w))
	}
	return wallets
}

package application

import "github.com/JerryMichels/bitpay-app/internal/core/domain"

// CreateKeyRequest holds the currencies the wallets of a new key are created
// for. Chain coins are created first, each one followed by the requested
// tokens living on its chain.
type CreateKeyRequest struct {
	Currencies []domain.Currency
	Options    domain.CreateOptions
}

// AddWalletRequest adds a wallet for Currency to an existing key. For
// tokens, AssociatedWalletID optionally references the parent chain wallet,
// if empty a new one is created first.
type AddWalletRequest struct {
	KeyID              string
	Currency           domain.Currency
	AssociatedWalletID string
	Options            domain.CreateOptions
	Context            string
}

// FeeOptionsRequest selects the coin and the context the fee options are
// computed for.
type FeeOptionsRequest struct {
	Coin    string
	Chain   string
	Network string
	// FeeLevel is the currently selected level.
	FeeLevel string
	// IsSpeedUp restricts the options to those able to replace a pending tx
	// paying CustomFeePerKb.
	IsSpeedUp      bool
	CustomFeePerKb uint64
}

// FeeOptionsResult are the ranked fee options with the bounds a custom fee
// is checked against.
type FeeOptionsResult struct {
	Options            []domain.FeeOption
	Bounds             domain.FeeBounds
	FeeUnit            string
	FeeUnitAmount      uint64
	SelectedFeePerUnit uint64
	SpeedUpMinFeePerKb uint64
	CustomFeePerUnit   uint64
}

// CheckFeeRequest validates a custom fee rate, expressed in fee units.
type CheckFeeRequest struct {
	FeeOptionsRequest
	FeePerUnit float64
}

// Webhook is a subscription of an endpoint to one of the published topics.
type Webhook struct {
	Topic    string
	Endpoint string
	Secret   string
}

// WebhookInfo describes an existing subscription.
type WebhookInfo struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	Endpoint  string `json:"endpoint"`
	IsSecured bool   `json:"is_secured"`
}

package ports

import (
	"context"
	"errors"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
)

// ErrCopayerRegistered must be matched (errors.Is) by the error returned by
// WalletClient.CreateWallet when the wallet service already knows the
// copayer for the requested coin, network and account.
var ErrCopayerRegistered = errors.New("copayer already registered")

// WalletClient is the capability of the external wallet client: it owns the
// key material, derives the wallet credentials and talks to the wallet
// service.
type WalletClient interface {
	// CreateKey creates a new key, either from a fresh seed or from the
	// material given in opts. The key export is encrypted with opts.Password
	// if not empty.
	CreateKey(ctx context.Context, opts domain.KeyOptions) (KeyHandle, error)
	// LoadKey restores a key from its export. It returns
	// domain.ErrInvalidPassword if the export can't be decrypted.
	LoadKey(export, password string) (KeyHandle, error)
	// CreateWallet registers a new wallet for the given credentials.
	CreateWallet(
		ctx context.Context, creds *domain.Credentials, opts WalletOpts,
	) error
	// CreateAddress returns a fresh receive address for the wallet.
	CreateAddress(ctx context.Context, creds *domain.Credentials) (string, error)
	// TokenCredentials derives the credentials of a token wallet living on the
	// chain wallet identified by creds.
	TokenCredentials(
		creds *domain.Credentials, token domain.Token,
	) (*domain.Credentials, error)
	// SavePreferences stores the wallet preferences on the wallet service.
	SavePreferences(
		ctx context.Context, creds *domain.Credentials, prefs domain.Preferences,
	) error
}

// KeyHandle is an unlocked key.
type KeyHandle interface {
	ID() string
	Fingerprint() string
	// Export returns the opaque blob LoadKey restores the key from.
	Export() string
	IsEncrypted() bool
	// CreateCredentials derives the credentials of a wallet of the key.
	CreateCredentials(opts CredentialsOpts) (*domain.Credentials, error)
}

// CredentialsOpts select the derivation path of wallet credentials.
type CredentialsOpts struct {
	Coin            string
	Chain           string
	Network         string
	Account         int
	N               int
	UseNativeSegwit bool
	SegwitVersion   int
	WalletName      string
}

// WalletOpts are the registration settings of a new wallet.
type WalletOpts struct {
	Name            string
	CopayerName     string
	M               int
	N               int
	Network         string
	SingleAddress   bool
	UseNativeSegwit bool
	SegwitVersion   int
}

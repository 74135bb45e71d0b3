package bws

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
)

const hardened = hdkeychain.HardenedKeyStart

var (
	// requestKeyPath is the derivation path of the key used to sign the
	// requests to the wallet service, ie. m/1'/0.
	requestKeyPath = []uint32{hardened + 1, 0}

	coinTypes = map[string]uint32{
		"btc":   0,
		"bch":   145,
		"ltc":   2,
		"doge":  3,
		"eth":   60,
		"matic": 60,
		"arb":   60,
		"base":  60,
		"op":    60,
		"xrp":   144,
	}
)

// derivationPath returns the account path as a list of indexes plus its
// string representation.
func derivationPath(
	opts ports.CredentialsOpts, useLegacyCoinType, useLegacyPurpose bool,
) ([]uint32, string, error) {
	chain := strings.ToLower(opts.Chain)
	coinType, ok := coinTypes[chain]
	if !ok {
		return nil, "", ErrUnsupportedCoin
	}
	isTestnet := opts.Network != domain.NetworkMainnet
	if isTestnet && !domain.IsEVMChain(chain) {
		coinType = 1
	}
	if chain == "bch" && useLegacyCoinType {
		coinType = 0
	}

	purpose := uint32(44)
	if opts.N > 1 && !useLegacyPurpose {
		purpose = 48
	}
	if opts.N <= 1 && opts.UseNativeSegwit {
		purpose = 84
		if opts.SegwitVersion == 1 {
			purpose = 86
		}
	}

	path := []uint32{
		hardened + purpose, hardened + coinType, hardened + uint32(opts.Account),
	}
	str := fmt.Sprintf("m/%d'/%d'/%d'", purpose, coinType, opts.Account)
	return path, str, nil
}

func derive(k *hdkeychain.ExtendedKey, path []uint32) (*hdkeychain.ExtendedKey, error) {
	var err error
	for _, i := range path {
		if k, err = k.Derive(i); err != nil {
			return nil, err
		}
	}
	return k, nil
}

func newCredentials(
	master *hdkeychain.ExtendedKey, opts ports.CredentialsOpts,
	useLegacyCoinType, useLegacyPurpose bool,
) (*domain.Credentials, error) {
	if opts.Account < 0 {
		return nil, fmt.Errorf("account index must not be negative")
	}
	if opts.N <= 0 {
		opts.N = 1
	}

	path, rootPath, err := derivationPath(opts, useLegacyCoinType, useLegacyPurpose)
	if err != nil {
		return nil, err
	}

	account, err := derive(master, path)
	if err != nil {
		return nil, err
	}
	xpub, err := account.Neuter()
	if err != nil {
		return nil, err
	}
	if opts.Network != domain.NetworkMainnet {
		if xpub, err = xpub.CloneWithVersion(
			chaincfg.TestNet3Params.HDPublicKeyID[:],
		); err != nil {
			return nil, err
		}
	}

	requestKey, err := derive(master, requestKeyPath)
	if err != nil {
		return nil, err
	}
	requestPrivKey, err := requestKey.ECPrivKey()
	if err != nil {
		return nil, err
	}

	walletPrivKey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}

	coin := strings.ToLower(opts.Coin)
	xpubStr := xpub.String()
	creds := &domain.Credentials{
		CopayerID:      copayerID(coin, xpubStr),
		WalletName:     opts.WalletName,
		Coin:           coin,
		Chain:          strings.ToLower(opts.Chain),
		Network:        opts.Network,
		Account:        opts.Account,
		RootPath:       rootPath,
		XPubKey:        xpubStr,
		RequestPrivKey: hex.EncodeToString(requestPrivKey.Serialize()),
		WalletPrivKey:  hex.EncodeToString(walletPrivKey.Serialize()),
		M:              1,
		N:              opts.N,
		AddressType:    addressType(opts),
	}
	return creds, nil
}

// tokenCredentials returns a copy of creds bound to the given token. The
// token wallet id is the parent wallet id suffixed with the token address.
func tokenCredentials(
	creds *domain.Credentials, token domain.Token,
) (*domain.Credentials, error) {
	if creds.WalletID == "" {
		return nil, ErrMissingWalletID
	}
	if !domain.IsEVMChain(creds.Chain) {
		return nil, ErrUnsupportedCoin
	}

	tokenCreds := *creds
	t := token
	t.Address = strings.ToLower(token.Address)
	t.Chain = creds.Chain
	tokenCreds.WalletID = fmt.Sprintf("%s-%s", creds.WalletID, t.Address)
	tokenCreds.WalletName = token.Name
	tokenCreds.Coin = strings.ToLower(token.Symbol)
	tokenCreds.Token = &t
	return &tokenCreds, nil
}

func copayerID(coin, xpub string) string {
	str := xpub
	if coin != "btc" {
		str = coin + xpub
	}
	hash := sha256.Sum256([]byte(str))
	return hex.EncodeToString(hash[:])
}

func addressType(opts ports.CredentialsOpts) string {
	if domain.IsEVMChain(opts.Chain) || strings.ToLower(opts.Chain) == "xrp" {
		return "P2PKH"
	}
	if opts.UseNativeSegwit {
		if opts.SegwitVersion == 1 {
			return "P2TR"
		}
		if opts.N > 1 {
			return "P2WSH"
		}
		return "P2WPKH"
	}
	if opts.N > 1 {
		return "P2SH"
	}
	return "P2PKH"
}

package bws

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func TestKey(t *testing.T) {
	t.Run("new", func(t *testing.T) {
		k, err := newKey(domain.KeyOptions{SeedType: domain.SeedTypeNew})
		require.NoError(t, err)
		require.NotEmpty(t, k.ID())
		require.Len(t, k.Fingerprint(), 8)
		require.False(t, k.IsEncrypted())
		require.Len(t, strings.Fields(k.data.Mnemonic), 12)

		restored, err := loadKey(k.Export(), "")
		require.NoError(t, err)
		require.Equal(t, k.ID(), restored.ID())
		require.Equal(t, k.data.XPrivKey, restored.data.XPrivKey)
	})

	t.Run("import mnemonic", func(t *testing.T) {
		k, err := newKey(domain.KeyOptions{
			SeedType: domain.SeedTypeMnemonic,
			Mnemonic: testMnemonic,
			Password: "secret",
		})
		require.NoError(t, err)
		require.Equal(t, "73c5da0a", k.Fingerprint())
		require.True(t, k.IsEncrypted())

		restored, err := loadKey(k.Export(), "secret")
		require.NoError(t, err)
		require.Equal(t, testMnemonic, restored.data.Mnemonic)

		_, err = loadKey(k.Export(), "wrong")
		require.ErrorIs(t, err, domain.ErrInvalidPassword)
	})

	t.Run("import extended private key", func(t *testing.T) {
		k, err := newKey(domain.KeyOptions{
			SeedType: domain.SeedTypeMnemonic, Mnemonic: testMnemonic,
		})
		require.NoError(t, err)

		imported, err := newKey(domain.KeyOptions{
			SeedType:           domain.SeedTypeExtendedPrivateKey,
			ExtendedPrivateKey: k.data.XPrivKey,
		})
		require.NoError(t, err)
		require.Equal(t, k.Fingerprint(), imported.Fingerprint())
		require.Empty(t, imported.data.Mnemonic)
	})

	t.Run("invalid", func(t *testing.T) {
		tests := []struct {
			name          string
			opts          domain.KeyOptions
			expectedError error
		}{
			{
				name:          "missing mnemonic",
				opts:          domain.KeyOptions{SeedType: domain.SeedTypeMnemonic},
				expectedError: ErrMissingSeedData,
			},
			{
				name: "invalid mnemonic",
				opts: domain.KeyOptions{
					SeedType: domain.SeedTypeMnemonic,
					Mnemonic: "abandon abandon abandon",
				},
				expectedError: ErrInvalidMnemonic,
			},
			{
				name: "missing xpriv",
				opts: domain.KeyOptions{
					SeedType: domain.SeedTypeExtendedPrivateKey,
				},
				expectedError: ErrMissingSeedData,
			},
		}

		for _, tt := range tests {
			tt := tt
			t.Run(tt.name, func(t *testing.T) {
				_, err := newKey(tt.opts)
				require.ErrorIs(t, err, tt.expectedError)
			})
		}
	})
}

func TestCredentials(t *testing.T) {
	k, err := newKey(domain.KeyOptions{
		SeedType: domain.SeedTypeMnemonic, Mnemonic: testMnemonic,
	})
	require.NoError(t, err)

	tests := []struct {
		name        string
		opts        ports.CredentialsOpts
		rootPath    string
		addressType string
		xpubPrefix  string
	}{
		{
			name:        "btc legacy",
			opts:        ports.CredentialsOpts{Coin: "btc", Chain: "btc", Network: "livenet"},
			rootPath:    "m/44'/0'/0'",
			addressType: "P2PKH",
			xpubPrefix:  "xpub",
		},
		{
			name: "btc native segwit",
			opts: ports.CredentialsOpts{
				Coin: "btc", Chain: "btc", Network: "livenet", Account: 2,
				UseNativeSegwit: true,
			},
			rootPath:    "m/84'/0'/2'",
			addressType: "P2WPKH",
			xpubPrefix:  "xpub",
		},
		{
			name: "btc taproot testnet",
			opts: ports.CredentialsOpts{
				Coin: "btc", Chain: "btc", Network: "testnet",
				UseNativeSegwit: true, SegwitVersion: 1,
			},
			rootPath:    "m/86'/1'/0'",
			addressType: "P2TR",
			xpubPrefix:  "tpub",
		},
		{
			name:        "eth",
			opts:        ports.CredentialsOpts{Coin: "eth", Chain: "eth", Network: "testnet", Account: 1},
			rootPath:    "m/44'/60'/1'",
			addressType: "P2PKH",
			xpubPrefix:  "tpub",
		},
		{
			name:        "bch",
			opts:        ports.CredentialsOpts{Coin: "bch", Chain: "bch", Network: "livenet"},
			rootPath:    "m/44'/145'/0'",
			addressType: "P2PKH",
			xpubPrefix:  "xpub",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			creds, err := k.CreateCredentials(tt.opts)
			require.NoError(t, err)
			require.Equal(t, tt.rootPath, creds.RootPath)
			require.Equal(t, tt.addressType, creds.AddressType)
			require.Equal(t, tt.opts.Account, creds.Account)
			require.Contains(t, creds.XPubKey, tt.xpubPrefix)
			require.Len(t, creds.CopayerID, 64)
			require.Empty(t, creds.WalletID)
		})
	}

	t.Run("unsupported chain", func(t *testing.T) {
		_, err := k.CreateCredentials(ports.CredentialsOpts{
			Coin: "sol", Chain: "sol", Network: "livenet",
		})
		require.ErrorIs(t, err, ErrUnsupportedCoin)
	})
}

func TestTokenCredentials(t *testing.T) {
	creds := &domain.Credentials{
		WalletID: "wallet", Coin: "eth", Chain: "eth", Network: "livenet",
	}
	token := domain.Token{
		Symbol:   "USDC",
		Name:     "USD Coin",
		Decimals: 6,
		Address:  "0xA0b86991c6218b36c1d19D4a2e9Eb0cE3606eB48",
	}

	tokenCreds, err := tokenCredentials(creds, token)
	require.NoError(t, err)
	require.Equal(t, "wallet-0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48", tokenCreds.WalletID)
	require.Equal(t, "usdc", tokenCreds.Coin)
	require.Equal(t, "eth", tokenCreds.Chain)
	require.True(t, tokenCreds.IsToken())
	require.Equal(t, "wallet", creds.WalletID)
	require.Nil(t, creds.Token)

	_, err = tokenCredentials(&domain.Credentials{Chain: "eth"}, token)
	require.ErrorIs(t, err, ErrMissingWalletID)

	_, err = tokenCredentials(&domain.Credentials{WalletID: "w", Chain: "btc"}, token)
	require.ErrorIs(t, err, ErrUnsupportedCoin)
}

func TestSignRequest(t *testing.T) {
	privKey, err := btcec.NewPrivateKey()
	require.NoError(t, err)
	privKeyHex := hex.EncodeToString(privKey.Serialize())

	body := []byte(`{"address":"x"}`)
	sigHex, err := signRequest("POST", "/v4/addresses/", body, privKeyHex)
	require.NoError(t, err)

	sigBytes, err := hex.DecodeString(sigHex)
	require.NoError(t, err)
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	require.NoError(t, err)

	hash := chainhash.DoubleHashB([]byte(`post|/v4/addresses/|{"address":"x"}`))
	require.True(t, sig.Verify(hash, privKey.PubKey()))

	otherHash := chainhash.DoubleHashB([]byte(`get|/v4/addresses/|{"address":"x"}`))
	require.False(t, sig.Verify(otherHash, privKey.PubKey()))
}

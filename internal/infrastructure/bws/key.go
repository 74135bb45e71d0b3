package bws

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/google/uuid"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/pbkdf2"
)

const (
	exportVersion    = 1
	pbkdf2Iterations = 10000
	entropyBits      = 128
)

// keyData is the key material serialized in the export.
type keyData struct {
	ID                string `json:"id"`
	Fingerprint       string `json:"fingerprint"`
	Mnemonic          string `json:"mnemonic,omitempty"`
	XPrivKey          string `json:"xPrivKey"`
	UseLegacyCoinType bool   `json:"useLegacyCoinType,omitempty"`
	UseLegacyPurpose  bool   `json:"useLegacyPurpose,omitempty"`
}

// export is the envelope returned by Key.Export. When encrypted, Data is
// the AES-GCM ciphertext of the keyData with a key derived from the password
// with PBKDF2.
type export struct {
	Version   int    `json:"version"`
	Encrypted bool   `json:"encrypted"`
	Salt      []byte `json:"salt,omitempty"`
	Nonce     []byte `json:"nonce,omitempty"`
	Data      []byte `json:"data"`
}

// key implements ports.KeyHandle.
type key struct {
	data      keyData
	master    *hdkeychain.ExtendedKey
	exported  string
	encrypted bool
}

func newKey(opts domain.KeyOptions) (*key, error) {
	data := keyData{
		ID:                uuid.New().String(),
		UseLegacyCoinType: opts.UseLegacyCoinType,
		UseLegacyPurpose:  opts.UseLegacyPurpose,
	}

	var master *hdkeychain.ExtendedKey
	switch opts.SeedType {
	case domain.SeedTypeExtendedPrivateKey:
		if opts.ExtendedPrivateKey == "" {
			return nil, ErrMissingSeedData
		}
		k, err := hdkeychain.NewKeyFromString(opts.ExtendedPrivateKey)
		if err != nil {
			return nil, err
		}
		if !k.IsPrivate() {
			return nil, hdkeychain.ErrNotPrivExtKey
		}
		master = k
	case domain.SeedTypeMnemonic, domain.SeedTypeNew, "":
		mnemonic := opts.Mnemonic
		if opts.SeedType == domain.SeedTypeMnemonic {
			if mnemonic == "" {
				return nil, ErrMissingSeedData
			}
			if !bip39.IsMnemonicValid(mnemonic) {
				return nil, ErrInvalidMnemonic
			}
		} else {
			entropy, err := bip39.NewEntropy(entropyBits)
			if err != nil {
				return nil, err
			}
			if mnemonic, err = bip39.NewMnemonic(entropy); err != nil {
				return nil, err
			}
		}
		seed := bip39.NewSeed(mnemonic, opts.Passphrase)
		k, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
		if err != nil {
			return nil, err
		}
		master = k
		data.Mnemonic = mnemonic
	default:
		return nil, fmt.Errorf("unknown seed type %s", opts.SeedType)
	}

	fingerprint, err := keyFingerprint(master)
	if err != nil {
		return nil, err
	}
	data.Fingerprint = fingerprint
	data.XPrivKey = master.String()

	exported, err := encodeExport(data, opts.Password)
	if err != nil {
		return nil, err
	}

	return &key{data, master, exported, opts.Password != ""}, nil
}

func loadKey(exported, password string) (*key, error) {
	buf, err := base64.StdEncoding.DecodeString(exported)
	if err != nil {
		return nil, err
	}
	var e export
	if err := json.Unmarshal(buf, &e); err != nil {
		return nil, err
	}
	if e.Version != exportVersion {
		return nil, ErrUnsupportedExportVersion
	}

	plaintext := e.Data
	if e.Encrypted {
		gcm, err := newGCM(password, e.Salt)
		if err != nil {
			return nil, err
		}
		if plaintext, err = gcm.Open(nil, e.Nonce, e.Data, nil); err != nil {
			return nil, domain.ErrInvalidPassword
		}
	}

	var data keyData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}
	master, err := hdkeychain.NewKeyFromString(data.XPrivKey)
	if err != nil {
		return nil, err
	}
	return &key{data, master, exported, e.Encrypted}, nil
}

func (k *key) ID() string {
	return k.data.ID
}

func (k *key) Fingerprint() string {
	return k.data.Fingerprint
}

func (k *key) Export() string {
	return k.exported
}

func (k *key) IsEncrypted() bool {
	return k.encrypted
}

func (k *key) CreateCredentials(
	opts ports.CredentialsOpts,
) (*domain.Credentials, error) {
	return newCredentials(k.master, opts, k.data.UseLegacyCoinType, k.data.UseLegacyPurpose)
}

func keyFingerprint(master *hdkeychain.ExtendedKey) (string, error) {
	pubkey, err := master.ECPubKey()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(btcutil.Hash160(pubkey.SerializeCompressed())[:4]), nil
}

func encodeExport(data keyData, password string) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	e := export{Version: exportVersion, Data: plaintext}
	if password != "" {
		salt := make([]byte, 16)
		if _, err := rand.Read(salt); err != nil {
			return "", err
		}
		gcm, err := newGCM(password, salt)
		if err != nil {
			return "", err
		}
		nonce := make([]byte, gcm.NonceSize())
		if _, err := rand.Read(nonce); err != nil {
			return "", err
		}
		e = export{
			Version:   exportVersion,
			Encrypted: true,
			Salt:      salt,
			Nonce:     nonce,
			Data:      gcm.Seal(nil, nonce, plaintext, nil),
		}
	}

	buf, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	encKey := pbkdf2.Key([]byte(password), salt, pbkdf2Iterations, 32, sha256.New)
	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

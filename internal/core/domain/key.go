package domain

import (
	"strings"
	"time"
)

// Key is a key owning one or more wallets. The key material itself is only
// known by the wallet client: Export is the opaque, optionally encrypted,
// blob the client needs to restore it.
type Key struct {
	ID             string    `json:"id"`
	Fingerprint    string    `json:"fingerprint"`
	Export         string    `json:"export"`
	Encrypted      bool      `json:"encrypted"`
	Wallets        []*Wallet `json:"wallets"`
	BackupComplete bool      `json:"backup_complete"`
	CreatedAt      int64     `json:"created_at"`
}

// NewKey returns a key with no wallets.
func NewKey(id, fingerprint, export string, encrypted bool) *Key {
	return &Key{
		ID:          id,
		Fingerprint: fingerprint,
		Export:      export,
		Encrypted:   encrypted,
		Wallets:     make([]*Wallet, 0),
		CreatedAt:   time.Now().Unix(),
	}
}

// AddWallet appends the wallet to the key. Chain wallets must occupy a free
// (coin, chain, network, account) slot, and wallet ids must be unique.
func (k *Key) AddWallet(w *Wallet) error {
	if w == nil {
		return ErrNullWallet
	}
	for _, ww := range k.Wallets {
		if ww.ID == w.ID || ww.sameSlot(w) {
			return ErrWalletAlreadyExists
		}
	}
	w.KeyID = k.ID
	k.Wallets = append(k.Wallets, w)
	return nil
}

// WalletByID returns the wallet with the given id.
func (k *Key) WalletByID(walletID string) (*Wallet, error) {
	for _, w := range k.Wallets {
		if w.ID == walletID {
			return w, nil
		}
	}
	return nil, ErrWalletNotFound
}

// ChainWallets returns the non-token wallets of the key on the given chain.
func (k *Key) ChainWallets(chain string) []*Wallet {
	wallets := make([]*Wallet, 0)
	for _, w := range k.Wallets {
		if !w.IsToken() && strings.EqualFold(w.Chain, chain) {
			wallets = append(wallets, w)
		}
	}
	return wallets
}

// RemoveWallet removes the wallet with the given id. Removing a chain wallet
// also removes all its token wallets, while removing a token wallet unlinks
// it from its parent.
func (k *Key) RemoveWallet(walletID string) ([]*Wallet, error) {
	target, err := k.WalletByID(walletID)
	if err != nil {
		return nil, err
	}

	toRemove := map[string]bool{target.ID: true}
	for _, id := range target.Tokens {
		toRemove[id] = true
	}
	for _, w := range k.Wallets {
		if w.ParentWalletID != "" && w.ParentWalletID == target.ID {
			toRemove[w.ID] = true
		}
	}

	kept := make([]*Wallet, 0, len(k.Wallets))
	removed := make([]*Wallet, 0, len(toRemove))
	for _, w := range k.Wallets {
		if toRemove[w.ID] {
			removed = append(removed, w)
			continue
		}
		kept = append(kept, w)
	}

	if target.IsToken() && target.ParentWalletID != "" {
		for _, w := range kept {
			if w.ID != target.ParentWalletID {
				continue
			}
			tokens := make([]string, 0, len(w.Tokens))
			for _, id := range w.Tokens {
				if id != target.ID {
					tokens = append(tokens, id)
				}
			}
			w.Tokens = tokens
		}
	}

	k.Wallets = kept
	return removed, nil
}

package application

import (
	"context"
	"strings"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/JerryMichels/bitpay-app/pkg/mathutil"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// minTokenBalance is the lowest balance, in token units, for a detected token
// to get its own wallet.
var minTokenBalance = decimal.New(1, -6)

type WalletService interface {
	// CreateKey creates a new key from a fresh seed with one wallet for every
	// requested currency.
	CreateKey(ctx context.Context, req CreateKeyRequest) (*domain.Key, error)
	// CreateKeyWithOpts imports a key from a mnemonic or an extended private
	// key and registers its first wallet.
	CreateKeyWithOpts(
		ctx context.Context, opts domain.KeyOptions,
	) (*domain.Key, error)
	// AddWallet adds a coin or token wallet to an existing key.
	AddWallet(ctx context.Context, req AddWalletRequest) (*domain.Wallet, error)
	// DetectAndCreateTokens adds a token wallet for every ERC20 token with a
	// significant balance held by the EVM wallets of the key.
	DetectAndCreateTokens(
		ctx context.Context, keyID, password string,
	) ([]*domain.Wallet, error)
	GetKey(ctx context.Context, keyID string) (*domain.Key, error)
	ListKeys(ctx context.Context) ([]domain.Key, error)
	RemoveWallet(ctx context.Context, keyID, walletID string) error
}

type walletService struct {
	client        ports.WalletClient
	repoManager   ports.RepoManager
	settings      SettingsService
	pubsub        PubSubService
	notifier      ports.Notifier
	tokenInfo     []ports.TokenInfoProvider
	tokenBalances ports.TokenBalanceProvider
}

// NewWalletService returns a new wallet service. The notifier and the token
// balance provider are optional, token info providers are queried in order.
func NewWalletService(
	client ports.WalletClient,
	repoManager ports.RepoManager,
	settings SettingsService,
	pubsub PubSubService,
	notifier ports.Notifier,
	tokenBalances ports.TokenBalanceProvider,
	tokenInfo ...ports.TokenInfoProvider,
) (WalletService, error) {
	if client == nil {
		return nil, ErrNullWalletClient
	}
	if repoManager == nil {
		return nil, ErrNullRepoManager
	}
	if settings == nil {
		settings = NewSettingsService(repoManager.SettingsRepository(), "")
	}
	if pubsub == nil {
		pubsub = NewPubSubService(nil)
	}
	return &walletService{
		client:        client,
		repoManager:   repoManager,
		settings:      settings,
		pubsub:        pubsub,
		notifier:      notifier,
		tokenInfo:     tokenInfo,
		tokenBalances: tokenBalances,
	}, nil
}

func (s *walletService) CreateKey(
	ctx context.Context, req CreateKeyRequest,
) (*domain.Key, error) {
	currencies := make([]domain.Currency, 0, len(req.Currencies))
	for _, c := range req.Currencies {
		currencies = append(currencies, c.Normalized())
	}
	req.Currencies = currencies
	if err := req.validate(); err != nil {
		return nil, err
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	opts := req.Options.WithDefaults(settings.Network)

	handle, err := s.client.CreateKey(ctx, domain.KeyOptions{
		SeedType: domain.SeedTypeNew,
		Network:  opts.Network,
		Password: opts.Password,
	}.WithDefaults())
	if err != nil {
		log.WithError(err).Warn("error creating key")
		return nil, err
	}

	tokenOpts, err := s.getTokenOpts(ctx)
	if err != nil {
		return nil, err
	}

	wallets, err := s.createMultipleWallets(
		ctx, handle, req.Currencies, opts, tokenOpts,
	)
	if err != nil {
		log.WithError(err).Warn("error creating key")
		return nil, err
	}

	key := domain.NewKey(
		handle.ID(), handle.Fingerprint(), handle.Export(), handle.IsEncrypted(),
	)
	for _, w := range wallets {
		if err := key.AddWallet(w); err != nil {
			return nil, err
		}
	}

	if err := s.repoManager.KeyRepository().AddKey(ctx, key); err != nil {
		return nil, err
	}

	s.subscribeNotifications(ctx, settings, wallets...)
	s.pubsub.PublishKeyCreated(key)

	log.Infof("created key %s with %d wallets", key.ID, len(key.Wallets))
	return key, nil
}

func (s *walletService) CreateKeyWithOpts(
	ctx context.Context, opts domain.KeyOptions,
) (*domain.Key, error) {
	opts = opts.WithDefaults()
	opts.Coin = strings.ToLower(opts.Coin)
	opts.Chain = strings.ToLower(opts.Chain)
	if err := validateKeyOptions(opts); err != nil {
		return nil, err
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	handle, err := s.client.CreateKey(ctx, opts)
	if err != nil {
		log.WithError(err).Warn("error creating key with opts")
		return nil, err
	}

	creds, err := s.registerWallet(ctx, handle, newImportRegistration(opts))
	if err != nil {
		log.WithError(err).Warn("error creating key with opts")
		return nil, err
	}

	tokenOpts, err := s.getTokenOpts(ctx)
	if err != nil {
		return nil, err
	}
	wallet := newWallet(creds, tokenOpts)

	addr, err := s.client.CreateAddress(ctx, creds)
	if err != nil {
		return nil, err
	}
	log.Infof("new address generated: %s", addr)
	wallet.ReceiveAddress = addr

	key := domain.NewKey(
		handle.ID(), handle.Fingerprint(), handle.Export(), handle.IsEncrypted(),
	)
	key.BackupComplete = true
	if err := key.AddWallet(wallet); err != nil {
		return nil, err
	}

	if err := s.repoManager.KeyRepository().AddKey(ctx, key); err != nil {
		return nil, err
	}

	s.subscribeNotifications(ctx, settings, wallet)
	s.pubsub.PublishKeyCreated(key)

	log.Infof("imported key %s", key.ID)
	return key, nil
}

func (s *walletService) AddWallet(
	ctx context.Context, req AddWalletRequest,
) (*domain.Wallet, error) {
	req.Currency = req.Currency.Normalized()
	if err := req.validate(); err != nil {
		return nil, err
	}

	key, err := s.repoManager.KeyRepository().GetKey(ctx, req.KeyID)
	if err != nil {
		return nil, err
	}
	handle, err := s.client.LoadKey(key.Export, req.Options.Password)
	if err != nil {
		return nil, err
	}

	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	opts := req.Options.WithDefaults(settings.Network)

	tokenOpts, err := s.getTokenOpts(ctx)
	if err != nil {
		return nil, err
	}

	var parent *domain.Wallet
	if req.AssociatedWalletID != "" {
		if parent, err = key.WalletByID(req.AssociatedWalletID); err != nil {
			return nil, err
		}
		if parent.IsToken() || parent.Chain != req.Currency.Chain {
			return nil, ErrInvalidAssociatedWallet
		}
	}

	added := make([]*domain.Wallet, 0, 2)
	var newWallet *domain.Wallet

	if req.Currency.IsToken {
		if parent == nil {
			coin := domain.SupportedCoins[req.Currency.Chain].Coin
			parent, err = s.createWallet(
				ctx, handle, coin, req.Currency.Chain, opts, req.Context, tokenOpts,
			)
			if err != nil {
				log.WithError(err).Warn("error adding wallet")
				return nil, err
			}
			if err := s.createReceiveAddress(ctx, parent); err != nil {
				return nil, err
			}
			added = append(added, parent)
		}

		if err := s.addCustomTokenIfMissing(
			ctx, parent, req.Currency, tokenOpts,
		); err != nil {
			return nil, err
		}

		newWallet, err = s.createTokenWallet(
			ctx, parent, req.Currency.Abbreviation, req.Currency.TokenAddress,
			tokenOpts,
		)
		if err != nil {
			log.WithError(err).Warn("error adding wallet")
			return nil, err
		}
	} else {
		newWallet, err = s.createWallet(
			ctx, handle, req.Currency.Abbreviation, req.Currency.Chain, opts,
			req.Context, tokenOpts,
		)
		if err != nil {
			log.WithError(err).Warn("error adding wallet")
			return nil, err
		}
		if err := s.createReceiveAddress(ctx, newWallet); err != nil {
			return nil, err
		}
	}
	if opts.WalletName != "" {
		newWallet.WalletName = opts.WalletName
	}
	added = append(added, newWallet)

	if err := s.repoManager.KeyRepository().UpdateKey(
		ctx, key.ID, func(k *domain.Key) (*domain.Key, error) {
			for _, w := range added {
				if err := k.AddWallet(w); err != nil {
					return nil, err
				}
			}
			// Link the token on the stored parent, other tokens may have
			// been added to it since it was read.
			if newWallet.IsToken() {
				pw, err := k.WalletByID(newWallet.ParentWalletID)
				if err != nil {
					return nil, err
				}
				pw.AddToken(newWallet.ID, newWallet.Credentials.Token.Address)
			}
			return k, nil
		},
	); err != nil {
		return nil, err
	}

	s.subscribeNotifications(ctx, settings, newWallet)
	for _, w := range added {
		walletsCreated.WithLabelValues(w.CurrencyAbbreviation).Inc()
		s.pubsub.PublishWalletAdded(key.ID, w)
	}

	log.Infof("added wallet %s", newWallet.CurrencyName)
	return newWallet, nil
}

func (s *walletService) DetectAndCreateTokens(
	ctx context.Context, keyID, password string,
) ([]*domain.Wallet, error) {
	if s.tokenBalances == nil {
		return nil, ErrNullTokenBalanceProvider
	}

	key, err := s.repoManager.KeyRepository().GetKey(ctx, keyID)
	if err != nil {
		return nil, err
	}
	if _, err := s.client.LoadKey(key.Export, password); err != nil {
		return nil, err
	}

	log.Debug("starting token detection for key ", keyID)

	added := make([]*domain.Wallet, 0)
	for _, w := range key.Wallets {
		if w.IsToken() || !domain.IsEVMChain(w.Chain) || w.ReceiveAddress == "" {
			continue
		}

		balances, err := s.tokenBalances.GetERC20Balances(
			ctx, w.Chain, w.Network, w.ReceiveAddress,
		)
		if err != nil {
			log.WithError(err).Warnf(
				"failed to fetch token balances for wallet %s", w.ID,
			)
			continue
		}

		opts := domain.CreateOptions{Network: w.Network, Password: password}
		if account, ok := accountFromRootPath(w.Credentials.RootPath); ok {
			opts.Account = account
			opts.CustomAccount = true
		}

		for _, b := range filterDetectedTokens(w, balances) {
			tokenWallet, err := s.AddWallet(ctx, AddWalletRequest{
				KeyID: keyID,
				Currency: domain.Currency{
					Chain:        w.Chain,
					Abbreviation: strings.ToLower(b.Token.Symbol),
					IsToken:      true,
					TokenAddress: b.Token.Address,
					Decimals:     b.Token.Decimals,
				},
				AssociatedWalletID: w.ID,
				Options:            opts,
			})
			if err != nil {
				return added, err
			}
			added = append(added, tokenWallet)
		}
	}

	log.Debugf("token detection for key %s added %d wallets", keyID, len(added))
	return added, nil
}

func (s *walletService) GetKey(
	ctx context.Context, keyID string,
) (*domain.Key, error) {
	return s.repoManager.KeyRepository().GetKey(ctx, keyID)
}

func (s *walletService) ListKeys(ctx context.Context) ([]domain.Key, error) {
	return s.repoManager.KeyRepository().GetAllKeys(ctx)
}

func (s *walletService) RemoveWallet(
	ctx context.Context, keyID, walletID string,
) error {
	return s.repoManager.KeyRepository().UpdateKey(
		ctx, keyID, func(k *domain.Key) (*domain.Key, error) {
			removed, err := k.RemoveWallet(walletID)
			if err != nil {
				return nil, err
			}
			log.Infof("removed %d wallets from key %s", len(removed), keyID)
			return k, nil
		},
	)
}

func (s *walletService) subscribeNotifications(
	ctx context.Context, settings *domain.AppSettings, wallets ...*domain.Wallet,
) {
	if s.notifier == nil {
		return
	}
	for _, w := range wallets {
		if settings.NotificationsAccepted {
			if err := s.notifier.SubscribePush(
				ctx, &w.Credentials, settings.ExternalUserID,
			); err != nil {
				log.WithError(err).Warnf(
					"failed to subscribe wallet %s to push notifications", w.ID,
				)
			}
		}
		if settings.WantsEmailNotifications() {
			if err := s.notifier.SubscribeEmail(ctx, &w.Credentials, ports.EmailPrefs{
				Email:    settings.EmailNotifications.Email,
				Language: settings.DefaultLanguage,
				Unit:     "btc",
			}); err != nil {
				log.WithError(err).Warnf(
					"failed to subscribe wallet %s to email notifications", w.ID,
				)
			}
		}
	}
}

func (s *walletService) getTokenOpts(ctx context.Context) (domain.TokenOpts, error) {
	custom, err := s.repoManager.TokenRepository().GetAllTokens(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewTokenOpts(custom...), nil
}

func filterDetectedTokens(
	w *domain.Wallet, balances []ports.TokenBalance,
) []ports.TokenBalance {
	filtered := make([]ports.TokenBalance, 0, len(balances))
	for _, b := range balances {
		if w.HasToken(b.Token.Address) || b.PossibleSpam {
			continue
		}
		if b.Balance == "" || b.Token.Decimals <= 0 {
			continue
		}
		if !mathutil.IsAbove(b.Balance, b.Token.Decimals, minTokenBalance) {
			continue
		}
		filtered = append(filtered, b)
	}
	return filtered
}

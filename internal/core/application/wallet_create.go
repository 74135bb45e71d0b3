package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// walletRegistration holds what's needed to register a wallet on the wallet
// service, starting from the account credsOpts.Account.
type walletRegistration struct {
	credsOpts  ports.CredentialsOpts
	walletOpts ports.WalletOpts
	// fixedAccount prevents walking the account index when the copayer is
	// already registered.
	fixedAccount bool
}

func newRegistration(
	coin, chain string, opts domain.CreateOptions, walletCtx string,
) walletRegistration {
	name := coin
	if info, ok := domain.GetCoinInfo(coin); ok {
		name = info.Name
	}
	return walletRegistration{
		credsOpts: ports.CredentialsOpts{
			Coin:            coin,
			Chain:           chain,
			Network:         opts.Network,
			Account:         opts.Account,
			N:               1,
			UseNativeSegwit: opts.UseNativeSegwit,
			SegwitVersion:   opts.SegwitVersion,
			WalletName:      opts.WalletName,
		},
		walletOpts: ports.WalletOpts{
			Name:            name,
			CopayerName:     "me",
			M:               1,
			N:               1,
			Network:         opts.Network,
			SingleAddress:   opts.SingleAddress,
			UseNativeSegwit: opts.UseNativeSegwit,
			SegwitVersion:   opts.SegwitVersion,
		},
		fixedAccount: walletCtx == domain.WalletConnectContext || opts.CustomAccount,
	}
}

func newImportRegistration(opts domain.KeyOptions) walletRegistration {
	return walletRegistration{
		credsOpts: ports.CredentialsOpts{
			Coin:            opts.Coin,
			Chain:           opts.Chain,
			Network:         opts.Network,
			Account:         opts.Account,
			N:               opts.N,
			UseNativeSegwit: opts.UseNativeSegwit,
			WalletName:      opts.Name,
		},
		walletOpts: ports.WalletOpts{
			Name:            opts.Name,
			CopayerName:     opts.MyName,
			M:               opts.M,
			N:               opts.N,
			Network:         opts.Network,
			SingleAddress:   opts.SingleAddress,
			UseNativeSegwit: opts.UseNativeSegwit,
		},
	}
}

// registerWallet derives the credentials and registers the wallet. Whenever
// the wallet service reports the copayer as already registered, it moves to
// the next account index, up to domain.MaxAccountIndex.
func (s *walletService) registerWallet(
	ctx context.Context, handle ports.KeyHandle, reg walletRegistration,
) (*domain.Credentials, error) {
	credsOpts := reg.credsOpts
	coin := credsOpts.Coin

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		creds, err := handle.CreateCredentials(credsOpts)
		if err != nil {
			return nil, err
		}

		err = s.client.CreateWallet(ctx, creds, reg.walletOpts)
		if err == nil {
			walletCreationAttempts.WithLabelValues(coin, "created").Inc()
			log.Infof("added coin %s: %s", credsOpts.Chain, coin)
			return creds, nil
		}

		if !errors.Is(err, ports.ErrCopayerRegistered) {
			walletCreationAttempts.WithLabelValues(coin, "failed").Inc()
			return nil, err
		}
		walletCreationAttempts.WithLabelValues(coin, "copayer_registered").Inc()

		if reg.fixedAccount {
			return nil, err
		}
		if credsOpts.Account >= domain.MaxAccountIndex {
			return nil, domain.ErrAccountLimitReached
		}
		credsOpts.Account++
		log.Debugf(
			"copayer already registered for %s, trying account %d",
			coin, credsOpts.Account,
		)
	}
}

func (s *walletService) createWallet(
	ctx context.Context, handle ports.KeyHandle, coin, chain string,
	opts domain.CreateOptions, walletCtx string, tokenOpts domain.TokenOpts,
) (*domain.Wallet, error) {
	creds, err := s.registerWallet(
		ctx, handle, newRegistration(coin, chain, opts, walletCtx),
	)
	if err != nil {
		return nil, err
	}
	wallet := newWallet(creds, tokenOpts)
	wallet.WalletName = opts.WalletName
	return wallet, nil
}

// createMultipleWallets creates one wallet per coin and, right after each of
// them, one wallet per token living on its chain.
func (s *walletService) createMultipleWallets(
	ctx context.Context, handle ports.KeyHandle, currencies []domain.Currency,
	opts domain.CreateOptions, tokenOpts domain.TokenOpts,
) ([]*domain.Wallet, error) {
	coins := make([]domain.Currency, 0, len(currencies))
	tokens := make([]domain.Currency, 0, len(currencies))
	for _, c := range currencies {
		if c.IsToken {
			tokens = append(tokens, c)
			continue
		}
		coins = append(coins, c)
	}

	wallets := make([]*domain.Wallet, 0, len(currencies))
	for _, coin := range coins {
		coinOpts := opts
		coinOpts.UseNativeSegwit = domain.IsSegwitCoin(coin.Abbreviation)

		wallet, err := s.createWallet(
			ctx, handle, coin.Abbreviation, coin.Chain, coinOpts, "", tokenOpts,
		)
		if err != nil {
			return nil, err
		}
		if err := s.createReceiveAddress(ctx, wallet); err != nil {
			return nil, err
		}
		wallets = append(wallets, wallet)

		for _, token := range tokens {
			if token.Chain != coin.Chain {
				continue
			}
			if err := s.addCustomTokenIfMissing(
				ctx, wallet, token, tokenOpts,
			); err != nil {
				return nil, err
			}
			tokenWallet, err := s.createTokenWallet(
				ctx, wallet, token.Abbreviation, token.TokenAddress, tokenOpts,
			)
			if err != nil {
				return nil, err
			}
			wallets = append(wallets, tokenWallet)
		}
	}
	return wallets, nil
}

// createTokenWallet derives the token wallet of parent for the given token
// and links them together. Failing to store the updated preferences on the
// wallet service is not fatal.
func (s *walletService) createTokenWallet(
	ctx context.Context, parent *domain.Wallet, tokenName, tokenAddress string,
	tokenOpts domain.TokenOpts,
) (*domain.Wallet, error) {
	token, ok := tokenOpts.Get(tokenAddress, parent.Chain)
	if !ok {
		return nil, fmt.Errorf(
			"%w for token %s",
			domain.ErrTokenOptsNotFound, domain.TokenKey(tokenAddress, parent.Chain),
		)
	}
	token.Chain = strings.ToLower(parent.Chain)

	creds, err := s.client.TokenCredentials(&parent.Credentials, token)
	if err != nil {
		return nil, err
	}

	tokenAddr := token.Address
	if creds.Token != nil {
		tokenAddr = creds.Token.Address
	}
	parent.AddToken(creds.WalletID, tokenAddr)

	if err := s.client.SavePreferences(
		ctx, &parent.Credentials, *parent.Preferences,
	); err != nil {
		log.WithError(err).Errorf("error saving token: %s", tokenName)
	}
	log.Infof("added token %s", tokenName)

	wallet := newWallet(creds, tokenOpts)
	wallet.ParentWalletID = parent.ID
	wallet.ReceiveAddress = parent.ReceiveAddress
	return wallet, nil
}

func (s *walletService) createReceiveAddress(
	ctx context.Context, wallet *domain.Wallet,
) error {
	addr, err := s.client.CreateAddress(ctx, &wallet.Credentials)
	if err != nil {
		return err
	}
	log.Infof("new address generated: %s", addr)
	wallet.ReceiveAddress = addr
	return nil
}

// addCustomTokenIfMissing registers a custom token descriptor when the token
// is unknown. The contract metadata is fetched best-effort, the fields of
// currency are used for everything that can't be retrieved.
func (s *walletService) addCustomTokenIfMissing(
	ctx context.Context, parent *domain.Wallet, currency domain.Currency,
	tokenOpts domain.TokenOpts,
) error {
	chain := strings.ToLower(currency.Chain)
	if _, ok := tokenOpts.Get(currency.TokenAddress, chain); ok {
		return nil
	}
	log.Debugf(
		"token %s not present in token options, creating custom token",
		domain.TokenKey(currency.TokenAddress, chain),
	)

	custom := domain.Token{
		Symbol:   strings.ToLower(currency.Abbreviation),
		Name:     strings.ToUpper(currency.Abbreviation),
		Decimals: currency.Decimals,
		Address:  strings.ToLower(currency.TokenAddress),
		Chain:    chain,
	}

	for _, provider := range s.tokenInfo {
		info, err := provider.GetTokenInfo(
			ctx, chain, parent.Network, currency.TokenAddress,
		)
		if err != nil {
			log.WithError(err).Debugf(
				"error getting contract info of token %s, continue anyway",
				currency.TokenAddress,
			)
			continue
		}
		if info.Symbol != "" {
			custom.Symbol = strings.ToLower(info.Symbol)
		}
		if info.Name != "" {
			custom.Name = info.Name
		}
		if info.Decimals > 0 {
			custom.Decimals = info.Decimals
		}
		break
	}

	tokenOpts.Add(custom)
	return s.repoManager.TokenRepository().AddTokens(ctx, custom)
}

func newWallet(
	creds *domain.Credentials, tokenOpts domain.TokenOpts,
) *domain.Wallet {
	var tokenAddress string
	if creds.Token != nil {
		tokenAddress = creds.Token.Address
	}
	abbreviation, name := mapAbbreviationAndName(
		creds.Coin, creds.Chain, tokenAddress, tokenOpts,
	)
	return domain.NewWallet(*creds, name, abbreviation)
}

// mapAbbreviationAndName returns the currency abbreviation and name to
// display for the given coin, or token if tokenAddress is defined.
func mapAbbreviationAndName(
	coin, chain, tokenAddress string, tokenOpts domain.TokenOpts,
) (string, string) {
	if tokenAddress != "" {
		if token, ok := tokenOpts.Get(tokenAddress, chain); ok {
			return strings.ToLower(token.Symbol), token.Name
		}
	}
	if info, ok := domain.GetCoinInfo(coin); ok {
		return info.Coin, info.Name
	}
	return strings.ToLower(coin), strings.ToUpper(coin)
}

// accountFromRootPath returns the account index of a root path like
// m/44'/60'/2'.
func accountFromRootPath(rootPath string) (int, bool) {
	if rootPath == "" {
		return 0, false
	}
	parts := strings.Split(rootPath, "/")
	last := strings.TrimSuffix(parts[len(parts)-1], "'")
	account, err := strconv.Atoi(last)
	if err != nil {
		return 0, false
	}
	return account, true
}

package application

import (
	"fmt"

	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	dbbadger "github.com/JerryMichels/bitpay-app/internal/infrastructure/storage/db/badger"
	log "github.com/sirupsen/logrus"
)

const (
	DBBadger = "badger"
)

var (
	SupportedDBType = map[string]struct{}{
		DBBadger: {},
	}
)

type Config struct {
	DBType   string
	DBConfig interface{}
	Network  string

	WalletClient  ports.WalletClient
	FeeLevels     ports.FeeLevelProvider
	Notifier      ports.Notifier
	TokenBalances ports.TokenBalanceProvider
	TokenInfo     []ports.TokenInfoProvider
	SecurePubSub  ports.SecurePubSub

	repo     ports.RepoManager
	pubsub   PubSubService
	settings SettingsService
	wallet   WalletService
	fee      FeeService
}

func (c *Config) Validate() error {
	if _, ok := SupportedDBType[c.DBType]; !ok {
		return fmt.Errorf("db type %s is not supported", c.DBType)
	}
	if _, err := c.repoManager(); err != nil {
		return err
	}
	if _, err := c.walletService(); err != nil {
		return err
	}
	if _, err := c.feeService(); err != nil {
		return err
	}
	return nil
}

func (c *Config) RepoManager() ports.RepoManager {
	repo, _ := c.repoManager()
	return repo
}

func (c *Config) PubSubService() PubSubService {
	svc, _ := c.pubsubService()
	return svc
}

func (c *Config) SettingsService() SettingsService {
	svc, _ := c.settingsService()
	return svc
}

func (c *Config) WalletService() WalletService {
	svc, _ := c.walletService()
	return svc
}

func (c *Config) FeeService() FeeService {
	svc, _ := c.feeService()
	return svc
}

func (c *Config) repoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		if c.DBType == DBBadger {
			datadir, _ := c.DBConfig.(string)
			repoManager, err := dbbadger.NewRepoManager(datadir, log.New())
			if err != nil {
				return nil, err
			}
			c.repo = repoManager
		}
	}
	if c.repo == nil {
		return nil, ErrNullRepoManager
	}
	return c.repo, nil
}

func (c *Config) pubsubService() (PubSubService, error) {
	if c.pubsub == nil {
		c.pubsub = NewPubSubService(c.SecurePubSub)
	}
	return c.pubsub, nil
}

func (c *Config) settingsService() (SettingsService, error) {
	if c.settings == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		c.settings = NewSettingsService(repo.SettingsRepository(), c.Network)
	}
	return c.settings, nil
}

func (c *Config) walletService() (WalletService, error) {
	if c.wallet == nil {
		repo, err := c.repoManager()
		if err != nil {
			return nil, err
		}
		settings, _ := c.settingsService()
		pubsub, _ := c.pubsubService()
		wallet, err := NewWalletService(
			c.WalletClient, repo, settings, pubsub, c.Notifier, c.TokenBalances,
			c.TokenInfo...,
		)
		if err != nil {
			return nil, err
		}
		c.wallet = wallet
	}
	return c.wallet, nil
}

func (c *Config) feeService() (FeeService, error) {
	if c.fee == nil {
		fee, err := NewFeeService(c.FeeLevels, c.Network)
		if err != nil {
			return nil, err
		}
		c.fee = fee
	}
	return c.fee, nil
}

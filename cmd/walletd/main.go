package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/JerryMichels/bitpay-app/internal/config"
	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/JerryMichels/bitpay-app/internal/infrastructure/bws"
	"github.com/JerryMichels/bitpay-app/internal/infrastructure/feecache"
	"github.com/JerryMichels/bitpay-app/internal/infrastructure/pubsub"
	"github.com/JerryMichels/bitpay-app/internal/infrastructure/tokenbalance/moralis"
	"github.com/JerryMichels/bitpay-app/internal/infrastructure/tokeninfo/erc20"
	httpinterface "github.com/JerryMichels/bitpay-app/internal/interfaces/http"
	httphandler "github.com/JerryMichels/bitpay-app/internal/interfaces/http/handler"
	"github.com/JerryMichels/bitpay-app/pkg/stats"
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := config.InitConfig(); err != nil {
		log.WithError(err).Fatal("failed to init config")
	}
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	datadir := config.GetDatadir()
	dbDir := filepath.Join(datadir, config.DbLocation)
	network := config.GetString(config.NetworkKey)

	bwsSvc, err := bws.NewService(
		config.GetString(config.BWSURLKey),
		config.GetDuration(config.BWSRequestTimeoutKey),
	)
	if err != nil {
		log.WithError(err).Fatal("failed to init wallet service client")
	}

	// Token metadata is read on-chain if any rpc endpoint is configured,
	// otherwise only from the wallet service.
	tokenInfo := []ports.TokenInfoProvider{}
	if endpoints := config.GetEVMRPCEndpoints(); len(endpoints) > 0 {
		erc20Svc, err := erc20.NewService(endpoints)
		if err != nil {
			log.WithError(err).Fatal("failed to init erc20 token info provider")
		}
		tokenInfo = append(tokenInfo, erc20Svc)
	}
	tokenInfo = append(tokenInfo, bwsSvc)

	var tokenBalances ports.TokenBalanceProvider
	if apiKey := config.GetString(config.MoralisAPIKeyKey); apiKey != "" {
		moralisSvc, err := moralis.NewService(
			config.GetString(config.MoralisURLKey), apiKey,
			config.GetInt(config.MoralisRateLimitKey),
		)
		if err != nil {
			log.WithError(err).Fatal("failed to init token balance provider")
		}
		tokenBalances = moralisSvc
	} else {
		log.Info("moralis api key not set, token detection disabled")
	}

	pubsubSvc, err := pubsub.NewService(dbDir, log.New())
	if err != nil {
		log.WithError(err).Fatal("failed to init pubsub service")
	}

	appConfig := &application.Config{
		DBType:        config.GetString(config.DBTypeKey),
		DBConfig:      dbDir,
		Network:       network,
		WalletClient:  bwsSvc,
		FeeLevels:     feecache.New(bwsSvc, config.GetDuration(config.FeeCacheTTLKey)),
		Notifier:      bwsSvc,
		TokenBalances: tokenBalances,
		TokenInfo:     tokenInfo,
		SecurePubSub:  pubsubSvc,
	}
	if err := appConfig.Validate(); err != nil {
		log.WithError(err).Fatal("invalid application config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if config.GetBool(config.EnableProfilerKey) {
		stats.EnableMemoryStatistics(
			ctx, config.GetDuration(config.StatsIntervalKey),
			filepath.Join(datadir, config.ProfilerLocation),
		)
	}

	svc, err := httpinterface.NewService(httpinterface.ServiceOpts{
		Address:     fmt.Sprintf(":%d", config.GetInt(config.ListeningPortKey)),
		CORSOrigins: config.GetStringSlice(config.CORSOriginsKey),
		Services: httphandler.Services{
			Wallet:   appConfig.WalletService(),
			Fee:      appConfig.FeeService(),
			Settings: appConfig.SettingsService(),
			PubSub:   appConfig.PubSubService(),
		},
	})
	if err != nil {
		log.WithError(err).Fatal("failed to init rest interface")
	}

	log.RegisterExitHandler(svc.Stop)

	log.Infof("starting walletd on %s", network)
	if err := svc.Start(); err != nil {
		log.WithError(err).Fatal("failed to start rest interface")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, os.Interrupt)
	<-sigChan

	log.Info("shutting down walletd")
	svc.Stop()
	cancel()
	//nolint
	pubsubSvc.Store().Close()
	appConfig.RepoManager().Close()

	log.Info("exiting")
}

package application

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	walletCreationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletd",
		Name:      "wallet_creation_attempts_total",
		Help:      "Number of wallet registrations attempted, by coin and outcome.",
	}, []string{"coin", "outcome"})

	walletsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletd",
		Name:      "wallets_created_total",
		Help:      "Number of wallets added to keys, by currency.",
	}, []string{"currency"})

	feeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletd",
		Name:      "fee_options_requests_total",
		Help:      "Number of fee options computed, by chain.",
	}, []string{"chain"})
)

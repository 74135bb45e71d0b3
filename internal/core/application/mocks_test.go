package application_test

import (
	"context"
	"fmt"
	"strings"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/stretchr/testify/mock"
)

// **** Wallet client ****

type mockWalletClient struct {
	mock.Mock
}

func (m *mockWalletClient) CreateKey(
	ctx context.Context, opts domain.KeyOptions,
) (ports.KeyHandle, error) {
	args := m.Called(ctx, opts)

	var res ports.KeyHandle
	if a := args.Get(0); a != nil {
		res = a.(ports.KeyHandle)
	}
	return res, args.Error(1)
}

func (m *mockWalletClient) LoadKey(export, password string) (ports.KeyHandle, error) {
	args := m.Called(export, password)

	var res ports.KeyHandle
	if a := args.Get(0); a != nil {
		res = a.(ports.KeyHandle)
	}
	return res, args.Error(1)
}

func (m *mockWalletClient) CreateWallet(
	ctx context.Context, creds *domain.Credentials, opts ports.WalletOpts,
) error {
	args := m.Called(ctx, creds, opts)
	return args.Error(0)
}

func (m *mockWalletClient) CreateAddress(
	ctx context.Context, creds *domain.Credentials,
) (string, error) {
	args := m.Called(ctx, creds)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

// TokenCredentials returns whatever the expected call returns, or the result
// of tokenCredentials if the expected call returns it.
func (m *mockWalletClient) TokenCredentials(
	creds *domain.Credentials, token domain.Token,
) (*domain.Credentials, error) {
	args := m.Called(creds, token)

	var res *domain.Credentials
	switch a := args.Get(0).(type) {
	case *domain.Credentials:
		res = a
	case func(*domain.Credentials, domain.Token) *domain.Credentials:
		res = a(creds, token)
	}
	return res, args.Error(1)
}

func (m *mockWalletClient) SavePreferences(
	ctx context.Context, creds *domain.Credentials, prefs domain.Preferences,
) error {
	args := m.Called(ctx, creds, prefs)
	return args.Error(0)
}

// tokenCredentials derives token credentials the same way the wallet client
// does: the wallet id is the one of the parent suffixed by the token address.
func tokenCredentials(
	creds *domain.Credentials, token domain.Token,
) *domain.Credentials {
	tokenCreds := *creds
	tokenCreds.WalletID = fmt.Sprintf(
		"%s-%s", creds.WalletID, strings.ToLower(token.Address),
	)
	tokenCreds.Token = &token
	return &tokenCreds
}

// **** Key handle ****

// testKeyHandle derives deterministic credentials from the requested
// options.
type testKeyHandle struct {
	id string
}

func (h testKeyHandle) ID() string { return h.id }
func (h testKeyHandle) Fingerprint() string { return "fp-" + h.id }
func (h testKeyHandle) Export() string { return "export-" + h.id }
func (h testKeyHandle) IsEncrypted() bool { return true }

func (h testKeyHandle) CreateCredentials(
	opts ports.CredentialsOpts,
) (*domain.Credentials, error) {
	return &domain.Credentials{
		WalletID: fmt.Sprintf(
			"%s-%s-%s-%d", h.id, opts.Coin, opts.Network, opts.Account,
		),
		CopayerID:  "copayer-" + h.id,
		WalletName: opts.WalletName,
		Coin:       opts.Coin,
		Chain:      opts.Chain,
		Network:    opts.Network,
		Account:    opts.Account,
		RootPath:   fmt.Sprintf("m/44'/0'/%d'", opts.Account),
		M:          1,
		N:          opts.N,
	}, nil
}

// **** Notifier ****

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) SubscribePush(
	ctx context.Context, creds *domain.Credentials, externalUserID string,
) error {
	args := m.Called(ctx, creds, externalUserID)
	return args.Error(0)
}

func (m *mockNotifier) SubscribeEmail(
	ctx context.Context, creds *domain.Credentials, prefs ports.EmailPrefs,
) error {
	args := m.Called(ctx, creds, prefs)
	return args.Error(0)
}

// **** Token providers ****

type mockTokenInfoProvider struct {
	mock.Mock
}

func (m *mockTokenInfoProvider) GetTokenInfo(
	ctx context.Context, chain, network, address string,
) (*domain.Token, error) {
	args := m.Called(ctx, chain, network, address)

	var res *domain.Token
	if a := args.Get(0); a != nil {
		res = a.(*domain.Token)
	}
	return res, args.Error(1)
}

type mockTokenBalanceProvider struct {
	mock.Mock
}

func (m *mockTokenBalanceProvider) GetERC20Balances(
	ctx context.Context, chain, network, address string,
) ([]ports.TokenBalance, error) {
	args := m.Called(ctx, chain, network, address)

	var res []ports.TokenBalance
	if a := args.Get(0); a != nil {
		res = a.([]ports.TokenBalance)
	}
	return res, args.Error(1)
}

// **** Fee levels ****

type mockFeeLevelProvider struct {
	mock.Mock
}

func (m *mockFeeLevelProvider) GetFeeLevels(
	ctx context.Context, coin, network string,
) ([]domain.FeeLevel, error) {
	args := m.Called(ctx, coin, network)

	var res []domain.FeeLevel
	if a := args.Get(0); a != nil {
		res = a.([]domain.FeeLevel)
	}
	return res, args.Error(1)
}

// **** PubSub ****

type mockSecurePubSub struct {
	mock.Mock
}

func (m *mockSecurePubSub) Store() ports.PubSubStore {
	args := m.Called()

	var res ports.PubSubStore
	if a := args.Get(0); a != nil {
		res = a.(ports.PubSubStore)
	}
	return res
}

func (m *mockSecurePubSub) Subscribe(topic, endpoint, secret string) (string, error) {
	args := m.Called(topic, endpoint, secret)

	var res string
	if a := args.Get(0); a != nil {
		res = a.(string)
	}
	return res, args.Error(1)
}

func (m *mockSecurePubSub) Unsubscribe(topic, id string) error {
	args := m.Called(topic, id)
	return args.Error(0)
}

func (m *mockSecurePubSub) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	args := m.Called(topic)

	var res []ports.Subscription
	if a := args.Get(0); a != nil {
		res = a.([]ports.Subscription)
	}
	return res
}

func (m *mockSecurePubSub) Publish(topic string, message string) error {
	args := m.Called(topic, message)
	return args.Error(0)
}

type mockSubscription struct {
	topic, id, endpoint string
	secured             bool
}

func (s mockSubscription) Topic() string { return s.topic }
func (s mockSubscription) Id() string { return s.id }
func (s mockSubscription) IsSecured() bool { return s.secured }
func (s mockSubscription) NotifyAt() string { return s.endpoint }

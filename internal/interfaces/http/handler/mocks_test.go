package httphandler_test

import (
	"context"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

type mockWalletService struct {
	mock.Mock
}

func (m *mockWalletService) CreateKey(
	ctx context.Context, req application.CreateKeyRequest,
) (*domain.Key, error) {
	args := m.Called(ctx, req)
	var res *domain.Key
	if a := args.Get(0); a != nil {
		res = a.(*domain.Key)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) CreateKeyWithOpts(
	ctx context.Context, opts domain.KeyOptions,
) (*domain.Key, error) {
	args := m.Called(ctx, opts)
	var res *domain.Key
	if a := args.Get(0); a != nil {
		res = a.(*domain.Key)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) AddWallet(
	ctx context.Context, req application.AddWalletRequest,
) (*domain.Wallet, error) {
	args := m.Called(ctx, req)
	var res *domain.Wallet
	if a := args.Get(0); a != nil {
		res = a.(*domain.Wallet)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) DetectAndCreateTokens(
	ctx context.Context, keyID, password string,
) ([]*domain.Wallet, error) {
	args := m.Called(ctx, keyID, password)
	var res []*domain.Wallet
	if a := args.Get(0); a != nil {
		res = a.([]*domain.Wallet)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) GetKey(
	ctx context.Context, keyID string,
) (*domain.Key, error) {
	args := m.Called(ctx, keyID)
	var res *domain.Key
	if a := args.Get(0); a != nil {
		res = a.(*domain.Key)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) ListKeys(ctx context.Context) ([]domain.Key, error) {
	args := m.Called(ctx)
	var res []domain.Key
	if a := args.Get(0); a != nil {
		res = a.([]domain.Key)
	}
	return res, args.Error(1)
}

func (m *mockWalletService) RemoveWallet(
	ctx context.Context, keyID, walletID string,
) error {
	args := m.Called(ctx, keyID, walletID)
	return args.Error(0)
}

type mockFeeService struct {
	mock.Mock
}

func (m *mockFeeService) GetFeeOptions(
	ctx context.Context, req application.FeeOptionsRequest,
) (*application.FeeOptionsResult, error) {
	args := m.Called(ctx, req)
	var res *application.FeeOptionsResult
	if a := args.Get(0); a != nil {
		res = a.(*application.FeeOptionsResult)
	}
	return res, args.Error(1)
}

func (m *mockFeeService) CheckCustomFee(
	ctx context.Context, req application.CheckFeeRequest,
) (*domain.FeeCheck, error) {
	args := m.Called(ctx, req)
	var res *domain.FeeCheck
	if a := args.Get(0); a != nil {
		res = a.(*domain.FeeCheck)
	}
	return res, args.Error(1)
}

type mockSettingsService struct {
	mock.Mock
}

func (m *mockSettingsService) GetSettings(
	ctx context.Context,
) (*domain.AppSettings, error) {
	args := m.Called(ctx)
	var res *domain.AppSettings
	if a := args.Get(0); a != nil {
		res = a.(*domain.AppSettings)
	}
	return res, args.Error(1)
}

func (m *mockSettingsService) UpdateSettings(
	ctx context.Context, settings domain.AppSettings,
) (*domain.AppSettings, error) {
	args := m.Called(ctx, settings)
	var res *domain.AppSettings
	if a := args.Get(0); a != nil {
		res = a.(*domain.AppSettings)
	}
	return res, args.Error(1)
}

type mockPubSubService struct {
	mock.Mock
}

func (m *mockPubSubService) AddWebhook(
	ctx context.Context, hook application.Webhook,
) (string, error) {
	args := m.Called(ctx, hook)
	return args.String(0), args.Error(1)
}

func (m *mockPubSubService) RemoveWebhook(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockPubSubService) ListWebhooks(
	ctx context.Context, topic string,
) ([]application.WebhookInfo, error) {
	args := m.Called(ctx, topic)
	var res []application.WebhookInfo
	if a := args.Get(0); a != nil {
		res = a.([]application.WebhookInfo)
	}
	return res, args.Error(1)
}

func (m *mockPubSubService) PublishKeyCreated(key *domain.Key) {
	m.Called(key)
}

func (m *mockPubSubService) PublishWalletAdded(keyID string, wallet *domain.Wallet) {
	m.Called(keyID, wallet)
}

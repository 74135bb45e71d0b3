package application_test

import (
	"encoding/json"
	"testing"

	"github.com/JerryMichels/bitpay-app/internal/core/application"
	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWebhooks(t *testing.T) {
	pubsub := &mockSecurePubSub{}
	pubsub.On("Subscribe", ports.KeyCreatedTopic, "http://127.0.0.1:8000", "secret").
		Return("hook1", nil)
	pubsub.On("Unsubscribe", ports.AnyTopic, "hook1").Return(nil)
	pubsub.On("ListSubscriptionsForTopic", ports.UnspecifiedTopic).
		Return([]ports.Subscription{
			mockSubscription{ports.KeyCreatedTopic, "hook1", "http://127.0.0.1:8000", true},
			mockSubscription{ports.AnyTopic, "hook2", "http://127.0.0.1:8001", false},
		})
	pubsub.On("ListSubscriptionsForTopic", ports.WalletAddedTopic).
		Return([]ports.Subscription{
			mockSubscription{ports.AnyTopic, "hook2", "http://127.0.0.1:8001", false},
		})

	svc := application.NewPubSubService(pubsub)

	id, err := svc.AddWebhook(ctx, application.Webhook{
		Topic:    ports.KeyCreatedTopic,
		Endpoint: "http://127.0.0.1:8000",
		Secret:   "secret",
	})
	require.NoError(t, err)
	require.Equal(t, "hook1", id)

	hooks, err := svc.ListWebhooks(ctx, ports.UnspecifiedTopic)
	require.NoError(t, err)
	require.Equal(t, []application.WebhookInfo{
		{ID: "hook1", Topic: ports.KeyCreatedTopic, Endpoint: "http://127.0.0.1:8000", IsSecured: true},
		{ID: "hook2", Topic: ports.AnyTopic, Endpoint: "http://127.0.0.1:8001"},
	}, hooks)

	hooks, err = svc.ListWebhooks(ctx, ports.WalletAddedTopic)
	require.NoError(t, err)
	require.Len(t, hooks, 1)

	require.NoError(t, svc.RemoveWebhook(ctx, "hook1"))
	pubsub.AssertExpectations(t)
}

func TestFailingWebhooks(t *testing.T) {
	svc := application.NewPubSubService(&mockSecurePubSub{})

	tests := []struct {
		name string
		hook application.Webhook
	}{
		{
			name: "invalid topic",
			hook: application.Webhook{Topic: "TRADE_SETTLED", Endpoint: "http://127.0.0.1"},
		},
		{
			name: "missing endpoint",
			hook: application.Webhook{Topic: ports.AnyTopic},
		},
		{
			name: "invalid endpoint",
			hook: application.Webhook{Topic: ports.AnyTopic, Endpoint: "ftp://127.0.0.1"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.AddWebhook(ctx, tt.hook)
			require.Error(t, err)
			require.Empty(t, id)
		})
	}

	_, err := svc.ListWebhooks(ctx, "TRADE_SETTLED")
	require.ErrorIs(t, err, application.ErrInvalidTopic)

	t.Run("without pubsub", func(t *testing.T) {
		svc := application.NewPubSubService(nil)

		_, err := svc.AddWebhook(ctx, application.Webhook{
			Topic: ports.AnyTopic, Endpoint: "http://127.0.0.1",
		})
		require.ErrorIs(t, err, application.ErrWebhookManagerNotInitialized)
		err = svc.RemoveWebhook(ctx, "hook1")
		require.ErrorIs(t, err, application.ErrWebhookManagerNotInitialized)
		_, err = svc.ListWebhooks(ctx, ports.UnspecifiedTopic)
		require.ErrorIs(t, err, application.ErrWebhookManagerNotInitialized)

		require.NotPanics(t, func() {
			svc.PublishKeyCreated(domain.NewKey("k1", "fp", "export", false))
		})
	})
}

func TestPublishWalletAdded(t *testing.T) {
	token := domain.Token{Symbol: "usdc", Name: "USD Coin", Decimals: 6, Address: usdcAddress, Chain: "eth"}
	wallet := domain.NewWallet(domain.Credentials{
		WalletID: "w1",
		Coin:     "eth",
		Chain:    "eth",
		Network:  domain.NetworkMainnet,
		Token:    &token,
	}, "USD Coin", "usdc")
	wallet.ReceiveAddress = "0xeth"

	pubsub := &mockSecurePubSub{}
	pubsub.On("Publish", ports.WalletAddedTopic, mock.MatchedBy(func(msg string) bool {
		var payload struct {
			Event  string `json:"event"`
			KeyID  string `json:"key_id"`
			Wallet struct {
				ID                   string `json:"id"`
				CurrencyAbbreviation string `json:"currency_abbreviation"`
				ReceiveAddress       string `json:"receive_address"`
				TokenAddress         string `json:"token_address"`
			} `json:"wallet"`
		}
		if err := json.Unmarshal([]byte(msg), &payload); err != nil {
			return false
		}
		return payload.Event == ports.WalletAddedTopic &&
			payload.KeyID == "k1" &&
			payload.Wallet.ID == "w1" &&
			payload.Wallet.CurrencyAbbreviation == "usdc" &&
			payload.Wallet.ReceiveAddress == "0xeth" &&
			payload.Wallet.TokenAddress == usdcAddress
	})).Return(nil)

	application.NewPubSubService(pubsub).PublishWalletAdded("k1", wallet)
	pubsub.AssertExpectations(t)
}

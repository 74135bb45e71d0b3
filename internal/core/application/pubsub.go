package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/JerryMichels/bitpay-app/internal/core/domain"
	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

var topics = map[string]struct{}{
	ports.AnyTopic:         {},
	ports.KeyCreatedTopic:  {},
	ports.WalletAddedTopic: {},
}

type PubSubService interface {
	AddWebhook(ctx context.Context, hook Webhook) (string, error)
	RemoveWebhook(ctx context.Context, id string) error
	ListWebhooks(ctx context.Context, topic string) ([]WebhookInfo, error)
	PublishKeyCreated(key *domain.Key)
	PublishWalletAdded(keyID string, wallet *domain.Wallet)
}

type pubsubService struct {
	pubsub ports.SecurePubSub
}

// NewPubSubService returns a service publishing the wallet events on the
// given pubsub. A nil pubsub is allowed, in that case every event is
// discarded.
func NewPubSubService(pubsub ports.SecurePubSub) PubSubService {
	return &pubsubService{pubsub}
}

func (s *pubsubService) AddWebhook(
	_ context.Context, hook Webhook,
) (string, error) {
	if s.pubsub == nil {
		return "", ErrWebhookManagerNotInitialized
	}
	if _, ok := topics[hook.Topic]; !ok {
		return "", ErrInvalidTopic
	}
	if err := validateWebhook(hook); err != nil {
		return "", err
	}
	return s.pubsub.Subscribe(hook.Topic, hook.Endpoint, hook.Secret)
}

func (s *pubsubService) RemoveWebhook(_ context.Context, id string) error {
	if s.pubsub == nil {
		return ErrWebhookManagerNotInitialized
	}
	return s.pubsub.Unsubscribe(ports.AnyTopic, id)
}

func (s *pubsubService) ListWebhooks(
	_ context.Context, topic string,
) ([]WebhookInfo, error) {
	if s.pubsub == nil {
		return nil, ErrWebhookManagerNotInitialized
	}
	if topic != ports.UnspecifiedTopic {
		if _, ok := topics[topic]; !ok {
			return nil, ErrInvalidTopic
		}
	}

	subs := s.pubsub.ListSubscriptionsForTopic(topic)
	hooks := make([]WebhookInfo, 0, len(subs))
	for _, sub := range subs {
		hooks = append(hooks, WebhookInfo{
			ID:        sub.Id(),
			Topic:     sub.Topic(),
			Endpoint:  sub.NotifyAt(),
			IsSecured: sub.IsSecured(),
		})
	}
	return hooks, nil
}

func (s *pubsubService) PublishKeyCreated(key *domain.Key) {
	wallets := make([]map[string]interface{}, 0, len(key.Wallets))
	for _, w := range key.Wallets {
		wallets = append(wallets, walletPayload(w))
	}
	s.publish(ports.KeyCreatedTopic, map[string]interface{}{
		"key_id":      key.ID,
		"fingerprint": key.Fingerprint,
		"wallets":     wallets,
	})
}

func (s *pubsubService) PublishWalletAdded(keyID string, wallet *domain.Wallet) {
	s.publish(ports.WalletAddedTopic, map[string]interface{}{
		"key_id": keyID,
		"wallet": walletPayload(wallet),
	})
}

func (s *pubsubService) publish(topic string, payload map[string]interface{}) {
	if s.pubsub == nil {
		return
	}

	payload["event"] = topic
	payload["timestamp"] = time.Now().Unix()
	message, _ := json.Marshal(payload)

	if err := s.pubsub.Publish(topic, string(message)); err != nil {
		log.WithError(err).Warn(
			fmt.Sprintf("an error occured while publishing message for topic %s", topic),
		)
	}
}

func walletPayload(w *domain.Wallet) map[string]interface{} {
	payload := map[string]interface{}{
		"id":                    w.ID,
		"coin":                  w.Coin,
		"chain":                 w.Chain,
		"network":               w.Network,
		"account":               w.Account,
		"currency_abbreviation": w.CurrencyAbbreviation,
		"receive_address":       w.ReceiveAddress,
	}
	if w.IsToken() {
		payload["token_address"] = w.Credentials.Token.Address
	}
	return payload
}

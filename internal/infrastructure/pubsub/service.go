package pubsub

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"time"

	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	dbbadger "github.com/JerryMichels/bitpay-app/internal/infrastructure/storage/db/badger"
	"github.com/JerryMichels/bitpay-app/pkg/circuitbreaker"
	"github.com/dgraph-io/badger/v3"
	"github.com/golang-jwt/jwt"
	"github.com/sony/gobreaker"
	"github.com/timshannon/badgerhold/v4"
	"golang.org/x/sync/errgroup"
)

const tokenLifetime = 5 * time.Minute

// ErrSubscriptionNotFound ...
var ErrSubscriptionNotFound = ports.ErrSubscriptionNotFound

type service struct {
	store      store
	httpClient *client
	cb         *gobreaker.CircuitBreaker
}

// NewService returns a webhook based pubsub whose subscriptions are stored in
// a badger db under the given datadir, or in memory if empty.
func NewService(datadir string, logger badger.Logger) (ports.SecurePubSub, error) {
	var dbDir string
	if len(datadir) > 0 {
		dbDir = filepath.Join(datadir, "pubsub")
	}
	db, err := dbbadger.OpenStore(dbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening pubsub db: %w", err)
	}

	return &service{
		store:      store{db},
		httpClient: newHTTPClient(15 * time.Second),
		cb:         circuitbreaker.NewCircuitBreaker("pubsub"),
	}, nil
}

func (ws *service) Store() ports.PubSubStore {
	return ws.store
}

func (ws *service) Subscribe(topic, endpoint, secret string) (string, error) {
	sub, err := NewSubscription(topic, endpoint, secret)
	if err != nil {
		return "", err
	}

	return ws.addSubscription(sub)
}

func (ws *service) Unsubscribe(_, id string) error {
	return ws.removeSubscription(id)
}

func (ws *service) ListSubscriptionsForTopic(topic string) []ports.Subscription {
	return ws.listSubscriptionsForTopic(topic).toPortable()
}

func (ws *service) Publish(topic string, message string) error {
	return ws.publishForTopic(topic, message)
}

func (ws *service) addSubscription(sub *Subscription) (string, error) {
	if err := ws.store.db.Insert(sub.ID, *sub); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return sub.ID, nil
		}
		return "", err
	}
	return sub.ID, nil
}

func (ws *service) removeSubscription(subID string) error {
	if err := ws.store.db.Delete(subID, Subscription{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return ErrSubscriptionNotFound
		}
		return err
	}
	return nil
}

func (ws *service) listSubscriptionsForTopic(topic string) subscriptions {
	subs := ws.getSubscriptionsForTopic(topic)
	if topic != ports.AnyTopic && topic != ports.UnspecifiedTopic {
		subsForAnyTopic := ws.getSubscriptionsForTopic(ports.AnyTopic)
		subs = append(subs, subsForAnyTopic...)
	}
	return subs
}

func (ws *service) publishForTopic(topic, message string) error {
	subs := ws.listSubscriptionsForTopic(topic)

	eg := &errgroup.Group{}
	for i := range subs {
		sub := subs[i]
		eg.Go(func() error { return ws.doRequest(sub, message) })
	}
	return eg.Wait()
}

func (ws *service) getSubscriptionsForTopic(topic string) subscriptions {
	var query *badgerhold.Query
	if topic != ports.UnspecifiedTopic {
		query = badgerhold.Where("Event").Eq(topic).Index("Event")
	}

	var subs []Subscription
	if err := ws.store.db.Find(&subs, query); err != nil {
		return nil
	}
	sort.SliceStable(subs, func(i, j int) bool {
		return subs[i].ID < subs[j].ID
	})
	return subs
}

func (ws *service) doRequest(sub Subscription, payload string) error {
	_, err := ws.cb.Execute(func() (interface{}, error) {
		headers := map[string]string{
			"Content-Type": "application/json",
		}
		if sub.IsSecured() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.StandardClaims{
				IssuedAt:  time.Now().Unix(),
				ExpiresAt: time.Now().Add(tokenLifetime).Unix(),
				Subject:   sub.Event,
			})
			tokenString, err := token.SignedString([]byte(sub.Secret))
			if err != nil {
				return nil, err
			}
			headers["Authorization"] = fmt.Sprintf("Bearer %s", tokenString)
		}

		status, resp, err := ws.httpClient.post(sub.Endpoint, payload, headers)
		if err != nil {
			return nil, err
		}
		if status != http.StatusOK {
			return nil, fmt.Errorf("webhook %s: status %d: %s", sub.ID, status, resp)
		}
		return nil, nil
	})

	return err
}

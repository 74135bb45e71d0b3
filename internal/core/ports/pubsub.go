package ports

import "errors"

// Topics published by the daemon. UnspecifiedTopic is only used to list
// all subscriptions regardless of their topic.
const (
	UnspecifiedTopic = ""
	AnyTopic         = "*"
	KeyCreatedTopic  = "KEY_CREATED"
	WalletAddedTopic = "WALLET_ADDED"
)

// ErrSubscriptionNotFound is returned when unsubscribing an unknown id.
var ErrSubscriptionNotFound = errors.New("webhook not found")

type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// PubSubStore is the internal store of a SecurePubSub service.
type PubSubStore interface {
	// Close should be used to gracefully close the connection with the store.
	Close() error
}

// SecurePubSub defines the methods of a pubsub service whose subscribers
// might require the published messages to be authenticated.
type SecurePubSub interface {
	// Store returns the internal store.
	Store() PubSubStore
	// Subscribe adds a new subscription for the requested topic.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes some client defined by its id for a topic.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the info of all clients subscribed for
	// a certain topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic. All clients subscribed
	// for such topic will receive the message.
	Publish(topic string, message string) error
}

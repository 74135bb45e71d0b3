package pubsub

import (
	"fmt"
	"net/url"

	"github.com/JerryMichels/bitpay-app/internal/core/ports"
	"github.com/google/uuid"
)

// Subscription is a webhook registered for a topic.
type Subscription struct {
	ID       string
	Event    string `badgerhold:"index"`
	Endpoint string
	Secret   string
}

// NewSubscription returns a new subscription with random id for the given
// topic and endpoint.
func NewSubscription(topic, endpoint, secret string) (*Subscription, error) {
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	return &Subscription{
		ID:       uuid.New().String(),
		Event:    topic,
		Endpoint: endpoint,
		Secret:   secret,
	}, nil
}

func (s Subscription) Topic() string {
	return s.Event
}

func (s Subscription) Id() string {
	return s.ID
}

func (s Subscription) IsSecured() bool {
	return len(s.Secret) > 0
}

func (s Subscription) NotifyAt() string {
	return s.Endpoint
}

type subscriptions []Subscription

func (s subscriptions) toPortable() []ports.Subscription {
	list := make([]ports.Subscription, 0, len(s))
	for _, sub := range s {
		list = append(list, sub)
	}
	return list
}

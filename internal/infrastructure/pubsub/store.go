package pubsub

import (
	"github.com/timshannon/badgerhold/v4"
)

// store wraps the badgerhold store where subscriptions are persisted.
type store struct {
	db *badgerhold.Store
}

func (s store) Close() error {
	return s.db.Close()
}

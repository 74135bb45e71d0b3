package dbbadger

import "errors"

var (
	// ErrKeyAlreadyExists ...
	ErrKeyAlreadyExists = errors.New("key already exists")
	// ErrNullKey ...
	ErrNullKey = errors.New("key must not be null")
)

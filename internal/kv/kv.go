// ABOUTME: Key-value persistence contract consumed by the habit store.
// ABOUTME: Backends: Charm KV (internal/charm), plain badger, and SQLite.
package kv

import "errors"

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// Store is a durable key-value store. Set must not return until the value
// is durably recorded or has failed.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}

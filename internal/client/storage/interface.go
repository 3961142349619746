// Package storage persists the session snapshot (token, user, last order)
// between runs.
package storage

import "context"

// Repository is a small durable key/value store. Get returns
// common.ErrorNotFound when the key is absent. SetMany writes all entries in
// a single transaction, so co-dependent keys land together or not at all.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMany(ctx context.Context, entries map[string][]byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

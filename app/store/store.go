// Package store provides key-value storage for client preferences, one scope per client.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a key is not found in the store.
var ErrNotFound = errors.New("key not found")

// Item is a stored key-value pair with its timestamps.
type Item struct {
	Scope     string    `db:"scope" json:"-"`
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Interface is implemented by Store and Cached.
type Interface interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
	List(ctx context.Context, scope string) ([]Item, error)
	Clear(ctx context.Context, scope string) (int, error)
	Close() error
}

// RWLocker is the subset of sync.RWMutex used by Store.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noopLocker is used for postgres, which handles concurrent writers itself.
type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}

package store

import (
	"context"
	"errors"
	"fmt"
)

// Accessor is the part of the store a single client scope needs.
type Accessor interface {
	Get(ctx context.Context, scope, key string) (string, error)
	Set(ctx context.Context, scope, key, value string) error
	Delete(ctx context.Context, scope, key string) error
}

// Scoped gives one client a local-storage style view of the store:
// missing keys are reported as absent, not as errors, and removing a missing key is a no-op.
type Scoped struct {
	store Accessor
	scope string
}

// Scope returns a view of st restricted to the given client scope.
func Scope(st Accessor, scope string) *Scoped {
	return &Scoped{store: st, scope: scope}
}

// GetItem returns the value of key and whether it was present.
func (s *Scoped) GetItem(ctx context.Context, key string) (string, bool, error) {
	v, err := s.store.Get(ctx, s.scope, key)
	if errors.Is(err, ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get item %q: %w", key, err)
	}
	return v, true, nil
}

// SetItem stores value under key.
func (s *Scoped) SetItem(ctx context.Context, key, value string) error {
	if err := s.store.Set(ctx, s.scope, key, value); err != nil {
		return fmt.Errorf("set item %q: %w", key, err)
	}
	return nil
}

// RemoveItem deletes key, ignoring keys that are already absent.
func (s *Scoped) RemoveItem(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, s.scope, key); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("remove item %q: %w", key, err)
	}
	return nil
}

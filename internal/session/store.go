// Package session stores game records keyed by opaque identifiers.
//
// Stores are owned by the transport layer; the game packages never see them.
package session

import (
	"context"
	"errors"
)

// ErrClosed is returned by stores whose backing handle has been closed.
var ErrClosed = errors.New("store is closed")

type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	Delete(ctx context.Context, id string) error
	// List returns the ids starting with prefix in ascending order.
	List(ctx context.Context, prefix string) ([]string, error)
	NewID() string
}

// Key joins a scope and a name into one store id.
func Key(scope, name string) string {
	return scope + "/" + name
}

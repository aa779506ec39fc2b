// Package kv defines the synchronous key-value backing store the
// collection repositories persist into. The contract mirrors
// origin-scoped browser storage: point reads and writes, plus a change
// notification that fires only in *other* instances sharing the same
// storage scope.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Read when the key has never been written.
var ErrNotFound = errors.New("kv: key not found")

// Store is the durable medium behind the repositories.
//
// Watch registers fn to be called with the changed key whenever another
// instance writes to the same storage scope. Changes made through this
// Store instance never trigger its own watchers; local observers are
// notified out-of-band by the repository layer.
type Store interface {
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Watch(ctx context.Context, fn func(key string)) (stop func(), err error)
}

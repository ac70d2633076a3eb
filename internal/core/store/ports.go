package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a key does not exist in the store.
var ErrKeyNotFound = errors.New("key not found")

// ErrKeyExists is returned by Create when the key already holds a value.
// Repositories surface it as a uniqueness-constraint violation.
var ErrKeyExists = errors.New("key already exists")

// Store defines the persistence operations interface following hexagonal architecture.
// This is a port that can be implemented by different providers (Redis, in-memory, etc.).
type Store interface {
	// Get retrieves a value by key. Returns ErrKeyNotFound when absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key, overwriting any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Create stores a value under key only if the key does not exist.
	// Returns ErrKeyExists otherwise.
	Create(ctx context.Context, key string, value []byte) error

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// AddToIndex adds a member to the named index set.
	AddToIndex(ctx context.Context, index, member string) error

	// IndexMembers returns all members of the named index set.
	IndexMembers(ctx context.Context, index string) ([]string, error)

	// Ping checks if the store is reachable.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}

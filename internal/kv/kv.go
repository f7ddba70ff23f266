// Package kv defines the key-value byte store the ledger persists into.
package kv

import (
	"context"
	"errors"
)

// Keys used by the ledger.
const (
	KeyExpenses     = "expenses"
	KeySavedFriends = "savedFriends"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

// Ports for outbound adapters.
type (
	Reader interface {
		// Get returns the stored bytes for key, or ErrNotFound.
		Get(ctx context.Context, key string) ([]byte, error)
	}

	Writer interface {
		// Set replaces the value stored under key.
		Set(ctx context.Context, key string, value []byte) error
	}

	// Store is a local byte store with whole-value reads and writes.
	Store interface {
		Reader
		Writer
		Close() error
	}
)

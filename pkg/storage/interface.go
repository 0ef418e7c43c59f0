// Package storage declares the persistence interfaces the service programs
// against. Concrete backends (currently PostgreSQL) live in subpackages and
// implement these interfaces, including transaction management.
package storage

import "context"

// AllStorage bundles every domain-specific storage capability. Code that
// only reads and writes records takes an AllStorage and stays agnostic to
// whether it runs inside a transaction.
type AllStorage interface {
	CalculationStorage
}

// TxStorage is an AllStorage bound to an open transaction. A handle must
// not be used again once Commit or Rollback has been called on it.
type TxStorage interface {
	AllStorage

	// Commit finalizes the transaction.
	Commit() error
	// Rollback discards all changes made in the transaction.
	Rollback() error
}

// Storage is the top-level, non-transactional handle. It owns the
// underlying connections and can open transactions.
type Storage interface {
	AllStorage

	// Close releases the backing connections. The handle must not be used
	// afterwards.
	Close() error

	// Begin opens a transaction and returns a handle scoped to it.
	Begin(ctx context.Context) (TxStorage, error)
	// WithTx runs cb inside a transaction, committing when cb returns nil
	// and rolling back when it returns an error.
	WithTx(ctx context.Context, cb func(storage AllStorage) error) error
}

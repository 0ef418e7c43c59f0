package storage

import "errors"

var (
	// ErrAlreadyInTx is returned by Begin when the receiver is itself a
	// transactional handle.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned by Commit and Rollback on a handle that is not
	// bound to a transaction.
	ErrNotInTx = errors.New("not in tx")
)

package database

import "errors"

var (
	// ErrIntegrityViolation is returned when a write breaks a foreign key,
	// uniqueness, check or not-null constraint.
	ErrIntegrityViolation = errors.New("storage integrity violation")

	// ErrStorageUnavailable is returned when the backing store cannot be
	// reached or a transaction could not be committed.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrTxBoundary marks failures of BEGIN or COMMIT themselves, as opposed
	// to failures of the statements run inside the transaction.
	ErrTxBoundary = errors.New("transaction boundary failed")
)

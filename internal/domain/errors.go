package domain

import "errors"

// Ledger errors. Callers match them with errors.Is.
var (
	ErrNotOpen            = errors.New("ledger is not open")
	ErrDuplicateKey       = errors.New("record already exists")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrEmptyID            = errors.New("record id must not be empty")
)

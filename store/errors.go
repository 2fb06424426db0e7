package store

import "errors"

// Sentinel errors for store operations.
var (
	ErrNilInitialValue = errors.New("handle initial value is nil")
	ErrHandleNotFound  = errors.New("handle not found")
)

package service

import (
	"errors"
	"fmt"
)

// ErrInvalidSubmission indicates the POST body is missing or lacks id/fullName.
var ErrInvalidSubmission = errors.New("invalid submission data")

// Store operations reported in StoreError.Op.
const (
	OpRetrieve = "retrieve"
	OpSave     = "save"
)

// StoreError wraps a failure reported by the backing store.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("failed to %s data: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err carries a StoreError and returns it.
func IsStoreError(err error) (*StoreError, bool) {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr, true
	}
	return nil, false
}

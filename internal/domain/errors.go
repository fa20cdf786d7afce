package domain

import (
	"errors"
	"fmt"
)

// ValidationError covers bad input: missing required fields, estado or
// categoria outside the allowed set, oversized or non-image uploads, empty
// draft keys. It is always raised before anything is persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports that the targeted record id is absent.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("inventario %s no encontrado", e.ID)
}

// AssetStoreError wraps a failed blob store round-trip. An upload failure
// aborts the whole mutation; a delete failure is logged and swallowed by
// the caller.
type AssetStoreError struct {
	Op  string
	Err error
}

func (e *AssetStoreError) Error() string {
	return fmt.Sprintf("blob store %s: %v", e.Op, e.Err)
}

func (e *AssetStoreError) Unwrap() error {
	return e.Err
}

// StoreError wraps a failed record store round-trip. Not retried here, the
// caller decides whether to replay the whole operation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("inventario store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsAssetStore(err error) bool {
	var ae *AssetStoreError
	return errors.As(err, &ae)
}

// Package apperr holds the sentinel errors shared by the service layers.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidCard   = errors.New("invalid card")
)

// Package repository holds the error vocabulary shared by the storage adapters.
package repository

import "errors"

var (
	// ErrNotFound is returned when no record matches the account and id.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("duplicate record")
)

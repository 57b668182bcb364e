// Package repository holds the storage errors shared by every backend.
package repository

import "errors"

var (
	ErrNotFound         = errors.New("record not found")
	ErrDuplicate        = errors.New("record already exists")
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidReference = errors.New("referenced record missing or still referenced")
	ErrConflict         = errors.New("record changed concurrently")
)

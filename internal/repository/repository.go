package repository

import "errors"

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (postgres, memory) inside this directory.

var (
	// ErrKeyExists is returned by Create when a record with the same key is already stored.
	ErrKeyExists = errors.New("key already exists")
	// ErrNotFound is returned when no record matches.
	ErrNotFound = errors.New("record not found")
)

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}

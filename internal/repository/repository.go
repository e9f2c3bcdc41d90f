// Package repository contains data access abstractions. Implementations live
// in subpackages (postgres). Repositories hold no business logic; lookups of
// missing rows return sql.ErrNoRows and services translate it.
package repository

import "errors"

// ErrDuplicate is returned when a write violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate record")

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

package usecase

import "errors"

var (
	// ErrValidation indicates missing or malformed caller input.
	ErrValidation = errors.New("messaging use case validation error")
	// ErrPersistence indicates an infrastructure/repository failure inside a use case.
	ErrPersistence = errors.New("messaging use case persistence error")
)

package usecase

import "errors"

var (
	// ErrValidation indicates missing or malformed caller input.
	ErrValidation = errors.New("notification use case validation error")
	// ErrNotFound indicates the notification does not exist or is not owned
	// by the recipient.
	ErrNotFound = errors.New("notification use case not found")
	// ErrPersistence indicates an infrastructure/repository failure inside a use case.
	ErrPersistence = errors.New("notification use case persistence error")
)

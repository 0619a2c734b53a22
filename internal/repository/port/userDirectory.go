package repository

import (
	"context"
	"errors"
)

// ErrUserNotFound is returned when the directory has no record for the id.
var ErrUserNotFound = errors.New("user directory: user not found")

// UserDirectory is the narrow view of the external user service this core
// needs: resolving an identity to a display name for notification preview
// text. Registration, profiles and the follow graph stay outside.
type UserDirectory interface {
	FindUsername(ctx context.Context, userID string) (string, error)
}

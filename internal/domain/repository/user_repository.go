package repository

import (
	"context"
	"errors"

	"dermassist/internal/domain/entity"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")
)

// UserRecord is a user together with its credential hash. The hash never
// leaves the backend.
type UserRecord struct {
	entity.User
	PasswordHash string
}

type UserRepository interface {
	Create(ctx context.Context, user *UserRecord) error
	FindByID(ctx context.Context, id string) (*UserRecord, error)
	FindByLogin(ctx context.Context, usernameOrEmail string) (*UserRecord, error)
	FindByEmail(ctx context.Context, email string) (*UserRecord, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	SearchDermatologists(ctx context.Context, query string) ([]entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

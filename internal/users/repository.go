// Package users owns user accounts: storage, registration, login and
// profile management.
package users

import (
	"context"
	"errors"

	"github.com/fitquality/storefront/internal/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, name, email, phone string) error
	UpdatePasswordHash(ctx context.Context, email, passwordHash string) error
}

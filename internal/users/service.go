package users

import (
	"context"
	"errors"
	"strings"

	"github.com/fitquality/storefront/internal/domain"
	"github.com/fitquality/storefront/internal/session"
	"github.com/fitquality/storefront/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo     Repository
	sessions session.Store
}

func NewService(repo Repository, sessions session.Store) *Service {
	return &Service{repo: repo, sessions: sessions}
}

// Register creates a customer account. Input is validated field by field so
// the caller can show the first failing check.
func (s *Service) Register(ctx context.Context, name, email, phone, password string) (*domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validation.Name(name); err != nil {
		return nil, err
	}
	if err := validation.Email(email); err != nil {
		return nil, err
	}
	if err := validation.Phone(phone); err != nil {
		return nil, err
	}
	if err := validation.Password(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and opens a session, returning the token
// the client sends on subsequent requests.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.Identity, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	password = strings.TrimSpace(password)

	user, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	identity := domain.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Phone:  user.Phone,
		Role:   user.Role,
	}

	token := uuid.NewString()
	if err := s.sessions.Save(ctx, token, identity); err != nil {
		return "", nil, err
	}

	return token, &identity, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

func (s *Service) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile validates and persists the new details, then refreshes the
// session so the identity seen by checkout stays current.
func (s *Service) UpdateProfile(ctx context.Context, token string, userID int64, name, email, phone string) error {
	email = strings.TrimSpace(strings.ToLower(email))

	if err := validation.Name(name); err != nil {
		return err
	}
	if err := validation.Email(email); err != nil {
		return err
	}
	if err := validation.Phone(phone); err != nil {
		return err
	}

	if err := s.repo.UpdateProfile(ctx, userID, strings.TrimSpace(name), email, phone); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	return s.sessions.Save(ctx, token, domain.Identity{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Phone:  user.Phone,
		Role:   user.Role,
	})
}

func (s *Service) UpdatePassword(ctx context.Context, email, newPassword string) error {
	newPassword = strings.TrimSpace(newPassword)
	if err := validation.Password(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.UpdatePasswordHash(ctx, strings.TrimSpace(strings.ToLower(email)), string(hash))
}

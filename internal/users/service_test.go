package users

import (
	"context"
	"testing"

	"github.com/fitquality/storefront/internal/domain"
	"github.com/fitquality/storefront/internal/session"
	"github.com/fitquality/storefront/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository implements Repository for testing
type mockRepository struct {
	users  map[string]*domain.User // keyed by email
	nextID int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{users: make(map[string]*domain.User)}
}

func (m *mockRepository) CreateUser(_ context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return ErrEmailTaken
	}
	m.nextID++
	user.ID = m.nextID
	m.users[user.Email] = user
	return nil
}

func (m *mockRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	user, ok := m.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (m *mockRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, ErrUserNotFound
}

func (m *mockRepository) UpdateProfile(_ context.Context, id int64, name, email, phone string) error {
	for oldEmail, user := range m.users {
		if user.ID == id {
			user.Name, user.Email, user.Phone = name, email, phone
			delete(m.users, oldEmail)
			m.users[email] = user
			return nil
		}
	}
	return ErrUserNotFound
}

func (m *mockRepository) UpdatePasswordHash(_ context.Context, email, passwordHash string) error {
	user, ok := m.users[email]
	if !ok {
		return ErrUserNotFound
	}
	user.PasswordHash = passwordHash
	return nil
}

// mockSessionStore implements session.Store for testing
type mockSessionStore struct {
	sessions map[string]domain.Identity
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]domain.Identity)}
}

func (m *mockSessionStore) Save(_ context.Context, token string, identity domain.Identity) error {
	m.sessions[token] = identity
	return nil
}

func (m *mockSessionStore) Get(_ context.Context, token string) (*domain.Identity, error) {
	identity, ok := m.sessions[token]
	if !ok {
		return nil, session.ErrSessionNotFound
	}
	return &identity, nil
}

func (m *mockSessionStore) Delete(_ context.Context, token string) error {
	delete(m.sessions, token)
	return nil
}

func TestRegister_Success(t *testing.T) {
	svc := NewService(newMockRepository(), newMockSessionStore())

	user, err := svc.Register(context.Background(), "Ana Soto", "Ana@Example.com", "987654321", "Secreto1")

	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, domain.RoleCustomer, user.Role)
	assert.NotEqual(t, "Secreto1", user.PasswordHash)
	assert.NotZero(t, user.ID)
}

func TestRegister_ValidationFailures(t *testing.T) {
	svc := NewService(newMockRepository(), newMockSessionStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana123", "ana@example.com", "987654321", "Secreto1")
	assert.ErrorIs(t, err, validation.ErrNameInvalid)

	_, err = svc.Register(ctx, "Ana", "not-an-email", "987654321", "Secreto1")
	assert.ErrorIs(t, err, validation.ErrEmailInvalid)

	_, err = svc.Register(ctx, "Ana", "ana@example.com", "12", "Secreto1")
	assert.ErrorIs(t, err, validation.ErrPhoneInvalid)

	_, err = svc.Register(ctx, "Ana", "ana@example.com", "987654321", "weak")
	assert.ErrorIs(t, err, validation.ErrPasswordWeak)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewService(newMockRepository(), newMockSessionStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "987654321", "Secreto1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Otra Ana", "ana@example.com", "987654321", "Secreto1")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_Success(t *testing.T) {
	repo := newMockRepository()
	sessions := newMockSessionStore()
	svc := NewService(repo, sessions)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "987654321", "Secreto1")
	require.NoError(t, err)

	token, identity, err := svc.Login(ctx, " Ana@Example.com ", "Secreto1")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "ana@example.com", identity.Email)

	stored, err := sessions.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, identity.UserID, stored.UserID)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := NewService(newMockRepository(), newMockSessionStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "987654321", "Secreto1")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ana@example.com", "WrongPass1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(newMockRepository(), newMockSessionStore())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "Secreto1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_RemovesSession(t *testing.T) {
	sessions := newMockSessionStore()
	svc := NewService(newMockRepository(), sessions)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "987654321", "Secreto1")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "ana@example.com", "Secreto1")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	_, err = sessions.Get(ctx, token)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestUpdateProfile_RefreshesSession(t *testing.T) {
	sessions := newMockSessionStore()
	svc := NewService(newMockRepository(), sessions)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Ana", "ana@example.com", "987654321", "Secreto1")
	require.NoError(t, err)
	token, _, err := svc.Login(ctx, "ana@example.com", "Secreto1")
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProfile(ctx, token, user.ID, "Ana Maria", "anamaria@example.com", "12345678"))

	stored, err := sessions.Get(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", stored.Name)
	assert.Equal(t, "anamaria@example.com", stored.Email)
}

func TestUpdatePassword(t *testing.T) {
	svc := NewService(newMockRepository(), newMockSessionStore())
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "987654321", "Secreto1")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.UpdatePassword(ctx, "ana@example.com", "short"), validation.ErrPasswordWeak)

	require.NoError(t, svc.UpdatePassword(ctx, "ana@example.com", "Nuevo1234"))

	_, _, err = svc.Login(ctx, "ana@example.com", "Secreto1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "ana@example.com", "Nuevo1234")
	assert.NoError(t, err)
}

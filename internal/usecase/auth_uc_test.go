package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrina-app/vitrina/internal/domain"
)

type memUserRepo struct {
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[uuid.UUID]*domain.User{}, byEmail: map[string]*domain.User{}}
}

func (m *memUserRepo) Save(ctx context.Context, u *domain.User) error {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func TestSignupValidation(t *testing.T) {
	a := NewAuthUC(newMemUserRepo(), "test-secret")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"bad email", "not-an-email", "longenough", ErrInvalidEmail},
		{"email with spaces", "a b@c.com", "longenough", ErrInvalidEmail},
		{"short password", "a@b.com", "1234567", ErrWeakPassword},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Signup(context.Background(), tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSignupAndLogin(t *testing.T) {
	a := NewAuthUC(newMemUserRepo(), "test-secret")

	u, err := a.Signup(context.Background(), "Ana@Example.COM", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", u.Email, "el mail se normaliza a minúsculas")
	assert.NotEqual(t, "supersecret", u.PasswordHash)

	got, err := a.Login(context.Background(), "ana@example.com", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = a.Login(context.Background(), "ana@example.com", "wrongpass")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
	_, err = a.Login(context.Background(), "nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, domain.ErrBadCredentials)
}

func TestSignupDuplicateEmail(t *testing.T) {
	a := NewAuthUC(newMemUserRepo(), "test-secret")

	_, err := a.Signup(context.Background(), "ana@example.com", "supersecret")
	require.NoError(t, err)
	_, err = a.Signup(context.Background(), "ana@example.com", "otherpassword")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestTokenRoundtrip(t *testing.T) {
	a := NewAuthUC(newMemUserRepo(), "test-secret")
	id := uuid.New()

	access, err := a.AccessToken(id)
	require.NoError(t, err)
	got, err := a.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	refresh, err := a.RefreshToken(id)
	require.NoError(t, err)
	got, err = a.VerifyRefresh(refresh)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestTokenTypeMismatchRejected(t *testing.T) {
	a := NewAuthUC(newMemUserRepo(), "test-secret")
	id := uuid.New()

	refresh, err := a.RefreshToken(id)
	require.NoError(t, err)
	_, err = a.VerifyAccess(refresh)
	assert.Error(t, err, "un refresh token no sirve como access token")

	access, err := a.AccessToken(id)
	require.NoError(t, err)
	_, err = a.VerifyRefresh(access)
	assert.Error(t, err)
}

func TestTokenWrongSecretRejected(t *testing.T) {
	a := NewAuthUC(newMemUserRepo(), "secret-one")
	b := NewAuthUC(newMemUserRepo(), "secret-two")

	access, err := a.AccessToken(uuid.New())
	require.NoError(t, err)
	_, err = b.VerifyAccess(access)
	assert.Error(t, err)
}

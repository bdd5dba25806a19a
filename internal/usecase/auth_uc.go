package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vitrina-app/vitrina/internal/domain"
)

const (
	AccessTTL  = 15 * time.Minute
	RefreshTTL = 7 * 24 * time.Hour
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	ErrInvalidEmail = errors.New("invalid email format")
	ErrWeakPassword = errors.New("password must be at least 8 characters long")
)

type AuthUC struct {
	Users  domain.UserRepo
	secret []byte
}

func NewAuthUC(users domain.UserRepo, secret string) *AuthUC {
	return &AuthUC{Users: users, secret: []byte(secret)}
}

func (a *AuthUC) Signup(ctx context.Context, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < 8 {
		return nil, ErrWeakPassword
	}
	if existing, err := a.Users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{ID: uuid.New(), Email: email, PasswordHash: string(hash)}
	if err := a.Users.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (a *AuthUC) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := a.Users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// misma respuesta para usuario inexistente y password mala
		return nil, domain.ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrBadCredentials
	}
	return u, nil
}

func (a *AuthUC) GetUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return a.Users.FindByID(ctx, id)
}

func (a *AuthUC) AccessToken(userID uuid.UUID) (string, error) {
	return a.sign(userID, "access", AccessTTL)
}

func (a *AuthUC) RefreshToken(userID uuid.UUID) (string, error) {
	return a.sign(userID, "refresh", RefreshTTL)
}

func (a *AuthUC) sign(userID uuid.UUID, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"typ": typ,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// VerifyAccess valida un access token y devuelve el user id.
func (a *AuthUC) VerifyAccess(token string) (uuid.UUID, error) {
	return a.verify(token, "access")
}

// VerifyRefresh valida un refresh token y devuelve el user id.
func (a *AuthUC) VerifyRefresh(token string) (uuid.UUID, error) {
	return a.verify(token, "refresh")
}

// Refresh valida un refresh token; el caller emite el par nuevo.
func (a *AuthUC) Refresh(ctx context.Context, token string) (*domain.User, error) {
	id, err := a.verify(token, "refresh")
	if err != nil {
		return nil, err
	}
	return a.Users.FindByID(ctx, id)
}

func (a *AuthUC) verify(token, typ string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, errors.New("invalid or expired token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != typ {
		return uuid.Nil, errors.New("invalid or expired token")
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, errors.New("invalid or expired token")
	}
	return id, nil
}

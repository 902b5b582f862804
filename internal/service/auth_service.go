package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"elenco/internal/config"
	"elenco/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrAuthDisabled       = errors.New("admin password is not configured")
)

const tokenIssuer = "elenco"

type authService struct {
	passwordHash  []byte
	secret        []byte
	tokenDuration time.Duration
	now           func() time.Time
}

// NewAuthService prefers ADMIN_PASSWORD_HASH and hashes ADMIN_PASSWORD
// otherwise. Without a JWT secret a random one is used, so tokens do not
// outlive the process.
func NewAuthService(cfg *config.Config) (AuthService, error) {
	s := &authService{
		secret:        []byte(cfg.JWTSecretKey),
		tokenDuration: cfg.AccessTokenDuration,
		now:           time.Now,
	}

	switch {
	case cfg.AdminPasswordHash != "":
		if _, err := bcrypt.Cost([]byte(cfg.AdminPasswordHash)); err != nil {
			return nil, fmt.Errorf("invalid ADMIN_PASSWORD_HASH: %w", err)
		}
		s.passwordHash = []byte(cfg.AdminPasswordHash)
	case cfg.AdminPassword != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		s.passwordHash = hash
	}

	if len(s.secret) == 0 {
		s.secret = []byte(uuid.NewString() + uuid.NewString())
	}
	if s.tokenDuration <= 0 {
		s.tokenDuration = 12 * time.Hour
	}

	return s, nil
}

func (s *authService) Enabled() bool {
	return len(s.passwordHash) > 0
}

func (s *authService) Login(_ context.Context, password string) (string, time.Time, error) {
	if !s.Enabled() {
		return "", time.Time{}, ErrAuthDisabled
	}

	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}

	now := s.now()
	expires := now.Add(s.tokenDuration)
	claims := jwt.RegisteredClaims{
		Subject:   store.AdminUserID,
		Issuer:    tokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expires, nil
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithSubject(store.AdminUserID))

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return token, nil
}

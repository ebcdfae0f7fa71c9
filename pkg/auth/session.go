package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// SessionService issues and validates the signed console session tokens set
// as the site_auth cookie after a successful password login.
type SessionService struct {
	secret      []byte
	expiry      time.Duration
	passwordCmp func(hash, password string) error
}

type SessionClaims struct {
	jwt.RegisteredClaims
}

func NewSessionService(secret string, expiryHours int) *SessionService {
	return &SessionService{
		secret:      []byte(secret),
		expiry:      time.Duration(expiryHours) * time.Hour,
		passwordCmp: comparePassword,
	}
}

func comparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// VerifyPassword compares the configured bcrypt hash against a login attempt.
func (s *SessionService) VerifyPassword(hash, password string) error {
	if hash == "" {
		return fmt.Errorf("no site password configured")
	}
	if err := s.passwordCmp(hash, password); err != nil {
		return fmt.Errorf("invalid password")
	}
	return nil
}

// GenerateToken issues a session token for the console.
func (s *SessionService) GenerateToken() (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "console",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and verifies a session token.
func (s *SessionService) ValidateToken(tokenStr string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("invalid session token")
	}
	return nil
}

// HashPassword produces the bcrypt hash stored in configuration.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

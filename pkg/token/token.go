// Package token issues and verifies the signed session tokens handed to app clients.
//
// Verification is stateless: a token is trusted only if its HS256 signature, structure and
// expiry all check out. There is no revocation list, so a replaced token stays valid until
// it expires on its own.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Lifetime is the fixed validity window of every issued token.
const Lifetime = 30 * 24 * time.Hour

var (
	// ErrMissingSecret is returned by New when no signing secret is configured.
	ErrMissingSecret = errors.New("token: signing secret is not configured")
	// ErrInvalidToken covers every verification failure. It never says which check failed.
	ErrInvalidToken = errors.New("invalid token")
	ErrEmptySubject = errors.New("token: subject is required")
)

// Identity is what a verified token asserts about its bearer.
type Identity struct {
	SubjectID   string
	DisplayName string
}

// Claims is the JWT payload. Field names match the tokens already held by mobile clients.
type Claims struct {
	jwt.RegisteredClaims
	UserID   string `json:"userId"`
	Username string `json:"username"`
}

type Option func(*Service)

// WithClock replaces time.Now for issuance and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

type Service struct {
	secret []byte
	now    func() time.Time
}

func New(secret string, opts ...Option) (*Service, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	s := &Service{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue refuses an empty subject, which Verify would never accept back.
func (s *Service) Issue(subjectID, displayName string) (string, error) {
	if subjectID == "" {
		return "", ErrEmptySubject
	}

	issuedAt := s.now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(Lifetime)),
		},
		UserID:   subjectID,
		Username: displayName,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}

	return signed, nil
}

func (s *Service) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(
		tokenString,
		claims,
		func(_ *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}

	if claims.UserID == "" {
		return Identity{}, ErrInvalidToken
	}

	return Identity{
		SubjectID:   claims.UserID,
		DisplayName: claims.Username,
	}, nil
}

// Package auth implements admin authentication with a bcrypt password hash
// and HS256 session tokens.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"golang.org/x/crypto/bcrypt"

	"carreramedico/internal/ports/output"
)

var _ output.Authenticator = (*Authenticator)(nil)

const (
	issuer    = "carrera-medico"
	adminRole = "admin"
)

var (
	ErrInvalidPassword = errors.New("invalid admin password")
	ErrInvalidToken    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token expired")
)

// Claims are the JWT claims of an admin session.
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

type Authenticator struct {
	secret       []byte
	passwordHash []byte
	ttl          time.Duration
}

// NewAuthenticator uses an existing bcrypt hash of the admin password.
func NewAuthenticator(secret, passwordHash []byte, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: secret, passwordHash: passwordHash, ttl: ttl}
}

// NewAuthenticatorFromPassword hashes a plain admin password at startup.
func NewAuthenticatorFromPassword(secret []byte, password string, ttl time.Duration, cost int) (*Authenticator, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return NewAuthenticator(secret, hash, ttl), nil
}

func (a *Authenticator) VerifyPassword(password string) error {
	if password == "" || len(a.passwordHash) == 0 {
		return ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return ErrInvalidPassword
	}
	return nil
}

func (a *Authenticator) IssueToken(now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(a.ttl)
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    issuer,
			Subject:   adminRole,
			IssuedAt:  now.Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
		Role: adminRole,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (a *Authenticator) ValidateToken(tokenString string) error {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return ErrTokenExpired
		}
		return ErrInvalidToken
	}
	if !token.Valid || claims.Role != adminRole || claims.Issuer != issuer {
		return ErrInvalidToken
	}
	return nil
}

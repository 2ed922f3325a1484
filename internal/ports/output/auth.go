package output

import "time"

// Authenticator checks the admin password and issues/validates session tokens.
type Authenticator interface {
	VerifyPassword(password string) error
	IssueToken(now time.Time) (token string, expiresAt time.Time, err error)
	ValidateToken(token string) error
}

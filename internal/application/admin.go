package application

import (
	"context"
	"time"

	"carreramedico/internal/domain"
	"carreramedico/internal/ports/input"
	"carreramedico/internal/ports/output"
	"carreramedico/pkg/logger"
)

var _ input.AdminUseCase = (*AdminService)(nil)

type AdminService struct {
	auth output.Authenticator
	lggr logger.Logger
}

func NewAdminService(auth output.Authenticator, lggr logger.Logger) *AdminService {
	return &AdminService{auth: auth, lggr: lggr.Named("admin")}
}

func (s *AdminService) Login(_ context.Context, password string, now time.Time) (string, time.Time, error) {
	if err := s.auth.VerifyPassword(password); err != nil {
		s.lggr.Warnw("admin login rejected")
		return "", time.Time{}, domain.ErrInvalidCredentials
	}
	token, expiresAt, err := s.auth.IssueToken(now)
	if err != nil {
		return "", time.Time{}, err
	}
	s.lggr.Infow("admin logged in", "expires_at", expiresAt)
	return token, expiresAt, nil
}

func (s *AdminService) Authorize(token string) error {
	if err := s.auth.ValidateToken(token); err != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

package input

import (
	"context"
	"time"

	"carreramedico/internal/domain/entities"
)

// RaceInfo is the public race document plus the live countdown.
type RaceInfo struct {
	Race      *entities.Race
	Countdown entities.Countdown
}

type RaceUseCase interface {
	Info(ctx context.Context, now time.Time) (*RaceInfo, error)
}

type AdminUseCase interface {
	Login(ctx context.Context, password string, now time.Time) (token string, expiresAt time.Time, err error)
	Authorize(token string) error
}

package application

import (
	"context"
	"fmt"
	"time"

	"carreramedico/internal/domain/entities"
	"carreramedico/internal/ports/input"
	"carreramedico/internal/ports/output"
)

var _ input.RaceUseCase = (*RaceService)(nil)

type RaceService struct {
	source output.RaceSource
}

func NewRaceService(source output.RaceSource) *RaceService {
	return &RaceService{source: source}
}

func (s *RaceService) Info(ctx context.Context, now time.Time) (*input.RaceInfo, error) {
	race, err := s.source.Race(ctx)
	if err != nil {
		return nil, fmt.Errorf("load race: %w", err)
	}
	return &input.RaceInfo{
		Race:      race,
		Countdown: entities.CountdownTo(race.EventDate, now),
	}, nil
}

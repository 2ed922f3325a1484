package output

import (
	"context"

	"carreramedico/internal/domain/entities"
)

// RegistrationNotifier publishes registration activity to the organisers.
type RegistrationNotifier interface {
	ParticipantRegistered(ctx context.Context, participant *entities.Participant, total int64, limit int) error
	RegistrationClosed(ctx context.Context, limit int) error
}

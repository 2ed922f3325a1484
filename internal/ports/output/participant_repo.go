package output

import (
	"context"

	"carreramedico/internal/domain/entities"
)

// ParticipantFilter selects a page of participants.
type ParticipantFilter struct {
	Search      string
	Limit       int
	Offset      int
	OldestFirst bool
}

type ParticipantRepository interface {
	// Insert assigns the next free ID/number to participant and stores it.
	// Implementations must serialise concurrent inserts and return
	// domain.ErrRegistrationFull or a *domain.DuplicatePhoneError.
	Insert(ctx context.Context, participant *entities.Participant, limit int) error
	FindByID(ctx context.Context, id uint) (*entities.Participant, error)
	FindByPhone(ctx context.Context, phone string) (*entities.Participant, error)
	FindFirstByName(ctx context.Context, name string) (*entities.Participant, error)
	List(ctx context.Context, filter ParticipantFilter) ([]entities.Participant, error)
	Count(ctx context.Context, search string) (int64, error)
	CountAttended(ctx context.Context) (int64, error)
	SetAttendance(ctx context.Context, id uint, attended bool) (*entities.Participant, error)
	SetAttendanceBulk(ctx context.Context, ids []uint, attended bool) (int64, error)
	Ping(ctx context.Context) error
}

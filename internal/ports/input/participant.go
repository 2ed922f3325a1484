package input

import (
	"context"
	"io"

	"carreramedico/internal/domain/entities"
)

// RegistrationRequest is the self-registration form.
type RegistrationRequest struct {
	Name   string
	Sex    string
	Phone  string
	Sector string
}

// RegistrationResult is returned to the entrant after a successful registration.
type RegistrationResult struct {
	ID       uint
	Number   string
	Name     string
	ImageURL string
}

// RegistrationStatus reports how many slots are taken.
type RegistrationStatus struct {
	Total   int64
	Limit   int
	CanJoin bool
}

type RegistrationUseCase interface {
	Register(ctx context.Context, req RegistrationRequest) (*RegistrationResult, error)
	Status(ctx context.Context) (*RegistrationStatus, error)
	Sectors() []string
}

// ListQuery selects a page of the participant listing.
type ListQuery struct {
	Limit  int
	Offset int
	Search string
}

// ParticipantPage is one page of the listing plus the number of matching rows.
type ParticipantPage struct {
	Participants []entities.Participant
	Total        int64
	Limit        int
	Offset       int
}

// AttendanceSummary counts attendance over the whole dataset.
type AttendanceSummary struct {
	Total    int64
	Attended int64
	Pending  int64
}

type AttendanceUseCase interface {
	List(ctx context.Context, q ListQuery) (*ParticipantPage, error)
	GlobalSearch(ctx context.Context, term string) (*ParticipantPage, error)
	Lookup(ctx context.Context, kind, value string) (*entities.Participant, error)
	FindByNumber(ctx context.Context, number string) (*entities.Participant, error)
	SetAttendance(ctx context.Context, id uint, attended bool) (*entities.Participant, error)
	BulkSetAttendance(ctx context.Context, ids []uint, attended bool) (int64, error)
	Summary(ctx context.Context) (*AttendanceSummary, error)
	Total(ctx context.Context) (int64, error)
	Export(ctx context.Context, w io.Writer, search string) error
	ExportFilename() string
	ExportContentType() string
}

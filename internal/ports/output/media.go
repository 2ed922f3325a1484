package output

import (
	"context"
	"io"

	"carreramedico/internal/domain/entities"
)

// BibRenderer draws the printable bib for a participant.
type BibRenderer interface {
	Render(number, name string) ([]byte, error)
}

// ParticipantExporter writes a participant sheet to w.
type ParticipantExporter interface {
	WriteParticipants(w io.Writer, participants []entities.Participant) error
	ContentType() string
	Extension() string
}

// RaceSource provides the public race information.
type RaceSource interface {
	Race(ctx context.Context) (*entities.Race, error)
}

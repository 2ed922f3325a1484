package database

import (
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"carreramedico/internal/domain/entities"
)

const participantColumns = `id, numero_asignado, nombre, sexo, telefono, sector_profesional, asistio, fecha_registro, updated_at`

// participantRow mirrors one row of the participantes table.
type participantRow struct {
	ID           int32
	Number       string
	Name         string
	Sex          string
	Phone        string
	Sector       string
	Attended     bool
	RegisteredAt pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

func scanParticipant(row pgx.Row) (participantRow, error) {
	var p participantRow
	err := row.Scan(
		&p.ID,
		&p.Number,
		&p.Name,
		&p.Sex,
		&p.Phone,
		&p.Sector,
		&p.Attended,
		&p.RegisteredAt,
		&p.UpdatedAt,
	)
	return p, err
}

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

func participantToDomain(p participantRow) entities.Participant {
	return entities.Participant{
		ID:           uint(p.ID),
		Number:       p.Number,
		Name:         p.Name,
		Sex:          p.Sex,
		Phone:        p.Phone,
		Sector:       p.Sector,
		Attended:     p.Attended,
		RegisteredAt: pgtypeTimestamptzToTime(p.RegisteredAt),
		UpdatedAt:    pgtypeTimestamptzToTime(p.UpdatedAt),
	}
}

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"carreramedico/internal/domain"
	"carreramedico/internal/domain/entities"
	"carreramedico/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

// ParticipantRepository implements output.ParticipantRepository on PostgreSQL via pgx.
type ParticipantRepository struct {
	pool *pgxpool.Pool
}

// NewParticipantRepository creates a ParticipantRepository.
func NewParticipantRepository(pool *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{pool: pool}
}

// Insert runs inside a transaction holding a SHARE ROW EXCLUSIVE lock on the
// table, so count, duplicate and next-ID checks see a stable snapshot.
func (r *ParticipantRepository) Insert(ctx context.Context, participant *entities.Participant, limit int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin insert participant: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `LOCK TABLE participantes IN SHARE ROW EXCLUSIVE MODE`); err != nil {
		return fmt.Errorf("lock participantes: %w", err)
	}

	var count, maxID int64
	if err := tx.QueryRow(ctx, `SELECT COUNT(*), COALESCE(MAX(id), 0) FROM participantes`).Scan(&count, &maxID); err != nil {
		return fmt.Errorf("count participants: %w", err)
	}
	if count >= int64(limit) {
		return domain.ErrRegistrationFull
	}

	var existing string
	err = tx.QueryRow(ctx, `SELECT nombre FROM participantes WHERE telefono = $1`, participant.Phone).Scan(&existing)
	switch {
	case err == nil:
		return &domain.DuplicatePhoneError{ExistingName: existing}
	case !errors.Is(err, pgx.ErrNoRows):
		return fmt.Errorf("find participant by phone: %w", err)
	}

	next := maxID + 1
	if next > int64(limit) {
		return domain.ErrRegistrationFull
	}
	number := domain.FormatNumber(uint(next))

	row, err := scanParticipant(tx.QueryRow(ctx, `
		INSERT INTO participantes (id, numero_asignado, nombre, sexo, telefono, sector_profesional, fecha_registro, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		RETURNING `+participantColumns,
		next, number, participant.Name, participant.Sex, participant.Phone, participant.Sector, participant.RegisteredAt,
	))
	if err != nil {
		return fmt.Errorf("insert participant: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit insert participant: %w", err)
	}
	*participant = participantToDomain(row)
	return nil
}

func (r *ParticipantRepository) findOne(ctx context.Context, what, query string, args ...any) (*entities.Participant, error) {
	row, err := scanParticipant(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get participant by %s: %w", what, err)
	}
	p := participantToDomain(row)
	return &p, nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uint) (*entities.Participant, error) {
	return r.findOne(ctx, "id",
		`SELECT `+participantColumns+` FROM participantes WHERE id = $1`, int64(id))
}

func (r *ParticipantRepository) FindByPhone(ctx context.Context, phone string) (*entities.Participant, error) {
	return r.findOne(ctx, "phone",
		`SELECT `+participantColumns+` FROM participantes WHERE telefono = $1`, strings.TrimSpace(phone))
}

func (r *ParticipantRepository) FindFirstByName(ctx context.Context, name string) (*entities.Participant, error) {
	return r.findOne(ctx, "name",
		`SELECT `+participantColumns+` FROM participantes WHERE nombre ILIKE $1 ORDER BY id LIMIT 1`,
		likePattern(name))
}

// likePattern wraps term for a substring LIKE match, escaping wildcards.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.TrimSpace(term)) + "%"
}

// searchClause is the SQL form of domain.Matches; $1 is the raw term and $2 its LIKE pattern.
const searchClause = `($1 = '' OR nombre ILIKE $2 OR numero_asignado ILIKE $2 OR telefono LIKE $2)`

func (r *ParticipantRepository) List(ctx context.Context, filter output.ParticipantFilter) ([]entities.Participant, error) {
	order := `fecha_registro DESC, id DESC`
	if filter.OldestFirst {
		order = `fecha_registro ASC, id ASC`
	}
	term := strings.TrimSpace(filter.Search)
	rows, err := r.pool.Query(ctx, `
		SELECT `+participantColumns+`
		FROM participantes
		WHERE `+searchClause+`
		ORDER BY `+order+`
		LIMIT $3 OFFSET $4`,
		term, likePattern(term), filter.Limit, filter.Offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	defer rows.Close()

	out := make([]entities.Participant, 0, filter.Limit)
	for rows.Next() {
		row, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan participant: %w", err)
		}
		out = append(out, participantToDomain(row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	return out, nil
}

func (r *ParticipantRepository) Count(ctx context.Context, search string) (int64, error) {
	term := strings.TrimSpace(search)
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM participantes WHERE `+searchClause,
		term, likePattern(term)).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return n, nil
}

func (r *ParticipantRepository) CountAttended(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM participantes WHERE asistio`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count attended: %w", err)
	}
	return n, nil
}

func (r *ParticipantRepository) SetAttendance(ctx context.Context, id uint, attended bool) (*entities.Participant, error) {
	return r.findOne(ctx, "id", `
		UPDATE participantes SET asistio = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING `+participantColumns,
		int64(id), attended)
}

func (r *ParticipantRepository) SetAttendanceBulk(ctx context.Context, ids []uint, attended bool) (int64, error) {
	keys := make([]int64, len(ids))
	for i, id := range ids {
		keys[i] = int64(id)
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE participantes SET asistio = $2, updated_at = NOW() WHERE id = ANY($1)`,
		keys, attended)
	if err != nil {
		return 0, fmt.Errorf("bulk update attendance: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *ParticipantRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

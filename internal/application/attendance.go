package application

import (
	"context"
	"fmt"
	"io"
	"strings"

	"carreramedico/internal/domain"
	"carreramedico/internal/domain/entities"
	"carreramedico/internal/ports/input"
	"carreramedico/internal/ports/output"
	"carreramedico/pkg/logger"
)

var _ input.AttendanceUseCase = (*AttendanceService)(nil)

type AttendanceService struct {
	participantRepo output.ParticipantRepository
	exporter        output.ParticipantExporter
	lggr            logger.Logger
}

func NewAttendanceService(
	participantRepo output.ParticipantRepository,
	exporter output.ParticipantExporter,
	lggr logger.Logger,
) *AttendanceService {
	return &AttendanceService{
		participantRepo: participantRepo,
		exporter:        exporter,
		lggr:            lggr.Named("attendance"),
	}
}

func normalizeQuery(q input.ListQuery) input.ListQuery {
	if q.Limit <= 0 {
		q.Limit = domain.DefaultPageSize
	}
	if q.Limit > domain.MaxPageSize {
		q.Limit = domain.MaxPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.Search = strings.TrimSpace(q.Search)
	return q
}

func (s *AttendanceService) List(ctx context.Context, q input.ListQuery) (*input.ParticipantPage, error) {
	q = normalizeQuery(q)
	participants, err := s.participantRepo.List(ctx, output.ParticipantFilter{
		Search: q.Search,
		Limit:  q.Limit,
		Offset: q.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	total, err := s.participantRepo.Count(ctx, q.Search)
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}
	return &input.ParticipantPage{
		Participants: participants,
		Total:        total,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}, nil
}

// GlobalSearch searches the whole dataset rather than a single console page.
func (s *AttendanceService) GlobalSearch(ctx context.Context, term string) (*input.ParticipantPage, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.ErrMissingField
	}
	return s.List(ctx, input.ListQuery{Limit: domain.MaxPageSize, Search: term})
}

func (s *AttendanceService) Lookup(ctx context.Context, kind, value string) (*entities.Participant, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, domain.ErrInvalidLookup
	}
	switch kind {
	case domain.LookupNumber:
		return s.FindByNumber(ctx, value)
	case domain.LookupName:
		return s.participantRepo.FindFirstByName(ctx, value)
	case domain.LookupPhone:
		return s.participantRepo.FindByPhone(ctx, value)
	default:
		return nil, domain.ErrInvalidLookup
	}
}

func (s *AttendanceService) FindByNumber(ctx context.Context, number string) (*entities.Participant, error) {
	id, err := domain.ParseNumber(number)
	if err != nil {
		return nil, err
	}
	return s.participantRepo.FindByID(ctx, id)
}

func (s *AttendanceService) SetAttendance(ctx context.Context, id uint, attended bool) (*entities.Participant, error) {
	p, err := s.participantRepo.SetAttendance(ctx, id, attended)
	if err != nil {
		return nil, err
	}
	s.lggr.Debugw("attendance updated", "id", id, "attended", attended)
	return p, nil
}

func (s *AttendanceService) BulkSetAttendance(ctx context.Context, ids []uint, attended bool) (int64, error) {
	seen := make(map[uint]struct{}, len(ids))
	unique := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	if len(unique) == 0 {
		return 0, domain.ErrEmptySelection
	}
	n, err := s.participantRepo.SetAttendanceBulk(ctx, unique, attended)
	if err != nil {
		return 0, fmt.Errorf("bulk attendance: %w", err)
	}
	s.lggr.Infow("bulk attendance updated", "requested", len(unique), "updated", n, "attended", attended)
	return n, nil
}

func (s *AttendanceService) Summary(ctx context.Context) (*input.AttendanceSummary, error) {
	total, err := s.participantRepo.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}
	attended, err := s.participantRepo.CountAttended(ctx)
	if err != nil {
		return nil, fmt.Errorf("count attended: %w", err)
	}
	return &input.AttendanceSummary{
		Total:    total,
		Attended: attended,
		Pending:  total - attended,
	}, nil
}

func (s *AttendanceService) Total(ctx context.Context) (int64, error) {
	total, err := s.participantRepo.Count(ctx, "")
	if err != nil {
		return 0, fmt.Errorf("count participants: %w", err)
	}
	return total, nil
}

// Export writes every participant matching search, oldest registration first.
func (s *AttendanceService) Export(ctx context.Context, w io.Writer, search string) error {
	search = strings.TrimSpace(search)
	var all []entities.Participant
	for offset := 0; ; offset += domain.MaxPageSize {
		page, err := s.participantRepo.List(ctx, output.ParticipantFilter{
			Search:      search,
			Limit:       domain.MaxPageSize,
			Offset:      offset,
			OldestFirst: true,
		})
		if err != nil {
			return fmt.Errorf("list participants: %w", err)
		}
		all = append(all, page...)
		if len(page) < domain.MaxPageSize {
			break
		}
	}
	if err := s.exporter.WriteParticipants(w, all); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	s.lggr.Infow("participants exported", "count", len(all))
	return nil
}

// ExportFilename is the download name of the export.
func (s *AttendanceService) ExportFilename() string {
	return "participantes." + s.exporter.Extension()
}

// ExportContentType is the MIME type of the export.
func (s *AttendanceService) ExportContentType() string {
	return s.exporter.ContentType()
}

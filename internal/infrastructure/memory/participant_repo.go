// Package memory is an in-process participant store used for local runs
// (STORAGE=memory) and tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"carreramedico/internal/domain"
	"carreramedico/internal/domain/entities"
	"carreramedico/internal/ports/output"
)

var _ output.ParticipantRepository = (*ParticipantRepository)(nil)

type ParticipantRepository struct {
	mu           sync.RWMutex
	participants map[uint]entities.Participant
	byPhone      map[string]uint
	maxID        uint
}

func NewParticipantRepository() *ParticipantRepository {
	return &ParticipantRepository{
		participants: make(map[uint]entities.Participant),
		byPhone:      make(map[string]uint),
	}
}

func (r *ParticipantRepository) Insert(_ context.Context, participant *entities.Participant, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.participants) >= limit {
		return domain.ErrRegistrationFull
	}
	if id, ok := r.byPhone[participant.Phone]; ok {
		return &domain.DuplicatePhoneError{ExistingName: r.participants[id].Name}
	}
	next := r.maxID + 1
	if int(next) > limit {
		return domain.ErrRegistrationFull
	}
	if participant.RegisteredAt.IsZero() {
		participant.RegisteredAt = time.Now()
	}
	participant.ID = next
	participant.Number = domain.FormatNumber(next)
	participant.UpdatedAt = participant.RegisteredAt

	r.participants[next] = *participant
	r.byPhone[participant.Phone] = next
	r.maxID = next
	return nil
}

func (r *ParticipantRepository) FindByID(_ context.Context, id uint) (*entities.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	return &p, nil
}

func (r *ParticipantRepository) FindByPhone(_ context.Context, phone string) (*entities.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byPhone[strings.TrimSpace(phone)]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	p := r.participants[id]
	return &p, nil
}

func (r *ParticipantRepository) FindFirstByName(_ context.Context, name string) (*entities.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(name))
	var found *entities.Participant
	for _, p := range r.participants {
		if !strings.Contains(strings.ToLower(p.Name), needle) {
			continue
		}
		if found == nil || p.ID < found.ID {
			p := p
			found = &p
		}
	}
	if found == nil {
		return nil, domain.ErrParticipantNotFound
	}
	return found, nil
}

// sorted returns the participants matching search; callers hold the lock.
func (r *ParticipantRepository) sorted(search string, oldestFirst bool) []entities.Participant {
	out := make([]entities.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		if domain.Matches(&p, search) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.RegisteredAt.Equal(b.RegisteredAt) {
			if oldestFirst {
				return a.RegisteredAt.Before(b.RegisteredAt)
			}
			return a.RegisteredAt.After(b.RegisteredAt)
		}
		if oldestFirst {
			return a.ID < b.ID
		}
		return a.ID > b.ID
	})
	return out
}

func (r *ParticipantRepository) List(_ context.Context, filter output.ParticipantFilter) ([]entities.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.sorted(filter.Search, filter.OldestFirst)
	if filter.Offset >= len(all) {
		return []entities.Participant{}, nil
	}
	end := len(all)
	if filter.Limit > 0 && filter.Offset+filter.Limit < end {
		end = filter.Offset + filter.Limit
	}
	return all[filter.Offset:end], nil
}

func (r *ParticipantRepository) Count(_ context.Context, search string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if strings.TrimSpace(search) == "" {
		return int64(len(r.participants)), nil
	}
	var n int64
	for _, p := range r.participants {
		if domain.Matches(&p, search) {
			n++
		}
	}
	return n, nil
}

func (r *ParticipantRepository) CountAttended(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var n int64
	for _, p := range r.participants {
		if p.Attended {
			n++
		}
	}
	return n, nil
}

func (r *ParticipantRepository) SetAttendance(_ context.Context, id uint, attended bool) (*entities.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, domain.ErrParticipantNotFound
	}
	p.Attended = attended
	p.UpdatedAt = time.Now()
	r.participants[id] = p
	return &p, nil
}

func (r *ParticipantRepository) SetAttendanceBulk(_ context.Context, ids []uint, attended bool) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var n int64
	for _, id := range ids {
		p, ok := r.participants[id]
		if !ok {
			continue
		}
		p.Attended = attended
		p.UpdatedAt = now
		r.participants[id] = p
		n++
	}
	return n, nil
}

func (r *ParticipantRepository) Ping(context.Context) error { return nil }

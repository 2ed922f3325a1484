package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"carreramedico/internal/domain"
	"carreramedico/internal/domain/entities"
	"carreramedico/internal/ports/input"
	"carreramedico/internal/ports/output"
	"carreramedico/pkg/logger"
)

var _ input.RegistrationUseCase = (*RegistrationService)(nil)

// notifyTimeout bounds each organiser notification, detached from the request.
const notifyTimeout = 15 * time.Second

// registrationForm is the normalised registration request checked by the validator.
type registrationForm struct {
	Name   string `validate:"required"`
	Sex    string `validate:"required,sex"`
	Phone  string `validate:"required,min=10"`
	Sector string `validate:"required,sector"`
}

type RegistrationService struct {
	participantRepo output.ParticipantRepository
	notifier        output.RegistrationNotifier
	validate        *validator.Validate
	limit           int
	lggr            logger.Logger
	now             func() time.Time

	notifications sync.WaitGroup
}

func NewRegistrationService(
	participantRepo output.ParticipantRepository,
	notifier output.RegistrationNotifier,
	limit int,
	lggr logger.Logger,
) *RegistrationService {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegisterValidation(v, "sex", domain.IsValidSex)
	mustRegisterValidation(v, "sector", domain.IsValidSector)
	return &RegistrationService{
		participantRepo: participantRepo,
		notifier:        notifier,
		validate:        v,
		limit:           limit,
		lggr:            lggr.Named("registration"),
		now:             time.Now,
	}
}

func (s *RegistrationService) Register(ctx context.Context, req input.RegistrationRequest) (*input.RegistrationResult, error) {
	form := registrationForm{
		Name:   strings.TrimSpace(req.Name),
		Sex:    strings.TrimSpace(req.Sex),
		Phone:  strings.TrimSpace(req.Phone),
		Sector: strings.TrimSpace(req.Sector),
	}
	if err := s.check(form); err != nil {
		return nil, err
	}

	total, err := s.participantRepo.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}
	if total >= int64(s.limit) {
		return nil, &domain.RegistrationFullError{Limit: s.limit}
	}
	existing, err := s.participantRepo.FindByPhone(ctx, form.Phone)
	switch {
	case err == nil:
		return nil, &domain.DuplicatePhoneError{ExistingName: existing.Name}
	case !errors.Is(err, domain.ErrParticipantNotFound):
		return nil, fmt.Errorf("find participant by phone: %w", err)
	}

	participant := &entities.Participant{
		Name:         form.Name,
		Sex:          form.Sex,
		Phone:        form.Phone,
		Sector:       form.Sector,
		RegisteredAt: s.now(),
	}
	if err := s.participantRepo.Insert(ctx, participant, s.limit); err != nil {
		if errors.Is(err, domain.ErrRegistrationFull) {
			return nil, &domain.RegistrationFullError{Limit: s.limit}
		}
		return nil, err
	}
	s.lggr.Infow("participant registered", "id", participant.ID, "number", participant.Number)
	s.announce(ctx, *participant)

	return &input.RegistrationResult{
		ID:       participant.ID,
		Number:   participant.Number,
		Name:     participant.Name,
		ImageURL: ImageURL(participant.Number, participant.Name),
	}, nil
}

func mustRegisterValidation(v *validator.Validate, tag string, valid func(string) bool) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return valid(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// announce notifies organisers in the background; failures never affect the
// registration. IDs are assigned densely under the repository lock, so the
// participant's ID is the registration total and exactly one entrant takes
// the last slot.
func (s *RegistrationService) announce(ctx context.Context, p entities.Participant) {
	s.notifications.Add(1)
	go func() {
		defer s.notifications.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
		defer cancel()

		if err := s.notifier.ParticipantRegistered(ctx, &p, int64(p.ID), s.limit); err != nil {
			s.lggr.Warnw("registration notification failed", "id", p.ID, "error", err)
		}
		if p.ID == uint(s.limit) {
			if err := s.notifier.RegistrationClosed(ctx, s.limit); err != nil {
				s.lggr.Warnw("registration closed notification failed", "error", err)
			}
		}
	}()
}

// Wait blocks until in-flight notifications have been delivered or timed out.
func (s *RegistrationService) Wait() {
	s.notifications.Wait()
}

// check maps validator failures onto domain errors. Missing fields win over
// malformed ones so the entrant first learns that the form is incomplete.
func (s *RegistrationService) check(form registrationForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate registration: %w", err)
	}
	for _, fe := range verrs {
		if fe.Tag() == "required" {
			return domain.ErrMissingField
		}
	}
	switch verrs[0].Field() {
	case "Sex":
		return domain.ErrInvalidSex
	case "Phone":
		return domain.ErrInvalidPhone
	case "Sector":
		return domain.ErrInvalidSector
	default:
		return domain.ErrMissingField
	}
}

func (s *RegistrationService) Status(ctx context.Context) (*input.RegistrationStatus, error) {
	total, err := s.participantRepo.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("count participants: %w", err)
	}
	return &input.RegistrationStatus{
		Total:   total,
		Limit:   s.limit,
		CanJoin: total < int64(s.limit),
	}, nil
}

func (s *RegistrationService) Sectors() []string {
	out := make([]string, len(domain.Sectors))
	copy(out, domain.Sectors)
	return out
}

// ImageURL is the relative link to a participant's downloadable bib.
func ImageURL(number, name string) string {
	return fmt.Sprintf("/api/imagen/%s?nombre=%s", number, url.QueryEscape(name))
}

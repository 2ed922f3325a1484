package application

import (
	"context"
	"fmt"
	"strings"

	"carreramedico/internal/domain"
	"carreramedico/internal/ports/input"
	"carreramedico/internal/ports/output"
	"carreramedico/pkg/logger"
)

var _ input.BibUseCase = (*BibService)(nil)

type BibService struct {
	participantRepo output.ParticipantRepository
	renderer        output.BibRenderer
	lggr            logger.Logger
}

func NewBibService(participantRepo output.ParticipantRepository, renderer output.BibRenderer, lggr logger.Logger) *BibService {
	return &BibService{
		participantRepo: participantRepo,
		renderer:        renderer,
		lggr:            lggr.Named("bib"),
	}
}

func (s *BibService) Bib(ctx context.Context, number, name string) (*input.BibImage, error) {
	id, err := domain.ParseNumber(number)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		p, err := s.participantRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		name = p.Name
	}
	formatted := domain.FormatNumber(id)
	png, err := s.renderer.Render(formatted, name)
	if err != nil {
		s.lggr.Errorw("bib render failed", "number", formatted, "error", err)
		return nil, fmt.Errorf("render bib %s: %w: %w", formatted, domain.ErrBibRender, err)
	}
	return &input.BibImage{
		Filename: BibFilename(formatted, name),
		PNG:      png,
	}, nil
}

// BibFilename is the download name of a bib: participante_0007_Ana_Lopez.png.
func BibFilename(number, name string) string {
	return fmt.Sprintf("participante_%s_%s.png", number, strings.ReplaceAll(name, " ", "_"))
}

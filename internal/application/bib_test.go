package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carreramedico/internal/domain"
	"carreramedico/internal/infrastructure/memory"
	"carreramedico/pkg/logger"
)

type fakeRenderer struct {
	number, name string
	err          error
}

func (r *fakeRenderer) Render(number, name string) ([]byte, error) {
	r.number, r.name = number, name
	if r.err != nil {
		return nil, r.err
	}
	return []byte("png"), nil
}

func TestBibService_Bib(t *testing.T) {
	t.Parallel()
	repo := memory.NewParticipantRepository()
	seedParticipants(t, repo, "Ana Pérez", "Bruno Díaz")
	renderer := &fakeRenderer{}
	svc := NewBibService(repo, renderer, logger.Test(t))
	ctx := context.Background()

	img, err := svc.Bib(ctx, "2", "")
	require.NoError(t, err)
	assert.Equal(t, "0002", renderer.number)
	assert.Equal(t, "Bruno Díaz", renderer.name)
	assert.Equal(t, "participante_0002_Bruno_Díaz.png", img.Filename)
	assert.Equal(t, []byte("png"), img.PNG)

	img, err = svc.Bib(ctx, "0001", "Dra. Ana P")
	require.NoError(t, err)
	assert.Equal(t, "participante_0001_Dra._Ana_P.png", img.Filename)

	_, err = svc.Bib(ctx, "55", "")
	require.ErrorIs(t, err, domain.ErrParticipantNotFound)

	_, err = svc.Bib(ctx, "x1", "Ana")
	require.ErrorIs(t, err, domain.ErrInvalidNumber)

	boom := errors.New("boom")
	renderer.err = boom
	_, err = svc.Bib(ctx, "1", "Ana")
	require.ErrorIs(t, err, domain.ErrBibRender)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "image", domain.Code(err))
}

func TestBibFilename(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "participante_0007_A_B.png", BibFilename("0007", "A B"))
	assert.Equal(t, "participante_0010_Ana.png", BibFilename("0010", "Ana"))
}

package racedata

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	t.Parallel()
	src, err := Load("")
	require.NoError(t, err)

	race, err := src.Race(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Carrera del Médico", race.Name)
	assert.Equal(t, 9, race.Edition)
	assert.True(t, race.EventDate.Equal(time.Date(2027, 3, 17, 14, 0, 0, 0, time.UTC)))
	assert.Len(t, race.Categories, 3)
	assert.Len(t, race.Schedule, 4)
	assert.Len(t, race.Winners, 4)
	assert.Len(t, race.Sponsors, 6)
	assert.Len(t, race.Milestones, 4)
	assert.NotEmpty(t, race.Benefits)
	assert.NotEmpty(t, race.Contact.Social)
	assert.NotEmpty(t, race.Route.KeyPoints)
}

func TestLoad_File(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "race.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "Carrera de prueba"
event_date = 2030-01-01T07:00:00Z
`), 0o600))

	src, err := Load(path)
	require.NoError(t, err)
	race, err := src.Race(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Carrera de prueba", race.Name)

	// Callers get a copy.
	race.Name = "changed"
	again, err := src.Race(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Carrera de prueba", again.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestParse_Invalid(t *testing.T) {
	t.Parallel()
	_, err := Parse([]byte(`event_date = 2030-01-01T07:00:00Z`))
	require.ErrorContains(t, err, "name is required")

	_, err = Parse([]byte(`name = "x"`))
	require.ErrorContains(t, err, "event_date is required")

	_, err = Parse([]byte(`name = `))
	require.Error(t, err)
}

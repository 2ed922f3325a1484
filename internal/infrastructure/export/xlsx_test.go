package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"carreramedico/internal/domain/entities"
	"carreramedico/pkg/tz"
)

func TestXLSX_WriteParticipants(t *testing.T) {
	t.Parallel()
	x := NewXLSX(tz.MexicoCity)
	participants := []entities.Participant{
		{
			ID: 1, Number: "0001", Name: "Ana Pérez", Sex: "Femenino", Phone: "5512345678",
			Sector: "Enfermería", Attended: true,
			RegisteredAt: time.Date(2026, 2, 1, 16, 30, 0, 0, time.UTC),
		},
		{
			ID: 2, Number: "0002", Name: "Bruno Díaz", Sex: "Masculino", Phone: "5587654321",
			Sector:       "Farmacia",
			RegisteredAt: time.Date(2026, 2, 2, 3, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, x.WriteParticipants(&buf, participants))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Número", "Nombre", "Sexo", "Sector profesional", "Teléfono", "Fecha de registro", "Asistió"}, rows[0])
	assert.Equal(t, []string{"0001", "Ana Pérez", "Femenino", "Enfermería", "5512345678", "01/02/2026 10:30", "Sí"}, rows[1])
	assert.Equal(t, []string{"0002", "Bruno Díaz", "Masculino", "Farmacia", "5587654321", "01/02/2026 21:00", "No"}, rows[2])
}

func TestXLSX_Metadata(t *testing.T) {
	t.Parallel()
	x := NewXLSX(nil)
	assert.Equal(t, "xlsx", x.Extension())
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", x.ContentType())

	var buf bytes.Buffer
	require.NoError(t, x.WriteParticipants(&buf, nil))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

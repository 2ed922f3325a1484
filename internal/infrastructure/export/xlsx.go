// Package export writes participant sheets for organisers.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"carreramedico/internal/domain/entities"
	"carreramedico/internal/ports/output"
)

var _ output.ParticipantExporter = (*XLSX)(nil)

const sheetName = "Participantes"

var header = []any{"Número", "Nombre", "Sexo", "Sector profesional", "Teléfono", "Fecha de registro", "Asistió"}

// XLSX writes an Excel workbook with one row per participant.
type XLSX struct {
	loc *time.Location
}

// NewXLSX formats registration timestamps in loc.
func NewXLSX(loc *time.Location) *XLSX {
	if loc == nil {
		loc = time.UTC
	}
	return &XLSX{loc: loc}
}

func (x *XLSX) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

func (x *XLSX) Extension() string { return "xlsx" }

func (x *XLSX) WriteParticipants(w io.Writer, participants []entities.Participant) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetRowStyle(sheetName, 1, 1, bold); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, p := range participants {
		attended := "No"
		if p.Attended {
			attended = "Sí"
		}
		row := []any{
			p.Number,
			p.Name,
			p.Sex,
			p.Sector,
			p.Phone,
			p.RegisteredAt.In(x.loc).Format("02/01/2006 15:04"),
			attended,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 10); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "B", "D", 32); err != nil {
		return fmt.Errorf("column width: %w", err)
	}
	if err := f.SetColWidth(sheetName, "E", "F", 18); err != nil {
		return fmt.Errorf("column width: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

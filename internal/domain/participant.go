package domain

import (
	"fmt"
	"strconv"
	"strings"

	"carreramedico/internal/domain/entities"
)

// Accepted values for entities.Participant.Sex.
const (
	SexMale   = "Masculino"
	SexFemale = "Femenino"
)

// Lookup kinds accepted by the single-record search.
const (
	LookupNumber = "numero"
	LookupName   = "nombre"
	LookupPhone  = "telefono"
)

// Paging limits for participant listings.
const (
	DefaultPageSize = 100
	MaxPageSize     = 5000
)

// MinPhoneLength is the minimum number of characters of a trimmed phone.
const MinPhoneLength = 10

// Sectors is the closed list of profession sectors offered at registration.
var Sectors = []string{
	"Medicina General",
	"Enfermería",
	"Odontología",
	"Fisioterapia",
	"Psicología",
	"Nutrición",
	"Farmacia",
	"Medicina Especializada",
	"Técnico en Salud",
	"Administración en Salud",
	"Otro sector de salud",
	"Área diferente a la salud",
}

func IsValidSector(s string) bool {
	for _, sector := range Sectors {
		if sector == s {
			return true
		}
	}
	return false
}

func IsValidSex(s string) bool {
	return s == SexMale || s == SexFemale
}

// FormatNumber renders a participant ID as its 4-digit bib number.
func FormatNumber(id uint) string {
	return fmt.Sprintf("%04d", id)
}

// ParseNumber accepts "7", "007", "0007" or the printed form "P0007" and
// returns the participant ID.
func ParseNumber(s string) (uint, error) {
	s = strings.TrimSpace(s)
	if len(s) > 1 && (s[0] == 'P' || s[0] == 'p') {
		s = s[1:]
	}
	if s == "" {
		return 0, ErrInvalidNumber
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil || n == 0 {
		return 0, ErrInvalidNumber
	}
	return uint(n), nil
}

// Matches is the participant search predicate: case-insensitive substring on
// the name, substring on the bib number and on the phone.
func Matches(p *entities.Participant, term string) bool {
	term = strings.TrimSpace(term)
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(p.Name), strings.ToLower(term)) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Number), strings.ToLower(term)) {
		return true
	}
	return strings.Contains(p.Phone, term)
}

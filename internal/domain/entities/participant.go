package entities

import "time"

// Participant represents a registered race entrant.
type Participant struct {
	ID           uint
	Number       string // zero-padded bib number derived from ID
	Name         string
	Sex          string
	Phone        string
	Sector       string
	Attended     bool
	RegisteredAt time.Time
	UpdatedAt    time.Time
}

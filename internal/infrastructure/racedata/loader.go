// Package racedata loads the public race document from TOML.
package racedata

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"carreramedico/internal/domain/entities"
	"carreramedico/internal/ports/output"
)

//go:embed race.toml
var defaultRace []byte

var _ output.RaceSource = (*Source)(nil)

// Source serves a race document parsed once at startup.
type Source struct {
	race entities.Race
}

// Load parses the TOML file at path, or the embedded document when path is empty.
func Load(path string) (*Source, error) {
	data := defaultRace
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read race data: %w", err)
		}
		data = b
	}
	return Parse(data)
}

// Parse decodes a race document.
func Parse(data []byte) (*Source, error) {
	var race entities.Race
	if err := toml.Unmarshal(data, &race); err != nil {
		return nil, fmt.Errorf("parse race data: %w", err)
	}
	if race.Name == "" {
		return nil, fmt.Errorf("parse race data: name is required")
	}
	if race.EventDate.IsZero() {
		return nil, fmt.Errorf("parse race data: event_date is required")
	}
	return &Source{race: race}, nil
}

func (s *Source) Race(context.Context) (*entities.Race, error) {
	r := s.race
	return &r, nil
}

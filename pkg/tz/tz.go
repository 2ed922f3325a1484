package tz

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// MexicoCity is the America/Mexico_City location, the race's local time.
var MexicoCity *time.Location

func init() {
	var err error
	MexicoCity, err = time.LoadLocation("America/Mexico_City")
	if err != nil {
		panic("tz: load America/Mexico_City: " + err.Error())
	}
}

// Load resolves an IANA zone name, defaulting to MexicoCity when name is empty.
func Load(name string) (*time.Location, error) {
	if name == "" {
		return MexicoCity, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("tz: load %q: %w", name, err)
	}
	return loc, nil
}

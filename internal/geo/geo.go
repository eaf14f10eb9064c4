// Package geo defines the geocoding boundary. Geocoded labels are display
// data attached to job locations; they never take part in aggregation.
package geo

import (
	"context"
	"strings"
)

// Place is one geocoding result.
type Place struct {
	Label     string
	Latitude  float64
	Longitude float64
}

// Geocoder resolves free-text queries to places. Implemented by an external
// geocoding service; Static serves fixtures for development and tests.
type Geocoder interface {
	Search(ctx context.Context, query string, limit int) ([]Place, error)
}

// Static is a fixture-backed geocoder.
type Static struct {
	Places []Place
}

func (s *Static) Search(_ context.Context, query string, limit int) ([]Place, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	var out []Place
	for _, p := range s.Places {
		if strings.Contains(strings.ToLower(p.Label), q) {
			out = append(out, p)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

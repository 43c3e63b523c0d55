// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"strings"

	"github.com/wneessen/weathermap/internal/geo"
)

// Place is the result of a forward geocoding lookup. An empty result set is not an error,
// it is reported with Found set to false.
type Place struct {
	Found       bool           `json:"found"`
	CacheHit    bool           `json:"-"`
	Name        string         `json:"name"`
	Country     string         `json:"country"`
	State       string         `json:"state,omitempty"`
	DisplayName string         `json:"display_name,omitempty"`
	Coordinate  geo.Coordinate `json:"coordinate"`
}

// Label returns the "Name, CC" label shown next to a place marker.
func (p Place) Label() string {
	switch {
	case p.Name != "" && p.Country != "":
		return p.Name + ", " + p.Country
	case p.Name != "":
		return p.Name
	default:
		return p.DisplayName
	}
}

// Geocoder resolves a free-text place name into coordinates. Implementations request at most
// one match from their API.
type Geocoder interface {
	Name() string
	Search(ctx context.Context, query string) (Place, error)
}

// Reverser resolves coordinates into the place they lie in.
type Reverser interface {
	Reverse(ctx context.Context, coord geo.Coordinate) (Place, error)
}

// NormalizeQuery trims and lower-cases a query so that equivalent searches share a cache key.
func NormalizeQuery(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

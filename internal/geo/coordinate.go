// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geo

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidCoordinate = errors.New("coordinate out of range")

// Coordinate represents a geographic coordinate.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Parse parses latitude and longitude strings into a valid Coordinate.
func Parse(lat, lon string) (Coordinate, error) {
	var coords Coordinate
	var err error

	coords.Lat, err = strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("failed to parse latitude: %w", err)
	}
	coords.Lon, err = strconv.ParseFloat(strings.TrimSpace(lon), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("failed to parse longitude: %w", err)
	}
	coords = coords.Wrap()
	if !coords.Valid() {
		return Coordinate{}, fmt.Errorf("%w: %s", ErrInvalidCoordinate, coords)
	}

	return coords, nil
}

// Valid checks if the coordinate is valid according to the EPSG logic
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Wrap brings a longitude from a map panned across the antimeridian back into [-180, 180].
// Latitudes are left alone.
func (c Coordinate) Wrap() Coordinate {
	if c.Lon >= -180 && c.Lon <= 180 {
		return c
	}
	lon := math.Mod(c.Lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	c.Lon = lon - 180
	return c
}

// QueryValues returns latitude and longitude formatted the way the weather APIs expect them.
func (c Coordinate) QueryValues() (string, string) {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64), strconv.FormatFloat(c.Lon, 'f', 6, 64)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lon)
}

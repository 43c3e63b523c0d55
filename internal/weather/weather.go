// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"time"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/vartype"
)

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	Current(ctx context.Context, coord geo.Coordinate) (*Conditions, error)
	Forecast(ctx context.Context, coord geo.Coordinate) ([]Sample, error)
}

// Conditions are the current weather conditions at a coordinate. Values a provider cannot
// deliver stay unset. IconKey is the English text the icon is chosen by, an empty IconKey
// means Description.
type Conditions struct {
	Time        time.Time      `json:"time"`
	Coordinate  geo.Coordinate `json:"coordinate"`
	PlaceName   string         `json:"place_name"`
	Country     string         `json:"country"`
	Description string         `json:"description"`
	IconKey     string         `json:"icon_key,omitempty"`
	Temperature float64        `json:"temperature"`

	Humidity  vartype.VarFloat64 `json:"humidity"`
	WindSpeed vartype.VarFloat64 `json:"wind_speed"`
	Pressure  vartype.VarFloat64 `json:"pressure"`

	Sunrise time.Time `json:"sunrise"`
	Sunset  time.Time `json:"sunset"`
	Units   Units     `json:"units"`
}

// Sample is a single point of a forecast series.
type Sample struct {
	Time        time.Time `json:"time"`
	Temperature float64   `json:"temperature"`
	Description string    `json:"description"`
	IconKey     string    `json:"icon_key,omitempty"`
}

// Daily is the representative forecast sample for one local calendar date.
type Daily struct {
	Date   time.Time `json:"date"`
	Sample Sample    `json:"sample"`
}

type Units struct {
	Temperature string `json:"temperature"`
	WindSpeed   string `json:"wind_speed"`
	Humidity    string `json:"humidity"`
	Pressure    string `json:"pressure"`
}

// MetricUnits are the units of the metric measurement system.
var MetricUnits = Units{
	Temperature: "°C",
	WindSpeed:   "m/s",
	Humidity:    "%",
	Pressure:    "hPa",
}

// ImperialUnits are the units of the imperial measurement system.
var ImperialUnits = Units{
	Temperature: "°F",
	WindSpeed:   "mph",
	Humidity:    "%",
	Pressure:    "hPa",
}

// UnitsFor returns the units for the given measurement system, defaulting to metric.
func UnitsFor(system string) Units {
	if system == "imperial" {
		return ImperialUnits
	}
	return MetricUnits
}

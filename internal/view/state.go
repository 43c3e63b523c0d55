// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package view

import (
	"github.com/wneessen/weathermap/internal/geo"
)

// Marker is the single location marker on the map.
type Marker struct {
	Coordinate geo.Coordinate `json:"coordinate"`
	Label      string         `json:"label"`
	Icon       string         `json:"icon"`
	Popup      string         `json:"popup"`
}

// State is the complete view state of one browser session. It is passed to and returned
// from the controller, never mutated in place.
type State struct {
	Center     geo.Coordinate      `json:"center"`
	Zoom       int                 `json:"zoom"`
	Marker     *Marker             `json:"marker"`
	Panel      string              `json:"panel"`
	Theme      Theme               `json:"theme"`
	ThemeLabel string              `json:"theme_label"`
	Classes    map[Region][]string `json:"classes"`
	TileLayers []TileLayer         `json:"tile_layers"`
	Version    uint64              `json:"version"`
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	clone := s
	if s.Marker != nil {
		marker := *s.Marker
		clone.Marker = &marker
	}
	if s.Classes != nil {
		clone.Classes = make(map[Region][]string, len(s.Classes))
		for region, classes := range s.Classes {
			clone.Classes[region] = append([]string{}, classes...)
		}
	}
	if s.TileLayers != nil {
		clone.TileLayers = append([]TileLayer{}, s.TileLayers...)
	}
	return clone
}

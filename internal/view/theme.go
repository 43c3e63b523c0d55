// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package view

import (
	"fmt"

	"github.com/vorlif/spreak/localize"
)

type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

const (
	classLight = "light-mode"
	classDark  = "dark-mode"
)

// Region is a CSS selector of a fixed UI region that carries theme classes.
type Region string

const (
	RegionBody         Region = "body"
	RegionNav          Region = "nav"
	RegionThemeToggle  Region = ".theme-toggle"
	RegionSearch       Region = "#search"
	RegionSearchInput  Region = "#search input"
	RegionSearchButton Region = "#search button"
	RegionInfo         Region = "#info"
)

// swappedRegions carry either the light or the dark class.
var swappedRegions = []Region{RegionBody, RegionNav, RegionThemeToggle}

// darkOnlyRegions only carry the dark class in dark mode.
var darkOnlyRegions = []Region{RegionSearch, RegionSearchInput, RegionSearchButton, RegionInfo}

var themeLabels = map[Theme]localize.MsgID{
	ThemeLight: "Light Mode",
	ThemeDark:  "Dark Mode",
}

// TileLayer is a map tile source.
type TileLayer struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

// TileLayers holds the tile source of each theme.
type TileLayers struct {
	Light TileLayer `json:"light"`
	Dark  TileLayer `json:"dark"`
}

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Theme) UnmarshalText(text []byte) error {
	switch string(text) {
	case "light":
		*t = ThemeLight
	case "dark":
		*t = ThemeDark
	default:
		return fmt.Errorf("unknown theme: %q", string(text))
	}
	return nil
}

// Classes returns the style classes of every themed region.
func (t Theme) Classes() map[Region][]string {
	classes := make(map[Region][]string, len(swappedRegions)+len(darkOnlyRegions))
	for _, region := range swappedRegions {
		if t == ThemeDark {
			classes[region] = []string{classDark}
			continue
		}
		classes[region] = []string{classLight}
	}
	for _, region := range darkOnlyRegions {
		if t == ThemeDark {
			classes[region] = []string{classDark}
			continue
		}
		classes[region] = []string{}
	}
	return classes
}

// Layer returns the tile layer attached in theme t.
func (l TileLayers) Layer(t Theme) TileLayer {
	if t == ThemeDark {
		return l.Dark
	}
	return l.Light
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package view

import (
	"encoding/json"
	"testing"
)

func TestTheme(t *testing.T) {
	t.Run("toggle flips the theme", func(t *testing.T) {
		if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
			t.Error("expected toggle to flip the theme")
		}
	})
	t.Run("themes are marshalled as text", func(t *testing.T) {
		data, err := json.Marshal(struct {
			Theme Theme `json:"theme"`
		}{ThemeDark})
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `{"theme":"dark"}` {
			t.Errorf("unexpected JSON: %s", data)
		}
	})
	t.Run("unmarshal known and unknown themes", func(t *testing.T) {
		var theme Theme
		if err := theme.UnmarshalText([]byte("dark")); err != nil || theme != ThemeDark {
			t.Errorf("expected dark theme, got %s (%v)", theme, err)
		}
		if err := theme.UnmarshalText([]byte("sepia")); err == nil {
			t.Error("expected unknown theme to fail")
		}
	})
	t.Run("every region carries classes", func(t *testing.T) {
		for _, theme := range []Theme{ThemeLight, ThemeDark} {
			classes := theme.Classes()
			if len(classes) != len(swappedRegions)+len(darkOnlyRegions) {
				t.Errorf("expected all regions for %s, got %d", theme, len(classes))
			}
		}
	})
}

func TestState_Clone(t *testing.T) {
	state := State{
		Marker:     &Marker{Label: "a"},
		Classes:    ThemeLight.Classes(),
		TileLayers: []TileLayer{{Name: "light"}},
	}
	clone := state.Clone()
	clone.Marker.Label = "b"
	clone.Classes[RegionBody][0] = "changed"
	clone.TileLayers[0].Name = "dark"
	if state.Marker.Label != "a" || state.Classes[RegionBody][0] != classLight || state.TileLayers[0].Name != "light" {
		t.Error("expected clone to be independent of the original")
	}
}

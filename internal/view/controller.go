// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package view

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/vorlif/spreak"
	"github.com/vorlif/spreak/localize"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/geocode"
	"github.com/wneessen/weathermap/internal/logger"
	"github.com/wneessen/weathermap/internal/presenter"
	"github.com/wneessen/weathermap/internal/weather"
)

// Outcome describes what a trigger did to the view state.
type Outcome string

const (
	OutcomeUpdated      Outcome = "updated"
	OutcomeUnchanged    Outcome = "unchanged"
	OutcomeMissingInput Outcome = "missing_input"
	OutcomeNotFound     Outcome = "not_found"
	OutcomeSearchFailed Outcome = "search_failed"
	OutcomeInvalidInput Outcome = "invalid_input"
)

var alerts = map[Outcome]localize.MsgID{
	OutcomeMissingInput: "Please enter a place name to search.",
	OutcomeNotFound:     "Location not found. Please try again.",
	OutcomeSearchFailed: "An error occurred while searching for the location. Please try again.",
	OutcomeInvalidInput: "Invalid coordinates.",
}

const unknownPlace localize.MsgID = "Unknown"

// Options configure the initial view and the tile sources.
type Options struct {
	Center     geo.Coordinate
	Zoom       int
	SearchZoom int
	Tiles      TileLayers
}

type Controller struct {
	geocoder  geocode.Geocoder
	provider  weather.Provider
	presenter *presenter.Presenter
	localizer *spreak.Localizer
	log       *logger.Logger
	opts      Options
}

func NewController(geocoder geocode.Geocoder, provider weather.Provider, pres *presenter.Presenter,
	localizer *spreak.Localizer, log *logger.Logger, opts Options,
) *Controller {
	return &Controller{
		geocoder:  geocoder,
		provider:  provider,
		presenter: pres,
		localizer: localizer,
		log:       log,
		opts:      opts,
	}
}

// Initial returns the state of a fresh session: default center, light theme, no marker.
func (c *Controller) Initial() State {
	return c.applyTheme(State{
		Center: c.opts.Center,
		Zoom:   c.opts.Zoom,
		Theme:  ThemeLight,
	})
}

// Alert returns the localized user-facing message of an outcome, or an empty string if the
// outcome needs none.
func (c *Controller) Alert(outcome Outcome) string {
	if msg, ok := alerts[outcome]; ok {
		return c.localizer.Get(msg)
	}
	return ""
}

// Search resolves query and shows the weather of the first match.
func (c *Controller) Search(ctx context.Context, state State, query string, loc *time.Location) (State, Outcome) {
	query = strings.TrimSpace(query)
	if query == "" {
		return state, OutcomeMissingInput
	}

	place, err := c.geocoder.Search(ctx, query)
	if err != nil {
		c.log.Error("failed to geocode search query", logger.Err(err), slog.String("query", query),
			slog.String("geocoder", c.geocoder.Name()))
		return state, OutcomeSearchFailed
	}
	if !place.Found {
		c.log.Debug("no place found for search query", slog.String("query", query))
		return state, OutcomeNotFound
	}
	c.log.Debug("place resolved", slog.String("query", query), slog.String("place", place.Label()),
		slog.String("coordinate", place.Coordinate.String()), slog.Bool("cache_hit", place.CacheHit))

	next := state.Clone()
	next.Center = place.Coordinate
	next.Zoom = c.opts.SearchZoom
	next.Version++

	current, forecast := weather.FetchBoth(ctx, c.provider, place.Coordinate, c.log)
	if current == nil || forecast == nil {
		return next, OutcomeUnchanged
	}

	return c.update(next, place.Coordinate, place.Label(), current, forecast, loc)
}

// Click shows the weather of a map point. The view is not moved, the point becomes the
// session's center so a reload shows the marker.
func (c *Controller) Click(ctx context.Context, state State, coord geo.Coordinate, loc *time.Location) (State, Outcome) {
	coord = coord.Wrap()
	if !coord.Valid() {
		return state, OutcomeInvalidInput
	}

	current, forecast := weather.FetchBoth(ctx, c.provider, coord, c.log)
	if current == nil || forecast == nil {
		return state, OutcomeUnchanged
	}

	label := current.PlaceName
	if label == "" {
		label = c.localizer.Get(unknownPlace)
	}
	next := state.Clone()
	next.Center = coord
	next.Version++
	return c.update(next, coord, label, current, forecast, loc)
}

// ToggleTheme switches between light and dark mode.
func (c *Controller) ToggleTheme(state State) State {
	next := state.Clone()
	next.Theme = state.Theme.Toggle()
	next.Version++
	return c.applyTheme(next)
}

func (c *Controller) applyTheme(state State) State {
	state.Classes = state.Theme.Classes()
	state.TileLayers = []TileLayer{c.opts.Tiles.Layer(state.Theme)}
	state.ThemeLabel = c.localizer.Get(themeLabels[state.Theme])
	return state
}

func (c *Controller) update(state State, coord geo.Coordinate, label string, current *weather.Conditions,
	forecast []weather.Sample, loc *time.Location,
) (State, Outcome) {
	payload, err := c.presenter.Render(presenter.Input{
		Label:      label,
		Conditions: current,
		Forecast:   weather.DailyMidday(forecast, loc),
		Location:   loc,
	})
	if err != nil {
		c.log.Error("failed to render weather panel", logger.Err(err))
		return state, OutcomeUnchanged
	}

	state.Marker = &Marker{
		Coordinate: coord,
		Label:      label + " " + payload.Icon,
		Icon:       payload.Icon,
		Popup:      payload.Popup,
	}
	state.Panel = payload.Panel
	return state, OutcomeUpdated
}

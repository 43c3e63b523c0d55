// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/view"
)

// Response is returned by every API endpoint. Recenter tells the page to move the map to
// the state's center and zoom; otherwise the user's pan and zoom are kept.
type Response struct {
	Outcome  view.Outcome `json:"outcome,omitempty"`
	Alert    string       `json:"alert,omitempty"`
	Recenter bool         `json:"recenter"`
	State    view.State   `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleIndex(c echo.Context) error {
	page, err := webFS.ReadFile("web/index.html")
	if err != nil {
		return fmt.Errorf("failed to read index page: %w", err)
	}
	return c.HTMLBlob(http.StatusOK, page)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleState(c echo.Context) error {
	id, state := s.session(c)
	s.sessions.Store(id, state)
	return c.JSON(http.StatusOK, Response{Recenter: true, State: state})
}

func (s *Server) handleSearch(c echo.Context) error {
	loc, err := viewerLocation(c.QueryParam("tz"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	id, state := s.session(c)
	next, outcome := s.controller.Search(c.Request().Context(), state, c.QueryParam("q"), loc)
	moved := outcome == view.OutcomeUpdated || outcome == view.OutcomeUnchanged
	return s.respond(c, id, next, outcome, moved)
}

func (s *Server) handlePoint(c echo.Context) error {
	loc, err := viewerLocation(c.QueryParam("tz"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	id, state := s.session(c)
	coord, err := geo.Parse(c.QueryParam("lat"), c.QueryParam("lon"))
	switch {
	case errors.Is(err, geo.ErrInvalidCoordinate):
		return s.respond(c, id, state, view.OutcomeInvalidInput, false)
	case err != nil:
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	next, outcome := s.controller.Click(c.Request().Context(), state, coord, loc)
	return s.respond(c, id, next, outcome, false)
}

func (s *Server) handleTheme(c echo.Context) error {
	id, state := s.session(c)
	next := s.controller.ToggleTheme(state)
	return s.respond(c, id, next, view.OutcomeUpdated, false)
}

func (s *Server) respond(c echo.Context, id string, state view.State, outcome view.Outcome, recenter bool) error {
	s.sessions.Store(id, state)
	return c.JSON(http.StatusOK, Response{
		Outcome:  outcome,
		Alert:    s.controller.Alert(outcome),
		Recenter: recenter,
		State:    state,
	})
}

// session returns the id and state of the requesting browser session. Unknown or expired
// sessions start over with the initial state.
func (s *Server) session(c echo.Context) (string, view.State) {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if state, ok := s.sessions.Load(cookie.Value); ok {
			return cookie.Value, state
		}
	}

	id := s.sessions.NewID()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int(s.sessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, s.controller.Initial()
}

// viewerLocation resolves the IANA zone name sent by the browser. The server's zone is used
// if none is given.
func viewerLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid time zone %q: %w", name, err)
	}
	return loc, nil
}

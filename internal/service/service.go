// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/vorlif/spreak"

	"github.com/wneessen/weathermap/internal/cache"
	"github.com/wneessen/weathermap/internal/config"
	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/geocode"
	"github.com/wneessen/weathermap/internal/http"
	"github.com/wneessen/weathermap/internal/i18n"
	"github.com/wneessen/weathermap/internal/logger"
	"github.com/wneessen/weathermap/internal/presenter"
	"github.com/wneessen/weathermap/internal/server"
	"github.com/wneessen/weathermap/internal/view"
	"github.com/wneessen/weathermap/internal/weather"
)

const cleanupJobName = "session_cleanup_job"

// ErrPlaceNotFound is returned by Lookup if the geocoder has no match for the query.
var ErrPlaceNotFound = errors.New("place not found")

type Service struct {
	config    *config.Config
	logger    *logger.Logger
	scheduler gocron.Scheduler
	store     cache.Store
	sessions  *server.SessionStore
	server    *server.Server
	geocoder  geocode.Geocoder
	provider  weather.Provider
	presenter *presenter.Presenter
}

// New wires the geocoder, the weather provider, the presenter and the HTTP server from conf.
func New(ctx context.Context, conf *config.Config, log *logger.Logger, localizer *spreak.Localizer) (*Service, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	lang := i18n.Tag(conf.Locale)
	client := http.New(log)

	store, err := selectCacheStore(ctx, conf)
	if err != nil {
		return nil, err
	}
	geocoder, err := selectGeocodeProvider(conf, client, store, log, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create geocoder: %w", err)
	}
	provider, err := selectWeatherProvider(conf, client, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	pres, err := presenter.New(localizer, lang)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	controller := view.NewController(geocoder, provider, pres, localizer, log.Named("view"), viewOptions(conf))
	sessions := server.NewSessionStore()

	service := &Service{
		config:    conf,
		logger:    log,
		scheduler: scheduler,
		store:     store,
		sessions:  sessions,
		server:    server.New(controller, sessions, log.Named("http"), conf.Session.TTL),
		geocoder:  geocoder,
		provider:  provider,
		presenter: pres,
	}
	log.Debug("service initialized", slog.String("geocoder", geocoder.Name()),
		slog.String("weather_provider", provider.Name()), slog.String("cache", store.Name()))
	return service, nil
}

// Run starts the cleanup job and serves HTTP until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	defer s.close()

	if err := s.createScheduledJob(ctx, s.config.Session.CleanupInterval, s.cleanup, cleanupJobName); err != nil {
		return err
	}
	s.scheduler.Start()

	serveErr := s.server.Start(ctx, s.config.Listen)
	if err := s.scheduler.Shutdown(); err != nil {
		s.logger.Error("failed to shut down scheduler", logger.Err(err))
	}
	return serveErr
}

// Lookup resolves query and writes the weather report for the place as plain text to w.
func (s *Service) Lookup(ctx context.Context, query string, w io.Writer) error {
	defer s.close()

	place, err := s.geocoder.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to look up %q: %w", query, err)
	}
	if !place.Found {
		return fmt.Errorf("%w: %s", ErrPlaceNotFound, query)
	}

	current, samples := weather.FetchBoth(ctx, s.provider, place.Coordinate, s.logger)
	if current == nil || samples == nil {
		return fmt.Errorf("failed to retrieve weather data for %s", place.Label())
	}

	text, err := s.presenter.RenderText(presenter.Input{
		Label:      place.Label(),
		Conditions: current,
		Forecast:   weather.DailyMidday(samples, time.Local),
		Location:   time.Local,
	})
	if err != nil {
		return fmt.Errorf("failed to render weather report: %w", err)
	}
	if _, err = io.WriteString(w, text); err != nil {
		return fmt.Errorf("failed to write weather report: %w", err)
	}
	return nil
}

func (s *Service) createScheduledJob(ctx context.Context, interval time.Duration, task func(context.Context),
	jobName string,
) error {
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(task),
		gocron.WithContext(ctx),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName(jobName),
	)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", jobName, err)
	}
	return nil
}

// cleanup drops idle sessions and expired cache entries.
func (s *Service) cleanup(ctx context.Context) {
	sessions := s.sessions.Purge(s.config.Session.TTL)
	entries, err := s.store.Purge(ctx)
	if err != nil {
		s.logger.Error("failed to purge cache", logger.Err(err), slog.String("cache", s.store.Name()))
	}
	s.logger.Debug("cleanup finished", slog.Int("sessions_removed", sessions),
		slog.Int("sessions_active", s.sessions.Len()), slog.Int("cache_entries_removed", entries))
}

func (s *Service) close() {
	closer, ok := s.store.(io.Closer)
	if !ok {
		return
	}
	if err := closer.Close(); err != nil {
		s.logger.Error("failed to close cache", logger.Err(err), slog.String("cache", s.store.Name()))
	}
}

func viewOptions(conf *config.Config) view.Options {
	return view.Options{
		Center:     geo.Coordinate{Lat: conf.Map.CenterLat, Lon: conf.Map.CenterLon},
		Zoom:       conf.Map.Zoom,
		SearchZoom: conf.Map.SearchZoom,
		Tiles: view.TileLayers{
			Light: view.TileLayer{Name: "light", URL: conf.Tiles.LightURL, Attribution: conf.Tiles.Attribution},
			Dark:  view.TileLayer{Name: "dark", URL: conf.Tiles.DarkURL, Attribution: conf.Tiles.Attribution},
		},
	}
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/kkyr/fig"

	"github.com/wneessen/weathermap/internal/geo"
)

const (
	configEnv = "WEATHERMAP"

	DefaultLightTiles  = "https://{s}.basemaps.cartocdn.com/rastertiles/voyager_labels_under/{z}/{x}/{y}{r}.png"
	DefaultDarkTiles   = "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png"
	DefaultAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> ` +
		`contributors &copy; <a href="https://carto.com/">CARTO</a>`

	maxZoom = 19
)

var (
	weatherProviders  = []string{"openweathermap", "open-meteo"}
	geocoderProviders = []string{"openweathermap", "nominatim", "opencage", "geocode-earth"}
	cacheBackends     = []string{"memory", "redis"}

	ErrMissingAPIKey = errors.New("missing API key")
)

// Config represents the application's configuration structure.
type Config struct {
	Listen string `fig:"listen" default:"127.0.0.1:8080"`
	// Allowed values: metric, imperial
	Units    string     `fig:"units" default:"metric"`
	Locale   string     `fig:"locale"`
	LogLevel slog.Level `fig:"loglevel" default:"0"`

	OpenWeatherMap struct {
		APIKey string `fig:"apikey"`
	} `fig:"openweathermap"`

	Weather struct {
		// Allowed values: openweathermap, open-meteo
		Provider  string  `fig:"provider" default:"openweathermap"`
		RateLimit float64 `fig:"rate_limit" default:"10"`
		RateBurst int     `fig:"rate_burst" default:"4"`
	} `fig:"weather"`

	Geocoder struct {
		// Allowed values: openweathermap, nominatim, opencage, geocode-earth
		Provider     string        `fig:"provider" default:"openweathermap"`
		APIKey       string        `fig:"apikey"`
		CacheHitTTL  time.Duration `fig:"cache_hit_ttl" default:"24h"`
		CacheMissTTL time.Duration `fig:"cache_miss_ttl" default:"1h"`
	} `fig:"geocoder"`

	Cache struct {
		// Allowed values: memory, redis
		Backend       string `fig:"backend" default:"memory"`
		RedisAddr     string `fig:"redis_addr"`
		RedisPassword string `fig:"redis_password"`
		RedisDB       int    `fig:"redis_db" default:"0"`
	} `fig:"cache"`

	Session struct {
		TTL             time.Duration `fig:"ttl" default:"24h"`
		CleanupInterval time.Duration `fig:"cleanup_interval" default:"10m"`
	} `fig:"session"`

	Map struct {
		CenterLat  float64 `fig:"center_lat" default:"20"`
		CenterLon  float64 `fig:"center_lon" default:"77"`
		Zoom       int     `fig:"zoom" default:"5"`
		SearchZoom int     `fig:"search_zoom" default:"10"`
	} `fig:"map"`

	Tiles struct {
		LightURL    string `fig:"light_url"`
		DarkURL     string `fig:"dark_url"`
		Attribution string `fig:"attribution"`
	} `fig:"tiles"`
}

func NewFromFile(path, file string) (*Config, error) {
	conf := new(Config)
	_, err := os.Stat(filepath.Join(path, file))
	if err != nil {
		return conf, fmt.Errorf("failed to read Config: %w", err)
	}
	if err = fig.Load(conf, fig.Dirs(path), fig.File(file), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func New() (*Config, error) {
	conf := new(Config)
	if err := fig.Load(conf, fig.AllowNoFile(), fig.UseEnv(configEnv)); err != nil {
		return conf, fmt.Errorf("failed to load Config: %w", err)
	}

	return conf, conf.Validate()
}

func (c *Config) Validate() error {
	if c.Units != "metric" && c.Units != "imperial" {
		return fmt.Errorf("invalid units: %s", c.Units)
	}
	if c.Locale == "" {
		c.Locale = getLocale()
	}

	if !slices.Contains(weatherProviders, c.Weather.Provider) {
		return fmt.Errorf("invalid weather provider: %s", c.Weather.Provider)
	}
	if c.Weather.RateLimit <= 0 {
		return fmt.Errorf("invalid weather rate limit: %f", c.Weather.RateLimit)
	}
	if c.Weather.RateBurst < 1 {
		return fmt.Errorf("invalid weather rate burst: %d", c.Weather.RateBurst)
	}
	if c.Weather.Provider == "openweathermap" && c.OpenWeatherMap.APIKey == "" {
		return fmt.Errorf("weather provider openweathermap: %w", ErrMissingAPIKey)
	}

	if !slices.Contains(geocoderProviders, c.Geocoder.Provider) {
		return fmt.Errorf("invalid geocoder provider: %s", c.Geocoder.Provider)
	}
	switch c.Geocoder.Provider {
	case "openweathermap":
		if c.OpenWeatherMap.APIKey == "" {
			return fmt.Errorf("geocoder provider openweathermap: %w", ErrMissingAPIKey)
		}
	case "opencage", "geocode-earth":
		if c.Geocoder.APIKey == "" {
			return fmt.Errorf("geocoder provider %s: %w", c.Geocoder.Provider, ErrMissingAPIKey)
		}
	}
	if c.Geocoder.CacheHitTTL < 0 || c.Geocoder.CacheMissTTL < 0 {
		return fmt.Errorf("invalid geocoder cache TTLs: %s/%s", c.Geocoder.CacheHitTTL, c.Geocoder.CacheMissTTL)
	}

	if !slices.Contains(cacheBackends, c.Cache.Backend) {
		return fmt.Errorf("invalid cache backend: %s", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisAddr == "" {
		return errors.New("cache backend redis requires a redis address")
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("invalid session TTL: %s", c.Session.TTL)
	}
	if c.Session.CleanupInterval <= 0 {
		return fmt.Errorf("invalid session cleanup interval: %s", c.Session.CleanupInterval)
	}

	center := geo.Coordinate{Lat: c.Map.CenterLat, Lon: c.Map.CenterLon}
	if !center.Valid() {
		return fmt.Errorf("invalid map center: %s", center)
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > maxZoom {
		return fmt.Errorf("invalid map zoom: %d", c.Map.Zoom)
	}
	if c.Map.SearchZoom < 0 || c.Map.SearchZoom > maxZoom {
		return fmt.Errorf("invalid map search zoom: %d", c.Map.SearchZoom)
	}

	if c.Tiles.LightURL == "" {
		c.Tiles.LightURL = DefaultLightTiles
	}
	if c.Tiles.DarkURL == "" {
		c.Tiles.DarkURL = DefaultDarkTiles
	}
	if c.Tiles.Attribution == "" {
		c.Tiles.Attribution = DefaultAttribution
	}

	return nil
}

func getLocale() string {
	locale := os.Getenv("LC_MESSAGES")
	if idx := strings.Index(locale, "."); idx != -1 {
		lang := locale[:idx]
		return strings.ReplaceAll(lang, "_", "-")
	}
	return locale
}

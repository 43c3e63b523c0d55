// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/wneessen/weathermap/internal/cache"
	"github.com/wneessen/weathermap/internal/config"
	"github.com/wneessen/weathermap/internal/geocode"
	geocodeearth "github.com/wneessen/weathermap/internal/geocode/provider/geocode-earth"
	"github.com/wneessen/weathermap/internal/geocode/provider/opencage"
	"github.com/wneessen/weathermap/internal/geocode/provider/openweathermap"
	nominatim "github.com/wneessen/weathermap/internal/geocode/provider/osm-nominatim"
	"github.com/wneessen/weathermap/internal/http"
	"github.com/wneessen/weathermap/internal/logger"
	"github.com/wneessen/weathermap/internal/weather"
	openmeteo "github.com/wneessen/weathermap/internal/weather/provider/open-meteo"
	owmweather "github.com/wneessen/weathermap/internal/weather/provider/openweathermap"
)

func selectCacheStore(ctx context.Context, conf *config.Config) (cache.Store, error) {
	switch strings.ToLower(conf.Cache.Backend) {
	case "memory":
		return cache.NewMemory(), nil
	case "redis":
		store, err := cache.NewRedis(ctx, cache.RedisOptions{
			Addr:     conf.Cache.RedisAddr,
			Password: conf.Cache.RedisPassword,
			DB:       conf.Cache.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create redis cache: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", conf.Cache.Backend)
	}
}

func selectGeocodeProvider(conf *config.Config, client *http.Client, store cache.Store, log *logger.Logger,
	lang language.Tag,
) (geocode.Geocoder, error) {
	var geocoder geocode.Geocoder

	switch strings.ToLower(conf.Geocoder.Provider) {
	case "openweathermap":
		geocoder = openweathermap.New(client, lang, conf.OpenWeatherMap.APIKey)
	case "nominatim":
		geocoder = nominatim.New(client, lang)
	case "opencage":
		if conf.Geocoder.APIKey == "" {
			return nil, fmt.Errorf("opencage geocoder requires an API key")
		}
		geocoder = opencage.New(client, lang, conf.Geocoder.APIKey)
	case "geocode-earth":
		if conf.Geocoder.APIKey == "" {
			return nil, fmt.Errorf("geocode-earth geocoder requires an API key")
		}
		geocoder = geocodeearth.New(client, lang, conf.Geocoder.APIKey)
	default:
		return nil, fmt.Errorf("unsupported geocoder type: %s", conf.Geocoder.Provider)
	}

	return geocode.NewCachedGeocoder(geocoder, store, log.Named("geocode"), conf.Geocoder.CacheHitTTL,
		conf.Geocoder.CacheMissTTL), nil
}

func selectWeatherProvider(conf *config.Config, client *http.Client, lang language.Tag) (weather.Provider, error) {
	var provider weather.Provider
	var err error

	switch strings.ToLower(conf.Weather.Provider) {
	case "openweathermap":
		provider = owmweather.New(client, lang, conf.OpenWeatherMap.APIKey, conf.Units)
	case "open-meteo":
		provider, err = openmeteo.New(conf.Units, nominatim.New(client, lang))
		if err != nil {
			return nil, fmt.Errorf("failed to create Open-Meteo weather provider: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported weather provider: %s", conf.Weather.Provider)
	}

	return weather.NewRateLimitedProvider(provider, conf.Weather.RateLimit, conf.Weather.RateBurst), nil
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/http"
	"github.com/wneessen/weathermap/internal/logger"
	"github.com/wneessen/weathermap/internal/testhelper"
	"github.com/wneessen/weathermap/internal/weather"
)

const (
	currentFile  = "../../../../testdata/owm_current_munich.json"
	forecastFile = "../../../../testdata/owm_forecast_munich.json"
	errorFile    = "../../../../testdata/owm_error.json"

	currentGermanFile  = "../../../../testdata/owm_current_munich_de.json"
	forecastGermanFile = "../../../../testdata/owm_forecast_munich_de.json"
)

var munich = geo.Coordinate{Lat: 48.1372, Lon: 11.5755}

func TestNew(t *testing.T) {
	t.Run("provider name is correct", func(t *testing.T) {
		provider := testProviderWithRoundtripFunc(t, nil, "metric")
		if provider.Name() != name {
			t.Errorf("expected provider name to be %q, got %q", name, provider.Name())
		}
	})
	t.Run("unknown unit systems fall back to metric", func(t *testing.T) {
		provider := testProviderWithRoundtripFunc(t, nil, "kelvin")
		if provider.units != "metric" {
			t.Errorf("expected metric units, got %q", provider.units)
		}
	})
}

func TestOpenWeatherMap_Current(t *testing.T) {
	t.Run("current weather is decoded", func(t *testing.T) {
		var gotQuery string
		fileFn := testhelper.FileResponder(t, currentFile, 200)
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotQuery = req.URL.RawQuery
			return fileFn(req)
		}
		provider := testProviderWithRoundtripFunc(t, rtFn, "metric")
		conditions, err := provider.Current(t.Context(), munich)
		if err != nil {
			t.Fatal(err)
		}
		for _, want := range []string{"lat=48.137200", "lon=11.575500", "appid=test-key", "units=metric", "lang=en"} {
			if !strings.Contains(gotQuery, want) {
				t.Errorf("expected query to contain %q, got %q", want, gotQuery)
			}
		}
		if conditions.PlaceName != "Munich" || conditions.Country != "DE" {
			t.Errorf("unexpected place: %s, %s", conditions.PlaceName, conditions.Country)
		}
		if conditions.Description != "broken clouds" {
			t.Errorf("unexpected description: %s", conditions.Description)
		}
		if conditions.Temperature != 17.42 {
			t.Errorf("expected temperature 17.42, got %f", conditions.Temperature)
		}
		if !conditions.Humidity.IsSet() || conditions.Humidity.Value() != 68 {
			t.Errorf("unexpected humidity: %s", conditions.Humidity)
		}
		if conditions.WindSpeed.Value() != 3.6 {
			t.Errorf("unexpected wind speed: %s", conditions.WindSpeed)
		}
		if conditions.Pressure.Value() != 1018 {
			t.Errorf("unexpected pressure: %s", conditions.Pressure)
		}
		if !conditions.Sunrise.Equal(time.Unix(1750043400, 0)) {
			t.Errorf("unexpected sunrise: %s", conditions.Sunrise)
		}
		if !conditions.Sunset.Equal(time.Unix(1750101600, 0)) {
			t.Errorf("unexpected sunset: %s", conditions.Sunset)
		}
		if conditions.Units != weather.MetricUnits {
			t.Errorf("unexpected units: %+v", conditions.Units)
		}
	})
	t.Run("non-200 response fails", func(t *testing.T) {
		provider := testProviderWithRoundtripFunc(t, testhelper.FileResponder(t, errorFile, 401), "metric")
		_, err := provider.Current(t.Context(), munich)
		if err == nil {
			t.Fatal("expected request to fail")
		}
		if !strings.Contains(err.Error(), "401") {
			t.Errorf("expected status code in error, got %q", err)
		}
	})
	t.Run("transport failure fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}
		provider := testProviderWithRoundtripFunc(t, rtFn, "metric")
		if _, err := provider.Current(t.Context(), munich); err == nil {
			t.Fatal("expected request to fail")
		}
	})
}

func TestOpenWeatherMap_Forecast(t *testing.T) {
	t.Run("forecast samples keep the API order", func(t *testing.T) {
		provider := testProviderWithRoundtripFunc(t, testhelper.FileResponder(t, forecastFile, 200), "imperial")
		samples, err := provider.Forecast(t.Context(), munich)
		if err != nil {
			t.Fatal(err)
		}
		if len(samples) != 40 {
			t.Fatalf("expected 40 samples, got %d", len(samples))
		}
		for i := 1; i < len(samples); i++ {
			if samples[i].Time.Sub(samples[i-1].Time) != 3*time.Hour {
				t.Fatalf("expected 3 hour steps, got %s at %d", samples[i].Time.Sub(samples[i-1].Time), i)
			}
		}
		if samples[0].Description != "light rain" {
			t.Errorf("unexpected description: %s", samples[0].Description)
		}
		days := weather.DailyMidday(samples, time.UTC)
		if len(days) != weather.ForecastDays {
			t.Errorf("expected %d aggregated days, got %d", weather.ForecastDays, len(days))
		}
	})
	t.Run("non-200 response fails", func(t *testing.T) {
		provider := testProviderWithRoundtripFunc(t, testhelper.FileResponder(t, errorFile, 401), "metric")
		if _, err := provider.Forecast(t.Context(), munich); err == nil {
			t.Fatal("expected request to fail")
		}
	})
	t.Run("broken JSON fails", func(t *testing.T) {
		provider := testProviderWithRoundtripFunc(t, testhelper.StringResponder(`{"list":`, 200), "metric")
		if _, err := provider.Forecast(t.Context(), munich); err == nil {
			t.Fatal("expected request to fail")
		}
	})
}

func TestOpenWeatherMap_iconKey(t *testing.T) {
	t.Run("English descriptions are used as icon key", func(t *testing.T) {
		provider := testProviderWithRoundtripFunc(t, testhelper.FileResponder(t, currentFile, 200), "metric")
		conditions, err := provider.Current(t.Context(), munich)
		if err != nil {
			t.Fatal(err)
		}
		if conditions.IconKey != "broken clouds" {
			t.Errorf("expected icon key %q, got %q", "broken clouds", conditions.IconKey)
		}
	})
	t.Run("localized current weather keeps the condition group as icon key", func(t *testing.T) {
		var gotQuery string
		fileFn := testhelper.FileResponder(t, currentGermanFile, 200)
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotQuery = req.URL.RawQuery
			return fileFn(req)
		}
		provider := testProviderWithLanguage(t, rtFn, language.German)
		conditions, err := provider.Current(t.Context(), munich)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(gotQuery, "lang=de") {
			t.Errorf("expected query to request German, got %q", gotQuery)
		}
		if conditions.Description != "Überwiegend bewölkt" {
			t.Errorf("unexpected description: %s", conditions.Description)
		}
		if conditions.IconKey != "Clouds" {
			t.Errorf("expected icon key %q, got %q", "Clouds", conditions.IconKey)
		}
	})
	t.Run("localized forecast keeps the condition group as icon key", func(t *testing.T) {
		provider := testProviderWithLanguage(t, testhelper.FileResponder(t, forecastGermanFile, 200), language.German)
		samples, err := provider.Forecast(t.Context(), munich)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"Clear", "Clouds", "Rain", "Thunderstorm", "Snow", "Fog"}
		if len(samples) != len(want) {
			t.Fatalf("expected %d samples, got %d", len(want), len(samples))
		}
		for i, sample := range samples {
			if sample.IconKey != want[i] {
				t.Errorf("sample %d: expected icon key %q, got %q (%s)", i, want[i], sample.IconKey,
					sample.Description)
			}
		}
	})
}

func TestOpenWeatherMap_integration(t *testing.T) {
	testhelper.PerformIntegrationTests(t)
	apikey := os.Getenv("OPENWEATHERMAP_APIKEY")
	if apikey == "" {
		t.Skip("no OpenWeatherMap API key set, skipping tests")
	}
	provider := New(http.New(logger.New(slog.LevelDebug)), language.English, apikey, "metric")
	if _, err := provider.Current(t.Context(), munich); err != nil {
		t.Fatal(err)
	}
	samples, err := provider.Forecast(t.Context(), munich)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) == 0 {
		t.Error("expected forecast samples")
	}
}

func testProviderWithLanguage(t *testing.T, fn func(req *stdhttp.Request) (*stdhttp.Response, error),
	lang language.Tag,
) *OpenWeatherMap {
	t.Helper()
	client := http.New(logger.NewLogger(slog.LevelDebug, io.Discard))
	client.Transport = testhelper.MockRoundTripper{Fn: fn}
	return New(client, lang, "test-key", "metric")
}

func testProviderWithRoundtripFunc(t *testing.T, fn func(req *stdhttp.Request) (*stdhttp.Response, error),
	units string,
) *OpenWeatherMap {
	t.Helper()
	client := http.New(logger.NewLogger(slog.LevelDebug, io.Discard))
	if fn != nil {
		client.Transport = testhelper.MockRoundTripper{Fn: fn}
	}
	return New(client, language.English, "test-key", units)
}

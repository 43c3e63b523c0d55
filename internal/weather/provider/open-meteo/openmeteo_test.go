// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hectormalot/omgo"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/geocode"
	"github.com/wneessen/weathermap/internal/testhelper"
	"github.com/wneessen/weathermap/internal/weather"
)

var cologne = geo.Coordinate{Lat: 50.95099552, Lon: 6.929531592}

type fakeForecaster struct {
	forecast *omgo.Forecast
	err      error
	opts     *omgo.Options
}

func (f *fakeForecaster) Forecast(_ context.Context, _ omgo.Location, opts *omgo.Options) (*omgo.Forecast, error) {
	f.opts = opts
	return f.forecast, f.err
}

func testForecast(start time.Time, hours int) *omgo.Forecast {
	forecast := &omgo.Forecast{
		Latitude:  cologne.Lat,
		Longitude: cologne.Lon,
		CurrentWeather: omgo.CurrentWeather{
			Temperature: 19.3,
			Time:        omgo.ApiTime{Time: start.Add(25 * time.Minute)},
			WeatherCode: 61,
			WindSpeed:   4.2,
		},
		HourlyMetrics: map[string][]float64{},
	}
	for i := 0; i < hours; i++ {
		forecast.HourlyTimes = append(forecast.HourlyTimes, start.Add(time.Duration(i)*time.Hour))
		forecast.HourlyMetrics[metricTemperature] = append(forecast.HourlyMetrics[metricTemperature], float64(i))
		forecast.HourlyMetrics[metricWeatherCode] = append(forecast.HourlyMetrics[metricWeatherCode], 2)
		forecast.HourlyMetrics[metricHumidity] = append(forecast.HourlyMetrics[metricHumidity], 60+float64(i))
		forecast.HourlyMetrics[metricPressure] = append(forecast.HourlyMetrics[metricPressure], 1013)
	}
	return forecast
}

type fakeReverser struct {
	place geocode.Place
	err   error
}

func (f fakeReverser) Reverse(context.Context, geo.Coordinate) (geocode.Place, error) {
	return f.place, f.err
}

func testProvider(fake *fakeForecaster, units string, now time.Time) *OpenMeteo {
	return &OpenMeteo{client: fake, units: units, now: func() time.Time { return now }}
}

func TestNew(t *testing.T) {
	provider, err := New("metric", nil)
	if err != nil {
		t.Fatalf("failed to create provider: %s", err)
	}
	if provider.Name() != name {
		t.Errorf("expected provider name to be %q, got %q", name, provider.Name())
	}
}

func TestDescription(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{0, "clear sky"},
		{3, "overcast"},
		{63, "moderate rain"},
		{95, "thunderstorm"},
		{42, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := Description(tt.code); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestOpenMeteo_Current(t *testing.T) {
	start := time.Date(2025, 6, 16, 9, 0, 0, 0, time.UTC)
	t.Run("current conditions use the hourly values of the current hour", func(t *testing.T) {
		fake := &fakeForecaster{forecast: testForecast(start, 48)}
		conditions, err := testProvider(fake, "metric", start).Current(t.Context(), cologne)
		if err != nil {
			t.Fatal(err)
		}
		if conditions.Temperature != 19.3 {
			t.Errorf("expected temperature 19.3, got %f", conditions.Temperature)
		}
		if conditions.Description != "slight rain" {
			t.Errorf("unexpected description: %s", conditions.Description)
		}
		if conditions.Humidity.Value() != 60 {
			t.Errorf("expected humidity of the current hour, got %s", conditions.Humidity)
		}
		if !conditions.Pressure.IsSet() {
			t.Error("expected pressure to be set")
		}
		if conditions.WindSpeed.Value() != 4.2 {
			t.Errorf("unexpected wind speed: %s", conditions.WindSpeed)
		}
		if conditions.PlaceName != "" {
			t.Errorf("expected no place name, got %q", conditions.PlaceName)
		}
		if !conditions.Sunrise.Before(conditions.Sunset) {
			t.Errorf("expected sunrise %s before sunset %s", conditions.Sunrise, conditions.Sunset)
		}
		if conditions.Units != weather.MetricUnits {
			t.Errorf("unexpected units: %+v", conditions.Units)
		}
		if fake.opts.WindspeedUnit != "ms" || fake.opts.TemperatureUnit != "celsius" {
			t.Errorf("unexpected request units: %+v", fake.opts)
		}
	})
	t.Run("missing hourly values stay unset", func(t *testing.T) {
		forecast := testForecast(start, 48)
		forecast.HourlyTimes = nil
		conditions := conditionsFromForecast(forecast, cologne, weather.MetricUnits)
		if conditions.Humidity.IsSet() || conditions.Pressure.IsSet() {
			t.Error("expected humidity and pressure to be unset")
		}
	})
	t.Run("imperial units are requested", func(t *testing.T) {
		fake := &fakeForecaster{forecast: testForecast(start, 4)}
		conditions, err := testProvider(fake, "imperial", start).Current(t.Context(), cologne)
		if err != nil {
			t.Fatal(err)
		}
		if fake.opts.TemperatureUnit != "fahrenheit" || fake.opts.WindspeedUnit != "mph" {
			t.Errorf("unexpected request units: %+v", fake.opts)
		}
		if conditions.Units != weather.ImperialUnits {
			t.Errorf("unexpected units: %+v", conditions.Units)
		}
	})
	t.Run("API failure is returned", func(t *testing.T) {
		fake := &fakeForecaster{err: errors.New("intentionally failing")}
		if _, err := testProvider(fake, "metric", start).Current(t.Context(), cologne); err == nil {
			t.Fatal("expected request to fail")
		}
	})
	t.Run("nil forecast is an error", func(t *testing.T) {
		fake := &fakeForecaster{}
		if _, err := testProvider(fake, "metric", start).Current(t.Context(), cologne); err == nil {
			t.Fatal("expected request to fail")
		}
	})
}

func TestOpenMeteo_Current_reverse(t *testing.T) {
	start := time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC)
	t.Run("place name is resolved", func(t *testing.T) {
		provider := testProvider(&fakeForecaster{forecast: testForecast(start, 24)}, "metric", start)
		provider.reverser = fakeReverser{place: geocode.Place{Found: true, Name: "Cologne", Country: "DE"}}
		conditions, err := provider.Current(t.Context(), cologne)
		if err != nil {
			t.Fatal(err)
		}
		if conditions.PlaceName != "Cologne" || conditions.Country != "DE" {
			t.Errorf("unexpected place: %s, %s", conditions.PlaceName, conditions.Country)
		}
	})
	t.Run("unresolved place leaves the name empty", func(t *testing.T) {
		provider := testProvider(&fakeForecaster{forecast: testForecast(start, 24)}, "metric", start)
		provider.reverser = fakeReverser{}
		conditions, err := provider.Current(t.Context(), cologne)
		if err != nil {
			t.Fatal(err)
		}
		if conditions.PlaceName != "" {
			t.Errorf("expected empty place name, got %q", conditions.PlaceName)
		}
	})
	t.Run("reverse lookup failure is returned", func(t *testing.T) {
		provider := testProvider(&fakeForecaster{forecast: testForecast(start, 24)}, "metric", start)
		provider.reverser = fakeReverser{err: errors.New("intentionally failing")}
		if _, err := provider.Current(t.Context(), cologne); err == nil {
			t.Fatal("expected request to fail")
		}
	})
}

func TestOpenMeteo_Forecast(t *testing.T) {
	start := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	t.Run("samples are taken every third hour from now on", func(t *testing.T) {
		now := start.Add(4*time.Hour + 10*time.Minute)
		fake := &fakeForecaster{forecast: testForecast(start, 24*7)}
		samples, err := testProvider(fake, "metric", now).Forecast(t.Context(), cologne)
		if err != nil {
			t.Fatal(err)
		}
		if len(samples) == 0 {
			t.Fatal("expected samples")
		}
		if samples[0].Time.Hour() != 6 {
			t.Errorf("expected first sample at 06:00, got %s", samples[0].Time)
		}
		for i := 1; i < len(samples); i++ {
			if samples[i].Time.Sub(samples[i-1].Time) != 3*time.Hour {
				t.Fatalf("expected 3 hour steps, got %s", samples[i].Time.Sub(samples[i-1].Time))
			}
		}
		if samples[0].Description != "partly cloudy" {
			t.Errorf("unexpected description: %s", samples[0].Description)
		}
		if len(weather.DailyMidday(samples, time.UTC)) != weather.ForecastDays {
			t.Errorf("expected %d aggregated days", weather.ForecastDays)
		}
	})
	t.Run("hours without temperature are skipped", func(t *testing.T) {
		forecast := testForecast(start, 12)
		forecast.HourlyMetrics[metricTemperature] = forecast.HourlyMetrics[metricTemperature][:4]
		samples := samplesFromForecast(forecast, start)
		if len(samples) != 2 {
			t.Errorf("expected 2 samples, got %d", len(samples))
		}
	})
}

func TestOpenMeteo_integration(t *testing.T) {
	testhelper.PerformIntegrationTests(t)
	provider, err := New("metric", nil)
	if err != nil {
		t.Fatal(err)
	}
	current, err := provider.Current(t.Context(), cologne)
	if err != nil {
		t.Fatalf("failed to get weather: %s", err)
	}
	t.Logf("weather: %+v°C", current.Temperature)
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openmeteo

import (
	"context"
	"fmt"
	"time"

	"github.com/hectormalot/omgo"
	"github.com/nathan-osman/go-sunrise"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/geocode"
	"github.com/wneessen/weathermap/internal/vartype"
	"github.com/wneessen/weathermap/internal/weather"
)

const (
	name       = "open-meteo"
	apiTimeout = time.Second * 10

	// sampleStep matches the step width of the OpenWeatherMap forecast series.
	sampleStep = 3

	metricTemperature = "temperature_2m"
	metricWeatherCode = "weather_code"
	metricHumidity    = "relative_humidity_2m"
	metricPressure    = "pressure_msl"
	metricWindSpeed   = "wind_speed_10m"
)

var hourlyMetrics = []string{metricTemperature, metricWeatherCode, metricHumidity, metricPressure, metricWindSpeed}

// forecaster is satisfied by omgo.Client.
type forecaster interface {
	Forecast(ctx context.Context, loc omgo.Location, opts *omgo.Options) (*omgo.Forecast, error)
}

type OpenMeteo struct {
	client   forecaster
	reverser geocode.Reverser
	units    string
	now      func() time.Time
}

// New returns the Open-Meteo provider. The API does not name the place a forecast belongs
// to, so a non-nil reverser is asked for it.
func New(units string, reverser geocode.Reverser) (*OpenMeteo, error) {
	client, err := omgo.NewClient()
	if err != nil {
		return nil, fmt.Errorf("failed to create Open-Meteo client: %w", err)
	}
	if units != "imperial" {
		units = "metric"
	}
	return &OpenMeteo{client: &client, reverser: reverser, units: units, now: time.Now}, nil
}

func (o *OpenMeteo) Name() string {
	return name
}

func (o *OpenMeteo) Current(ctx context.Context, coord geo.Coordinate) (*weather.Conditions, error) {
	forecast, err := o.fetch(ctx, coord)
	if err != nil {
		return nil, err
	}
	conditions := conditionsFromForecast(forecast, coord, weather.UnitsFor(o.units))
	if o.reverser == nil {
		return conditions, nil
	}
	place, err := o.reverser.Reverse(ctx, coord)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve place name for %s: %w", coord, err)
	}
	if place.Found {
		conditions.PlaceName = place.Name
		conditions.Country = place.Country
	}
	return conditions, nil
}

func (o *OpenMeteo) Forecast(ctx context.Context, coord geo.Coordinate) ([]weather.Sample, error) {
	forecast, err := o.fetch(ctx, coord)
	if err != nil {
		return nil, err
	}
	return samplesFromForecast(forecast, o.now()), nil
}

func (o *OpenMeteo) fetch(ctx context.Context, coord geo.Coordinate) (*omgo.Forecast, error) {
	ctxFetch, cancelFetch := context.WithTimeout(ctx, apiTimeout)
	defer cancelFetch()

	location, err := omgo.NewLocation(coord.Lat, coord.Lon)
	if err != nil {
		return nil, fmt.Errorf("failed create Open-Meteo location from coordinates: %w", err)
	}

	// All timestamps are requested in UTC, the viewer's zone is applied by the aggregator.
	opts := &omgo.Options{
		Timezone:      "UTC",
		HourlyMetrics: hourlyMetrics,
	}
	switch o.units {
	case "imperial":
		opts.TemperatureUnit = "fahrenheit"
		opts.PrecipitationUnit = "inch"
		opts.WindspeedUnit = "mph"
	default:
		opts.TemperatureUnit = "celsius"
		opts.PrecipitationUnit = "mm"
		opts.WindspeedUnit = "ms"
	}

	forecast, err := o.client.Forecast(ctxFetch, location, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast data from Open-Meteo API: %w", err)
	}
	if forecast == nil {
		return nil, fmt.Errorf("Open-Meteo API returned an empty forecast")
	}
	return forecast, nil
}

func conditionsFromForecast(forecast *omgo.Forecast, coord geo.Coordinate, units weather.Units) *weather.Conditions {
	current := forecast.CurrentWeather
	now := current.Time.Time.UTC()
	rise, set := sunrise.SunriseSunset(coord.Lat, coord.Lon, now.Year(), now.Month(), now.Day())

	conditions := &weather.Conditions{
		Time:        now,
		Coordinate:  coord,
		Description: Description(int(current.WeatherCode)),
		IconKey:     Description(int(current.WeatherCode)),
		Temperature: current.Temperature,
		WindSpeed:   vartype.NewVariable(current.WindSpeed),
		Sunrise:     rise,
		Sunset:      set,
		Units:       units,
	}

	idx := hourIndex(forecast.HourlyTimes, now.Truncate(time.Hour))
	if idx < 0 {
		return conditions
	}
	if value, ok := metricAt(forecast, metricHumidity, idx); ok {
		conditions.Humidity.Set(value)
	}
	if value, ok := metricAt(forecast, metricPressure, idx); ok {
		conditions.Pressure.Set(value)
	}
	return conditions
}

// samplesFromForecast picks every third hour of the hourly series, starting at from.
func samplesFromForecast(forecast *omgo.Forecast, from time.Time) []weather.Sample {
	from = from.Truncate(time.Hour)
	samples := make([]weather.Sample, 0, len(forecast.HourlyTimes)/sampleStep)
	for i, instant := range forecast.HourlyTimes {
		if instant.Before(from) || instant.UTC().Hour()%sampleStep != 0 {
			continue
		}
		temp, ok := metricAt(forecast, metricTemperature, i)
		if !ok {
			continue
		}
		code, _ := metricAt(forecast, metricWeatherCode, i)
		samples = append(samples, weather.Sample{
			Time:        instant,
			Temperature: temp,
			Description: Description(int(code)),
			IconKey:     Description(int(code)),
		})
	}
	return samples
}

func hourIndex(times []time.Time, hour time.Time) int {
	for i, t := range times {
		if t.Equal(hour) {
			return i
		}
	}
	return -1
}

func metricAt(forecast *omgo.Forecast, metric string, idx int) (float64, bool) {
	values, ok := forecast.HourlyMetrics[metric]
	if !ok || idx < 0 || idx >= len(values) {
		return 0, false
	}
	return values[idx], true
}

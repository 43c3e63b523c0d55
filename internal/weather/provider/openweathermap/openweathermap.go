// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/http"
	"github.com/wneessen/weathermap/internal/vartype"
	"github.com/wneessen/weathermap/internal/weather"
)

const (
	CurrentEndpoint  = "https://api.openweathermap.org/data/2.5/weather"
	ForecastEndpoint = "https://api.openweathermap.org/data/2.5/forecast"
	APITimeout       = time.Second * 10
	name             = "openweathermap"
)

type OpenWeatherMap struct {
	apikey string
	http   *http.Client
	lang   language.Tag
	units  string
}

type condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type mainValues struct {
	Temp     float64 `json:"temp"`
	Pressure float64 `json:"pressure"`
	Humidity float64 `json:"humidity"`
}

type CurrentResponse struct {
	Coord struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Weather []condition `json:"weather"`
	Main    mainValues  `json:"main"`
	Wind    struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

type ForecastResponse struct {
	List []struct {
		Dt      int64       `json:"dt"`
		Main    mainValues  `json:"main"`
		Weather []condition `json:"weather"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"city"`
	Message any `json:"message"`
}

func New(client *http.Client, lang language.Tag, apikey, units string) *OpenWeatherMap {
	if units != "imperial" {
		units = "metric"
	}
	return &OpenWeatherMap{
		apikey: apikey,
		http:   client,
		lang:   lang,
		units:  units,
	}
}

func (o *OpenWeatherMap) Name() string {
	return name
}

func (o *OpenWeatherMap) Current(ctx context.Context, coord geo.Coordinate) (*weather.Conditions, error) {
	var response CurrentResponse
	code, err := o.http.GetWithTimeout(ctx, CurrentEndpoint, &response, o.query(coord), nil, APITimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve current weather from OpenWeatherMap API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("OpenWeatherMap API returned non-positive response code: %d (%s)", code,
			response.Message)
	}

	conditions := &weather.Conditions{
		Time:        time.Unix(response.Dt, 0),
		Coordinate:  coord,
		PlaceName:   response.Name,
		Country:     response.Sys.Country,
		Description: description(response.Weather),
		IconKey:     o.iconKey(response.Weather),
		Temperature: response.Main.Temp,
		Humidity:    vartype.NewVariable(response.Main.Humidity),
		WindSpeed:   vartype.NewVariable(response.Wind.Speed),
		Pressure:    vartype.NewVariable(response.Main.Pressure),
		Sunrise:     time.Unix(response.Sys.Sunrise, 0),
		Sunset:      time.Unix(response.Sys.Sunset, 0),
		Units:       weather.UnitsFor(o.units),
	}
	return conditions, nil
}

func (o *OpenWeatherMap) Forecast(ctx context.Context, coord geo.Coordinate) ([]weather.Sample, error) {
	var response ForecastResponse
	code, err := o.http.GetWithTimeout(ctx, ForecastEndpoint, &response, o.query(coord), nil, APITimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve weather forecast from OpenWeatherMap API: %w", err)
	}
	if code != 200 {
		return nil, fmt.Errorf("OpenWeatherMap API returned non-positive response code: %d (%v)", code,
			response.Message)
	}

	samples := make([]weather.Sample, 0, len(response.List))
	for _, entry := range response.List {
		samples = append(samples, weather.Sample{
			Time:        time.Unix(entry.Dt, 0),
			Temperature: entry.Main.Temp,
			Description: description(entry.Weather),
			IconKey:     o.iconKey(entry.Weather),
		})
	}
	return samples, nil
}

func (o *OpenWeatherMap) query(coord geo.Coordinate) url.Values {
	lat, lon := coord.QueryValues()
	query := url.Values{}
	query.Set("lat", lat)
	query.Set("lon", lon)
	query.Set("appid", o.apikey)
	query.Set("units", o.units)
	base, _ := o.lang.Base()
	query.Set("lang", base.String())
	return query
}

// iconKey returns the text the icon is chosen by. Descriptions are localized by the API, so
// other languages fall back to the English condition group.
func (o *OpenWeatherMap) iconKey(conditions []condition) string {
	if len(conditions) == 0 {
		return ""
	}
	if base, _ := o.lang.Base(); base.String() == "en" {
		return strings.TrimSpace(conditions[0].Description)
	}
	return conditions[0].Main
}

func description(conditions []condition) string {
	if len(conditions) == 0 {
		return ""
	}
	return strings.TrimSpace(conditions[0].Description)
}

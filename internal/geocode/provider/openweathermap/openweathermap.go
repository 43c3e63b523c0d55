// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package openweathermap

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/geocode"
	"github.com/wneessen/weathermap/internal/http"
)

const (
	APIEndpoint = "https://api.openweathermap.org/geo/1.0/direct"
	APITimeout  = time.Second * 10
	name        = "openweathermap"
)

type OpenWeatherMap struct {
	apikey string
	http   *http.Client
	lang   language.Tag
}

type Result struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state"`
}

func New(client *http.Client, lang language.Tag, apikey string) *OpenWeatherMap {
	return &OpenWeatherMap{
		apikey: apikey,
		lang:   lang,
		http:   client,
	}
}

func (o *OpenWeatherMap) Name() string {
	return name
}

func (o *OpenWeatherMap) Search(ctx context.Context, address string) (geocode.Place, error) {
	var results []Result

	query := url.Values{}
	query.Set("q", address)
	query.Set("limit", "1")
	query.Set("appid", o.apikey)

	// Error responses are JSON objects instead of arrays, so the status code is checked first
	code, err := o.http.GetWithTimeout(ctx, APIEndpoint, &results, query, nil, APITimeout)
	if code != 0 && code != 200 {
		return geocode.Place{}, fmt.Errorf("OpenWeatherMap geocoding API returned non-positive response code: %d", code)
	}
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to retrieve place details from OpenWeatherMap API: %w", err)
	}
	if len(results) < 1 {
		return geocode.Place{}, nil
	}

	result := results[0]
	place := geocode.Place{
		Found:       true,
		Name:        result.Name,
		Country:     result.Country,
		State:       result.State,
		DisplayName: result.Name,
		Coordinate:  geo.Coordinate{Lat: result.Lat, Lon: result.Lon},
	}
	base, _ := o.lang.Base()
	if localName, ok := result.LocalNames[base.String()]; ok && localName != "" {
		place.Name = localName
	}

	return place, nil
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package nominatim

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/geocode"
	"github.com/wneessen/weathermap/internal/http"
)

const (
	APISearchEndpoint  = "https://nominatim.openstreetmap.org/search"
	APIReverseEndpoint = "https://nominatim.openstreetmap.org/reverse"
	APITimeout         = time.Second * 10
	name               = "osm-nominatim"
)

type Nominatim struct {
	http *http.Client
	lang language.Tag
}

type SearchResult struct {
	APILat      string  `json:"lat"`
	APILon      string  `json:"lon"`
	Name        string  `json:"name"`
	DisplayName string  `json:"display_name"`
	Address     Address `json:"address"`
}

type ReverseResult struct {
	Error       string   `json:"error"`
	Name        string   `json:"name"`
	DisplayName string   `json:"display_name"`
	Address     *Address `json:"address,omitempty"`
}

type Address struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	State       string `json:"state"`
	Country     string `json:"country"`
	CountryCode string `json:"country_code"`
}

func New(client *http.Client, lang language.Tag) *Nominatim {
	return &Nominatim{
		lang: lang,
		http: client,
	}
}

func (n *Nominatim) Name() string {
	return name
}

func (n *Nominatim) Search(ctx context.Context, address string) (geocode.Place, error) {
	var results []SearchResult

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("q", address)
	query.Set("limit", "1")
	query.Set("addressdetails", "1")
	query.Set("accept-language", n.lang.String())

	code, err := n.http.GetWithTimeout(ctx, APISearchEndpoint, &results, query, nil, APITimeout)
	if code != 0 && code != 200 {
		return geocode.Place{}, fmt.Errorf("Nominatim API returned non-positive response code: %d", code)
	}
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err)
	}
	if len(results) < 1 {
		return geocode.Place{}, nil
	}

	result := results[0]
	place := geocode.Place{
		Found:       true,
		Name:        result.Name,
		Country:     strings.ToUpper(result.Address.CountryCode),
		State:       result.Address.State,
		DisplayName: result.DisplayName,
	}
	if place.Name == "" {
		place.Name = firstNonEmpty(result.Address.City, result.Address.Town, result.Address.Village)
	}
	place.Coordinate.Lat, err = strconv.ParseFloat(result.APILat, 64)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to parse latitude from Nominatim API response: %w", err)
	}
	place.Coordinate.Lon, err = strconv.ParseFloat(result.APILon, 64)
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to parse longitude from Nominatim API response: %w", err)
	}

	return place, nil
}

// Reverse resolves coord into the place it lies in. Points without an address, like the open
// sea, are reported with Found set to false.
func (n *Nominatim) Reverse(ctx context.Context, coord geo.Coordinate) (geocode.Place, error) {
	var result ReverseResult

	lat, lon := coord.QueryValues()
	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", lat)
	query.Set("lon", lon)
	query.Set("zoom", "10")
	query.Set("accept-language", n.lang.String())

	code, err := n.http.GetWithTimeout(ctx, APIReverseEndpoint, &result, query, nil, APITimeout)
	if code != 0 && code != 200 {
		return geocode.Place{}, fmt.Errorf("Nominatim API returned non-positive response code: %d", code)
	}
	if err != nil {
		return geocode.Place{}, fmt.Errorf("failed to fetch address details from Nominatim API: %w", err)
	}
	if result.Error != "" || result.Address == nil {
		return geocode.Place{}, nil
	}

	return geocode.Place{
		Found:       true,
		Name:        firstNonEmpty(result.Address.City, result.Address.Town, result.Address.Village, result.Name),
		Country:     strings.ToUpper(result.Address.CountryCode),
		State:       result.Address.State,
		DisplayName: result.DisplayName,
		Coordinate:  coord,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package geocode

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wneessen/weathermap/internal/cache"
	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/logger"
)

const (
	testHitTTL  = time.Minute
	testMissTTL = time.Minute
)

var testPlace = Place{
	Found:      true,
	Name:       "Berlin",
	Country:    "DE",
	State:      "Berlin",
	Coordinate: geo.Coordinate{Lat: 52.5170365, Lon: 13.3888599},
}

type mockCoder struct {
	calls atomic.Int64
}

func (c *mockCoder) Name() string { return "mock" }

func (c *mockCoder) Search(_ context.Context, query string) (Place, error) {
	c.calls.Add(1)
	switch NormalizeQuery(query) {
	case "berlin":
		return testPlace, nil
	case "invalid":
		return Place{}, errors.New("lookup intentionally failed")
	default:
		return Place{}, nil
	}
}

type failingStore struct{}

func (failingStore) Name() string { return "failing" }
func (failingStore) Get(context.Context, string) ([]byte, error) {
	return nil, errors.New("store intentionally failed")
}

func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("store intentionally failed")
}
func (failingStore) Purge(context.Context) (int, error) { return 0, nil }

func TestNewCachedGeocoder(t *testing.T) {
	t.Run("a new geocoder should be returned", func(t *testing.T) {
		coder := testCachedCoder(&mockCoder{}, cache.NewMemory())
		if coder == nil {
			t.Fatal("expected a non-nil geocoder")
		}
		if coder.Name() != "geocoder cache using mock" {
			t.Errorf("expected geocoder name to be 'geocoder cache using mock', got %q", coder.Name())
		}
	})
}

func TestCachedGeocoder_Search(t *testing.T) {
	t.Run("second lookup is served from the cache", func(t *testing.T) {
		mock := &mockCoder{}
		coder := testCachedCoder(mock, cache.NewMemory())

		place, err := coder.Search(t.Context(), "Berlin")
		if err != nil {
			t.Fatalf("failed to search: %s", err)
		}
		if !place.Found || place.CacheHit {
			t.Errorf("expected uncached hit, got %+v", place)
		}
		place, err = coder.Search(t.Context(), "  BERLIN ")
		if err != nil {
			t.Fatalf("failed to search: %s", err)
		}
		if !place.CacheHit {
			t.Error("expected cache hit")
		}
		if place.Coordinate != testPlace.Coordinate || place.Label() != "Berlin, DE" {
			t.Errorf("unexpected cached place: %+v", place)
		}
		if mock.calls.Load() != 1 {
			t.Errorf("expected 1 upstream call, got %d", mock.calls.Load())
		}
	})
	t.Run("misses are cached as well", func(t *testing.T) {
		mock := &mockCoder{}
		coder := testCachedCoder(mock, cache.NewMemory())
		for i := 0; i < 2; i++ {
			place, err := coder.Search(t.Context(), "Atlantis")
			if err != nil {
				t.Fatalf("failed to search: %s", err)
			}
			if place.Found {
				t.Error("expected place not to be found")
			}
		}
		if mock.calls.Load() != 1 {
			t.Errorf("expected 1 upstream call, got %d", mock.calls.Load())
		}
	})
	t.Run("errors are not cached", func(t *testing.T) {
		mock := &mockCoder{}
		coder := testCachedCoder(mock, cache.NewMemory())
		for i := 0; i < 2; i++ {
			if _, err := coder.Search(t.Context(), "invalid"); err == nil {
				t.Error("expected search to fail")
			}
		}
		if mock.calls.Load() != 2 {
			t.Errorf("expected 2 upstream calls, got %d", mock.calls.Load())
		}
	})
	t.Run("a failing cache store falls back to the geocoder", func(t *testing.T) {
		mock := &mockCoder{}
		coder := testCachedCoder(mock, failingStore{})
		place, err := coder.Search(t.Context(), "Berlin")
		if err != nil {
			t.Fatalf("failed to search: %s", err)
		}
		if !place.Found {
			t.Error("expected place to be found")
		}
	})
}

func TestPlace_Label(t *testing.T) {
	tests := []struct {
		name  string
		place Place
		want  string
	}{
		{"name and country", Place{Name: "Delhi", Country: "IN"}, "Delhi, IN"},
		{"name only", Place{Name: "Delhi"}, "Delhi"},
		{"display name fallback", Place{DisplayName: "Somewhere"}, "Somewhere"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.place.Label(); got != tc.want {
				t.Errorf("expected label %q, got %q", tc.want, got)
			}
		})
	}
}

func testCachedCoder(coder Geocoder, store cache.Store) *CachedGeocoder {
	return NewCachedGeocoder(coder, store, logger.NewLogger(slog.LevelDebug, io.Discard), testHitTTL, testMissTTL)
}

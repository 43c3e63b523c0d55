// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/wneessen/weathermap/internal/geo"
	"github.com/wneessen/weathermap/internal/logger"
)

// FetchBoth requests the current conditions and the forecast for coord concurrently and waits
// for both. A failing request is logged and its result is nil, so callers have to check both
// return values.
func FetchBoth(ctx context.Context, provider Provider, coord geo.Coordinate, log *logger.Logger) (*Conditions, []Sample) {
	var (
		current  *Conditions
		forecast []Sample
	)

	// Neither goroutine returns an error, a failure must not cancel the other request.
	group := new(errgroup.Group)
	group.Go(func() error {
		data, err := provider.Current(ctx, coord)
		if err != nil {
			log.Error("failed to fetch current weather", logger.Err(err),
				slog.String("provider", provider.Name()), slog.String("coordinate", coord.String()))
			return nil
		}
		current = data
		return nil
	})
	group.Go(func() error {
		data, err := provider.Forecast(ctx, coord)
		if err != nil {
			log.Error("failed to fetch weather forecast", logger.Err(err),
				slog.String("provider", provider.Name()), slog.String("coordinate", coord.String()))
			return nil
		}
		if data == nil {
			data = []Sample{}
		}
		forecast = data
		return nil
	})
	_ = group.Wait()

	return current, forecast
}

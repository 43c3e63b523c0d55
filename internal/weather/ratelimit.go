// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/wneessen/weathermap/internal/geo"
)

// RateLimitedProvider throttles the requests of the wrapped provider. Current and Forecast
// share the same limiter.
type RateLimitedProvider struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewRateLimitedProvider wraps provider with a limiter allowing perSecond requests per
// second with the given burst size.
func NewRateLimitedProvider(provider Provider, perSecond float64, burst int) *RateLimitedProvider {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedProvider{
		provider: provider,
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

func (r *RateLimitedProvider) Name() string {
	return fmt.Sprintf("rate limited %s", r.provider.Name())
}

func (r *RateLimitedProvider) Current(ctx context.Context, coord geo.Coordinate) (*Conditions, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}
	return r.provider.Current(ctx, coord)
}

func (r *RateLimitedProvider) Forecast(ctx context.Context, coord geo.Coordinate) ([]Sample, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("failed to wait for rate limiter: %w", err)
	}
	return r.provider.Forecast(ctx, coord)
}

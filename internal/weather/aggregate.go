// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

package weather

import (
	"time"
)

const (
	// ForecastDays is the maximum number of days emitted by DailyMidday.
	ForecastDays = 5
	middayHour   = 12
)

// DailyMidday reduces an ordered sample series to one sample per local calendar date, the one
// closest to midday. Dates keep the order in which they first appear. Within a date the first
// sample wins a tie. Samples of dates beyond ForecastDays are ignored.
func DailyMidday(samples []Sample, loc *time.Location) []Daily {
	if loc == nil {
		loc = time.Local
	}

	days := make([]Daily, 0, ForecastDays)
	index := make(map[string]int, ForecastDays)
	for _, sample := range samples {
		local := sample.Time.In(loc)
		key := local.Format(time.DateOnly)

		pos, ok := index[key]
		if !ok {
			if len(days) == ForecastDays {
				continue
			}
			index[key] = len(days)
			days = append(days, Daily{
				Date:   time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc),
				Sample: sample,
			})
			continue
		}

		current := days[pos].Sample.Time.In(loc)
		if middayDistance(local) < middayDistance(current) {
			days[pos].Sample = sample
		}
	}

	return days
}

func middayDistance(t time.Time) int {
	dist := t.Hour() - middayHour
	if dist < 0 {
		return -dist
	}
	return dist
}

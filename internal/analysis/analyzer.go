package analysis

import (
	"errors"
	"strings"
	"time"

	"github.com/smukkama/weather-advisor/internal/forecast"
	"github.com/smukkama/weather-advisor/pkg/config"
)

// Sentinel results for forecasts that are structurally valid but carry
// too little data to advise on. These are ordinary error values the
// caller inspects with errors.Is; the analyzer never treats them as
// faults, and each carries its own user-facing message.
var (
	ErrEmptyForecast = errors.New("the forecast contains no samples")
	ErrNoDataToday   = errors.New("the forecast has no samples for today at the target location")
	ErrNoTemperature = errors.New("today's forecast samples carry no temperature readings")
)

// Drying advice categories.
const (
	DryingRain     = "rain"      // do not hang laundry outside
	DryingDampRisk = "damp-risk" // fine outside, but dry in a ventilated spot
	DryingGood     = "good"      // clear to hang laundry outside
)

// Umbrella advice categories.
const (
	UmbrellaRain      = "bring-rain" // carry a rain umbrella
	UmbrellaSun       = "bring-sun"  // carry sun protection
	UmbrellaNotNeeded = "not-needed"
)

// Recommendation is the fully derived analysis output for one run.
type Recommendation struct {
	TempMin   float64
	TempMax   float64
	TempMean  float64
	Condition string // description of the first today sample, "unknown" if absent

	HasRain      bool
	RainToday    []RainEvent
	RainTomorrow []RainEvent // capped at 3 entries

	Drying    string
	Umbrella  string
	RainOnset string // local HH:MM of the first today rain event, when Umbrella is bring-rain
}

// tomorrowRainCap bounds how many next-day rain slots the recommendation
// carries; the rest add noise to a short email.
const tomorrowRainCap = 3

// Analyzer derives recommendations from forecast sets. It holds only
// immutable configuration, so Analyze is pure and safe to call
// repeatedly: the same set and reference instant always produce the
// same recommendation.
type Analyzer struct {
	offset     time.Duration
	thresholds config.ThresholdConfig
}

// NewAnalyzer creates an analyzer for a fixed local UTC offset and
// advice thresholds.
func NewAnalyzer(offset time.Duration, thresholds config.ThresholdConfig) *Analyzer {
	return &Analyzer{
		offset:     offset,
		thresholds: thresholds,
	}
}

// Analyze turns a forecast set into a recommendation for the reference
// instant's local day. It returns one of the package sentinel errors when
// the set holds too little data, never a synthetic zero-filled result.
func (a *Analyzer) Analyze(set forecast.Set, now time.Time) (*Recommendation, error) {
	if len(set.Points) == 0 {
		return nil, ErrEmptyForecast
	}

	today, tomorrow := ReferenceDates(now, a.offset)

	var todayPoints []forecast.Point
	for _, p := range set.Points {
		if LocalDate(p.Timestamp, a.offset) == today {
			todayPoints = append(todayPoints, p)
		}
	}
	if len(todayPoints) == 0 {
		return nil, ErrNoDataToday
	}

	var temps []float64
	for _, p := range todayPoints {
		if p.Temp != nil {
			temps = append(temps, *p.Temp)
		}
	}
	if len(temps) == 0 {
		return nil, ErrNoTemperature
	}

	rec := &Recommendation{
		TempMin:   temps[0],
		TempMax:   temps[0],
		Condition: "unknown",
	}

	var sum float64
	for _, t := range temps {
		if t < rec.TempMin {
			rec.TempMin = t
		}
		if t > rec.TempMax {
			rec.TempMax = t
		}
		sum += t
	}
	rec.TempMean = sum / float64(len(temps))

	if todayPoints[0].Description != "" {
		rec.Condition = todayPoints[0].Description
	}

	hasClouds := false
	for _, p := range todayPoints {
		if isRainCategory(p.Category) {
			rec.HasRain = true
		}
		if containsCloud(p.Category) {
			hasClouds = true
		}
	}

	events := ExtractRainEvents(set, today, tomorrow, a.offset)
	for _, ev := range events {
		if ev.IsToday {
			rec.RainToday = append(rec.RainToday, ev)
		} else if len(rec.RainTomorrow) < tomorrowRainCap {
			rec.RainTomorrow = append(rec.RainTomorrow, ev)
		}
	}

	// Rain outranks everything else in both decisions; cloud cover and
	// heat are only consulted when the day is dry.
	switch {
	case rec.HasRain:
		rec.Drying = DryingRain
	case hasClouds && rec.TempMean < a.thresholds.DampRiskTemp:
		rec.Drying = DryingDampRisk
	default:
		rec.Drying = DryingGood
	}

	switch {
	case rec.HasRain:
		rec.Umbrella = UmbrellaRain
		if len(rec.RainToday) > 0 {
			rec.RainOnset = rec.RainToday[0].Clock
		}
	case rec.TempMax > a.thresholds.HighTemp:
		rec.Umbrella = UmbrellaSun
	default:
		rec.Umbrella = UmbrellaNotNeeded
	}

	return rec, nil
}

func containsCloud(category string) bool {
	return strings.Contains(strings.ToLower(category), "cloud")
}

package analysis

import (
	"math"
	"strings"
	"time"

	"github.com/smukkama/weather-advisor/internal/forecast"
)

// Rain intensity tags, classified from the volume over a sample window.
const (
	IntensityLight    = "light"
	IntensityModerate = "moderate"
	IntensityHeavy    = "heavy"
)

// RainEvent is one forecast sample that predicts precipitation, tagged
// with its local timing. Built fresh on every analysis pass.
type RainEvent struct {
	Clock       string  // local HH:MM of the sample
	IsToday     bool    // true for today, false for tomorrow
	Probability int     // percent, 0-100
	Volume      float64 // mm over the sample window
	Intensity   string
}

var rainWords = []string{"rain", "thunderstorm", "drizzle"}

// isRainCategory reports whether a primary condition category indicates
// precipitation. Matching is case-insensitive substring containment, so
// e.g. "Light Rain" and "Thunderstorm" both qualify.
func isRainCategory(category string) bool {
	lower := strings.ToLower(category)
	for _, w := range rainWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// ExtractRainEvents scans a forecast set and returns the precipitation
// samples that fall on today or tomorrow (local dates), in the order they
// appear in the input. No deduplication is applied.
func ExtractRainEvents(set forecast.Set, today, tomorrow string, offset time.Duration) []RainEvent {
	var events []RainEvent

	for _, p := range set.Points {
		date := LocalDate(p.Timestamp, offset)
		if date != today && date != tomorrow {
			continue
		}
		if !isRainCategory(p.Category) {
			continue
		}

		probability := 0
		if p.Pop != nil {
			probability = int(math.Round(*p.Pop * 100))
		}

		volume := p.Volume()
		events = append(events, RainEvent{
			Clock:       LocalClock(p.Timestamp, offset),
			IsToday:     date == today,
			Probability: probability,
			Volume:      volume,
			Intensity:   classifyIntensity(volume),
		})
	}

	return events
}

// classifyIntensity buckets a window's rain volume. Boundaries follow
// the usual light/moderate/heavy convention (2.5mm and 7.5mm).
func classifyIntensity(volume float64) string {
	switch {
	case volume >= 7.5:
		return IntensityHeavy
	case volume >= 2.5:
		return IntensityModerate
	default:
		return IntensityLight
	}
}

package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/smukkama/weather-advisor/internal/analysis"
	"github.com/smukkama/weather-advisor/pkg/config"
)

// Message is a rendered advisory ready for delivery: a plain-text body
// and a styled HTML alternative carrying the same content.
type Message struct {
	Subject string
	Text    string
	HTML    string
}

// Render turns a recommendation into the outgoing message. It does
// presentation only; every decision was already made by the analyzer.
func Render(rec *analysis.Recommendation, loc config.LocationConfig, now time.Time) (Message, error) {
	localDate, _ := analysis.ReferenceDates(now, loc.UTCOffset)

	text := renderText(rec, loc)
	html, err := renderHTML(text, loc.Label, now, loc.UTCOffset)
	if err != nil {
		return Message{}, fmt.Errorf("failed to render HTML body: %w", err)
	}

	return Message{
		Subject: fmt.Sprintf("%s Weather advisory for %s - %s", subjectPictograph(rec), loc.Label, localDate),
		Text:    text,
		HTML:    html,
	}, nil
}

func subjectPictograph(rec *analysis.Recommendation) string {
	switch rec.Drying {
	case analysis.DryingRain:
		return "☔"
	case analysis.DryingDampRisk:
		return "🌥"
	default:
		return "☀"
	}
}

func renderText(rec *analysis.Recommendation, loc config.LocationConfig) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Weather Advisory - %s (%.4f, %.4f)\n", loc.Label, loc.Latitude, loc.Longitude)
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 40))

	fmt.Fprintf(&b, "Today's temperatures: min %.1f°C / max %.1f°C / mean %.1f°C\n", rec.TempMin, rec.TempMax, rec.TempMean)
	fmt.Fprintf(&b, "Conditions: %s\n\n", rec.Condition)

	b.WriteString("Laundry:\n")
	switch rec.Drying {
	case analysis.DryingRain:
		b.WriteString("☔ Rain is expected today. Do not hang laundry outside; dry indoors or use a dryer.\n")
	case analysis.DryingDampRisk:
		b.WriteString("🌥 Laundry is fine outside, but it may stay damp; dry it in a well-ventilated spot.\n")
	default:
		b.WriteString("☀ Clear to hang laundry outside.\n")
	}

	if len(rec.RainToday) > 0 {
		b.WriteString("\nRain timing (today):\n")
		writeRainLines(&b, rec.RainToday)
	}
	if len(rec.RainTomorrow) > 0 {
		b.WriteString("\nRain timing (tomorrow):\n")
		writeRainLines(&b, rec.RainTomorrow)
	}

	b.WriteString("\nUmbrella:\n")
	switch rec.Umbrella {
	case analysis.UmbrellaRain:
		b.WriteString("☔ Bring a rain umbrella.")
		if rec.RainOnset != "" {
			fmt.Fprintf(&b, " Rain is expected from %s.", rec.RainOnset)
		}
		b.WriteString("\n")
	case analysis.UmbrellaSun:
		fmt.Fprintf(&b, "☀ Strong sun today (max %.1f°C); bring sun protection.\n", rec.TempMax)
	default:
		b.WriteString("✅ No umbrella needed today.\n")
	}

	return b.String()
}

func writeRainLines(b *strings.Builder, events []analysis.RainEvent) {
	for _, ev := range events {
		fmt.Fprintf(b, "  %s - %d%% chance, %.1fmm (%s)\n", ev.Clock, ev.Probability, ev.Volume, ev.Intensity)
	}
}

// FormatFooterTime renders the generation timestamp shown in the HTML
// footer, in the target location's local time.
func FormatFooterTime(now time.Time, offset time.Duration) string {
	return now.UTC().Add(offset).Format("2006-01-02 15:04") + " local time"
}

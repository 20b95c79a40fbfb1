package events

import (
	"encoding/json"
	"testing"

	"github.com/smukkama/weather-advisor/internal/analysis"
)

func TestNewAdvisory_Mapping(t *testing.T) {
	rec := &analysis.Recommendation{
		TempMin:   21.0,
		TempMax:   29.0,
		TempMean:  25.0,
		HasRain:   true,
		Drying:    analysis.DryingRain,
		Umbrella:  analysis.UmbrellaRain,
		RainOnset: "14:00",
	}

	adv := NewAdvisory(rec, "run-1", "2025-07-15", "Tokyo")

	if adv.RunID != "run-1" || adv.LocalDate != "2025-07-15" || adv.Location != "Tokyo" {
		t.Errorf("Unexpected identity fields: %+v", adv)
	}
	if !adv.RainToday || adv.Drying != analysis.DryingRain || adv.RainOnset != "14:00" {
		t.Errorf("Unexpected advice fields: %+v", adv)
	}
}

func TestAdvisory_JSONOmitsEmptyOnset(t *testing.T) {
	adv := &Advisory{
		RunID:     "run-2",
		LocalDate: "2025-07-16",
		Location:  "Tokyo",
		Drying:    analysis.DryingGood,
		Umbrella:  analysis.UmbrellaNotNeeded,
	}

	data, err := json.Marshal(adv)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if _, ok := decoded["rain_onset"]; ok {
		t.Error("Empty rain onset must be omitted from the event")
	}
	if decoded["drying"] != analysis.DryingGood {
		t.Errorf("Expected drying %q, got %v", analysis.DryingGood, decoded["drying"])
	}
}

package forecast

// Point is one 3-hour forecast sample. Optional upstream fields are
// pointers so "absent" stays distinguishable from a real zero value.
type Point struct {
	Timestamp   int64    // epoch seconds, UTC
	Temp        *float64 // °C
	Category    string   // primary condition, e.g. "Rain", "Clouds", "Clear"
	Description string   // free-text condition description
	Pop         *float64 // precipitation probability, 0.0-1.0
	Rain3h      *float64 // accumulated rain over the 3h window, mm
	Rain1h      *float64 // 1h accumulation, fallback when 3h is missing
}

// Volume returns the rain volume for the sample window, preferring the
// 3-hour accumulation over the 1-hour one, 0 when neither is present.
func (p Point) Volume() float64 {
	if p.Rain3h != nil {
		return *p.Rain3h
	}
	if p.Rain1h != nil {
		return *p.Rain1h
	}
	return 0
}

// Set is a chronologically ordered forecast for one location, as
// delivered by the provider. It may be empty.
type Set struct {
	Location string
	Points   []Point
}

package models

import "time"

// Coordinate is the fixed geographic point the panel observes.
// Immutable for the process lifetime; supplied once via config.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Snapshot holds the current-conditions observations retrieved in one
// fetch cycle. Nil fields mean the upstream payload omitted the value;
// the renderer degrades them to "N/A" rather than treating them as errors.
type Snapshot struct {
	ObservedAt  *string   `json:"observedAt,omitempty"`  // upstream local-time string, verbatim
	Temperature *float64  `json:"temperature,omitempty"` // °C
	WindSpeed   *float64  `json:"windSpeed,omitempty"`   // km/h
	WindBearing *float64  `json:"windBearing,omitempty"` // degrees, 0 = north, 90 = east
	FetchedAt   time.Time `json:"fetchedAt"`             // local wall-clock time of the fetch
}

package model

import "time"

// Frequency is the native reporting cadence of a raw series.
type Frequency string

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// Observation is one dated value of a raw series.
type Observation struct {
	Date  time.Time
	Value float64
}

// TimeSeries holds raw observations for one instrument or macro code.
// Immutable once ingested: observations are sorted by date with at most
// one value per calendar day.
type TimeSeries struct {
	ID           string
	Frequency    Frequency
	Observations []Observation
}

// Day strips the clock and timezone from t, so that sources annotated in
// exchange-local time and in UTC compare equal when they refer to the
// same calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

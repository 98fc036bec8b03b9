package cpet

import (
	"github.com/doctorfill-dev/TCP-report-generator/spreadsheetxml"
)

// SportType selects the zone model: the 5-zone endurance model or the
// simpler 3-zone model for other sports.
type SportType string

const (
	SportEndurance SportType = "endurance"
	SportOther     SportType = "other"
)

// Re-exported extraction types so callers only deal with this package.
type (
	ParsedTest = spreadsheetxml.ParsedTest
	Patient    = spreadsheetxml.Patient
	TestInfo   = spreadsheetxml.TestInfo
	Threshold  = spreadsheetxml.Threshold
	Sample     = spreadsheetxml.Sample
	TestType   = spreadsheetxml.TestType
)

const (
	TestRun  = spreadsheetxml.TestRun
	TestBike = spreadsheetxml.TestBike
)

// Limits bounds the physiological plausibility checks. The measurement
// bounds come from the device documentation; the value ranges are CPET
// plausibility windows and may be overridden per deployment.
type Limits struct {
	MinMeasurements int
	MaxDataPoints   int

	HeartRateMin float64
	HeartRateMax float64
	SpeedMin     float64
	SpeedMax     float64
	PowerMin     float64
	PowerMax     float64
	PeakVO2Min   float64
	PeakVO2Max   float64
	VO2PerKgMin  float64
	VO2PerKgMax  float64
}

// DefaultLimits returns the standard plausibility bounds.
func DefaultLimits() Limits {
	return Limits{
		MinMeasurements: 10,
		MaxDataPoints:   10000,
		HeartRateMin:    50,
		HeartRateMax:    230,
		SpeedMin:        3,
		SpeedMax:        30,
		PowerMin:        30,
		PowerMax:        600,
		PeakVO2Min:      0.5,
		PeakVO2Max:      7.5,
		VO2PerKgMin:     10,
		VO2PerKgMax:     90,
	}
}

// Report is the validated analysis bundle for one test file.
type Report struct {
	Patient  Patient  `json:"patient"`
	Test     TestInfo `json:"test"`
	AgeYears int      `json:"age_years,omitempty"`

	VT1      Threshold `json:"vt1"`
	VT2      Threshold `json:"vt2"`
	Peak     Threshold `json:"peak"`
	TestType TestType  `json:"test_type"`
	Sport    SportType `json:"sport"`

	SmoothedSeries []SmoothedPoint `json:"smoothed_series"`
	ZoneSegments   []Segment       `json:"zone_segments"`
	ZoneTable      []ZoneRange     `json:"zone_table"`
	Recommendation Recommendation  `json:"recommendation"`
	Notes          string          `json:"notes"`
}

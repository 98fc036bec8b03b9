package cpet

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/doctorfill-dev/TCP-report-generator/spreadsheetxml"
)

// Analyze runs the full pipeline on one raw export document: extraction,
// validation, smoothing, zone derivation and recommendation. It is pure and
// deterministic; it does no I/O and never partially succeeds.
func Analyze(xmlText string, sport SportType) (*Report, error) {
	return AnalyzeWithLimits(xmlText, sport, DefaultLimits())
}

// AnalyzeWithLimits is Analyze with caller-supplied plausibility bounds.
func AnalyzeWithLimits(xmlText string, sport SportType, limits Limits) (*Report, error) {
	if sport != SportOther {
		sport = SportEndurance
	}

	parsed, err := spreadsheetxml.Parse([]byte(xmlText))
	if err != nil {
		if errors.Is(err, spreadsheetxml.ErrMalformedInput) {
			return nil, newError(MalformedInput, err.Error())
		}
		return nil, newError(ExtractionFailure, fmt.Sprintf("extraction du test: %v", err))
	}

	// Extraction preserves document order; segment building needs
	// chronological order, which sparse exports do not guarantee.
	sort.SliceStable(parsed.Measurements, func(i, j int) bool {
		return parsed.Measurements[i].ElapsedSeconds < parsed.Measurements[j].ElapsedSeconds
	})

	if err := Validate(parsed, limits); err != nil {
		return nil, err
	}

	vt1HR := parsed.VT1.HeartRateBPM()
	vt2HR := parsed.VT2.HeartRateBPM()
	vt1Intensity := parsed.VT1.Intensity(parsed.TestType)
	vt2Intensity := parsed.VT2.Intensity(parsed.TestType)

	series := exerciseSamples(parsed.Measurements)

	report := &Report{
		Patient:        parsed.Patient,
		Test:           parsed.Test,
		AgeYears:       ageAtTest(parsed.Patient, parsed.Test),
		VT1:            parsed.VT1,
		VT2:            parsed.VT2,
		Peak:           parsed.Peak,
		TestType:       parsed.TestType,
		Sport:          sport,
		SmoothedSeries: SmoothSeries(series),
		ZoneSegments:   BuildSegments(series, vt1HR, vt2HR, sport),
		ZoneTable:      BuildZoneTable(vt1HR, vt2HR, vt1Intensity, vt2Intensity, sport, parsed.TestType),
		Recommendation: BuildRecommendation(vt1HR, vt2HR, vt1Intensity, parsed.Peak.VO2PerKgValue(), parsed.TestType),
	}
	report.Notes = BuildReportNotes(report)

	return report, nil
}

// ageAtTest derives the patient age in whole years from the birth date cells
// and the free-form test start time. Returns 0 when either side is
// unreadable.
func ageAtTest(p Patient, t TestInfo) int {
	birth, ok := parseBirthDate(p)
	if !ok {
		return 0
	}
	start, ok := parseStartTime(t.StartTime)
	if !ok {
		return 0
	}
	if start.Before(birth) {
		return 0
	}

	years := start.Year() - birth.Year()
	anniversary := time.Date(start.Year(), birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
	if start.Before(anniversary) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

func parseBirthDate(p Patient) (time.Time, bool) {
	composed := fmt.Sprintf("%s/%s/%s",
		strings.TrimSpace(p.BirthDay),
		strings.TrimSpace(p.BirthMonth),
		strings.TrimSpace(p.BirthYear),
	)
	t, err := time.Parse("2/1/2006", composed)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func parseStartTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	layouts := []string{
		"02/01/2006 15:04:05",
		"02/01/2006 15:04",
		"02/01/2006",
		"2/1/2006 15:04:05",
		"2/1/2006 15:04",
		"2/1/2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

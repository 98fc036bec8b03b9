package cpet

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/doctorfill-dev/TCP-report-generator/spreadsheetxml"
)

// Validate runs every plausibility check on the extracted record and returns
// a single ValidationFailure error carrying all violations, or nil. It never
// stops at the first violation; the caller renders the full diagnostic list.
func Validate(t *ParsedTest, limits Limits) error {
	var violations error
	add := func(format string, args ...any) {
		violations = multierr.Append(violations, fmt.Errorf(format, args...))
	}

	if strings.TrimSpace(t.Patient.FirstName) == "" {
		add("prénom du patient manquant")
	}
	if strings.TrimSpace(t.Patient.LastName) == "" {
		add("nom du patient manquant")
	}

	vt1HR, vt1HROK := checkRange(add, "FC du seuil 1", t.VT1.HeartRate, limits.HeartRateMin, limits.HeartRateMax, "bpm")
	vt2HR, vt2HROK := checkNumber(add, "FC du seuil 2", t.VT2.HeartRate)
	if vt1HROK && vt2HROK && vt2HR <= vt1HR {
		add("la FC du seuil 2 (%s) doit être supérieure à la FC du seuil 1 (%s)", t.VT2.HeartRate, t.VT1.HeartRate)
	}

	intensityLabel, raw1, raw2 := "vitesse", t.VT1.Speed, t.VT2.Speed
	intensityMin, intensityMax, unit := limits.SpeedMin, limits.SpeedMax, "km/h"
	if t.TestType == TestBike {
		intensityLabel, raw1, raw2 = "puissance", t.VT1.Power, t.VT2.Power
		intensityMin, intensityMax, unit = limits.PowerMin, limits.PowerMax, "W"
	}
	i1, i1OK := checkRange(add, intensityLabel+" du seuil 1", raw1, intensityMin, intensityMax, unit)
	i2, i2OK := checkRange(add, intensityLabel+" du seuil 2", raw2, intensityMin, intensityMax, unit)
	if i1OK && i2OK && i2 <= i1 {
		add("la %s du seuil 2 (%s) doit être supérieure à celle du seuil 1 (%s)", intensityLabel, raw2, raw1)
	}

	checkRange(add, "V'O2 pic", t.Peak.VO2, limits.PeakVO2Min, limits.PeakVO2Max, "L/min")
	checkRange(add, "V'O2/kg pic", t.Peak.VO2PerKg, limits.VO2PerKgMin, limits.VO2PerKgMax, "ml/min/kg")

	if n := len(t.Measurements); n < limits.MinMeasurements {
		add("insuffisant de mesures: %d (minimum %d)", n, limits.MinMeasurements)
	} else if n > limits.MaxDataPoints {
		add("trop de mesures: %d (maximum %d)", n, limits.MaxDataPoints)
	}

	if violations == nil {
		return nil
	}

	errs := multierr.Errors(violations)
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, capitalize(e.Error()))
	}
	return newError(ValidationFailure, messages...)
}

// checkNumber coerces a raw value and records a violation when it is
// unreadable. Returns the value and whether it is usable.
func checkNumber(add func(string, ...any), label, raw string) (float64, bool) {
	v, err := spreadsheetxml.ParseLocaleFloat(raw)
	if err != nil {
		add("valeur illisible pour %s: %q", label, raw)
		return 0, false
	}
	return v, true
}

// checkRange coerces a raw value and records a violation when it is
// unreadable or outside [min, max].
func checkRange(add func(string, ...any), label, raw string, min, max float64, unit string) (float64, bool) {
	v, ok := checkNumber(add, label, raw)
	if !ok {
		return 0, false
	}
	if v < min || v > max {
		add("%s hors limites: %s (attendu entre %g et %g %s)", label, raw, min, max, unit)
		return v, false
	}
	return v, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

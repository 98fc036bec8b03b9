package spreadsheetxml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// section is the extractor's position in the document. Sentinel rows in the
// first column switch sections; everything else is dispatched per section.
type section int

const (
	sectionNone section = iota
	sectionPatient
	sectionTest
	sectionSummary
	sectionMeasurement
)

// extract folds the expanded rows into a ParsedTest. The measurement section
// starts with a header row (first column "t") whose cells label every
// subsequent sample row until end of document.
func extract(rows [][]string) (*ParsedTest, error) {
	out := &ParsedTest{}
	sec := sectionNone
	var headers []string
	sawSection := false

	for _, cells := range rows {
		first := cellAt(cells, 0)

		switch first {
		case sectionLabelPatient:
			sec = sectionPatient
			sawSection = true
			continue
		case sectionLabelTest:
			sec = sectionTest
			sawSection = true
			continue
		case sectionLabelSummary:
			sec = sectionSummary
			sawSection = true
			continue
		case sectionLabelMeasurement:
			sec = sectionMeasurement
			sawSection = true
			headers = nil
			continue
		}

		switch sec {
		case sectionPatient:
			applyPatientRow(out, first, cells)
		case sectionTest:
			applyTestRow(out, first, cells)
		case sectionSummary:
			applySummaryRow(out, first, cells)
		case sectionMeasurement:
			if headers == nil {
				if first == measurementHeaderLabel {
					headers = append([]string(nil), cells...)
				}
				continue
			}
			if strings.Contains(first, ":") {
				out.Measurements = append(out.Measurements, buildSample(headers, cells))
			}
		}
	}

	if !sawSection {
		return nil, fmt.Errorf("aucune section reconnue dans le document")
	}

	inferPowerFallback(out)
	out.TestType = inferTestType(out)
	return out, nil
}

func applyPatientRow(out *ParsedTest, label string, cells []string) {
	value := cellAt(cells, 1)
	switch label {
	case rowLabelSurname:
		out.Patient.LastName = value
	case rowLabelFirstName:
		out.Patient.FirstName = value
	case rowLabelBirthDate:
		out.Patient.BirthDay = value
		out.Patient.BirthMonth = cellAt(cells, 2)
		out.Patient.BirthYear = cellAt(cells, 3)
		// Some exports collapse the birth date into a single dd/mm/yyyy cell.
		if out.Patient.BirthMonth == "" && strings.Count(value, "/") == 2 {
			parts := strings.SplitN(value, "/", 3)
			out.Patient.BirthDay = parts[0]
			out.Patient.BirthMonth = parts[1]
			out.Patient.BirthYear = parts[2]
		}
	case rowLabelSex:
		out.Patient.Sex = value
	case rowLabelWeight:
		out.Patient.Weight = value
	}
}

func applyTestRow(out *ParsedTest, label string, cells []string) {
	if label == rowLabelStartTime {
		out.Test.StartTime = cellAt(cells, 1)
	}
}

func applySummaryRow(out *ParsedTest, label string, cells []string) {
	v1 := cellAt(cells, colVT1-1)
	v2 := cellAt(cells, colVT2-1)
	pk := cellAt(cells, colPeak-1)

	switch label {
	case rowLabelVO2:
		out.VT1.VO2, out.VT2.VO2, out.Peak.VO2 = v1, v2, pk
	case rowLabelVO2PerKg:
		out.VT1.VO2PerKg, out.VT2.VO2PerKg, out.Peak.VO2PerKg = v1, v2, pk
	case rowLabelHeartRate:
		out.VT1.HeartRate, out.VT2.HeartRate, out.Peak.HeartRate = v1, v2, pk
	case rowLabelSpeed:
		out.VT1.Speed, out.VT2.Speed, out.Peak.Speed = v1, v2, pk
		out.SpeedAvailable = true
	case rowLabelPower:
		out.VT1.Power, out.VT2.Power, out.Peak.Power = v1, v2, pk
		out.PowerAvailable = true
	case rowLabelVentilation:
		out.VT1.Ventilation, out.VT2.Ventilation, out.Peak.Ventilation = v1, v2, pk
	}
}

func buildSample(headers, cells []string) Sample {
	raw := make(map[string]string, len(headers))
	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" || i >= len(cells) {
			continue
		}
		if v := strings.TrimSpace(cells[i]); v != "" {
			raw[h] = v
		}
	}

	return Sample{
		ElapsedSeconds: parseElapsedSeconds(cellAt(cells, 0)),
		HeartRate:      SafeLocaleFloat(raw[rowLabelHeartRate]),
		VO2:            SafeLocaleFloat(raw[rowLabelVO2]),
		Ventilation:    SafeLocaleFloat(raw[rowLabelVentilation]),
		Power:          SafeLocaleFloat(raw[rowLabelPower]),
		Phase:          raw[measurementPhaseColumn],
		Raw:            raw,
	}
}

// inferPowerFallback reconstructs per-threshold power from the raw samples
// when the summary table has no TT row but the samples carry instantaneous
// power. Each threshold takes the power of the sample whose heart rate is
// closest to the threshold target, under ordering constraints that keep VT1
// and VT2 candidates on the right side of their targets.
func inferPowerFallback(out *ParsedTest) {
	if out.PowerAvailable {
		return
	}
	anyPower := false
	for _, s := range out.Measurements {
		if s.Power > 0 {
			anyPower = true
			break
		}
	}
	if !anyPower {
		return
	}

	vt1HR := out.VT1.HeartRateBPM()
	vt2HR := out.VT2.HeartRateBPM()
	peakHR := out.Peak.HeartRateBPM()

	vt1OK := false
	vt2OK := false

	if vt1HR > 0 {
		if p, ok := closestPower(out.Measurements, vt1HR, func(hr float64) bool {
			return hr <= vt1HR+fallbackHRToleranceBPM
		}); ok {
			out.VT1.Power = formatPower(p)
			vt1OK = true
		}
	}
	if vt2HR > 0 {
		if p, ok := closestPower(out.Measurements, vt2HR, func(hr float64) bool {
			return hr > vt1HR && hr <= vt2HR+fallbackHRToleranceBPM
		}); ok {
			out.VT2.Power = formatPower(p)
			vt2OK = true
		}
	}
	if peakHR > 0 {
		if p, ok := closestPower(out.Measurements, peakHR, func(float64) bool { return true }); ok {
			out.Peak.Power = formatPower(p)
		}
	}

	if vt1OK && vt2OK {
		out.PowerAvailable = true
	}
}

// closestPower returns the power of the positive-power sample whose heart
// rate is nearest targetHR among samples accepted by the constraint.
func closestPower(samples []Sample, targetHR float64, accept func(hr float64) bool) (float64, bool) {
	best := math.MaxFloat64
	power := 0.0
	found := false
	for _, s := range samples {
		if s.Power <= 0 || s.HeartRate <= 0 || !accept(s.HeartRate) {
			continue
		}
		if diff := math.Abs(s.HeartRate - targetHR); diff < best {
			best = diff
			power = s.Power
			found = true
		}
	}
	return power, found
}

func formatPower(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// inferTestType decides run vs bike from which intensity signals the summary
// carries. When both are flagged, run wins unless both threshold speeds are
// zeroed, which some ergometer exports do while still emitting a v row.
func inferTestType(t *ParsedTest) TestType {
	switch {
	case t.PowerAvailable && !t.SpeedAvailable:
		return TestBike
	case t.SpeedAvailable && !t.PowerAvailable:
		return TestRun
	case t.SpeedAvailable && t.PowerAvailable:
		if t.VT1.SpeedKmh() <= 0 && t.VT2.SpeedKmh() <= 0 {
			return TestBike
		}
		return TestRun
	default:
		return TestRun
	}
}

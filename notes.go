package cpet

import (
	"fmt"
	"strings"
)

// BuildReportNotes renders the analysis bundle as a plain-text report.
func BuildReportNotes(r *Report) string {
	if r == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Test d'effort: %s %s\n", r.Patient.FirstName, r.Patient.LastName)
	if r.AgeYears > 0 || r.Patient.Sex != "" || r.Patient.Weight != "" {
		parts := make([]string, 0, 3)
		if r.AgeYears > 0 {
			parts = append(parts, fmt.Sprintf("Âge: %d ans", r.AgeYears))
		}
		if r.Patient.Sex != "" {
			parts = append(parts, "Sexe: "+r.Patient.Sex)
		}
		if r.Patient.Weight != "" {
			parts = append(parts, "Poids: "+r.Patient.Weight+" kg")
		}
		b.WriteString(strings.Join(parts, " | "))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Type de test: %s | Modèle de zones: %s\n", testTypeLabel(r.TestType), sportLabel(r.Sport))

	unit := "km/h"
	if r.TestType == TestBike {
		unit = "W"
	}
	b.WriteString("\nSeuils ventilatoires\n")
	fmt.Fprintf(&b, "- Seuil 1: %s bpm | %s %s | V'O2 %s L/min\n",
		r.VT1.HeartRate, intensityRaw(r.VT1, r.TestType), unit, r.VT1.VO2)
	fmt.Fprintf(&b, "- Seuil 2: %s bpm | %s %s | V'O2 %s L/min\n",
		r.VT2.HeartRate, intensityRaw(r.VT2, r.TestType), unit, r.VT2.VO2)
	fmt.Fprintf(&b, "- Pic:     %s bpm | V'O2 %s L/min | V'O2/kg %s ml/min/kg\n",
		r.Peak.HeartRate, r.Peak.VO2, r.Peak.VO2PerKg)

	b.WriteString("\nZones d'entraînement\n")
	for _, z := range r.ZoneTable {
		fmt.Fprintf(&b, "- %s | FC %s bpm | %s %s\n", z.Label, z.HeartRate, z.Intensity, unit)
	}

	if len(r.ZoneSegments) > 0 {
		b.WriteString("\nDéroulé du test\n")
		for _, seg := range r.ZoneSegments {
			fmt.Fprintf(&b, "- %s: %s -> %s\n", seg.Zone, formatClock(seg.StartSeconds), formatClock(seg.EndSeconds))
		}
	}

	b.WriteString("\nAnalyse\n")
	fmt.Fprintf(&b, "- %s\n", r.Recommendation.Analysis)
	fmt.Fprintf(&b, "- Niveau: %s\n", fitnessLabel(r.Recommendation.FitnessLevel))

	b.WriteString("\nRecommandations\n")
	fmt.Fprintf(&b, "- %s\n", r.Recommendation.PriorityWork)
	fmt.Fprintf(&b, "- %s\n", r.Recommendation.Complementary)
	fmt.Fprintf(&b, "- %s\n", r.Recommendation.HighIntensity)
	if r.Recommendation.Warning != "" {
		fmt.Fprintf(&b, "- %s\n", r.Recommendation.Warning)
	}
	fmt.Fprintf(&b, "- %s\n", r.Recommendation.FollowUp)

	return strings.TrimSpace(b.String())
}

func intensityRaw(t Threshold, tt TestType) string {
	if tt == TestBike {
		return t.Power
	}
	return t.Speed
}

func testTypeLabel(tt TestType) string {
	if tt == TestBike {
		return "vélo"
	}
	return "course"
}

func sportLabel(s SportType) string {
	if s == SportOther {
		return "3 zones"
	}
	return "5 zones (endurance)"
}

func fitnessLabel(level FitnessLevel) string {
	switch level {
	case FitnessDeconditioned:
		return "D (déconditionné)"
	case FitnessAdvanced:
		return "A (avancé)"
	default:
		return "I (intermédiaire)"
	}
}

func formatClock(seconds float64) string {
	s := int(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}

package cpet

import (
	"fmt"
	"math"
)

// FitnessLevel tags aerobic capacity from peak VO2/kg.
type FitnessLevel string

const (
	FitnessDeconditioned FitnessLevel = "D"
	FitnessIntermediate  FitnessLevel = "I"
	FitnessAdvanced      FitnessLevel = "A"
)

// Recommendation is the qualitative training guidance derived from the
// threshold spread and aerobic capacity.
type Recommendation struct {
	Analysis      string       `json:"analysis"`
	FitnessLevel  FitnessLevel `json:"fitness_level"`
	PriorityWork  string       `json:"priority_work"`
	Complementary string       `json:"complementary_work"`
	HighIntensity string       `json:"high_intensity"`
	Warning       string       `json:"warning,omitempty"`
	FollowUp      string       `json:"follow_up"`
}

// BuildRecommendation maps the threshold spread and VO2/kg capacity to fixed
// guidance sentences, parameterized by the test type's units and activity.
func BuildRecommendation(vt1HR, vt2HR, vt1Intensity, vo2PerKg float64, tt TestType) Recommendation {
	width := vt2HR - vt1HR

	var analysis string
	switch {
	case width < 8:
		analysis = fmt.Sprintf("Écart entre seuils très étroit (%.0f bpm): la transition aérobie-anaérobie est brutale et la base aérobie limite la progression.", width)
	case width < 12:
		analysis = fmt.Sprintf("Écart entre seuils étroit (%.0f bpm): la plage d'endurance intensive est réduite, le développement de la base aérobie reste prioritaire.", width)
	case width < 18:
		analysis = fmt.Sprintf("Écart entre seuils modéré (%.0f bpm): profil équilibré entre base aérobie et capacité au seuil.", width)
	default:
		analysis = fmt.Sprintf("Écart entre seuils large (%.0f bpm): large plage d'intensités exploitable entre les deux seuils.", width)
	}

	var level FitnessLevel
	switch {
	case vo2PerKg < 35:
		level = FitnessDeconditioned
	case vo2PerKg >= 45:
		level = FitnessAdvanced
	default:
		level = FitnessIntermediate
	}

	unit := "km/h"
	activity := "la course"
	if tt == TestBike {
		unit = "W"
		activity = "le vélo"
	}
	intensity := formatIntensity(vt1Intensity, tt)

	rec := Recommendation{
		Analysis:     analysis,
		FitnessLevel: level,
		FollowUp:     "Refaire un test d'effort dans 8 à 12 semaines pour réévaluer les seuils et ajuster les zones.",
	}

	switch level {
	case FitnessDeconditioned:
		rec.PriorityWork = fmt.Sprintf("Priorité au volume en zones 1-2: pratiquer %s sous %s %s (seuil 1), 3 à 4 séances par semaine.", activity, intensity, unit)
		rec.Complementary = "En complément: renforcement musculaire léger et mobilité, 1 à 2 séances par semaine."
		rec.HighIntensity = "Éviter la haute intensité tant que la capacité aérobie de base n'est pas reconstruite."
	case FitnessAdvanced:
		rec.PriorityWork = fmt.Sprintf("Priorité au travail au seuil pour %s: blocs en zone 3-4 autour de %s %s, en conservant une majorité du volume en zone 2.", activity, intensity, unit)
		rec.Complementary = "En complément: une séance longue en zone 2 par semaine pour entretenir la base aérobie."
		rec.HighIntensity = "Haute intensité possible en zone 5, au plus 1 à 2 séances par semaine avec récupération complète."
	default:
		rec.PriorityWork = fmt.Sprintf("Priorité à l'endurance en zone 2: la majorité du volume pour %s sous %s %s, avec progression régulière de la durée.", activity, intensity, unit)
		rec.Complementary = "En complément: un travail au seuil (zone 3) une fois par semaine."
		rec.HighIntensity = "Limiter la haute intensité à une séance courte par semaine tant que l'écart entre seuils ne s'élargit pas."
	}

	mid := math.Round((vt1HR + vt2HR) / 2)
	if mid-vt1HR < 5 {
		rec.Warning = "Attention: la zone 2 est très étroite (moins de 5 bpm); le respect des consignes demande une mesure de FC précise."
	}

	return rec
}

func formatIntensity(v float64, tt TestType) string {
	if tt == TestBike {
		return fmt.Sprintf("%d", int(math.Round(v)))
	}
	return fmt.Sprintf("%.1f", v)
}

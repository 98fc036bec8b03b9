package cpet

import (
	"fmt"
	"math"
)

// Zone is a training-intensity band relative to the two ventilatory
// thresholds. The endurance model uses Z1..Z5, the other-sports model Z1..Z3.
type Zone int

const (
	Z1 Zone = iota + 1
	Z2
	Z3
	Z4
	Z5
)

// minSegmentSeconds is the shortest zone segment kept on the timeline;
// shorter runs are classification noise near threshold crossings and merge
// into their predecessor.
const minSegmentSeconds = 15.0

var zoneColors = map[Zone]string{
	Z1: "#4fc3f7",
	Z2: "#66bb6a",
	Z3: "#ffee58",
	Z4: "#ffa726",
	Z5: "#ef5350",
}

var zoneLabels = map[Zone]string{
	Z1: "Z1 - Récupération / endurance fondamentale",
	Z2: "Z2 - Endurance",
	Z3: "Z3 - Tempo",
	Z4: "Z4 - Seuil",
	Z5: "Z5 - VO2max",
}

var zoneLabels3 = map[Zone]string{
	Z1: "Z1 - Sous le seuil 1",
	Z2: "Z2 - Entre les seuils",
	Z3: "Z3 - Au-dessus du seuil 2",
}

func (z Zone) String() string { return fmt.Sprintf("Z%d", int(z)) }

// Color returns the display color for the zone.
func (z Zone) Color() string { return zoneColors[z] }

// ClassifyHeartRate assigns a heart rate to a zone relative to the two
// threshold heart rates. The endurance model splits the sub-VT2 range at the
// midpoint and caps Z4 at 105% of VT2; the other model is the plain 3-zone
// split at the thresholds. Classification is monotonic in heart rate.
func ClassifyHeartRate(hr, vt1, vt2 float64, sport SportType) Zone {
	if sport == SportOther {
		switch {
		case hr < vt1:
			return Z1
		case hr < vt2:
			return Z2
		default:
			return Z3
		}
	}

	mid := math.Round((vt1 + vt2) / 2)
	z4max := math.Round(vt2 * 1.05)
	switch {
	case hr < vt1:
		return Z1
	case hr < mid:
		return Z2
	case hr < vt2:
		return Z3
	case hr <= z4max:
		return Z4
	default:
		return Z5
	}
}

// Segment is a maximal contiguous stretch of samples sharing one zone.
type Segment struct {
	Zone         Zone    `json:"zone"`
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	Color        string  `json:"color"`
}

// BuildSegments classifies each sample and compresses the chronologically
// sorted series into colored zone segments, merging short-lived runs.
func BuildSegments(samples []Sample, vt1, vt2 float64, sport SportType) []Segment {
	if len(samples) == 0 {
		return nil
	}

	segments := make([]Segment, 0, 16)
	for _, s := range samples {
		z := ClassifyHeartRate(s.HeartRate, vt1, vt2, sport)
		if n := len(segments); n > 0 && segments[n-1].Zone == z {
			segments[n-1].EndSeconds = s.ElapsedSeconds
			continue
		}
		segments = append(segments, Segment{
			Zone:         z,
			StartSeconds: s.ElapsedSeconds,
			EndSeconds:   s.ElapsedSeconds,
			Color:        z.Color(),
		})
	}

	return mergeShortSegments(segments)
}

// mergeShortSegments folds any segment shorter than minSegmentSeconds into
// its predecessor by extending the predecessor's end time. The first segment
// has no predecessor and is kept regardless of duration. The pass is
// idempotent: kept segments only ever grow.
func mergeShortSegments(segments []Segment) []Segment {
	if len(segments) == 0 {
		return segments
	}
	merged := segments[:1:1]
	for _, seg := range segments[1:] {
		if seg.EndSeconds-seg.StartSeconds < minSegmentSeconds {
			merged[len(merged)-1].EndSeconds = seg.EndSeconds
			continue
		}
		merged = append(merged, seg)
	}
	return merged
}

// ZoneRange is one row of the reporting zone table: human-readable heart
// rate and intensity bounds for a zone.
type ZoneRange struct {
	Zone      Zone   `json:"zone"`
	Label     string `json:"label"`
	HeartRate string `json:"heart_rate"`
	Intensity string `json:"intensity"`
	Color     string `json:"color"`
}

// BuildZoneTable computes the per-zone heart-rate and intensity ranges from
// the two thresholds, using the same midpoint and 105% formulas as the
// classifier. Heart-rate bounds come from the rounded threshold values, so
// adjacent rows stay contiguous even for fractional thresholds. Intensity is
// formatted with one decimal for running speeds and as whole watts for
// cycling power.
func BuildZoneTable(vt1HR, vt2HR, vt1I, vt2I float64, sport SportType, tt TestType) []ZoneRange {
	f := func(v float64) string {
		if tt == TestBike {
			return fmt.Sprintf("%d", int(math.Round(v)))
		}
		return fmt.Sprintf("%.1f", v)
	}
	hr := func(v int) string { return fmt.Sprintf("%d", v) }

	vt1R := int(math.Round(vt1HR))
	vt2R := int(math.Round(vt2HR))

	if sport == SportOther {
		return []ZoneRange{
			{Z1, zoneLabels3[Z1], "< " + hr(vt1R), "< " + f(vt1I), Z1.Color()},
			{Z2, zoneLabels3[Z2], hr(vt1R) + " - " + hr(vt2R-1), f(vt1I) + " - " + f(vt2I), Z2.Color()},
			{Z3, zoneLabels3[Z3], "≥ " + hr(vt2R), "≥ " + f(vt2I), Z3.Color()},
		}
	}

	midR := int(math.Round((vt1HR + vt2HR) / 2))
	z4maxR := int(math.Round(vt2HR * 1.05))
	midI := (vt1I + vt2I) / 2
	z4maxI := vt2I * 1.05

	return []ZoneRange{
		{Z1, zoneLabels[Z1], "< " + hr(vt1R), "< " + f(vt1I), Z1.Color()},
		{Z2, zoneLabels[Z2], hr(vt1R) + " - " + hr(midR-1), f(vt1I) + " - " + f(midI), Z2.Color()},
		{Z3, zoneLabels[Z3], hr(midR) + " - " + hr(vt2R-1), f(midI) + " - " + f(vt2I), Z3.Color()},
		{Z4, zoneLabels[Z4], hr(vt2R) + " - " + hr(z4maxR), f(vt2I) + " - " + f(z4maxI), Z4.Color()},
		{Z5, zoneLabels[Z5], "> " + hr(z4maxR), "> " + f(z4maxI), Z5.Color()},
	}
}

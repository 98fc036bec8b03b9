package cpet

import (
	"math"
	"strings"
)

const (
	// smoothingWindow is the moving-average span, in samples, applied to the
	// display series.
	smoothingWindow = 30
	// maxDisplayPoints caps the decimated series length.
	maxDisplayPoints = 2000
	// restFallbackCap bounds the series when only explicit rest phases could
	// be filtered out.
	restFallbackCap = 500
)

// SmoothedPoint is one plotted point of the decimated display series.
type SmoothedPoint struct {
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	VO2            float64 `json:"vo2"`
	HeartRate      float64 `json:"heart_rate"`
	Ventilation    float64 `json:"ventilation"`
}

// exerciseSamples keeps the exercise-phase samples and rebases elapsed time
// to start at zero. Rest and recovery phases are excluded; if that removes
// everything (some exports label every row), only explicit rest phases are
// dropped and the series is capped.
func exerciseSamples(samples []Sample) []Sample {
	filtered := filterPhases(samples, func(p string) bool {
		return !isRestPhase(p) && !isRecoveryPhase(p)
	})
	if len(filtered) == 0 {
		filtered = filterPhases(samples, func(p string) bool { return !isRestPhase(p) })
		if len(filtered) > restFallbackCap {
			filtered = filtered[:restFallbackCap]
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	base := filtered[0].ElapsedSeconds
	out := make([]Sample, len(filtered))
	for i, s := range filtered {
		s.ElapsedSeconds -= base
		out[i] = s
	}
	return out
}

func filterPhases(samples []Sample, keep func(phase string) bool) []Sample {
	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if keep(s.Phase) {
			out = append(out, s)
		}
	}
	return out
}

func isRestPhase(phase string) bool {
	p := strings.ToLower(phase)
	return strings.Contains(p, "repos") || strings.Contains(p, "rest")
}

func isRecoveryPhase(phase string) bool {
	p := strings.ToLower(phase)
	return strings.Contains(p, "récup") || strings.Contains(p, "recup") || strings.Contains(p, "recovery")
}

// SmoothSeries reduces the exercise series to a bounded, smoothed display
// series. Short inputs get a single global average per channel; longer
// inputs are decimated to at most maxDisplayPoints and smoothed with a
// centered moving average over the retained samples.
func SmoothSeries(samples []Sample) []SmoothedPoint {
	n := len(samples)
	if n == 0 {
		return nil
	}

	if n < smoothingWindow {
		var vo2, hr, ve float64
		for _, s := range samples {
			vo2 += s.VO2
			hr += s.HeartRate
			ve += s.Ventilation
		}
		count := float64(n)
		out := make([]SmoothedPoint, n)
		for i, s := range samples {
			out[i] = SmoothedPoint{
				ElapsedSeconds: s.ElapsedSeconds,
				VO2:            round2(vo2 / count),
				HeartRate:      math.Round(hr / count),
				Ventilation:    round2(ve / count),
			}
		}
		return out
	}

	stride := n / maxDisplayPoints
	if stride < 1 {
		stride = 1
	}
	retained := make([]Sample, 0, n/stride+1)
	for i := 0; i < n; i += stride {
		retained = append(retained, samples[i])
	}

	side := smoothingWindow / stride
	out := make([]SmoothedPoint, len(retained))
	for i, s := range retained {
		lo := i - side
		if lo < 0 {
			lo = 0
		}
		hi := i + side
		if hi >= len(retained) {
			hi = len(retained) - 1
		}

		var vo2, hr, ve float64
		for j := lo; j <= hi; j++ {
			vo2 += retained[j].VO2
			hr += retained[j].HeartRate
			ve += retained[j].Ventilation
		}
		count := float64(hi - lo + 1)
		out[i] = SmoothedPoint{
			ElapsedSeconds: s.ElapsedSeconds,
			VO2:            round2(vo2 / count),
			HeartRate:      math.Round(hr / count),
			Ventilation:    round2(ve / count),
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

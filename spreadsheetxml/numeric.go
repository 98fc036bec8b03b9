package spreadsheetxml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseLocaleFloat parses a numeric string that may use either "." or ","
// as decimal separator, as the device writes French-locale numbers.
func ParseLocaleFloat(s string) (float64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	normalized := strings.ReplaceAll(trimmed, ",", ".")
	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, fmt.Errorf("parse numeric value %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite numeric value %q", s)
	}
	return v, nil
}

// SafeLocaleFloat is the fallback-to-zero variant of ParseLocaleFloat.
func SafeLocaleFloat(s string) float64 {
	v, err := ParseLocaleFloat(s)
	if err != nil {
		return 0
	}
	return v
}

// parseElapsedSeconds converts a "h:mm:ss,ms" timestamp cell into elapsed
// seconds. Missing or malformed subfields count as zero; the device drops
// leading fields for short tests.
func parseElapsedSeconds(s string) float64 {
	parts := strings.Split(strings.TrimSpace(s), ":")

	var hours, minutes float64
	secPart := ""
	switch len(parts) {
	case 3:
		hours = safeSubfield(parts[0])
		minutes = safeSubfield(parts[1])
		secPart = parts[2]
	case 2:
		minutes = safeSubfield(parts[0])
		secPart = parts[1]
	case 1:
		secPart = parts[0]
	default:
		if len(parts) > 3 {
			hours = safeSubfield(parts[0])
			minutes = safeSubfield(parts[1])
			secPart = parts[2]
		}
	}

	var seconds, millis float64
	if secPart != "" {
		secFields := strings.SplitN(secPart, ",", 2)
		seconds = safeSubfield(secFields[0])
		if len(secFields) == 2 {
			millis = safeSubfield(secFields[1])
		}
	}

	return hours*3600 + minutes*60 + seconds + millis/1000.0
}

func safeSubfield(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

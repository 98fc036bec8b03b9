package cpet

import (
	"reflect"
	"testing"
)

func TestClassifyHeartRateMonotonic(t *testing.T) {
	for _, sport := range []SportType{SportEndurance, SportOther} {
		prev := Z1
		for hr := 40.0; hr <= 220; hr++ {
			z := ClassifyHeartRate(hr, 120, 150, sport)
			if z < prev {
				t.Fatalf("sport %q: zone dropped from %s to %s at hr=%v", sport, prev, z, hr)
			}
			prev = z
		}
	}
}

func TestClassifyHeartRateEnduranceBoundaries(t *testing.T) {
	// vt1=120, vt2=150: midpoint 135, Z4 cap round(150*1.05)=158.
	cases := []struct {
		hr   float64
		want Zone
	}{
		{119, Z1}, {120, Z2}, {134, Z2}, {135, Z3}, {149, Z3},
		{150, Z4}, {158, Z4}, {159, Z5},
	}
	for _, tc := range cases {
		if got := ClassifyHeartRate(tc.hr, 120, 150, SportEndurance); got != tc.want {
			t.Fatalf("hr=%v: got %s, want %s", tc.hr, got, tc.want)
		}
	}
}

func TestClassifyHeartRateThreeZone(t *testing.T) {
	cases := []struct {
		hr   float64
		want Zone
	}{
		{119, Z1}, {120, Z2}, {149, Z2}, {150, Z3}, {200, Z3},
	}
	for _, tc := range cases {
		if got := ClassifyHeartRate(tc.hr, 120, 150, SportOther); got != tc.want {
			t.Fatalf("hr=%v: got %s, want %s", tc.hr, got, tc.want)
		}
	}
}

func segmentSamples() []Sample {
	var samples []Sample
	add := func(from, to, hr float64) {
		for ts := from; ts <= to; ts += 5 {
			samples = append(samples, Sample{ElapsedSeconds: ts, HeartRate: hr})
		}
	}
	add(0, 60, 100)   // Z1
	add(65, 70, 200)  // Z5 blip, 5 seconds
	add(75, 150, 100) // Z1 again
	return samples
}

func TestBuildSegmentsMergesShortRuns(t *testing.T) {
	segments := BuildSegments(segmentSamples(), 120, 150, SportEndurance)
	if len(segments) != 2 {
		t.Fatalf("got %d segments, want 2: %+v", len(segments), segments)
	}
	if segments[0].Zone != Z1 || segments[1].Zone != Z1 {
		t.Fatalf("expected the Z5 blip folded into Z1, got %+v", segments)
	}
	if segments[0].EndSeconds != 70 {
		t.Fatalf("first segment end = %v, want 70 (absorbing the blip)", segments[0].EndSeconds)
	}
	for i, seg := range segments[1:] {
		if seg.EndSeconds-seg.StartSeconds < minSegmentSeconds {
			t.Fatalf("segment %d shorter than %v seconds: %+v", i+1, minSegmentSeconds, seg)
		}
	}
	if segments[0].Color != Z1.Color() {
		t.Fatalf("segment color = %q, want %q", segments[0].Color, Z1.Color())
	}
}

func TestMergeShortSegmentsIdempotent(t *testing.T) {
	once := BuildSegments(segmentSamples(), 120, 150, SportEndurance)
	twice := mergeShortSegments(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merge not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestBuildZoneTableEnduranceRun(t *testing.T) {
	table := BuildZoneTable(120, 150, 8, 12, SportEndurance, TestRun)
	if len(table) != 5 {
		t.Fatalf("got %d rows, want 5", len(table))
	}
	wantHR := []string{"< 120", "120 - 134", "135 - 149", "150 - 158", "> 158"}
	wantI := []string{"< 8.0", "8.0 - 10.0", "10.0 - 12.0", "12.0 - 12.6", "> 12.6"}
	for i, row := range table {
		if row.HeartRate != wantHR[i] {
			t.Fatalf("row %d heart rate = %q, want %q", i, row.HeartRate, wantHR[i])
		}
		if row.Intensity != wantI[i] {
			t.Fatalf("row %d intensity = %q, want %q", i, row.Intensity, wantI[i])
		}
		if row.Zone != Zone(i+1) {
			t.Fatalf("row %d zone = %s", i, row.Zone)
		}
	}
}

func TestBuildZoneTableFractionalThresholds(t *testing.T) {
	// vt1=119.6 rounds to 120, vt2=149.5 to 150; midpoint round(134.55)=135,
	// Z4 cap round(149.5*1.05)=157. Rows must stay contiguous after rounding.
	table := BuildZoneTable(119.6, 149.5, 8, 12, SportEndurance, TestRun)
	wantHR := []string{"< 120", "120 - 134", "135 - 149", "150 - 157", "> 157"}
	for i, row := range table {
		if row.HeartRate != wantHR[i] {
			t.Fatalf("row %d heart rate = %q, want %q", i, row.HeartRate, wantHR[i])
		}
	}

	three := BuildZoneTable(120.4, 149.5, 180, 260, SportOther, TestBike)
	if three[1].HeartRate != "120 - 149" || three[2].HeartRate != "≥ 150" {
		t.Fatalf("3-zone rows not contiguous: %+v", three[1:])
	}
}

func TestBuildZoneTableOtherBike(t *testing.T) {
	table := BuildZoneTable(120, 150, 180, 260, SportOther, TestBike)
	if len(table) != 3 {
		t.Fatalf("got %d rows, want 3", len(table))
	}
	if table[0].HeartRate != "< 120" || table[0].Intensity != "< 180" {
		t.Fatalf("Z1 row = %+v", table[0])
	}
	if table[1].HeartRate != "120 - 149" || table[1].Intensity != "180 - 260" {
		t.Fatalf("Z2 row = %+v", table[1])
	}
	if table[2].HeartRate != "≥ 150" || table[2].Intensity != "≥ 260" {
		t.Fatalf("Z3 row = %+v", table[2])
	}
}

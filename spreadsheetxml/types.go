package spreadsheetxml

// Device-export constants. The summary table places VT1/VT2/peak values at
// fixed 1-based column offsets, and the power-fallback matcher tolerates a
// small overshoot above the target heart rate. Both are tied to the
// documented export format and are not inferred from the file.
const (
	colVT1  = 5
	colVT2  = 8
	colPeak = 11

	fallbackHRToleranceBPM = 5.0
)

// Section sentinels and row labels as emitted by the device (French export).
const (
	sectionLabelPatient     = "Données du patient"
	sectionLabelTest        = "Données test"
	sectionLabelSummary     = "Tableau Résumé"
	sectionLabelMeasurement = "Measurement Data"

	rowLabelSurname   = "Nom"
	rowLabelFirstName = "Prénom"
	rowLabelBirthDate = "Date de Naissance"
	rowLabelSex       = "Sexe"
	rowLabelWeight    = "Poids"
	rowLabelStartTime = "Heure de début"

	rowLabelVO2         = "V'O2"
	rowLabelVO2PerKg    = "V'O2/kg"
	rowLabelHeartRate   = "FC"
	rowLabelSpeed       = "v"
	rowLabelPower       = "TT"
	rowLabelVentilation = "V'E"

	measurementHeaderLabel = "t"
	measurementPhaseColumn = "Phase"
)

// TestType describes which intensity signal drives the test.
type TestType string

const (
	TestRun  TestType = "run"
	TestBike TestType = "bike"
)

// Patient holds the patient-info section verbatim. Weight stays a raw
// locale-formatted string; the birth date keeps its day/month/year cells.
type Patient struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	BirthDay   string `json:"birth_day"`
	BirthMonth string `json:"birth_month"`
	BirthYear  string `json:"birth_year"`
	Sex        string `json:"sex"`
	Weight     string `json:"weight"`
}

// TestInfo holds the test-info section. StartTime is free-form and only used
// downstream for age computation.
type TestInfo struct {
	StartTime string `json:"start_time"`
}

// Threshold holds one column triple of the summary table (VT1, VT2 or peak).
// Values stay raw strings at extraction time and are coerced on demand.
type Threshold struct {
	HeartRate   string `json:"heart_rate"`
	Speed       string `json:"speed"`
	Power       string `json:"power"`
	VO2         string `json:"vo2"`
	VO2PerKg    string `json:"vo2_per_kg"`
	Ventilation string `json:"ventilation"`
}

// HeartRateBPM returns the threshold heart rate, 0 when absent or unreadable.
func (t Threshold) HeartRateBPM() float64 { return SafeLocaleFloat(t.HeartRate) }

// SpeedKmh returns the threshold speed in km/h, 0 when absent or unreadable.
func (t Threshold) SpeedKmh() float64 { return SafeLocaleFloat(t.Speed) }

// PowerWatts returns the threshold power in watts, 0 when absent or unreadable.
func (t Threshold) PowerWatts() float64 { return SafeLocaleFloat(t.Power) }

// VO2LMin returns the threshold oxygen uptake in L/min.
func (t Threshold) VO2LMin() float64 { return SafeLocaleFloat(t.VO2) }

// VO2PerKgValue returns the threshold oxygen uptake in ml/min/kg.
func (t Threshold) VO2PerKgValue() float64 { return SafeLocaleFloat(t.VO2PerKg) }

// VentilationLMin returns the threshold minute ventilation in L/min.
func (t Threshold) VentilationLMin() float64 { return SafeLocaleFloat(t.Ventilation) }

// Intensity returns the sport-specific intensity value for the test type:
// speed for running tests, power for cycling tests.
func (t Threshold) Intensity(tt TestType) float64 {
	if tt == TestBike {
		return t.PowerWatts()
	}
	return t.SpeedKmh()
}

// Sample is one measurement row. Insertion order is chronological order.
type Sample struct {
	ElapsedSeconds float64           `json:"elapsed_seconds"`
	HeartRate      float64           `json:"heart_rate"`
	VO2            float64           `json:"vo2"`
	Ventilation    float64           `json:"ventilation"`
	Power          float64           `json:"power,omitempty"`
	Phase          string            `json:"phase,omitempty"`
	Raw            map[string]string `json:"raw,omitempty"`
}

// ParsedTest is the structured record extracted from one export file. It is
// built once per file and not mutated after validation succeeds.
type ParsedTest struct {
	Patient      Patient   `json:"patient"`
	Test         TestInfo  `json:"test"`
	VT1          Threshold `json:"vt1"`
	VT2          Threshold `json:"vt2"`
	Peak         Threshold `json:"peak"`
	Measurements []Sample  `json:"measurements"`
	TestType     TestType  `json:"test_type"`

	SpeedAvailable bool `json:"speed_available"`
	PowerAvailable bool `json:"power_available"`
}

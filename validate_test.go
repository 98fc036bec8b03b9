package cpet

import (
	"errors"
	"strings"
	"testing"
)

func validParsedTest() *ParsedTest {
	p := &ParsedTest{TestType: TestRun}
	p.Patient.FirstName = "Jane"
	p.Patient.LastName = "Doe"
	p.VT1 = Threshold{HeartRate: "120", Speed: "8,0", VO2: "1,5", VO2PerKg: "24"}
	p.VT2 = Threshold{HeartRate: "150", Speed: "12,0", VO2: "2,4", VO2PerKg: "38"}
	p.Peak = Threshold{HeartRate: "185", Speed: "15,5", VO2: "3,0", VO2PerKg: "45"}
	for i := 0; i < 12; i++ {
		p.Measurements = append(p.Measurements, Sample{ElapsedSeconds: float64(i)})
	}
	return p
}

func validationMessages(t *testing.T, err error) []string {
	t.Helper()
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if cerr.Kind != ValidationFailure {
		t.Fatalf("kind = %q, want validation_failure", cerr.Kind)
	}
	return cerr.Messages
}

func requireMessage(t *testing.T, messages []string, substr string) {
	t.Helper()
	for _, m := range messages {
		if strings.Contains(m, substr) {
			return
		}
	}
	t.Fatalf("no message contains %q in %v", substr, messages)
}

func TestValidateAcceptsCompleteRecord(t *testing.T) {
	if err := Validate(validParsedTest(), DefaultLimits()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateThresholdOrdering(t *testing.T) {
	p := validParsedTest()
	p.VT2.HeartRate = "100"
	messages := validationMessages(t, Validate(p, DefaultLimits()))
	requireMessage(t, messages, "La FC du seuil 2 (100) doit être supérieure à la FC du seuil 1 (120)")
}

func TestValidateAccumulatesAllViolations(t *testing.T) {
	p := validParsedTest()
	p.Patient.FirstName = " "
	p.VT2.HeartRate = "100"
	p.Measurements = p.Measurements[:5]
	messages := validationMessages(t, Validate(p, DefaultLimits()))
	if len(messages) < 3 {
		t.Fatalf("expected at least 3 violations, got %v", messages)
	}
	requireMessage(t, messages, "Prénom du patient manquant")
	requireMessage(t, messages, "FC du seuil 2 (100)")
	requireMessage(t, messages, "Insuffisant de mesures: 5 (minimum 10)")
}

func TestValidateMeasurementCountBounds(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxDataPoints = 20

	p := validParsedTest()
	for i := 12; i < 25; i++ {
		p.Measurements = append(p.Measurements, Sample{ElapsedSeconds: float64(i)})
	}
	messages := validationMessages(t, Validate(p, limits))
	requireMessage(t, messages, "Trop de mesures: 25 (maximum 20)")
}

func TestValidateBikeUsesPowerLimits(t *testing.T) {
	p := validParsedTest()
	p.TestType = TestBike
	p.VT1.Power = "130"
	p.VT2.Power = "700" // above the power ceiling
	messages := validationMessages(t, Validate(p, DefaultLimits()))
	requireMessage(t, messages, "Puissance du seuil 2 hors limites: 700")
}

func TestValidateUnreadableValue(t *testing.T) {
	p := validParsedTest()
	p.VT1.HeartRate = "abc"
	messages := validationMessages(t, Validate(p, DefaultLimits()))
	requireMessage(t, messages, `Valeur illisible pour FC du seuil 1: "abc"`)
}

func TestValidateRangeViolation(t *testing.T) {
	p := validParsedTest()
	p.Peak.VO2PerKg = "150"
	messages := validationMessages(t, Validate(p, DefaultLimits()))
	requireMessage(t, messages, "V'O2/kg pic hors limites: 150")
}

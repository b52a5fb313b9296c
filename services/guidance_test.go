package services

import (
	"strings"
	"testing"

	"blast-detection-api/models"
)

func TestGuidanceStudentIgnoresPrediction(t *testing.T) {
	blast := Guidance(models.RoleStudent, models.LabelBlast, 0.91)
	healthy := Guidance(models.RoleStudent, models.LabelHealthy, 0.02)

	if strings.Join(blast, "\n") != strings.Join(healthy, "\n") {
		t.Error("student guidance must be identical regardless of the prediction")
	}
}

func TestGuidanceFarmerHasNoNumbers(t *testing.T) {
	for _, label := range []string{models.LabelBlast, models.LabelHealthy} {
		for _, line := range Guidance(models.RoleFarmer, label, 0.87) {
			if strings.ContainsAny(line, "0123456789") {
				t.Errorf("farmer guidance surfaces a number: %q", line)
			}
		}
	}
}

func TestGuidanceDemoHasNoNumbers(t *testing.T) {
	for _, label := range []string{models.LabelBlast, models.LabelHealthy} {
		for _, line := range Guidance(models.RoleDemo, label, 0.87) {
			if strings.ContainsAny(line, "0123456789") {
				t.Errorf("demo guidance surfaces a number: %q", line)
			}
		}
	}
}

func TestGuidanceOfficerIncludesConfidence(t *testing.T) {
	lines := Guidance(models.RoleOfficer, models.LabelBlast, 0.87)
	if len(lines) == 0 {
		t.Fatal("officer guidance should not be empty")
	}
	if !strings.Contains(lines[0], "0.87") {
		t.Errorf("officer blast guidance should include confidence to two decimals, got %q", lines[0])
	}
}

func TestGuidanceOfficerHealthyOmitsConfidence(t *testing.T) {
	for _, line := range Guidance(models.RoleOfficer, models.LabelHealthy, 0.13) {
		if strings.Contains(line, "0.13") {
			t.Errorf("healthy officer guidance should not embed the probability: %q", line)
		}
	}
}

func TestGuidanceUnknownRoleFallsBackToDemo(t *testing.T) {
	unknown := Guidance("agronomist", models.LabelBlast, 0.6)
	demo := Guidance(models.RoleDemo, models.LabelBlast, 0.6)

	if strings.Join(unknown, "\n") != strings.Join(demo, "\n") {
		t.Error("unknown roles should get the demo guidance")
	}
}

func TestGuidanceIdempotent(t *testing.T) {
	roles := []string{models.RoleFarmer, models.RoleOfficer, models.RoleStudent, models.RoleDemo}
	labels := []string{models.LabelBlast, models.LabelHealthy}

	for _, role := range roles {
		for _, label := range labels {
			first := strings.Join(Guidance(role, label, 0.42), "\n")
			second := strings.Join(Guidance(role, label, 0.42), "\n")
			if first != second {
				t.Errorf("guidance for (%s, %s) is not deterministic", role, label)
			}
		}
	}
}

func TestGuidanceDistinguishesLabelsForFarmer(t *testing.T) {
	blast := strings.Join(Guidance(models.RoleFarmer, models.LabelBlast, 0.9), "\n")
	healthy := strings.Join(Guidance(models.RoleFarmer, models.LabelHealthy, 0.1), "\n")
	if blast == healthy {
		t.Error("farmer guidance should differ between blast and healthy")
	}
}

package services

import (
	"fmt"

	"blast-detection-api/models"
)

// Guidance maps (role, predicted label, blast probability) to advisory
// lines. Pure and deterministic: the same triple always yields the same
// output. Farmer and demo text never surfaces numeric confidence, officer
// text includes it to two decimals, and student text ignores the prediction
// entirely and explains the classifier instead. Unknown roles fall back to
// the demo variant.
func Guidance(role, predicted string, probBlast float64) []string {
	switch role {
	case models.RoleFarmer:
		if predicted == models.LabelBlast {
			return []string{
				"Your leaf image looks like Leaf Blast.",
				"Next steps: isolate affected plants if possible and contact an Agriculture Officer for advice.",
				"Keep monitoring nearby plants for similar spots or lesions.",
			}
		}
		return []string{
			"Your leaf image looks Healthy.",
			"Keep monitoring weekly, especially after heavy rain or high humidity.",
		}

	case models.RoleOfficer:
		if predicted == models.LabelBlast {
			return []string{
				fmt.Sprintf("Result: Leaf Blast (confidence indicator: %.2f)", probBlast),
				"Suggested follow-up: confirm in field, check recent weather and humidity, and inspect surrounding plots.",
				"Note: model is image-based; field conditions and cultivar variation can affect performance.",
			}
		}
		return []string{
			"Result: Healthy",
			"Suggested follow-up: routine monitoring; consider capturing multiple leaves if symptoms are suspected.",
		}

	case models.RoleStudent:
		// Always the mechanism explanation, never a per-image result.
		return []string{
			"This is a binary classifier: blast vs healthy.",
			"Model output is interpreted as probabilities shown in the response.",
			"Training used a clean deduplicated split, evaluated with a confusion matrix and classification report.",
		}
	}

	if predicted == models.LabelBlast {
		return []string{
			"Demo result: Leaf Blast detected.",
			"This demo shows end-to-end ML: clean data split, trained model, and deployment API.",
		}
	}
	return []string{
		"Demo result: Healthy leaf detected.",
		"This demo shows end-to-end ML: clean data split, trained model, and deployment API.",
	}
}

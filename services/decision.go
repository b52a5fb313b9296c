package services

import (
	"blast-detection-api/models"
)

// Decide converts the classifier's raw sigmoid output into a labeled
// prediction. The model is trained on labels ordered [blast, healthy], so
// the single output is P(healthy); P(blast) is its exact complement.
// Equality with the threshold resolves to healthy (closed upper bound).
func Decide(imagePath string, probHealthy, threshold float64) (*models.Prediction, error) {
	if probHealthy < 0 || probHealthy > 1 {
		return nil, &models.ProbabilityRangeError{Value: probHealthy}
	}

	predicted := models.LabelBlast
	if probHealthy >= threshold {
		predicted = models.LabelHealthy
	}

	return &models.Prediction{
		ImagePath:   imagePath,
		Predicted:   predicted,
		ProbBlast:   1.0 - probHealthy,
		ProbHealthy: probHealthy,
		Threshold:   threshold,
	}, nil
}

package services

import (
	"fmt"

	"blast-detection-api/models"
)

var predictionLogHeader = []string{
	"timestamp", "mode", "filename", "predicted",
	"prob_blast", "prob_healthy", "threshold",
}

// PredictionLogger appends one audit record per analyzed image. Callers are
// expected to gate on models.IsAuditRole; farmer and student analyses are
// never logged.
type PredictionLogger struct {
	log *CSVLog
}

func NewPredictionLogger(path string) *PredictionLogger {
	return &PredictionLogger{log: NewCSVLog(path, predictionLogHeader)}
}

func (l *PredictionLogger) Path() string { return l.log.Path() }

func (l *PredictionLogger) Append(rec models.LogRecord) error {
	return l.log.Append([]string{
		rec.Timestamp.Format("2006-01-02T15:04:05"),
		rec.Mode,
		rec.Filename,
		rec.Predicted,
		fmt.Sprintf("%.6f", rec.ProbBlast),
		fmt.Sprintf("%.6f", rec.ProbHealthy),
		fmt.Sprintf("%.2f", rec.Threshold),
	})
}

package models

import "time"

const (
	LabelBlast   = "blast"
	LabelHealthy = "healthy"
)

// Prediction is the outcome of analyzing a single leaf image. ProbBlast is
// always the exact complement of ProbHealthy; the classifier's sigmoid
// output is P(healthy) and blast is never estimated independently.
type Prediction struct {
	ImagePath   string  `json:"image_path"`
	Predicted   string  `json:"predicted"`
	ProbBlast   float64 `json:"prob_blast"`
	ProbHealthy float64 `json:"prob_healthy"`
	Threshold   float64 `json:"threshold"`
}

// LogRecord is the flattened projection of a Prediction written to the
// append-only audit CSV.
type LogRecord struct {
	Timestamp   time.Time
	Mode        string
	Filename    string
	Predicted   string
	ProbBlast   float64
	ProbHealthy float64
	Threshold   float64
}

// PredictionRecord mirrors audit-role analyses into Postgres so the history
// endpoint can page over them. The CSV stays the canonical audit artifact.
type PredictionRecord struct {
	TS          time.Time `gorm:"column:ts;primaryKey" json:"ts"`
	Mode        string    `gorm:"column:mode;primaryKey" json:"mode"`
	Filename    string    `gorm:"column:filename;primaryKey" json:"filename"`
	Predicted   string    `gorm:"column:predicted" json:"predicted"`
	ProbBlast   float64   `gorm:"column:prob_blast" json:"prob_blast"`
	ProbHealthy float64   `gorm:"column:prob_healthy" json:"prob_healthy"`
	Threshold   float64   `gorm:"column:threshold" json:"threshold"`
}

func (PredictionRecord) TableName() string { return "prediction_log" }

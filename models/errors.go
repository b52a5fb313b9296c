package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrModelNotFound = errors.New("model artifact not found")
	ErrImageNotFound = errors.New("image not found")
	ErrNoRiskData    = errors.New("no risk data")
)

// ProbabilityRangeError means the classifier returned a raw probability
// outside [0,1]. A sigmoid output should never do this, but malformed
// artifacts can, and the value must not be coerced to a default prediction.
type ProbabilityRangeError struct {
	Value float64
}

func (e *ProbabilityRangeError) Error() string {
	return fmt.Sprintf("raw probability %v outside [0,1]", e.Value)
}

// MissingColumnsError means the risk features table lacks expected columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("risk features missing columns: %s", strings.Join(e.Columns, ", "))
}

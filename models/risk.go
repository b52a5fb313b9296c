package models

import "time"

const (
	BandLow     = "LOW"
	BandMedium  = "MEDIUM"
	BandHigh    = "HIGH"
	BandUnknown = "UNKNOWN"
)

// NDVISample is one acquisition from the satellite source before scoring.
type NDVISample struct {
	Date time.Time `json:"date"`
	NDVI float64   `json:"ndvi"`
}

// RiskReading is one row of the scored vegetation-stress time series.
// Drop, score and band for reading i derive solely from ndvi[i-1] and
// ndvi[i]; the first reading of a series is LOW by definition.
type RiskReading struct {
	Date      time.Time `json:"date"`
	NDVI      float64   `json:"ndvi"`
	NDVIDrop  float64   `json:"ndvi_drop"`
	RiskScore float64   `json:"risk_score"`
	RiskBand  string    `json:"risk_band"`
}

// NormalizeBand maps anything outside the known band set to UNKNOWN.
func NormalizeBand(band string) string {
	switch band {
	case BandLow, BandMedium, BandHigh:
		return band
	}
	return BandUnknown
}

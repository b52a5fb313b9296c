package services

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"blast-detection-api/models"
)

// ndviDropScale is the NDVI drop between consecutive acquisitions treated
// as maximally concerning; larger drops saturate the score at 100.
const ndviDropScale = 0.15

const riskDateLayout = "2006-01-02"

var riskFeatureHeader = []string{"date", "ndvi", "ndvi_drop", "risk_score", "risk_band"}

// ScoreSeries converts NDVI samples into scored risk readings. Samples are
// sorted ascending by date first; the first reading has no prior value and
// is LOW with a zero drop by definition, never via the formula.
func ScoreSeries(samples []models.NDVISample) []models.RiskReading {
	sorted := make([]models.NDVISample, len(samples))
	copy(sorted, samples)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	readings := make([]models.RiskReading, 0, len(sorted))
	for i, s := range sorted {
		drop := 0.0
		if i > 0 {
			raw := sorted[i-1].NDVI - s.NDVI
			drop = math.Max(0.0, math.Min(raw/ndviDropScale, 1.0))
		}
		score := round(100*drop, 2)
		readings = append(readings, models.RiskReading{
			Date:      s.Date,
			NDVI:      s.NDVI,
			NDVIDrop:  round(drop, 3),
			RiskScore: score,
			RiskBand:  BandFor(score),
		})
	}
	return readings
}

// BandFor discretizes a risk score. Boundary values belong to the higher
// band.
func BandFor(score float64) string {
	switch {
	case score >= 70:
		return models.BandHigh
	case score >= 40:
		return models.BandMedium
	}
	return models.BandLow
}

// Current returns the most recent reading of a date-ascending series, or
// models.ErrNoRiskData for an empty one. Callers must not treat missing
// data as LOW risk.
func Current(series []models.RiskReading) (models.RiskReading, error) {
	if len(series) == 0 {
		return models.RiskReading{}, models.ErrNoRiskData
	}
	return series[len(series)-1], nil
}

// LoadRiskSeries reads the risk features CSV produced by the extraction
// run. Rows with unparseable dates are dropped, the result is sorted
// ascending by date, and band values outside the known set come back as
// UNKNOWN rather than failing the load.
func LoadRiskSeries(path string) ([]models.RiskReading, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open risk features: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read risk features: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[name] = i
	}
	var missing []string
	for _, name := range riskFeatureHeader {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &models.MissingColumnsError{Columns: missing}
	}

	series := make([]models.RiskReading, 0, len(rows)-1)
	for _, row := range rows[1:] {
		date, err := time.Parse(riskDateLayout, row[col["date"]])
		if err != nil {
			continue
		}
		series = append(series, models.RiskReading{
			Date:      date,
			NDVI:      parseFloatOrZero(row[col["ndvi"]]),
			NDVIDrop:  parseFloatOrZero(row[col["ndvi_drop"]]),
			RiskScore: parseFloatOrZero(row[col["risk_score"]]),
			RiskBand:  models.NormalizeBand(row[col["risk_band"]]),
		})
	}

	sort.SliceStable(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	return series, nil
}

// WriteRiskFeatures fully rewrites the risk features CSV; extraction runs
// recompute the whole series, there are no incremental appends.
func WriteRiskFeatures(path string, series []models.RiskReading) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if err := w.Write(riskFeatureHeader); err != nil {
		f.Close()
		return err
	}
	for _, rr := range series {
		row := []string{
			rr.Date.Format(riskDateLayout),
			fmt.Sprintf("%.4f", rr.NDVI),
			fmt.Sprintf("%.3f", rr.NDVIDrop),
			fmt.Sprintf("%.2f", rr.RiskScore),
			rr.RiskBand,
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func round(x float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(x*pow) / pow
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

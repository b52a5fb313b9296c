package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"blast-detection-api/config"
	"blast-detection-api/models"
)

// NDVISource yields the mean-NDVI time series for a pilot area. Imagery
// retrieval and compositing are owned by the remote geospatial service.
type NDVISource interface {
	FetchSeries(ctx context.Context, q SatelliteQuery) ([]models.NDVISample, error)
}

type SatelliteQuery struct {
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	BufferM   int     `json:"buffer_m"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
}

func QueryFromConfig(cfg config.SatelliteConfig) SatelliteQuery {
	return SatelliteQuery{
		Lat:       cfg.Lat,
		Lon:       cfg.Lon,
		BufferM:   cfg.BufferM,
		StartDate: cfg.StartDate,
		EndDate:   cfg.EndDate,
	}
}

type HTTPNDVIClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPNDVIClient(baseURL string) *HTTPNDVIClient {
	return &HTTPNDVIClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type ndviResponse struct {
	Samples []struct {
		Date  string  `json:"date"`
		NDVI  float64 `json:"ndvi"`
		Cloud float64 `json:"cloud"`
	} `json:"samples"`
}

func (c *HTTPNDVIClient) FetchSeries(ctx context.Context, q SatelliteQuery) ([]models.NDVISample, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("marshal ndvi request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/ndvi", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("create ndvi request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ndvi service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ndvi service returned status: %d", resp.StatusCode)
	}

	var out ndviResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode ndvi response: %w", err)
	}

	samples := make([]models.NDVISample, 0, len(out.Samples))
	for _, s := range out.Samples {
		date, err := time.Parse(riskDateLayout, s.Date)
		if err != nil {
			// Unparseable dates cannot be ordered; drop the row.
			continue
		}
		samples = append(samples, models.NDVISample{Date: date, NDVI: s.NDVI})
	}
	return samples, nil
}

// ExtractRiskFeatures fetches the NDVI series, scores it, and fully
// rewrites the risk features CSV. An empty series is an explicit no-data
// condition; nothing is written for it.
func ExtractRiskFeatures(ctx context.Context, src NDVISource, q SatelliteQuery, outPath string) (int, error) {
	samples, err := src.FetchSeries(ctx, q)
	if err != nil {
		return 0, err
	}
	if len(samples) == 0 {
		return 0, models.ErrNoRiskData
	}

	series := ScoreSeries(samples)
	if err := WriteRiskFeatures(outPath, series); err != nil {
		return 0, fmt.Errorf("write risk features: %w", err)
	}
	return len(series), nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"blast-detection-api/models"
)

func ndviTestServer(t *testing.T, samples []map[string]interface{}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ndvi" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		var q SatelliteQuery
		if err := json.NewDecoder(r.Body).Decode(&q); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"samples": samples})
	}))
}

func TestHTTPNDVIClientDropsBadDates(t *testing.T) {
	srv := ndviTestServer(t, []map[string]interface{}{
		{"date": "2024-11-01", "ndvi": 0.60, "cloud": 12.0},
		{"date": "garbage", "ndvi": 0.55, "cloud": 3.0},
		{"date": "2024-11-06", "ndvi": 0.45, "cloud": 8.0},
	})
	defer srv.Close()

	client := NewHTTPNDVIClient(srv.URL)
	samples, err := client.FetchSeries(context.Background(), SatelliteQuery{
		Lat: 7.76, Lon: 80.56, BufferM: 2000,
		StartDate: "2024-10-01", EndDate: "2025-03-01",
	})
	if err != nil {
		t.Fatalf("FetchSeries failed: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2 (bad date dropped)", len(samples))
	}
	if samples[0].NDVI != 0.60 || samples[1].NDVI != 0.45 {
		t.Errorf("samples = %+v, unexpected values", samples)
	}
}

func TestHTTPNDVIClientErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewHTTPNDVIClient(srv.URL)
	_, err := client.FetchSeries(context.Background(), SatelliteQuery{})
	if err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestExtractRiskFeaturesWritesCSV(t *testing.T) {
	srv := ndviTestServer(t, []map[string]interface{}{
		{"date": "2024-11-01", "ndvi": 0.60},
		{"date": "2024-11-06", "ndvi": 0.45},
		{"date": "2024-11-11", "ndvi": 0.30},
	})
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "satellite", "risk_features.csv")
	client := NewHTTPNDVIClient(srv.URL)

	n, err := ExtractRiskFeatures(context.Background(), client, SatelliteQuery{}, outPath)
	if err != nil {
		t.Fatalf("ExtractRiskFeatures failed: %v", err)
	}
	if n != 3 {
		t.Errorf("wrote %d readings, want 3", n)
	}

	series, err := LoadRiskSeries(outPath)
	if err != nil {
		t.Fatalf("LoadRiskSeries failed: %v", err)
	}
	if series[0].RiskBand != models.BandLow || series[2].RiskBand != models.BandHigh {
		t.Errorf("bands = [%s %s %s], want [LOW HIGH HIGH]",
			series[0].RiskBand, series[1].RiskBand, series[2].RiskBand)
	}
}

func TestExtractRiskFeaturesEmptySeries(t *testing.T) {
	srv := ndviTestServer(t, nil)
	defer srv.Close()

	outPath := filepath.Join(t.TempDir(), "risk_features.csv")
	client := NewHTTPNDVIClient(srv.URL)

	_, err := ExtractRiskFeatures(context.Background(), client, SatelliteQuery{}, outPath)
	if !errors.Is(err, models.ErrNoRiskData) {
		t.Fatalf("error = %v, want ErrNoRiskData", err)
	}
	if _, statErr := os.Stat(outPath); statErr == nil {
		t.Error("no file should be written for an empty series")
	}
}

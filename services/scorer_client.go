package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

// HTTPScorer talks to the scorer sidecar that holds the deep-learning
// framework. The sidecar owns image resizing and normalization; this client
// only ships the raw bytes and the artifact path to score against.
type HTTPScorer struct {
	endpoint  string
	modelPath string
	client    *http.Client
}

// NewHTTPScorerLoader returns a LoaderFunc binding classifiers to the
// scorer service at baseURL.
func NewHTTPScorerLoader(baseURL string) LoaderFunc {
	return func(modelPath string) (Classifier, error) {
		return &HTTPScorer{
			endpoint:  baseURL + "/score",
			modelPath: modelPath,
			client: &http.Client{
				Timeout: 30 * time.Second,
			},
		}, nil
	}
}

type scoreRequest struct {
	ModelPath string `json:"model_path"`
	Filename  string `json:"filename"`
	Image     []byte `json:"image"`
}

type scoreResponse struct {
	ProbHealthy float64 `json:"prob_healthy"`
}

func (s *HTTPScorer) ProbHealthy(ctx context.Context, imagePath string) (float64, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return 0, fmt.Errorf("read image: %w", err)
	}

	body, err := json.Marshal(scoreRequest{
		ModelPath: s.modelPath,
		Filename:  filepath.Base(imagePath),
		Image:     data,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal score request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return 0, fmt.Errorf("create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("scorer request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("scorer returned status: %d", resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("decode scorer response: %w", err)
	}
	return out.ProbHealthy, nil
}

package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"blast-detection-api/models"
)

// Classifier runs a forward pass for one image and returns the raw
// P(healthy) output. The convolutional network itself is an external
// collaborator behind this interface.
type Classifier interface {
	ProbHealthy(ctx context.Context, imagePath string) (float64, error)
}

// LoaderFunc constructs a Classifier for a model artifact. The path passed
// in is already resolved to an absolute path and known to exist.
type LoaderFunc func(modelPath string) (Classifier, error)

// PredictorService caches loaded classifiers by resolved artifact path.
// Entries are populated lazily and never evicted; the realistic set of
// artifact paths is small and operator-controlled.
type PredictorService struct {
	mu     sync.Mutex
	loader LoaderFunc
	cache  map[string]Classifier
}

func NewPredictorService(loader LoaderFunc) *PredictorService {
	return &PredictorService{
		loader: loader,
		cache:  make(map[string]Classifier),
	}
}

func (s *PredictorService) classifier(modelPath string) (Classifier, error) {
	resolved, err := filepath.Abs(modelPath)
	if err != nil {
		return nil, fmt.Errorf("resolve model path: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if clf, ok := s.cache[resolved]; ok {
		return clf, nil
	}
	if _, err := os.Stat(resolved); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrModelNotFound, modelPath)
	}
	clf, err := s.loader(resolved)
	if err != nil {
		return nil, fmt.Errorf("load model %s: %w", modelPath, err)
	}
	s.cache[resolved] = clf
	return clf, nil
}

// CachedModels returns how many distinct artifacts are currently loaded.
func (s *PredictorService) CachedModels() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// Predict classifies one image against the given model artifact. Missing
// artifacts or images fail outright; there is no fallback prediction.
func (s *PredictorService) Predict(ctx context.Context, modelPath, imagePath string, threshold float64) (*models.Prediction, error) {
	if _, err := os.Stat(imagePath); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrImageNotFound, imagePath)
	}

	clf, err := s.classifier(modelPath)
	if err != nil {
		return nil, err
	}

	probHealthy, err := clf.ProbHealthy(ctx, imagePath)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", imagePath, err)
	}

	return Decide(imagePath, probHealthy, threshold)
}

package storage

import (
	"context"

	"mathcheck/internal/config"
	"mathcheck/internal/domain"
)

// Storage persists and loads test run results (e.g. for the fails viewer).
type Storage interface {
	Save(output *domain.TestResultsOutput) error
	Load() (*domain.TestResultsOutput, error)
}

// Archiver appends a finished run to long-term history and returns its run id.
type Archiver interface {
	Archive(ctx context.Context, output *domain.TestResultsOutput) (int64, error)
}

// JSONStorage stores results in a JSON file under the configured output path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linkedscout/linkedscout/internal/domain/models"
)

type jobsDocument struct {
	Count       int                 `json:"count"`
	GeneratedAt time.Time           `json:"generated_at"`
	Jobs        []models.JobListing `json:"jobs"`
}

// JsonStore writes run results as JSON files under a fixed output directory.
type JsonStore struct {
	outputDir string
}

func NewJsonStore(outputDir string) *JsonStore {
	return &JsonStore{outputDir: outputDir}
}

func (s *JsonStore) Save(jobs []models.JobListing, filename string) (string, error) {

	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	path := filepath.Join(s.outputDir, filename)
	if err := s.SaveToPath(jobs, path); err != nil {
		return "", err
	}
	return path, nil
}

func (s *JsonStore) SaveToPath(jobs []models.JobListing, path string) error {

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	document := jobsDocument{
		Count:       len(jobs),
		GeneratedAt: time.Now(),
		Jobs:        jobs,
	}

	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode jobs: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

func (s *JsonStore) Load(filename string) ([]models.JobListing, error) {

	if !strings.HasSuffix(filename, ".json") {
		filename += ".json"
	}

	data, err := os.ReadFile(filepath.Join(s.outputDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var document jobsDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("failed to decode jobs file: %w", err)
	}

	return document.Jobs, nil
}

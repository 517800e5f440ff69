package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/nvr-ai/go-eval/evaluation"
	"github.com/pkg/errors"
)

// Run is the persisted record of one CLI evaluation.
type Run struct {
	ID        string               `json:"id"`
	Mode      string               `json:"mode"`
	Dataset   string               `json:"dataset,omitempty"`
	StartedAt time.Time            `json:"started_at"`
	Duration  time.Duration        `json:"duration_ns"`
	Config    evaluation.Config    `json:"config"`
	Results   []*evaluation.Result `json:"results"`
}

// NewRun starts a run record with a fresh id.
func NewRun(mode, dataset string, cfg evaluation.Config) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Mode:      mode,
		Dataset:   dataset,
		StartedAt: time.Now(),
		Config:    cfg,
	}
}

// Finish appends results and records the elapsed time.
func (r *Run) Finish(results ...*evaluation.Result) {
	r.Results = append(r.Results, results...)
	r.Duration = time.Since(r.StartedAt)
}

// Save writes the run as indented JSON into dir and returns the file path.
func (r *Run) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "failed to create output directory")
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal run")
	}

	path := filepath.Join(dir, "eval_"+r.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "failed to write run file")
	}
	return path, nil
}

// LoadRun reads a run saved by Save.
func LoadRun(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read run file")
	}

	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal run")
	}
	return &run, nil
}

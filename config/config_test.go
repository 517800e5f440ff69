package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eval.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, ModeFrames, cfg.Mode)
	assert.InDelta(t, 0.5, cfg.Evaluation.IoUThreshold, 1e-6)
	assert.Equal(t, "eval", cfg.Metrics.Namespace)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		mode      string
		threshold float32
		classes   []string
	}{
		{
			name: "frames with explicit threshold",
			body: `
mode: frames
input: frames.json
evaluation:
  classes: [car, ped]
  iou_thresh: 0.3
  use_07_metric: true
`,
			mode:      ModeFrames,
			threshold: 0.3,
			classes:   []string{"car", "ped"},
		},
		{
			name: "tubes default threshold",
			body: `
mode: tubes
input: tubes.json
evaluation:
  classes: [walk]
`,
			mode:      ModeTubes,
			threshold: 0.2,
			classes:   []string{"walk"},
		},
		{
			name: "boxes default threshold",
			body: `
mode: boxes
input: boxes.json
`,
			mode:      ModeBoxes,
			threshold: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.mode, cfg.Mode)
			assert.InDelta(t, tt.threshold, cfg.Evaluation.IoUThreshold, 1e-6)
			assert.Equal(t, tt.classes, cfg.Evaluation.Classes)
			assert.Equal(t, "info", cfg.LogLevel, "defaults survive")
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "mode: [frames"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown mode", mutate: func(c *Config) { c.Mode = "pixels" }},
		{name: "missing input", mutate: func(c *Config) { c.Input = "" }},
		{name: "negative workers", mutate: func(c *Config) { c.Workers = -1 }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "loud" }},
		{name: "threshold above one", mutate: func(c *Config) { c.Evaluation.IoUThreshold = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Input = "in.json"
			require.NoError(t, cfg.Validate())
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadExplicitZeroThreshold(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
mode: tubes
input: tubes.json
evaluation:
  iou_thresh: 0
`))
	require.NoError(t, err)
	assert.Equal(t, float32(0), cfg.Evaluation.IoUThreshold)

	cfg.Mode = ModeFrames
	cfg.ResolveThreshold()
	assert.Equal(t, float32(0), cfg.Evaluation.IoUThreshold, "explicit threshold survives a mode change")
}

func TestResolveThreshold(t *testing.T) {
	cfg, err := Load(writeConfig(t, "log_level: warn\n"))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, cfg.Evaluation.IoUThreshold, 1e-6)

	cfg.Mode = ModeTubes
	cfg.ResolveThreshold()
	assert.InDelta(t, 0.2, cfg.Evaluation.IoUThreshold, 1e-6)

	cfg.SetIoUThreshold(0.35)
	cfg.Mode = ModeFrames
	cfg.ResolveThreshold()
	assert.InDelta(t, 0.35, cfg.Evaluation.IoUThreshold, 1e-6)
}

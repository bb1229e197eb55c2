package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rj25031/FCH-pyomo/core/model"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validYAML = `problem:
  horizon_days: 2
  machines:
    - id: cutter
      open: 480
      close: 720
      step: 60
    - id: paint
      ticks: [540, 600, 660]
  tasks:
    - job: J1
      task: cut
      machine: cutter
      duration_hours: 1
    - job: J1
      task: paint
      machine: paint
      duration_minutes: 30
      predecessor: cut
solver:
  max_nodes: 500
logging:
  level: debug
`

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Problem.HorizonDays != 2 {
		t.Fatalf("expected 2-day horizon got %d", cfg.Problem.HorizonDays)
	}
	if cfg.Solver.MaxNodes != 500 {
		t.Fatalf("expected max_nodes 500 got %d", cfg.Solver.MaxNodes)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected debug level got %s", cfg.Logging.Level)
	}

	p, err := cfg.Problem.Build()
	if err != nil {
		t.Fatalf("build problem: %v", err)
	}
	cutter, ok := p.MachineByID("cutter")
	if !ok {
		t.Fatal("cutter not built")
	}
	// 480..720 step 60 inclusive.
	if len(cutter.Calendar) != 5 || cutter.Calendar[4] != 720 {
		t.Fatalf("unexpected cutter calendar %v", cutter.Calendar)
	}
	task, ok := p.TaskByKey(model.TaskKey{Job: "J1", Task: "cut"})
	if !ok {
		t.Fatal("task J1/cut not built")
	}
	if task.Duration != 60 {
		t.Fatalf("duration_hours not normalized: %d", task.Duration)
	}
}

func TestLoadDefaults(t *testing.T) {
	data := `problem:
  horizon_days: 1
  machines:
    - id: m
      ticks: [480, 540]
  tasks:
    - job: J1
      task: a
      machine: m
      duration_minutes: 30
`
	cfg, err := Load(writeConfig(t, "config.yaml", data))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Solver.MaxNodes != 200000 {
		t.Fatalf("expected default max_nodes got %d", cfg.Solver.MaxNodes)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default info level got %s", cfg.Logging.Level)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FCH_SOLVER__MAX_NODES", "77")
	cfg, err := Load(writeConfig(t, "config.yaml", validYAML))
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Solver.MaxNodes != 77 {
		t.Fatalf("env override ignored, got %d", cfg.Solver.MaxNodes)
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load(writeConfig(t, "config.toml", "x = 1")); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	data := `problem:
  horizon_days: 1
  machines:
    - id: m
      ticks: [480, 540]
  tasks:
    - job: J1
      task: a
      machine: m
      duration_minutes: 30
logging:
  level: loud
`
	if _, err := Load(writeConfig(t, "config.yaml", data)); err == nil {
		t.Fatal("expected log level error")
	}
}

func TestProblemValidateRejectsAmbiguousDuration(t *testing.T) {
	c := ProblemConfig{
		HorizonDays: 1,
		Machines:    []MachineConfig{{ID: "m", Ticks: []int{480}}},
		Tasks: []TaskConfig{{
			Job: "J1", Task: "a", Machine: "m",
			DurationMinutes: 30, DurationHours: 1,
		}},
	}
	if err := c.Validate(); err == nil {
		t.Fatal("expected mutually-exclusive duration error")
	}
}

func TestMachineConfigRejectsTicksPlusWindow(t *testing.T) {
	m := MachineConfig{ID: "m", Ticks: []int{480}, Open: 480, Close: 720, Step: 60}
	if _, err := m.calendar(); err == nil {
		t.Fatal("expected mutually-exclusive calendar error")
	}
}

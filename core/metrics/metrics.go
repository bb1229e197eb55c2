// Package metrics defines the instrumentation records emitted by a
// compile/solve run and the sink interface consuming them.
package metrics

import "time"

// Config defines settings for metrics sinks.
type Config struct {
	// PrometheusEnabled registers the prometheus sink on the default
	// registerer.
	PrometheusEnabled bool `json:"prometheus_enabled"`
}

// CompileStats describes one compiled model.
type CompileStats struct {
	RunID        string
	Tasks        int
	Variables    int
	Binaries     int
	Constraints  int
	Disjunctions int
	Duration     time.Duration
}

// SolveStats describes one solver run.
type SolveStats struct {
	RunID     string
	Status    string
	Objective float64
	Duration  time.Duration
}

// Sink receives run instrumentation. Implementations must tolerate being
// called once per process invocation.
type Sink interface {
	RecordCompile(CompileStats) error
	RecordSolve(SolveStats) error
}

// NopSink discards all records.
type NopSink struct{}

func (NopSink) RecordCompile(CompileStats) error { return nil }
func (NopSink) RecordSolve(SolveStats) error     { return nil }

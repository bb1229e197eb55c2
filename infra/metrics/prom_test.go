package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/rj25031/FCH-pyomo/core/metrics"
)

func TestPromSinkRecords(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}

	err = sink.RecordCompile(coremetrics.CompileStats{
		RunID: "r1", Tasks: 10, Variables: 120, Binaries: 90,
		Constraints: 46, Disjunctions: 12, Duration: 5 * time.Millisecond,
	})
	if err != nil {
		t.Fatalf("record compile: %v", err)
	}
	if err := sink.RecordSolve(coremetrics.SolveStats{
		RunID: "r1", Status: "optimal", Objective: 660, Duration: time.Second,
	}); err != nil {
		t.Fatalf("record solve: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	seen := map[string]bool{}
	for _, f := range families {
		seen[f.GetName()] = true
	}
	for _, want := range []string{
		"schedule_model_size",
		"schedule_compile_seconds",
		"schedule_solve_seconds",
		"schedule_solve_outcomes_total",
	} {
		if !seen[want] {
			t.Fatalf("metric %s not registered, got %v", want, seen)
		}
	}
}

func TestPromSinkReusesExistingCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("first sink: %v", err)
	}
	if _, err := NewPromSinkWithRegistry(reg); err != nil {
		t.Fatalf("second sink should reuse collectors: %v", err)
	}
}

func TestMultiSinkFansOut(t *testing.T) {
	a := &countingSink{}
	b := &countingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordCompile(coremetrics.CompileStats{}); err != nil {
		t.Fatalf("record compile: %v", err)
	}
	if err := m.RecordSolve(coremetrics.SolveStats{}); err != nil {
		t.Fatalf("record solve: %v", err)
	}
	if a.compiles != 1 || b.compiles != 1 || a.solves != 1 || b.solves != 1 {
		t.Fatalf("records not fanned out: %+v %+v", a, b)
	}
}

type countingSink struct {
	compiles int
	solves   int
}

func (c *countingSink) RecordCompile(coremetrics.CompileStats) error { c.compiles++; return nil }
func (c *countingSink) RecordSolve(coremetrics.SolveStats) error     { c.solves++; return nil }

// Package app wires configuration, compiler, solver and reporter into one
// runnable service.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/rj25031/FCH-pyomo/config"
	"github.com/rj25031/FCH-pyomo/core/compile"
	"github.com/rj25031/FCH-pyomo/core/logger"
	"github.com/rj25031/FCH-pyomo/core/milp"
	coremetrics "github.com/rj25031/FCH-pyomo/core/metrics"
	"github.com/rj25031/FCH-pyomo/core/report"
	coresolver "github.com/rj25031/FCH-pyomo/core/solver"
	infralogger "github.com/rj25031/FCH-pyomo/infra/logger"
	inframetrics "github.com/rj25031/FCH-pyomo/infra/metrics"
	infrasolver "github.com/rj25031/FCH-pyomo/infra/solver"
)

// Service runs one schedule computation end to end.
type Service struct {
	cfg    *config.Config
	log    logger.Logger
	sink   coremetrics.Sink
	solver coresolver.Solver

	// Out receives the rendered schedule; defaults to stdout.
	Out io.Writer
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := infralogger.NewWithLevel("service", cfg.Logging.Level)

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := inframetrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = inframetrics.NewMultiSink(sinks...)
	}

	eng := infrasolver.New(infralogger.NewWithLevel("solver", cfg.Logging.Level))
	eng.MaxNodes = cfg.Solver.MaxNodes

	return &Service{cfg: cfg, log: logg, sink: sink, solver: eng, Out: os.Stdout}, nil
}

// Run executes the pipeline and writes the rendered schedule to Out.
func (s *Service) Run(ctx context.Context) error {
	sched, err := s.Execute(ctx)
	if err != nil {
		return err
	}
	_, err = io.WriteString(s.Out, sched.Render())
	return err
}

// Execute builds the problem, compiles and solves the model and decodes the
// schedule. Compile-time errors and non-solved solver statuses abort the run.
func (s *Service) Execute(ctx context.Context) (*report.Schedule, error) {
	runID := uuid.NewString()
	s.log.Infof("run %s: building problem", runID)

	problem, err := s.cfg.Problem.Build()
	if err != nil {
		return nil, fmt.Errorf("build problem: %w", err)
	}

	compileStart := time.Now()
	mdl, vars, err := compile.Build(problem)
	if err != nil {
		return nil, fmt.Errorf("compile model: %w", err)
	}
	disjunctions := len(mdl.Disjunctions())
	if err := milp.ApplyBigM(mdl, compile.BigM(problem)); err != nil {
		return nil, fmt.Errorf("lower disjunctions: %w", err)
	}
	compileTime := time.Since(compileStart)
	s.log.Debugw("model compiled", map[string]any{
		"run_id": runID,
		"model":  mdl.Stats(),
		"took":   compileTime.String(),
	})
	if err := s.sink.RecordCompile(coremetrics.CompileStats{
		RunID:        runID,
		Tasks:        len(problem.Tasks),
		Variables:    len(mdl.Vars()),
		Binaries:     mdl.NumBinaries(),
		Constraints:  len(mdl.Constraints()),
		Disjunctions: disjunctions,
		Duration:     compileTime,
	}); err != nil {
		s.log.Warnf("record compile stats: %v", err)
	}

	solveStart := time.Now()
	sol, solveErr := s.solver.Solve(ctx, mdl)
	solveTime := time.Since(solveStart)
	if err := s.sink.RecordSolve(coremetrics.SolveStats{
		RunID:     runID,
		Status:    sol.Status.String(),
		Objective: sol.Objective,
		Duration:  solveTime,
	}); err != nil {
		s.log.Warnf("record solve stats: %v", err)
	}
	if !sol.Status.Solved() {
		if solveErr != nil {
			return nil, fmt.Errorf("solver finished with status %s: %w", sol.Status, solveErr)
		}
		return nil, fmt.Errorf("solver finished with status %s", sol.Status)
	}

	sched, err := report.Build(problem, sol, vars)
	if err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}
	s.log.Infof("run %s: makespan %.1f minutes (%s in %s)",
		runID, sched.Makespan, sol.Status, solveTime)
	return sched, nil
}

// Package metrics provides sink implementations for run instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/rj25031/FCH-pyomo/core/metrics"
)

// PromSink records compile and solve statistics in Prometheus metrics.
type PromSink struct {
	modelSize     *prometheus.GaugeVec
	compileSecs   prometheus.Histogram
	solveSecs     *prometheus.HistogramVec
	solveOutcomes *prometheus.CounterVec
}

// NewPromSink registers the run metrics on the default Prometheus registerer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	modelSize := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "schedule_model_size",
		Help: "Size of the last compiled model by element kind",
	}, []string{"kind"})
	compileSecs := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedule_compile_seconds",
		Help:    "Time spent compiling the constraint model",
		Buckets: prometheus.DefBuckets,
	})
	solveSecs := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "schedule_solve_seconds",
		Help:    "Time spent in the solver",
		Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
	}, []string{"status"})
	solveOutcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "schedule_solve_outcomes_total",
		Help: "Solver terminations by status",
	}, []string{"status"})

	if err := reg.Register(modelSize); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			modelSize = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(compileSecs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			compileSecs = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(solveSecs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solveSecs = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(solveOutcomes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			solveOutcomes = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		modelSize:     modelSize,
		compileSecs:   compileSecs,
		solveSecs:     solveSecs,
		solveOutcomes: solveOutcomes,
	}, nil
}

// RecordCompile updates the model-size gauges and compile-time histogram.
func (s *PromSink) RecordCompile(st coremetrics.CompileStats) error {
	s.modelSize.WithLabelValues("tasks").Set(float64(st.Tasks))
	s.modelSize.WithLabelValues("variables").Set(float64(st.Variables))
	s.modelSize.WithLabelValues("binaries").Set(float64(st.Binaries))
	s.modelSize.WithLabelValues("constraints").Set(float64(st.Constraints))
	s.modelSize.WithLabelValues("disjunctions").Set(float64(st.Disjunctions))
	s.compileSecs.Observe(st.Duration.Seconds())
	return nil
}

// RecordSolve counts the termination status and records the solve time.
func (s *PromSink) RecordSolve(st coremetrics.SolveStats) error {
	s.solveOutcomes.WithLabelValues(st.Status).Inc()
	s.solveSecs.WithLabelValues(st.Status).Observe(st.Duration.Seconds())
	return nil
}

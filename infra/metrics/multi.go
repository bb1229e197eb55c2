package metrics

import coremetrics "github.com/rj25031/FCH-pyomo/core/metrics"

// MultiSink fans records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordCompile forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordCompile(st coremetrics.CompileStats) error {
	for _, s := range m.Sinks {
		if err := s.RecordCompile(st); err != nil {
			return err
		}
	}
	return nil
}

// RecordSolve forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordSolve(st coremetrics.SolveStats) error {
	for _, s := range m.Sinks {
		if err := s.RecordSolve(st); err != nil {
			return err
		}
	}
	return nil
}

// Package report decodes a solved model back into the schedule: ordered task
// rows, per-machine utilization and a timeline series for external
// visualization. It renders text only; charting stays outside.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/rj25031/FCH-pyomo/core/compile"
	"github.com/rj25031/FCH-pyomo/core/model"
	"github.com/rj25031/FCH-pyomo/core/solver"
)

// ErrNotSolved is returned when a report is requested for a solution whose
// status does not allow reading variable values.
var ErrNotSolved = errors.New("solution has no readable values")

// Row is one scheduled task.
type Row struct {
	Job     string
	Task    string
	Machine string
	Start   float64 // minutes from horizon start
	End     float64
}

// Span is one timeline segment, one per task, for feeding a Gantt renderer.
type Span struct {
	Job     string
	Task    string
	Machine string
	Start   float64
	End     float64
}

// MachineUsage aggregates a machine's load.
type MachineUsage struct {
	// BusyMinutes is the sum of the durations scheduled on the machine.
	BusyMinutes int
	// Utilization is BusyMinutes over the machine's single-day window
	// span, as a percentage. Load spanning several days pushes it past
	// 100; it is not a horizon-wide figure.
	Utilization float64
}

// Schedule is the decoded solve result.
type Schedule struct {
	Rows     []Row
	Timeline []Span
	Machines map[string]MachineUsage
	Makespan float64 // minutes
}

// MakespanHours converts the makespan to hours.
func (s *Schedule) MakespanHours() float64 { return s.Makespan / 60 }

// Build decodes the solution into a Schedule. Rows are sorted by (job, task)
// for deterministic output. Solutions without a readable status are refused.
func Build(p *model.Problem, sol solver.Solution, vars *compile.Variables) (*Schedule, error) {
	if !sol.Status.Solved() {
		return nil, fmt.Errorf("solver finished with status %s: %w", sol.Status, ErrNotSolved)
	}

	s := &Schedule{
		Rows:     make([]Row, 0, len(p.Tasks)),
		Machines: make(map[string]MachineUsage, len(p.Machines)),
		Makespan: sol.Value(vars.Makespan),
	}
	for _, t := range p.Tasks {
		s.Rows = append(s.Rows, Row{
			Job:     t.Key.Job,
			Task:    t.Key.Task,
			Machine: t.Machine,
			Start:   sol.Value(vars.Start[t.Key]),
			End:     sol.Value(vars.End[t.Key]),
		})
	}
	sort.Slice(s.Rows, func(i, j int) bool {
		if s.Rows[i].Job != s.Rows[j].Job {
			return s.Rows[i].Job < s.Rows[j].Job
		}
		return s.Rows[i].Task < s.Rows[j].Task
	})

	s.Timeline = make([]Span, len(s.Rows))
	for i, r := range s.Rows {
		s.Timeline[i] = Span(r)
	}

	for _, m := range p.Machines {
		busy := 0
		for _, t := range p.Tasks {
			if t.Machine == m.ID {
				busy += t.Duration
			}
		}
		usage := MachineUsage{BusyMinutes: busy}
		if span := m.WindowSpan(); span > 0 {
			usage.Utilization = float64(busy) / float64(span) * 100
		}
		s.Machines[m.ID] = usage
	}
	return s, nil
}

// Render formats the schedule the way the CLI prints it: the task table, the
// makespan line and per-machine utilization.
func (s *Schedule) Render() string {
	var sb strings.Builder
	sb.WriteString("Final Schedule:\n")
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "JOB\tTASK\tMACHINE\tSTART\tEND")
	for _, r := range s.Rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%.1f\n", r.Job, r.Task, r.Machine, r.Start, r.End)
	}
	tw.Flush()

	fmt.Fprintf(&sb, "\nTotal Makespan = %.1f minutes (%.1f hours)\n", s.Makespan, s.MakespanHours())

	sb.WriteString("\nMachine Utilization:\n")
	ids := make([]string, 0, len(s.Machines))
	for id := range s.Machines {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		u := s.Machines[id]
		fmt.Fprintf(&sb, "%s: %.2f%% utilization (%d minutes)\n", id, u.Utilization, u.BusyMinutes)
	}
	return sb.String()
}

// FormatInstant renders a minute offset as "Day d HH:MM", the label format
// used on timeline axes.
func FormatInstant(minutes float64) string {
	t := int(minutes)
	day := t/model.MinutesPerDay + 1
	rem := t % model.MinutesPerDay
	return fmt.Sprintf("Day %d %02d:%02d", day, rem/60, rem%60)
}

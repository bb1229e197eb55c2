package config

import (
	"fmt"

	"github.com/rj25031/FCH-pyomo/core/model"
)

// MachineConfig declares one machine's daily availability. Either Ticks
// gives the start ticks verbatim, or Open/Close/Step generate them as an
// inclusive range (all in minutes since midnight).
type MachineConfig struct {
	ID    string `json:"id"`
	Ticks []int  `json:"ticks"`
	Open  int    `json:"open"`
	Close int    `json:"close"`
	Step  int    `json:"step"`
}

func (m MachineConfig) calendar() ([]int, error) {
	if len(m.Ticks) > 0 {
		if m.Open != 0 || m.Close != 0 || m.Step != 0 {
			return nil, fmt.Errorf("machine %q: ticks and open/close/step are mutually exclusive", m.ID)
		}
		return m.Ticks, nil
	}
	if m.Step <= 0 {
		return nil, fmt.Errorf("machine %q: step must be positive, got %d", m.ID, m.Step)
	}
	if m.Close < m.Open {
		return nil, fmt.Errorf("machine %q: close %d before open %d", m.ID, m.Close, m.Open)
	}
	var ticks []int
	for t := m.Open; t <= m.Close; t += m.Step {
		ticks = append(ticks, t)
	}
	return ticks, nil
}

// TaskConfig declares one task. Duration is given either in minutes or in
// hours, not both. An empty predecessor starts the job's chain.
type TaskConfig struct {
	Job             string `json:"job"`
	Task            string `json:"task"`
	Machine         string `json:"machine"`
	DurationMinutes int    `json:"duration_minutes"`
	DurationHours   int    `json:"duration_hours"`
	Predecessor     string `json:"predecessor"`
}

func (t TaskConfig) duration() (int, error) {
	switch {
	case t.DurationMinutes != 0 && t.DurationHours != 0:
		return 0, fmt.Errorf("task %s/%s: duration_minutes and duration_hours are mutually exclusive", t.Job, t.Task)
	case t.DurationHours != 0:
		return t.DurationHours * 60, nil
	default:
		return t.DurationMinutes, nil
	}
}

// ProblemConfig is the declarative scheduling input.
type ProblemConfig struct {
	Machines    []MachineConfig `json:"machines"`
	Tasks       []TaskConfig    `json:"tasks"`
	HorizonDays int             `json:"horizon_days"`
}

// Validate performs the checks possible without building the full problem.
func (c ProblemConfig) Validate() error {
	if len(c.Machines) == 0 {
		return fmt.Errorf("at least one machine is required")
	}
	if len(c.Tasks) == 0 {
		return fmt.Errorf("at least one task is required")
	}
	if c.HorizonDays <= 0 {
		return fmt.Errorf("horizon_days must be positive, got %d", c.HorizonDays)
	}
	for _, m := range c.Machines {
		if _, err := m.calendar(); err != nil {
			return err
		}
	}
	for _, t := range c.Tasks {
		if _, err := t.duration(); err != nil {
			return err
		}
	}
	return nil
}

// Build normalizes the config into the immutable problem, running the full
// reference and feasibility validation.
func (c ProblemConfig) Build() (*model.Problem, error) {
	machines := make([]model.Machine, 0, len(c.Machines))
	for _, m := range c.Machines {
		cal, err := m.calendar()
		if err != nil {
			return nil, err
		}
		machines = append(machines, model.Machine{ID: m.ID, Calendar: cal})
	}
	defs := make([]model.TaskDef, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		d, err := t.duration()
		if err != nil {
			return nil, err
		}
		defs = append(defs, model.TaskDef{
			Job:         t.Job,
			Task:        t.Task,
			Machine:     t.Machine,
			Duration:    d,
			Predecessor: t.Predecessor,
		})
	}
	return model.NewProblem(machines, defs, c.HorizonDays)
}

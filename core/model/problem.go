package model

import "fmt"

// Problem is the normalized, immutable description of one scheduling run:
// machines with daily calendars, tasks forming per-job chains, and the
// planning horizon. Build it once with NewProblem; everything downstream
// only reads it.
type Problem struct {
	Machines    []Machine
	Tasks       []Task
	HorizonDays int

	machineIndex map[string]int
	taskIndex    map[TaskKey]int
}

// HorizonMinutes returns the total horizon length. It also serves as the
// upper bound of every time variable and as the big-M constant.
func (p *Problem) HorizonMinutes() int { return p.HorizonDays * MinutesPerDay }

// MachineByID resolves a machine id.
func (p *Problem) MachineByID(id string) (Machine, bool) {
	i, ok := p.machineIndex[id]
	if !ok {
		return Machine{}, false
	}
	return p.Machines[i], true
}

// TaskByKey resolves a task key.
func (p *Problem) TaskByKey(k TaskKey) (Task, bool) {
	i, ok := p.taskIndex[k]
	if !ok {
		return Task{}, false
	}
	return p.Tasks[i], true
}

// NewProblem validates the declarative input, expands every task's feasible
// start-time domain and returns the immutable Problem. Any malformed
// reference or empty domain aborts construction with an error naming the
// offending id.
func NewProblem(machines []Machine, defs []TaskDef, horizonDays int) (*Problem, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("horizon must be at least one day, got %d: %w", horizonDays, ErrBadInput)
	}

	p := &Problem{
		HorizonDays:  horizonDays,
		machineIndex: make(map[string]int, len(machines)),
		taskIndex:    make(map[TaskKey]int, len(defs)),
	}

	for _, m := range machines {
		if err := validateCalendar(m); err != nil {
			return nil, err
		}
		if _, dup := p.machineIndex[m.ID]; dup {
			return nil, fmt.Errorf("machine %q declared twice: %w", m.ID, ErrBadInput)
		}
		p.machineIndex[m.ID] = len(p.Machines)
		p.Machines = append(p.Machines, m)
	}

	for _, d := range defs {
		key := TaskKey{Job: d.Job, Task: d.Task}
		if d.Job == "" || d.Task == "" {
			return nil, fmt.Errorf("task %q needs both job and task ids: %w", key, ErrBadInput)
		}
		if _, dup := p.taskIndex[key]; dup {
			return nil, fmt.Errorf("task %q: %w", key, ErrDuplicateTask)
		}
		if d.Duration < 0 {
			return nil, fmt.Errorf("task %q has negative duration %d: %w", key, d.Duration, ErrBadInput)
		}
		machine, ok := p.MachineByID(d.Machine)
		if !ok {
			return nil, fmt.Errorf("task %q references machine %q: %w", key, d.Machine, ErrUnknownMachine)
		}

		t := Task{Key: key, Machine: d.Machine, Duration: d.Duration}
		if d.Predecessor != "" {
			pred := TaskKey{Job: d.Job, Task: d.Predecessor}
			if pred == key {
				return nil, fmt.Errorf("task %q precedes itself: %w", key, ErrPredecessorCycle)
			}
			t.Predecessor = &pred
		}

		t.Slots = ExpandSlots(machine.Calendar, t.Duration, horizonDays)
		if len(t.Slots) == 0 {
			return nil, fmt.Errorf("task %q (duration %d min) never fits machine %q's daily window: %w",
				key, t.Duration, d.Machine, ErrInfeasibleInput)
		}

		p.taskIndex[key] = len(p.Tasks)
		p.Tasks = append(p.Tasks, t)
	}

	if err := p.validateChains(); err != nil {
		return nil, err
	}
	return p, nil
}

func validateCalendar(m Machine) error {
	if m.ID == "" {
		return fmt.Errorf("machine with empty id: %w", ErrBadInput)
	}
	if len(m.Calendar) == 0 {
		return fmt.Errorf("machine %q: empty calendar: %w", m.ID, ErrBadCalendar)
	}
	for i, tick := range m.Calendar {
		if tick < 0 || tick >= MinutesPerDay {
			return fmt.Errorf("machine %q: tick %d outside [0,%d): %w", m.ID, tick, MinutesPerDay, ErrBadCalendar)
		}
		if i > 0 && tick <= m.Calendar[i-1] {
			return fmt.Errorf("machine %q: ticks not strictly increasing at %d: %w", m.ID, tick, ErrBadCalendar)
		}
	}
	return nil
}

// validateChains checks each job's predecessor links form a simple chain:
// every reference resolves within the job, no task is claimed as predecessor
// twice, and following the links always terminates.
func (p *Problem) validateChains() error {
	claimed := make(map[TaskKey]TaskKey, len(p.Tasks))
	for _, t := range p.Tasks {
		if t.Predecessor == nil {
			continue
		}
		if _, ok := p.taskIndex[*t.Predecessor]; !ok {
			return fmt.Errorf("task %q references predecessor %q: %w", t.Key, t.Predecessor.Task, ErrUnknownPredecessor)
		}
		if prev, dup := claimed[*t.Predecessor]; dup {
			return fmt.Errorf("tasks %q and %q both follow %q: %w", prev, t.Key, *t.Predecessor, ErrChainBranch)
		}
		claimed[*t.Predecessor] = t.Key
	}
	for _, t := range p.Tasks {
		seen := map[TaskKey]bool{t.Key: true}
		for cur := t.Predecessor; cur != nil; {
			if seen[*cur] {
				return fmt.Errorf("task %q: %w", t.Key, ErrPredecessorCycle)
			}
			seen[*cur] = true
			next, _ := p.TaskByKey(*cur)
			cur = next.Predecessor
		}
	}
	return nil
}

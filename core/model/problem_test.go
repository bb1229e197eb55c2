package model

import (
	"errors"
	"strings"
	"testing"
)

func machines() []Machine {
	return []Machine{
		{ID: "cutter", Calendar: []int{480, 540, 600, 660, 720}},
		{ID: "mill", Calendar: []int{480, 540, 600}},
	}
}

func TestNewProblemBuildsChains(t *testing.T) {
	defs := []TaskDef{
		{Job: "J1", Task: "cut", Machine: "cutter", Duration: 60},
		{Job: "J1", Task: "mill", Machine: "mill", Duration: 60, Predecessor: "cut"},
	}
	p, err := NewProblem(machines(), defs, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	task, ok := p.TaskByKey(TaskKey{Job: "J1", Task: "mill"})
	if !ok {
		t.Fatal("task J1/mill not found")
	}
	if task.Predecessor == nil || task.Predecessor.Task != "cut" {
		t.Fatalf("expected predecessor cut, got %v", task.Predecessor)
	}
	if len(task.Slots) == 0 {
		t.Fatal("expected feasible slots")
	}
	if p.HorizonMinutes() != 2880 {
		t.Fatalf("expected 2880 horizon minutes got %d", p.HorizonMinutes())
	}
}

func TestNewProblemUnknownMachine(t *testing.T) {
	defs := []TaskDef{{Job: "J1", Task: "cut", Machine: "laser", Duration: 60}}
	_, err := NewProblem(machines(), defs, 1)
	if !errors.Is(err, ErrUnknownMachine) {
		t.Fatalf("expected ErrUnknownMachine, got %v", err)
	}
}

func TestNewProblemUnknownPredecessor(t *testing.T) {
	defs := []TaskDef{{Job: "J1", Task: "cut", Machine: "cutter", Duration: 60, Predecessor: "polish"}}
	_, err := NewProblem(machines(), defs, 1)
	if !errors.Is(err, ErrUnknownPredecessor) {
		t.Fatalf("expected ErrUnknownPredecessor, got %v", err)
	}
}

func TestNewProblemPredecessorIsJobLocal(t *testing.T) {
	// J2/paint names a task that only exists in J1.
	defs := []TaskDef{
		{Job: "J1", Task: "cut", Machine: "cutter", Duration: 60},
		{Job: "J2", Task: "paint", Machine: "mill", Duration: 60, Predecessor: "cut"},
	}
	_, err := NewProblem(machines(), defs, 1)
	if !errors.Is(err, ErrUnknownPredecessor) {
		t.Fatalf("expected ErrUnknownPredecessor, got %v", err)
	}
}

func TestNewProblemCycle(t *testing.T) {
	defs := []TaskDef{
		{Job: "J1", Task: "a", Machine: "cutter", Duration: 60, Predecessor: "b"},
		{Job: "J1", Task: "b", Machine: "cutter", Duration: 60, Predecessor: "a"},
	}
	_, err := NewProblem(machines(), defs, 1)
	if !errors.Is(err, ErrPredecessorCycle) {
		t.Fatalf("expected ErrPredecessorCycle, got %v", err)
	}
}

func TestNewProblemBranchingChain(t *testing.T) {
	defs := []TaskDef{
		{Job: "J1", Task: "a", Machine: "cutter", Duration: 60},
		{Job: "J1", Task: "b", Machine: "cutter", Duration: 60, Predecessor: "a"},
		{Job: "J1", Task: "c", Machine: "mill", Duration: 60, Predecessor: "a"},
	}
	_, err := NewProblem(machines(), defs, 1)
	if !errors.Is(err, ErrChainBranch) {
		t.Fatalf("expected ErrChainBranch, got %v", err)
	}
}

func TestNewProblemDuplicateTask(t *testing.T) {
	defs := []TaskDef{
		{Job: "J1", Task: "cut", Machine: "cutter", Duration: 60},
		{Job: "J1", Task: "cut", Machine: "mill", Duration: 30},
	}
	_, err := NewProblem(machines(), defs, 1)
	if !errors.Is(err, ErrDuplicateTask) {
		t.Fatalf("expected ErrDuplicateTask, got %v", err)
	}
}

func TestNewProblemInfeasibleDuration(t *testing.T) {
	// Machine open 8:00-9:00, task needs 10 hours: empty domain, hard error.
	m := []Machine{{ID: "short", Calendar: []int{480, 540}}}
	defs := []TaskDef{{Job: "J1", Task: "long", Machine: "short", Duration: 600}}
	_, err := NewProblem(m, defs, 5)
	if !errors.Is(err, ErrInfeasibleInput) {
		t.Fatalf("expected ErrInfeasibleInput, got %v", err)
	}
}

func TestNewProblemBadCalendar(t *testing.T) {
	cases := []Machine{
		{ID: "empty", Calendar: nil},
		{ID: "unsorted", Calendar: []int{540, 480}},
		{ID: "negative", Calendar: []int{-10, 480}},
		{ID: "overflow", Calendar: []int{480, 1500}},
	}
	for _, m := range cases {
		_, err := NewProblem([]Machine{m}, nil, 1)
		if !errors.Is(err, ErrBadCalendar) {
			t.Fatalf("machine %s: expected ErrBadCalendar, got %v", m.ID, err)
		}
	}
}

func TestNewProblemBadHorizon(t *testing.T) {
	_, err := NewProblem(machines(), nil, 0)
	if !errors.Is(err, ErrBadInput) {
		t.Fatalf("expected ErrBadInput, got %v", err)
	}
}

func TestErrorsNameOffendingTask(t *testing.T) {
	m := []Machine{{ID: "short", Calendar: []int{480, 540}}}
	defs := []TaskDef{{Job: "Job9", Task: "Longest", Machine: "short", Duration: 600}}
	_, err := NewProblem(m, defs, 1)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"Job9/Longest", "short"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q should name %q", err, want)
		}
	}
}

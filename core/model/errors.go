package model

import "errors"

// Construction-time failures. All are fatal: a Problem is either fully valid
// or not built at all, and every wrapped instance names the offending
// job/task/machine id.
var (
	// ErrInfeasibleInput marks a task whose feasible start-time domain is
	// empty: its duration does not fit any daily window of its machine.
	ErrInfeasibleInput = errors.New("task has no feasible start slot")

	// ErrUnknownMachine marks a task referencing a machine id that was
	// never declared.
	ErrUnknownMachine = errors.New("unknown machine")

	// ErrUnknownPredecessor marks a predecessor reference that does not
	// resolve to a task of the same job.
	ErrUnknownPredecessor = errors.New("unknown predecessor")

	// ErrPredecessorCycle marks a predecessor chain that never terminates.
	ErrPredecessorCycle = errors.New("predecessor chain has a cycle")

	// ErrChainBranch marks two tasks of one job claiming the same
	// predecessor; job chains are linear.
	ErrChainBranch = errors.New("job chain branches")

	// ErrDuplicateTask marks a (job, task) key declared twice.
	ErrDuplicateTask = errors.New("duplicate task")

	// ErrBadCalendar marks a machine calendar that is empty, not strictly
	// increasing, or outside a single day.
	ErrBadCalendar = errors.New("invalid machine calendar")

	// ErrBadInput covers remaining malformed scalars (negative durations,
	// non-positive horizon, duplicate machine ids).
	ErrBadInput = errors.New("invalid problem input")
)

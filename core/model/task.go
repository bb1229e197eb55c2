package model

// TaskKey identifies a task within its problem. Task ids are only unique
// within a job, so both parts are needed.
type TaskKey struct {
	Job  string
	Task string
}

func (k TaskKey) String() string { return k.Job + "/" + k.Task }

// Less orders keys lexicographically by (job, task).
func (k TaskKey) Less(o TaskKey) bool {
	if k.Job != o.Job {
		return k.Job < o.Job
	}
	return k.Task < o.Task
}

// TaskDef is the declarative task input: one line of the problem description.
// An empty Predecessor means the task heads its job's chain.
type TaskDef struct {
	Job         string
	Task        string
	Machine     string
	Duration    int    // minutes
	Predecessor string // task id within the same job
}

// Task is the normalized form held by a Problem. Slots is the task's feasible
// start-time domain: absolute minute offsets from horizon start, ascending by
// day then by tick.
type Task struct {
	Key         TaskKey
	Machine     string
	Duration    int
	Predecessor *TaskKey // nil for chain heads
	Slots       []int
}

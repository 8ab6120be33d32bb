package tracing

import "github.com/weontaekna/AOS-boom/sim"

// TaskStep represents a milestone reached while processing a task.
type TaskStep struct {
	Time sim.VTimeInSec `json:"time"`
	What string         `json:"what"`
}

// Task is a traced unit of work: a load squeezing through the LCAM, an MCQ
// entry's bounds-check state walk, a commit-time exception — anything worth
// reconstructing later from a trace file.
type Task struct {
	ID        string         `json:"id"`
	ParentID  string         `json:"parent_id"`
	Kind      string         `json:"kind"`
	What      string         `json:"what"`
	Where     string         `json:"where"`
	StartTime sim.VTimeInSec `json:"start_time"`
	EndTime   sim.VTimeInSec `json:"end_time"`
	Steps     []TaskStep     `json:"steps"`
	Detail    interface{}    `json:"-"`
}

// TaskFilter reports whether a task is interesting enough to keep.
type TaskFilter func(t Task) bool

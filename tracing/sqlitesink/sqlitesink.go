// Package sqlitesink persists the tracing tasks reported to it to a SQLite
// database file, so a run's task trace can be queried after the run.
package sqlitesink

import (
	"database/sql"
	"fmt"
	"os"

	// Registers the "sqlite3" database/sql driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/tebeka/atexit"

	"github.com/weontaekna/AOS-boom/tracing"
)

// Sink is a tracing.Tracer that buffers started and ended tasks and writes
// them to a SQLite file in batches.
type Sink struct {
	*sql.DB
	statement *sql.Stmt

	path      string
	pending   []tracing.Task
	batchSize int
}

// New creates a Sink that writes to the SQLite file at path. An
// atexit.Register hook flushes any buffered rows if the process exits
// before Flush is called explicitly.
func New(path string) *Sink {
	s := &Sink{path: path, batchSize: 10000}

	atexit.Register(func() { s.Flush() })

	return s
}

// Init opens the database file and prepares the trace table. It panics if
// the file already exists, refusing to clobber an existing run's trace.
func (s *Sink) Init() {
	if _, err := os.Stat(s.path); err == nil {
		panic(fmt.Errorf("sqlitesink: file %s already exists", s.path))
	}

	db, err := sql.Open("sqlite3", s.path)
	if err != nil {
		panic(err)
	}

	s.DB = db

	s.mustExec(`
		CREATE TABLE trace (
			task_id    VARCHAR(200) NOT NULL,
			parent_id  VARCHAR(200),
			kind       VARCHAR(100) NOT NULL,
			what       VARCHAR(100) NOT NULL,
			location   VARCHAR(100) NOT NULL,
			start_time FLOAT NOT NULL,
			end_time   FLOAT NOT NULL DEFAULT 0
		);
	`)
	s.mustExec(`CREATE INDEX trace_kind_index ON trace (kind);`)
	s.mustExec(`CREATE INDEX trace_what_index ON trace (what);`)
	s.mustExec(`CREATE INDEX trace_task_id_index ON trace (task_id);`)

	stmt, err := s.Prepare(`INSERT INTO trace VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		panic(err)
	}

	s.statement = stmt
}

// StartTask buffers a newly started task. The sink does not distinguish
// start from end at the storage layer: StartTask and EndTask each write a
// row under the same task ID, so a task that never ends still has its
// start row in the table.
func (s *Sink) StartTask(task tracing.Task) {
	s.buffer(task)
}

// StepTask is a no-op: per-step milestones are not persisted, only task
// start/end boundaries.
func (s *Sink) StepTask(task tracing.Task) {}

// EndTask buffers the task's completion.
func (s *Sink) EndTask(task tracing.Task) {
	s.buffer(task)
}

func (s *Sink) buffer(task tracing.Task) {
	s.pending = append(s.pending, task)
	if len(s.pending) >= s.batchSize {
		s.Flush()
	}
}

// Flush writes every buffered task to disk.
func (s *Sink) Flush() {
	if len(s.pending) == 0 {
		return
	}

	s.mustExec("BEGIN TRANSACTION")
	for _, task := range s.pending {
		_, err := s.statement.Exec(
			task.ID, task.ParentID, task.Kind, task.What,
			task.Where, task.StartTime, task.EndTime,
		)
		if err != nil {
			panic(err)
		}
	}
	s.mustExec("COMMIT TRANSACTION")

	s.pending = nil
}

func (s *Sink) mustExec(query string) {
	if _, err := s.Exec(query); err != nil {
		panic(err)
	}
}

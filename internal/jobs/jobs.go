// Package jobs implements the single-flight background job orchestrator
// (spec.md §4.5): one simulation job may be Pending or Running at a time,
// progress is reported cooperatively, and cancellation is checked once per
// progress tick. Grounded on the teacher's internal/cache.Client, which
// already uses golang.org/x/sync/singleflight for stampede protection —
// here the same primitive collapses racing start calls onto one winner.
package jobs

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/montecarlo"
)

// State is one position in the job state machine. Pending and Running are
// transient; Completed, Cancelled, and Error are sticky.
type State string

const (
	Pending   State = "pending"
	Running   State = "running"
	Completed State = "completed"
	Cancelled State = "cancelled"
	Error     State = "error"
)

// terminal reports whether a state cannot transition further.
func (s State) terminal() bool {
	return s == Completed || s == Cancelled || s == Error
}

// Job is a snapshot of one simulation run's state. Result is present iff
// Completed; Err is present iff Error.
// @Description The state of a background simulation job
type Job struct {
	ID        string                 `json:"id"`
	State     State                  `json:"state"`
	Progress  int                    `json:"progress"`
	Result    *core.SimulationResult `json:"result,omitempty"`
	Err       string                 `json:"error,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

type entry struct {
	job    Job
	cancel *montecarlo.CancelToken
}

// Registry is the process-wide job table. At most one job may occupy
// Pending or Running at a time; Start enforces this under lock.
type Registry struct {
	mu       sync.Mutex
	jobs     map[string]*entry
	activeID string
	ttl      time.Duration
	sf       singleflight.Group
	bus      *Bus
}

// NewRegistry returns an empty registry. ttl controls how long terminal
// jobs are retained before Start silently reaps them; a zero ttl disables
// reaping based on age (jobs are still replaced when a new one starts).
func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		jobs: make(map[string]*entry),
		ttl:  ttl,
		bus:  NewBus(),
	}
}

// Bus returns the progress event bus backing this registry's jobs.
func (r *Registry) Bus() *Bus {
	return r.bus
}

// Start registers a new job and runs it in the background, returning
// immediately with state Pending. Concurrent Start calls collapse onto a
// single winner via singleflight, which also guarantees that a losing
// caller observes the exact Conflict error (or Job) the winner produced
// rather than independently re-deriving it.
func (r *Registry) Start(numSims int, seed *int64, schedule []core.Game, teams []core.Team) (Job, error) {
	v, err, _ := r.sf.Do("start", func() (any, error) {
		return r.startLocked(numSims, seed, schedule, teams)
	})
	if err != nil {
		return Job{}, err
	}
	return v.(Job), nil
}

func (r *Registry) startLocked(numSims int, seed *int64, schedule []core.Game, teams []core.Team) (Job, error) {
	r.mu.Lock()

	r.reapLocked()
	if r.activeID != "" {
		r.mu.Unlock()
		return Job{}, core.NewConflictError("a simulation job is already active")
	}

	now := time.Now()
	id := uuid.NewString()
	job := Job{ID: id, State: Pending, CreatedAt: now, UpdatedAt: now}
	token := montecarlo.NewCancelToken()
	r.jobs[id] = &entry{job: job, cancel: token}
	r.activeID = id
	r.mu.Unlock()

	go r.run(id, numSims, seed, schedule, teams, token)

	return job, nil
}

func (r *Registry) run(id string, numSims int, seed *int64, schedule []core.Game, teams []core.Team, token *montecarlo.CancelToken) {
	r.transition(id, Running, 0, nil, "")

	progress := func(completed, total int) {
		pct := 0
		if total > 0 {
			pct = completed * 100 / total
		}
		r.updateProgress(id, pct)
	}

	result, err := montecarlo.Simulate(schedule, teams, numSims, seed, progress, token)

	switch {
	case core.IsCancelled(err):
		r.transition(id, Cancelled, 100, nil, "")
	case err != nil:
		r.transition(id, Error, -1, nil, err.Error())
	default:
		r.transition(id, Completed, 100, result, "")
	}

	r.clearActive(id)
}

func (r *Registry) transition(id string, state State, progress int, result *core.SimulationResult, errMsg string) {
	r.mu.Lock()
	e, ok := r.jobs[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	e.job.State = state
	if progress >= 0 {
		e.job.Progress = progress
	}
	e.job.Result = result
	e.job.Err = errMsg
	e.job.UpdatedAt = time.Now()
	snapshot := e.job
	r.mu.Unlock()

	r.bus.Publish(id, snapshot)
}

func (r *Registry) updateProgress(id string, pct int) {
	r.mu.Lock()
	e, ok := r.jobs[id]
	if !ok {
		r.mu.Unlock()
		return
	}
	e.job.Progress = pct
	e.job.UpdatedAt = time.Now()
	snapshot := e.job
	r.mu.Unlock()

	r.bus.Publish(id, snapshot)
}

func (r *Registry) clearActive(id string) {
	r.mu.Lock()
	if r.activeID == id {
		r.activeID = ""
	}
	r.mu.Unlock()
}

// reapLocked discards terminal jobs older than ttl, or every terminal job
// when ttl is zero. Must be called with mu held.
func (r *Registry) reapLocked() {
	cutoff := time.Now().Add(-r.ttl)
	for id, e := range r.jobs {
		if e.job.State.terminal() && (r.ttl <= 0 || e.job.UpdatedAt.Before(cutoff)) {
			delete(r.jobs, id)
		}
	}
}

// Get returns a snapshot of job id's current state.
func (r *Registry) Get(id string) (Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.jobs[id]
	if !ok {
		return Job{}, core.NewNotFoundError("job", id)
	}
	return e.job, nil
}

// Cancel requests cancellation of job id. Idempotent: cancelling an
// already-terminal job is a no-op that returns its current (terminal)
// state.
func (r *Registry) Cancel(id string) (Job, error) {
	r.mu.Lock()
	e, ok := r.jobs[id]
	if !ok {
		r.mu.Unlock()
		return Job{}, core.NewNotFoundError("job", id)
	}
	if !e.job.State.terminal() {
		e.cancel.Cancel()
	}
	job := e.job
	r.mu.Unlock()
	return job, nil
}

package jobs

import (
	"testing"
	"time"

	"github.com/gridironlabs/nflsim/internal/core"
)

func tinySchedule() ([]core.Game, []core.Team) {
	teams := []core.Team{
		{ID: "kc", Conference: core.AFC, Division: core.West},
		{ID: "den", Conference: core.AFC, Division: core.West},
		{ID: "buf", Conference: core.AFC, Division: core.East},
		{ID: "mia", Conference: core.AFC, Division: core.East},
	}
	games := []core.Game{
		{ID: "g1", Week: 1, Home: "kc", Away: "den"},
		{ID: "g2", Week: 1, Home: "buf", Away: "mia"},
	}
	return games, teams
}

func waitForState(t *testing.T, r *Registry, id string, want State, timeout time.Duration) Job {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		job, err := r.Get(id)
		if err != nil {
			t.Fatalf("Get(%s) error: %v", id, err)
		}
		if job.State == want {
			return job
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("job %s did not reach state %s within %s", id, want, timeout)
	return Job{}
}

func TestStartReturnsPendingImmediately(t *testing.T) {
	games, teams := tinySchedule()
	r := NewRegistry(time.Hour)

	job, err := r.Start(50, nil, games, teams)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	if job.State != Pending {
		t.Fatalf("job.State = %s, want Pending", job.State)
	}

	waitForState(t, r, job.ID, Completed, 2*time.Second)
}

func TestStartRejectsSecondJobWhileOneIsActive(t *testing.T) {
	games, teams := tinySchedule()
	r := NewRegistry(time.Hour)

	job, err := r.Start(50000, nil, games, teams)
	if err != nil {
		t.Fatalf("first Start error: %v", err)
	}

	_, err = r.Start(50, nil, games, teams)
	if !core.IsConflict(err) {
		t.Fatalf("expected a conflict error for a second concurrent start, got %v", err)
	}

	waitForState(t, r, job.ID, Completed, 5*time.Second)
}

func TestGetUnknownJobIsNotFound(t *testing.T) {
	r := NewRegistry(time.Hour)
	_, err := r.Get("does-not-exist")
	if !core.IsNotFound(err) {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}

func TestCancelTransitionsRunningJobToCancelled(t *testing.T) {
	games, teams := tinySchedule()
	r := NewRegistry(time.Hour)

	job, err := r.Start(1000000, nil, games, teams)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	if _, err := r.Cancel(job.ID); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}

	final := waitForState(t, r, job.ID, Cancelled, 5*time.Second)
	if final.Result != nil {
		t.Fatalf("cancelled job must not surface a partial result, got %+v", final.Result)
	}
}

func TestCancelOnTerminalJobIsANoop(t *testing.T) {
	games, teams := tinySchedule()
	r := NewRegistry(time.Hour)

	job, err := r.Start(10, nil, games, teams)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}
	waitForState(t, r, job.ID, Completed, 2*time.Second)

	final, err := r.Cancel(job.ID)
	if err != nil {
		t.Fatalf("Cancel on terminal job error: %v", err)
	}
	if final.State != Completed {
		t.Fatalf("Cancel on a completed job must be a no-op, got state %s", final.State)
	}
}

func TestBusPublishesProgressToSubscribers(t *testing.T) {
	games, teams := tinySchedule()
	r := NewRegistry(time.Hour)

	job, err := r.Start(200, nil, games, teams)
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	ch := r.Bus().Subscribe(job.ID)
	defer r.Bus().Unsubscribe(job.ID, ch)

	select {
	case snapshot := <-ch:
		if snapshot.ID != job.ID {
			t.Fatalf("snapshot.ID = %s, want %s", snapshot.ID, job.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a progress snapshot")
	}
}

package montecarlo

import (
	"testing"

	"github.com/gridironlabs/nflsim/internal/core"
)

func twoTeamLeague() []core.Team {
	return []core.Team{
		{ID: "kc", Conference: core.AFC, Division: core.West},
		{ID: "den", Conference: core.AFC, Division: core.West},
		{ID: "buf", Conference: core.AFC, Division: core.East},
		{ID: "mia", Conference: core.AFC, Division: core.East},
	}
}

func TestSimulateRejectsInvalidTrialCount(t *testing.T) {
	_, err := Simulate(nil, twoTeamLeague(), 0, nil, nil, nil)
	if !core.IsValidation(err) {
		t.Fatalf("expected validation error for n=0, got %v", err)
	}
}

func TestSimulateIsDeterministicForAFixedSeed(t *testing.T) {
	schedule := []core.Game{
		{ID: "g1", Week: 1, Home: "kc", Away: "den"},
		{ID: "g2", Week: 1, Home: "buf", Away: "mia"},
		{ID: "g3", Week: 2, Home: "kc", Away: "buf"},
		{ID: "g4", Week: 2, Home: "den", Away: "mia"},
	}
	seed := int64(12345)

	first, err := Simulate(schedule, twoTeamLeague(), 200, &seed, nil, nil)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}
	second, err := Simulate(schedule, twoTeamLeague(), 200, &seed, nil, nil)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	for teamID, want := range first.Teams {
		got := second.Teams[teamID]
		if got.AverageWins != want.AverageWins || got.PlayoffProbability != want.PlayoffProbability {
			t.Fatalf("team %s diverged across identical-seed runs: %+v vs %+v", teamID, want, got)
		}
	}
}

func TestSimulateHonorsCompletedGames(t *testing.T) {
	homeScore, awayScore := 30, 10
	schedule := []core.Game{
		{
			ID: "g1", Week: 1, Home: "kc", Away: "den",
			ActualHomeScore: &homeScore, ActualAwayScore: &awayScore, IsCompleted: true,
		},
		{ID: "g2", Week: 1, Home: "buf", Away: "mia"},
	}
	seed := int64(7)

	result, err := Simulate(schedule, twoTeamLeague(), 500, &seed, nil, nil)
	if err != nil {
		t.Fatalf("Simulate error: %v", err)
	}

	kc := result.Teams["kc"]
	if kc.AverageWins < 0.9 {
		t.Fatalf("kc average wins = %v, want close to 1.0 given its only game is a fixed win", kc.AverageWins)
	}
}

func TestSimulateReportsProgressAndRespectsCancellation(t *testing.T) {
	schedule := []core.Game{
		{ID: "g1", Week: 1, Home: "kc", Away: "den"},
	}
	seed := int64(1)
	token := NewCancelToken()

	var ticks int
	progress := func(completed, total int) {
		ticks++
		if completed == total/10 {
			token.Cancel()
		}
	}

	_, err := Simulate(schedule, twoTeamLeague(), 1000, &seed, progress, token)
	if !core.IsCancelled(err) {
		t.Fatalf("expected a cancelled error, got %v", err)
	}
	if ticks == 0 {
		t.Fatal("expected at least one progress tick")
	}
}

package store

import (
	"testing"

	"github.com/gridironlabs/nflsim/internal/core"
)

func TestTeamsBootstrapsFromSeedOnFirstRun(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	teams, err := s.Teams()
	if err != nil {
		t.Fatalf("Teams error: %v", err)
	}
	if len(teams) != 32 {
		t.Fatalf("expected 32 bootstrapped teams, got %d", len(teams))
	}

	again, err := s.Teams()
	if err != nil {
		t.Fatalf("second Teams call error: %v", err)
	}
	if len(again) != 32 {
		t.Fatalf("expected persisted teams.json to still have 32 teams, got %d", len(again))
	}
}

func TestScheduleRoundTrips(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	games := []core.Game{{ID: "g1", Week: 1, Home: "kc", Away: "den"}}
	if err := s.SaveSchedule(2026, games); err != nil {
		t.Fatalf("SaveSchedule error: %v", err)
	}

	got, err := s.Schedule(2026)
	if err != nil {
		t.Fatalf("Schedule error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "g1" {
		t.Fatalf("got schedule %+v, want the saved game back", got)
	}
}

func TestScheduleMissingSeasonIsNotFound(t *testing.T) {
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	_, err = s.Schedule(1999)
	if !core.IsNotFound(err) {
		t.Fatalf("expected a not-found error for an unmaterialized season, got %v", err)
	}
}

func TestApplyResultsMarksMatchedGamesCompleted(t *testing.T) {
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "den"},
		{ID: "g2", Home: "buf", Away: "mia"},
	}
	results := []ActualResult{{GameID: "g1", HomeScore: 24, AwayScore: 20}}

	applied := ApplyResults(games, results)
	if !applied[0].IsCompleted || *applied[0].ActualHomeScore != 24 {
		t.Fatalf("g1 not marked completed correctly: %+v", applied[0])
	}
	if applied[1].IsCompleted {
		t.Fatalf("g2 should remain unresolved: %+v", applied[1])
	}
}

func TestApplyResultsPreservesExistingOverride(t *testing.T) {
	homeOverride, awayOverride := 10, 7
	games := []core.Game{{
		ID: "g1", Home: "kc", Away: "den",
		OverrideHomeScore: &homeOverride, OverrideAwayScore: &awayOverride, IsOverridden: true,
	}}
	results := []ActualResult{{GameID: "g1", HomeScore: 24, AwayScore: 20}}

	applied := ApplyResults(games, results)
	if !applied[0].IsOverridden || !applied[0].IsCompleted {
		t.Fatalf("expected both override and actual to be visible: %+v", applied[0])
	}
}

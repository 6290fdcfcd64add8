package overrides

import (
	"testing"

	"github.com/gridironlabs/nflsim/internal/core"
)

func TestOpenOnMissingDirStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if len(store.List()) != 0 {
		t.Fatalf("expected an empty store, got %v", store.List())
	}
}

func TestSetPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}

	if _, err := store.Set("g1", 24, 17); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	reopened, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	got, ok := reopened.Get("g1")
	if !ok {
		t.Fatal("expected override g1 to survive reopen")
	}
	if got.HomeScore != 24 || got.AwayScore != 17 {
		t.Fatalf("got override %+v, want 24-17", got)
	}
}

func TestSetRejectsNegativeScores(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	_, err = store.Set("g1", -3, 10)
	if !core.IsValidation(err) {
		t.Fatalf("expected a validation error for a negative score, got %v", err)
	}
}

func TestClearRemovesOverride(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, err := store.Set("g1", 10, 7); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := store.Clear("g1"); err != nil {
		t.Fatalf("Clear error: %v", err)
	}
	if _, ok := store.Get("g1"); ok {
		t.Fatal("expected g1 override to be cleared")
	}
}

func TestApplyStampsOverrideFieldsWithoutMutatingInput(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, err := store.Set("g1", 31, 14); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	games := []core.Game{{ID: "g1", Home: "kc", Away: "den"}, {ID: "g2", Home: "buf", Away: "mia"}}
	applied := store.Apply(games)

	if !applied[0].IsOverridden || *applied[0].OverrideHomeScore != 31 || *applied[0].OverrideAwayScore != 14 {
		t.Fatalf("g1 not overridden correctly: %+v", applied[0])
	}
	if applied[1].IsOverridden {
		t.Fatalf("g2 should not be overridden: %+v", applied[1])
	}
	if games[0].IsOverridden {
		t.Fatal("Apply must not mutate the input slice")
	}
}

func TestApplyRetainsOverrideAlongsideActualScoreConflict(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	if _, err := store.Set("g1", 20, 10); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	actualHome, actualAway := 27, 24
	games := []core.Game{{
		ID: "g1", Home: "kc", Away: "den",
		ActualHomeScore: &actualHome, ActualAwayScore: &actualAway, IsCompleted: true,
	}}
	applied := store.Apply(games)

	if !applied[0].IsOverridden || !applied[0].IsCompleted {
		t.Fatalf("expected both override and actual to remain visible: %+v", applied[0])
	}
	outcome, ok := applied[0].EffectiveOutcome()
	if !ok || outcome.HomeScore != 20 {
		t.Fatalf("override must win over actual per the refresh-conflict policy, got %+v", outcome)
	}
}

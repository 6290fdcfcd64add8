package seeding

import (
	"math/rand"
	"testing"

	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/standings"
)

func afcWestOnly() []core.Team {
	return []core.Team{
		{ID: "kc", Conference: core.AFC, Division: core.West},
		{ID: "den", Conference: core.AFC, Division: core.West},
		{ID: "lv", Conference: core.AFC, Division: core.West},
		{ID: "lac", Conference: core.AFC, Division: core.West},
		{ID: "buf", Conference: core.AFC, Division: core.East},
		{ID: "mia", Conference: core.AFC, Division: core.East},
		{ID: "ne", Conference: core.AFC, Division: core.East},
		{ID: "nyj", Conference: core.AFC, Division: core.East},
	}
}

func fullAFC() []core.Team {
	return []core.Team{
		{ID: "buf", Conference: core.AFC, Division: core.East},
		{ID: "mia", Conference: core.AFC, Division: core.East},
		{ID: "ne", Conference: core.AFC, Division: core.East},
		{ID: "nyj", Conference: core.AFC, Division: core.East},
		{ID: "bal", Conference: core.AFC, Division: core.North},
		{ID: "cin", Conference: core.AFC, Division: core.North},
		{ID: "cle", Conference: core.AFC, Division: core.North},
		{ID: "pit", Conference: core.AFC, Division: core.North},
		{ID: "hou", Conference: core.AFC, Division: core.South},
		{ID: "ind", Conference: core.AFC, Division: core.South},
		{ID: "jax", Conference: core.AFC, Division: core.South},
		{ID: "ten", Conference: core.AFC, Division: core.South},
		{ID: "den", Conference: core.AFC, Division: core.West},
		{ID: "kc", Conference: core.AFC, Division: core.West},
		{ID: "lv", Conference: core.AFC, Division: core.West},
		{ID: "lac", Conference: core.AFC, Division: core.West},
	}
}

func TestSeedProducesSevenDistinctTeamsPerConference(t *testing.T) {
	teams := fullAFC()
	table, err := standings.Compute(teams, nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	rng := rand.New(rand.NewSource(3))
	brackets := Seed(teams, table, rng)

	afc, ok := brackets[core.AFC]
	if !ok {
		t.Fatal("expected an AFC bracket")
	}

	seen := map[core.TeamID]bool{}
	for i, id := range afc {
		if id == "" {
			t.Fatalf("seed %d is empty", i+1)
		}
		if seen[id] {
			t.Fatalf("team %s appears twice in bracket %v", id, afc)
		}
		seen[id] = true
	}
}

func TestSeedPutsDivisionWinnersInTopFour(t *testing.T) {
	teams := afcWestOnly()
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "den"},
		{ID: "g2", Home: "kc", Away: "lv"},
		{ID: "g3", Home: "kc", Away: "lac"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 30, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g2", HomeScore: 30, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g3", HomeScore: 30, AwayScore: 10, Winner: core.WinnerHome},
	}
	table, err := standings.Compute(teams, games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	rng := rand.New(rand.NewSource(9))
	brackets := Seed(teams, table, rng)
	afc := brackets[core.AFC]

	inTopFour := false
	for _, id := range afc[0:4] {
		if id == "kc" {
			inTopFour = true
		}
	}
	if !inTopFour {
		t.Fatalf("kc (clean division sweep) not in top 4: %v", afc)
	}
}

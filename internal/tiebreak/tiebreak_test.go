package tiebreak

import (
	"math/rand"
	"testing"

	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/standings"
)

func divisionTeams() []core.Team {
	return []core.Team{
		{ID: "kc", Conference: core.AFC, Division: core.West},
		{ID: "den", Conference: core.AFC, Division: core.West},
		{ID: "lv", Conference: core.AFC, Division: core.West},
		{ID: "lac", Conference: core.AFC, Division: core.West},
	}
}

func TestRankHeadToHeadSweepWins(t *testing.T) {
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "den"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 24, AwayScore: 20, Winner: core.WinnerHome},
	}
	table, err := standings.Compute(divisionTeams(), games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	order := Rank(Division, []core.TeamID{"kc", "den"}, table, rng)
	if order[0] != "kc" {
		t.Fatalf("order = %v, want kc first (head-to-head winner)", order)
	}
}

func TestRankFallsThroughToPointsRankingWhenHeadToHeadTied(t *testing.T) {
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "lv"},
		{ID: "g2", Home: "lv", Away: "kc"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 30, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g2", HomeScore: 10, AwayScore: 6, Winner: core.WinnerHome},
	}
	table, err := standings.Compute(divisionTeams(), games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	order := Rank(Division, []core.TeamID{"kc", "lv"}, table, rng)
	if order[0] != "kc" {
		t.Fatalf("order = %v, want kc first (better combined points ranking after 1-1 head-to-head)", order)
	}
}

func TestRankWildCardRequiresCleanSweep(t *testing.T) {
	// kc beat den but lost to lv: no clean sweep among the 3-team set, so
	// rule 1 must yield no separation and fall through to rule 2+.
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "den"},
		{ID: "g2", Home: "lv", Away: "kc"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 20, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g2", HomeScore: 20, AwayScore: 10, Winner: core.WinnerHome},
	}
	table, err := standings.Compute(divisionTeams(), games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	result := headToHeadRule(WildCard, table, []core.TeamID{"kc", "den", "lv"})
	if result.applicable {
		t.Fatalf("expected rule 1 to be inapplicable without a clean sweep, got %+v", result)
	}
}

func TestRankWildCardCleanSweepSeparates(t *testing.T) {
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "den"},
		{ID: "g2", Home: "kc", Away: "lv"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 20, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g2", HomeScore: 20, AwayScore: 10, Winner: core.WinnerHome},
	}
	table, err := standings.Compute(divisionTeams(), games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	order := Rank(WildCard, []core.TeamID{"kc", "den", "lv"}, table, rng)
	if order[0] != "kc" {
		t.Fatalf("order = %v, want kc first (swept den and lv)", order)
	}
}

func TestRankCoinTossFinalizesCompleteTies(t *testing.T) {
	table, err := standings.Compute(divisionTeams(), nil, nil)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	order := Rank(Division, []core.TeamID{"kc", "den"}, table, rng)
	if len(order) != 2 {
		t.Fatalf("order = %v, want 2 teams", order)
	}
}

func TestPickWildCardsRotatesDivisionRunnerUp(t *testing.T) {
	teams := []core.Team{
		{ID: "kc", Conference: core.AFC, Division: core.West},
		{ID: "den", Conference: core.AFC, Division: core.West},
		{ID: "buf", Conference: core.AFC, Division: core.East},
	}
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "den"},
		{ID: "g2", Home: "kc", Away: "buf"},
		{ID: "g3", Home: "den", Away: "buf"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 24, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g2", HomeScore: 10, AwayScore: 30, Winner: core.WinnerAway},
		{GameID: "g3", HomeScore: 17, AwayScore: 14, Winner: core.WinnerHome},
	}
	table, err := standings.Compute(teams, games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	divisions := map[core.TeamID]core.Division{"kc": core.West, "den": core.West, "buf": core.East}
	rng := rand.New(rand.NewSource(7))
	picks := PickWildCards([]core.TeamID{"kc", "den", "buf"}, table, divisions, rng, 3)
	if len(picks) != 3 {
		t.Fatalf("picks = %v, want 3", picks)
	}
	if picks[2] != "den" {
		t.Fatalf("picks = %v, want den (West runner-up) picked only after kc", picks)
	}
	seen := map[core.TeamID]bool{}
	for _, p := range picks {
		if seen[p] {
			t.Fatalf("duplicate pick %s in %v", p, picks)
		}
		seen[p] = true
	}
}

package standings

import (
	"testing"

	"github.com/gridironlabs/nflsim/internal/core"
)

func fourTeams() []core.Team {
	return []core.Team{
		{ID: "kc", Name: "Kansas City Chiefs", Conference: core.AFC, Division: core.West},
		{ID: "den", Name: "Denver Broncos", Conference: core.AFC, Division: core.West},
		{ID: "buf", Name: "Buffalo Bills", Conference: core.AFC, Division: core.East},
		{ID: "dal", Name: "Dallas Cowboys", Conference: core.NFC, Division: core.East},
	}
}

func TestComputeFoldsBothPerspectives(t *testing.T) {
	games := []core.Game{
		{ID: "g1", Week: 1, Home: "kc", Away: "den"},
		{ID: "g2", Week: 2, Home: "buf", Away: "kc"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 24, AwayScore: 17, Winner: core.WinnerHome},
		{GameID: "g2", HomeScore: 10, AwayScore: 20, Winner: core.WinnerAway},
	}

	table, err := Compute(fourTeams(), games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	kc := table.Record("kc")
	if kc.Wins != 2 || kc.Losses != 0 {
		t.Fatalf("kc record = %+v, want 2-0", kc)
	}
	if kc.PointsFor != 44 || kc.PointsAgainst != 27 {
		t.Fatalf("kc points = %d/%d, want 44/27", kc.PointsFor, kc.PointsAgainst)
	}
	if kc.DivisionWins != 1 {
		t.Fatalf("kc division wins = %d, want 1 (only den is divisional)", kc.DivisionWins)
	}
	if kc.ConferenceWins != 2 {
		t.Fatalf("kc conference wins = %d, want 2 (den and buf both AFC)", kc.ConferenceWins)
	}

	den := table.Record("den")
	if den.Losses != 1 || den.PointsFor != 17 || den.PointsAgainst != 24 {
		t.Fatalf("den record = %+v", den)
	}

	buf := table.Record("buf")
	if buf.Losses != 1 || buf.DivisionLosses != 0 || buf.ConferenceLosses != 1 {
		t.Fatalf("buf record = %+v, want 0-1, 0 division losses, 1 conference loss", buf)
	}
}

func TestComputeUnknownGameErrors(t *testing.T) {
	_, err := Compute(fourTeams(), nil, []core.GameOutcome{{GameID: "ghost"}})
	if err == nil {
		t.Fatal("expected error for outcome referencing unknown game")
	}
}

func TestRecordAgainstScopesToOpponentSet(t *testing.T) {
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "den"},
		{ID: "g2", Home: "kc", Away: "buf"},
		{ID: "g3", Home: "kc", Away: "dal"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 20, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g2", HomeScore: 20, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g3", HomeScore: 10, AwayScore: 20, Winner: core.WinnerAway},
	}
	table, err := Compute(fourTeams(), games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	vsDivRivals := table.RecordAgainst("kc", []core.TeamID{"den"})
	if vsDivRivals.Wins != 1 || vsDivRivals.GamesPlayed() != 1 {
		t.Fatalf("kc vs den = %+v, want 1-0 in 1 game", vsDivRivals)
	}

	vsAll := table.RecordAgainst("kc", []core.TeamID{"den", "buf", "dal"})
	if vsAll.Wins != 2 || vsAll.Losses != 1 {
		t.Fatalf("kc vs all = %+v, want 2-1", vsAll)
	}
}

func TestCommonOpponentsRequiresEveryMember(t *testing.T) {
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "dal"},
		{ID: "g2", Home: "den", Away: "dal"},
		{ID: "g3", Home: "buf", Away: "kc"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 20, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g2", HomeScore: 20, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g3", HomeScore: 20, AwayScore: 10, Winner: core.WinnerHome},
	}
	table, err := Compute(fourTeams(), games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	common := table.CommonOpponents([]core.TeamID{"kc", "den"})
	if len(common) != 1 || common[0] != "dal" {
		t.Fatalf("common opponents = %v, want [dal]", common)
	}

	common = table.CommonOpponents([]core.TeamID{"kc", "den", "buf"})
	if len(common) != 0 {
		t.Fatalf("common opponents = %v, want empty (buf never played dal)", common)
	}
}

func TestPointsRankOrdersDescendingAndTiesAverage(t *testing.T) {
	games := []core.Game{
		{ID: "g1", Home: "kc", Away: "den"},
		{ID: "g2", Home: "buf", Away: "dal"},
	}
	outcomes := []core.GameOutcome{
		{GameID: "g1", HomeScore: 30, AwayScore: 10, Winner: core.WinnerHome},
		{GameID: "g2", HomeScore: 20, AwayScore: 20, Winner: core.WinnerTie},
	}
	table, err := Compute(fourTeams(), games, outcomes)
	if err != nil {
		t.Fatalf("Compute error: %v", err)
	}

	kcRank := table.PointsScoredRank("kc", ScopeLeague)
	if kcRank != 1 {
		t.Fatalf("kc points-scored rank = %v, want 1 (most points)", kcRank)
	}

	bufRank := table.PointsScoredRank("buf", ScopeLeague)
	dalRank := table.PointsScoredRank("dal", ScopeLeague)
	if bufRank != dalRank {
		t.Fatalf("tied scorers buf=%v dal=%v should share a rank", bufRank, dalRank)
	}
	if bufRank != 2.5 {
		t.Fatalf("buf/dal rank = %v, want 2.5 (average of positions 2 and 3)", bufRank)
	}
}

func TestWinPercentageDefaultsWhenNoGames(t *testing.T) {
	s := core.Standing{TeamID: "kc"}
	if s.WinPercentage() != 0.5 {
		t.Fatalf("WinPercentage with no games = %v, want 0.5", s.WinPercentage())
	}
}

package seed

import "testing"

func TestTeamsShapesLeague(t *testing.T) {
	teams, err := Teams()
	if err != nil {
		t.Fatalf("Teams() error: %v", err)
	}
	if len(teams) != 32 {
		t.Fatalf("expected 32 teams, got %d", len(teams))
	}

	byDivision := map[string]int{}
	ids := map[string]bool{}
	for _, team := range teams {
		if ids[string(team.ID)] {
			t.Fatalf("duplicate team id %s", team.ID)
		}
		ids[string(team.ID)] = true
		byDivision[string(team.Conference)+"/"+string(team.Division)]++
	}

	if len(byDivision) != 8 {
		t.Fatalf("expected 8 divisions, got %d", len(byDivision))
	}
	for key, count := range byDivision {
		if count != 4 {
			t.Errorf("division %s has %d teams, want 4", key, count)
		}
	}
}

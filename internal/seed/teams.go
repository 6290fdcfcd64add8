// Package seed provides the bundled roster used to bootstrap a fresh
// CACHE_DIRECTORY with teams.json. Grounded on the teacher's era-seeding
// package, which bootstrapped historical baseball league structure the same
// way: a bundled fixture decoded once at startup.
package seed

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v2"

	"github.com/gridironlabs/nflsim/internal/core"
)

//go:embed teams.yaml
var teamsFS embed.FS

type teamFixture struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	Abbreviation string `yaml:"abbreviation"`
	Conference   string `yaml:"conference"`
	Division     string `yaml:"division"`
}

type rosterFixture struct {
	Teams []teamFixture `yaml:"teams"`
}

// Teams decodes the bundled 32-team roster. Called once at first run to
// populate teams.json; callers should persist the result rather than
// re-decoding on every startup.
func Teams() ([]core.Team, error) {
	raw, err := teamsFS.ReadFile("teams.yaml")
	if err != nil {
		return nil, fmt.Errorf("read bundled roster: %w", err)
	}

	var fixture rosterFixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return nil, fmt.Errorf("parse bundled roster: %w", err)
	}

	teams := make([]core.Team, 0, len(fixture.Teams))
	divisionCounts := map[string]int{}
	for _, t := range fixture.Teams {
		team := core.Team{
			ID:           core.TeamID(t.ID),
			Name:         t.Name,
			Abbreviation: t.Abbreviation,
			Conference:   core.Conference(t.Conference),
			Division:     core.Division(t.Division),
		}
		teams = append(teams, team)
		divisionCounts[t.Conference+"/"+t.Division]++
	}

	if len(teams) != 32 {
		return nil, fmt.Errorf("bundled roster has %d teams, expected 32", len(teams))
	}
	for key, count := range divisionCounts {
		if count != 4 {
			return nil, fmt.Errorf("division %s has %d teams, expected 4", key, count)
		}
	}

	return teams, nil
}

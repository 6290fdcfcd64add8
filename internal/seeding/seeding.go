// Package seeding implements the playoff seeder (spec.md §4.3): division
// winners, seed 1-4 ranking among them, and the three wild cards filling
// seeds 5-7, per conference.
package seeding

import (
	"math/rand"
	"sort"

	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/standings"
	"github.com/gridironlabs/nflsim/internal/tiebreak"
)

// numWildCards is the count of wild-card berths filled per conference.
const numWildCards = 3

// Bracket is one conference's seven-team playoff ordering, index 0 = seed 1.
type Bracket [7]core.TeamID

// Seed computes the playoff bracket for every conference represented among
// teams, using outcomes already folded into table.
func Seed(teams []core.Team, table *standings.Table, rng *rand.Rand) map[core.Conference]Bracket {
	byConference := make(map[core.Conference][]core.Team)
	for _, team := range teams {
		byConference[team.Conference] = append(byConference[team.Conference], team)
	}

	result := make(map[core.Conference]Bracket, len(byConference))
	for conference, conferenceTeams := range byConference {
		result[conference] = seedConference(conferenceTeams, table, rng)
	}
	return result
}

func seedConference(conferenceTeams []core.Team, table *standings.Table, rng *rand.Rand) Bracket {
	byDivision := make(map[core.Division][]core.TeamID)
	divisionOf := make(map[core.TeamID]core.Division, len(conferenceTeams))
	for _, team := range conferenceTeams {
		byDivision[team.Division] = append(byDivision[team.Division], team.ID)
		divisionOf[team.ID] = team.Division
	}

	divisions := make([]core.Division, 0, len(byDivision))
	for div := range byDivision {
		divisions = append(divisions, div)
	}
	sort.Slice(divisions, func(i, j int) bool { return divisions[i] < divisions[j] })

	winners := make([]core.TeamID, 0, len(divisions))
	winnerSet := make(map[core.TeamID]bool, len(divisions))
	for _, div := range divisions {
		order := tiebreak.Rank(tiebreak.Division, byDivision[div], table, rng)
		winners = append(winners, order[0])
		winnerSet[order[0]] = true
	}

	seedsOneToFour := tiebreak.Rank(tiebreak.Division, winners, table, rng)

	var candidates []core.TeamID
	for _, team := range conferenceTeams {
		if !winnerSet[team.ID] {
			candidates = append(candidates, team.ID)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i] < candidates[j] })

	wildCards := tiebreak.PickWildCards(candidates, table, divisionOf, rng, numWildCards)

	var bracket Bracket
	copy(bracket[0:4], seedsOneToFour)
	copy(bracket[4:7], wildCards)
	return bracket
}

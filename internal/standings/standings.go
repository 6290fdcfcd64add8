// Package standings folds a set of GameOutcomes into per-team win/loss/tie
// records plus the per-pair aggregates the tiebreaker engine needs: head
// to head, common opponents, strength of victory/schedule, and points
// ranking. Every value here is derived fresh per trial — nothing is cached
// across trials, per spec.md §4.1.
package standings

import (
	"fmt"
	"sort"

	"github.com/gridironlabs/nflsim/internal/core"
)

// Table is the full set of derived standings for one trial: one overall
// Standing per team plus a broken-out sub-Standing per opponent pair, used
// to answer head-to-head, division, conference, and common-games queries.
type Table struct {
	teamsByID map[core.TeamID]core.Team
	overall   map[core.TeamID]*core.Standing
	vsOpp     map[core.TeamID]map[core.TeamID]*core.Standing
}

// Compute folds games+outcomes into a Table. games and outcomes must cover
// the same GameID set; outcomes may be a subset for partial-season queries
// but every outcome must reference a known game and both referenced teams
// must be present in teams.
func Compute(teams []core.Team, games []core.Game, outcomes []core.GameOutcome) (*Table, error) {
	t := &Table{
		teamsByID: make(map[core.TeamID]core.Team, len(teams)),
		overall:   make(map[core.TeamID]*core.Standing, len(teams)),
		vsOpp:     make(map[core.TeamID]map[core.TeamID]*core.Standing, len(teams)),
	}
	for _, team := range teams {
		t.teamsByID[team.ID] = team
		t.overall[team.ID] = &core.Standing{TeamID: team.ID}
		t.vsOpp[team.ID] = make(map[core.TeamID]*core.Standing)
	}

	gameByID := make(map[core.GameID]core.Game, len(games))
	for _, g := range games {
		gameByID[g.ID] = g
	}

	for _, oc := range outcomes {
		g, ok := gameByID[oc.GameID]
		if !ok {
			return nil, fmt.Errorf("standings: outcome references unknown game %q", oc.GameID)
		}
		if _, ok := t.teamsByID[g.Home]; !ok {
			return nil, fmt.Errorf("standings: unknown home team %q", g.Home)
		}
		if _, ok := t.teamsByID[g.Away]; !ok {
			return nil, fmt.Errorf("standings: unknown away team %q", g.Away)
		}

		t.fold(g.Home, g.Away, oc.HomeScore, oc.AwayScore, oc.Winner)
		t.fold(g.Away, g.Home, oc.AwayScore, oc.HomeScore, flip(oc.Winner))
	}

	return t, nil
}

// flip converts a home/away winner into the away team's perspective.
func flip(w core.Winner) core.Winner {
	switch w {
	case core.WinnerHome:
		return core.WinnerAway
	case core.WinnerAway:
		return core.WinnerHome
	default:
		return core.WinnerTie
	}
}

// fold credits teamID (relative to oppID) with a win/loss/tie and points,
// from teamID's perspective: result is WinnerHome when teamID itself won.
func (t *Table) fold(teamID, oppID core.TeamID, pointsFor, pointsAgainst int, result core.Winner) {
	overall := t.overall[teamID]
	applyResult(overall, pointsFor, pointsAgainst, result)

	team := t.teamsByID[teamID]
	opp := t.teamsByID[oppID]
	if team.Conference == opp.Conference {
		addConference(overall, result)
		if team.Division == opp.Division {
			addDivision(overall, result)
		}
	}

	vs, ok := t.vsOpp[teamID][oppID]
	if !ok {
		vs = &core.Standing{TeamID: oppID}
		t.vsOpp[teamID][oppID] = vs
	}
	applyResult(vs, pointsFor, pointsAgainst, result)
}

func applyResult(s *core.Standing, pf, pa int, result core.Winner) {
	s.PointsFor += pf
	s.PointsAgainst += pa
	switch result {
	case core.WinnerHome:
		s.Wins++
	case core.WinnerAway:
		s.Losses++
	case core.WinnerTie:
		s.Ties++
	}
}

func addConference(s *core.Standing, result core.Winner) {
	switch result {
	case core.WinnerHome:
		s.ConferenceWins++
	case core.WinnerAway:
		s.ConferenceLosses++
	case core.WinnerTie:
		s.ConferenceTies++
	}
}

func addDivision(s *core.Standing, result core.Winner) {
	switch result {
	case core.WinnerHome:
		s.DivisionWins++
	case core.WinnerAway:
		s.DivisionLosses++
	case core.WinnerTie:
		s.DivisionTies++
	}
}

// Record returns the overall Standing for a team. Returns the zero Standing
// (0-0-0) if the team never appeared in any outcome.
func (t *Table) Record(teamID core.TeamID) core.Standing {
	if s, ok := t.overall[teamID]; ok {
		return *s
	}
	return core.Standing{TeamID: teamID}
}

// RecordAgainst aggregates teamID's record against exactly the given set of
// opponents — used for head-to-head and common-games scoping.
func (t *Table) RecordAgainst(teamID core.TeamID, opponents []core.TeamID) core.Standing {
	total := core.Standing{TeamID: teamID}
	for _, opp := range opponents {
		if vs, ok := t.vsOpp[teamID][opp]; ok {
			total.Wins += vs.Wins
			total.Losses += vs.Losses
			total.Ties += vs.Ties
			total.PointsFor += vs.PointsFor
			total.PointsAgainst += vs.PointsAgainst
		}
	}
	return total
}

// OpponentsPlayed returns the distinct opponents teamID has a recorded game
// against.
func (t *Table) OpponentsPlayed(teamID core.TeamID) []core.TeamID {
	opps := make([]core.TeamID, 0, len(t.vsOpp[teamID]))
	for opp := range t.vsOpp[teamID] {
		opps = append(opps, opp)
	}
	sort.Slice(opps, func(i, j int) bool { return opps[i] < opps[j] })
	return opps
}

// CommonOpponents returns the set of opponents every team in teamIDs has
// played, sorted for determinism.
func (t *Table) CommonOpponents(teamIDs []core.TeamID) []core.TeamID {
	if len(teamIDs) == 0 {
		return nil
	}
	counts := make(map[core.TeamID]int)
	for _, teamID := range teamIDs {
		seen := make(map[core.TeamID]bool)
		for _, opp := range t.OpponentsPlayed(teamID) {
			if opp == teamID {
				continue
			}
			// A team can play a division rival twice; only count each
			// distinct opponent once toward "common to every member".
			if !seen[opp] {
				seen[opp] = true
				counts[opp]++
			}
		}
	}

	var common []core.TeamID
	for opp, count := range counts {
		if count == len(teamIDs) {
			common = append(common, opp)
		}
	}
	sort.Slice(common, func(i, j int) bool { return common[i] < common[j] })
	return common
}

// CommonGamesCount returns how many total games teamID has played against
// the given common-opponent set (used to enforce the "minimum 4" rule).
func (t *Table) CommonGamesCount(teamID core.TeamID, commonOpponents []core.TeamID) int {
	return t.RecordAgainst(teamID, commonOpponents).GamesPlayed()
}

// StrengthOfVictory is the combined win percentage, across every game
// teamID won, of the opponent faced in that game (each win counted
// separately even against a repeated opponent).
func (t *Table) StrengthOfVictory(teamID core.TeamID) float64 {
	var winsAndTies, games float64
	for opp, vs := range t.vsOpp[teamID] {
		if vs.Wins == 0 {
			continue
		}
		oppStanding := t.Record(opp)
		winsAndTies += float64(vs.Wins) * (oppStanding.WinPercentage() * float64(oppStanding.GamesPlayed()))
		games += float64(vs.Wins) * float64(oppStanding.GamesPlayed())
	}
	if games == 0 {
		return 0
	}
	return winsAndTies / games
}

// StrengthOfSchedule is the combined win percentage of every opponent
// teamID has played, each game weighted once.
func (t *Table) StrengthOfSchedule(teamID core.TeamID) float64 {
	var winsAndTies, games float64
	for opp, vs := range t.vsOpp[teamID] {
		played := vs.GamesPlayed()
		if played == 0 {
			continue
		}
		oppStanding := t.Record(opp)
		winsAndTies += float64(played) * (oppStanding.WinPercentage() * float64(oppStanding.GamesPlayed()))
		games += float64(played) * float64(oppStanding.GamesPlayed())
	}
	if games == 0 {
		return 0
	}
	return winsAndTies / games
}

// Scope selects the population a points ranking is computed over.
type Scope int

const (
	ScopeConference Scope = iota
	ScopeLeague
)

func (t *Table) scopeTeams(teamID core.TeamID, scope Scope) []core.TeamID {
	conference := t.teamsByID[teamID].Conference
	var ids []core.TeamID
	for id, team := range t.teamsByID {
		if scope == ScopeLeague || team.Conference == conference {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// PointsScoredRank returns teamID's fractional rank (1 = most points scored)
// among the given scope.
func (t *Table) PointsScoredRank(teamID core.TeamID, scope Scope) float64 {
	ids := t.scopeTeams(teamID, scope)
	values := make(map[core.TeamID]int, len(ids))
	for _, id := range ids {
		values[id] = t.Record(id).PointsFor
	}
	return fractionalRank(values, ids)[teamID]
}

// PointsAllowedRank returns teamID's fractional rank (1 = fewest points
// allowed) among the given scope.
func (t *Table) PointsAllowedRank(teamID core.TeamID, scope Scope) float64 {
	ids := t.scopeTeams(teamID, scope)
	values := make(map[core.TeamID]int, len(ids))
	for _, id := range ids {
		values[id] = -t.Record(id).PointsAgainst
	}
	return fractionalRank(values, ids)[teamID]
}

// CombinedRank is rank(points scored) + rank(points allowed); lower is
// better.
func (t *Table) CombinedRank(teamID core.TeamID, scope Scope) float64 {
	return t.PointsScoredRank(teamID, scope) + t.PointsAllowedRank(teamID, scope)
}

// fractionalRank assigns rank 1 to the highest value; tied values share the
// average of the positions they occupy (fractional ranking).
func fractionalRank(values map[core.TeamID]int, ids []core.TeamID) map[core.TeamID]float64 {
	sorted := append([]core.TeamID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool {
		if values[sorted[i]] != values[sorted[j]] {
			return values[sorted[i]] > values[sorted[j]]
		}
		return sorted[i] < sorted[j]
	})

	ranks := make(map[core.TeamID]float64, len(sorted))
	i := 0
	for i < len(sorted) {
		j := i
		for j < len(sorted) && values[sorted[j]] == values[sorted[i]] {
			j++
		}
		// positions i+1..j (1-indexed) are tied; assign their average.
		sum := 0.0
		for p := i + 1; p <= j; p++ {
			sum += float64(p)
		}
		avg := sum / float64(j-i)
		for k := i; k < j; k++ {
			ranks[sorted[k]] = avg
		}
		i = j
	}
	return ranks
}

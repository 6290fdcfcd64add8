// Package tiebreak implements the NFL's ordered tiebreaker rules for
// ranking a set of teams tied on win percentage, used by both division
// ranking and wild-card selection. Grounded on the worker-pool driven
// multi-stage scoring style of playoff_simulation.go (jshill103-hockey_home_dashboard)
// but rewritten around this repo's standings.Table aggregate.
package tiebreak

import (
	"math/rand"
	"sort"

	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/standings"
)

// Kind selects how rule 1 (head-to-head) is scored. The other rules,
// including the common-games scope, are the same for both kinds.
type Kind int

const (
	// Division ranks teams within a single division; rule 1 is a plain
	// head-to-head win percentage.
	Division Kind = iota
	// WildCard ranks teams that may span multiple divisions of the same
	// conference; rule 1 requires a clean sweep.
	WildCard
)

// ruleResult is the per-team score for one rule, plus whether the rule
// produced any information at all (an inapplicable rule is skipped
// entirely rather than treated as a universal tie).
type ruleResult struct {
	scores     map[core.TeamID]float64
	applicable bool
}

type rule func(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult

// rules holds the 10 scored rules in order; rule 11 (coin toss) is handled
// separately once every scored rule fails to separate the set. The source
// material implements 11 of the 12 traditional NFL tiebreaker rules,
// omitting net touchdowns; this list follows that same 11-rule ordering.
var rules = []rule{
	headToHeadRule,
	divisionRecordRule,
	commonGamesRule,
	conferenceRecordRule,
	strengthOfVictoryRule,
	strengthOfScheduleRule,
	combinedRankRule(standings.ScopeConference),
	combinedRankRule(standings.ScopeLeague),
	netPointsCommonGamesRule,
	netPointsAllGamesRule,
}

// Rank orders teams by the applicable 11-rule sequence, recursively
// separating the set wherever a rule produces a strict subset of leaders,
// and falling back to a trial-seeded coin toss wherever the full sequence
// fails to separate a remaining tie.
func Rank(kind Kind, teams []core.TeamID, table *standings.Table, rng *rand.Rand) []core.TeamID {
	ordered := append([]core.TeamID(nil), teams...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i] < ordered[j] })

	if len(ordered) <= 1 {
		return ordered
	}

	for _, r := range rules {
		result := r(kind, table, ordered)
		if !result.applicable {
			continue
		}
		top := topScoring(ordered, result.scores)
		if len(top) < len(ordered) {
			losers := subtract(ordered, top)
			out := Rank(kind, top, table, rng)
			return append(out, Rank(kind, losers, table, rng)...)
		}
		// every team tied on this rule; fall through to the next one.
	}

	return coinToss(ordered, rng)
}

// PickWildCards repeatedly applies the wild-card tiebreaker to the best
// remaining team from each division until count teams have been chosen,
// per spec.md §4.3's "repeatedly pick the next-best" procedure. Once a
// division's leading candidate is picked, that division's next-best
// candidate becomes eligible for the following round.
func PickWildCards(candidates []core.TeamID, table *standings.Table, teamDivision map[core.TeamID]core.Division, rng *rand.Rand, count int) []core.TeamID {
	remaining := append([]core.TeamID(nil), candidates...)
	picks := make([]core.TeamID, 0, count)

	for len(picks) < count && len(remaining) > 0 {
		field := bestPerDivision(remaining, table, teamDivision, rng)
		order := Rank(WildCard, field, table, rng)
		pick := order[0]
		picks = append(picks, pick)
		remaining = subtract(remaining, []core.TeamID{pick})
	}

	return picks
}

// bestPerDivision reduces candidates to at most one team per division: the
// division's own tiebreaker winner among the candidates present from that
// division. This is the wild-card procedure's division-elimination
// pre-step, applied fresh each round so a division's runner-up becomes
// eligible once its leader has already been picked.
func bestPerDivision(candidates []core.TeamID, table *standings.Table, teamDivision map[core.TeamID]core.Division, rng *rand.Rand) []core.TeamID {
	byDivision := make(map[core.Division][]core.TeamID)
	for _, id := range candidates {
		div := teamDivision[id]
		byDivision[div] = append(byDivision[div], id)
	}

	var field []core.TeamID
	divisions := make([]core.Division, 0, len(byDivision))
	for div := range byDivision {
		divisions = append(divisions, div)
	}
	sort.Slice(divisions, func(i, j int) bool { return divisions[i] < divisions[j] })

	for _, div := range divisions {
		group := byDivision[div]
		if len(group) == 1 {
			field = append(field, group[0])
			continue
		}
		order := Rank(Division, group, table, rng)
		field = append(field, order[0])
	}
	return field
}

// coinToss deterministically shuffles teams using rng, implementing rule 11.
func coinToss(teams []core.TeamID, rng *rand.Rand) []core.TeamID {
	out := append([]core.TeamID(nil), teams...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// topScoring returns the subset of teams achieving the maximum score,
// sorted for determinism.
func topScoring(teams []core.TeamID, scores map[core.TeamID]float64) []core.TeamID {
	best := scores[teams[0]]
	for _, id := range teams[1:] {
		if scores[id] > best {
			best = scores[id]
		}
	}
	var top []core.TeamID
	for _, id := range teams {
		if scores[id] == best {
			top = append(top, id)
		}
	}
	sort.Slice(top, func(i, j int) bool { return top[i] < top[j] })
	return top
}

func subtract(all, remove []core.TeamID) []core.TeamID {
	excluded := make(map[core.TeamID]bool, len(remove))
	for _, id := range remove {
		excluded[id] = true
	}
	var out []core.TeamID
	for _, id := range all {
		if !excluded[id] {
			out = append(out, id)
		}
	}
	return out
}

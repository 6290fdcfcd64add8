package tiebreak

import (
	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/standings"
)

// headToHeadRule is rule 1. For Division, it is win percentage in games
// played only among the members of S. For WildCard, a team only separates
// from the rest if it swept every other member of S; absent a clean sweep
// the rule produces no information and rule 2 takes over.
func headToHeadRule(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult {
	scores := make(map[core.TeamID]float64, len(teams))
	for _, id := range teams {
		opponents := subtract(teams, []core.TeamID{id})
		scores[id] = table.RecordAgainst(id, opponents).WinPercentage()
	}

	if kind == Division {
		return ruleResult{scores: scores, applicable: true}
	}

	for _, id := range teams {
		if swept(id, teams, table) {
			sweepScores := make(map[core.TeamID]float64, len(teams))
			for _, other := range teams {
				if other == id {
					sweepScores[other] = 1
				}
			}
			return ruleResult{scores: sweepScores, applicable: true}
		}
	}
	return ruleResult{applicable: false}
}

// swept reports whether id won every game it played against the other
// members of teams, and played at least one game against each.
func swept(id core.TeamID, teams []core.TeamID, table *standings.Table) bool {
	played := false
	for _, other := range teams {
		if other == id {
			continue
		}
		record := table.RecordAgainst(id, []core.TeamID{other})
		if record.GamesPlayed() == 0 {
			return false
		}
		played = true
		if record.Losses > 0 || record.Ties > 0 {
			return false
		}
	}
	return played
}

// divisionRecordRule is rule 2: win percentage within the division.
func divisionRecordRule(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult {
	scores := make(map[core.TeamID]float64, len(teams))
	for _, id := range teams {
		s := table.Record(id)
		played := s.DivisionWins + s.DivisionLosses + s.DivisionTies
		if played == 0 {
			scores[id] = 0.5
			continue
		}
		scores[id] = (float64(s.DivisionWins) + 0.5*float64(s.DivisionTies)) / float64(played)
	}
	return ruleResult{scores: scores, applicable: true}
}

// commonGamesRule is rule 3: win percentage against opponents common to
// every member of teams, only when each team has played at least 4 such
// games; otherwise the rule is skipped entirely.
func commonGamesRule(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult {
	common := table.CommonOpponents(teams)
	if len(common) == 0 {
		return ruleResult{applicable: false}
	}

	scores := make(map[core.TeamID]float64, len(teams))
	for _, id := range teams {
		if table.CommonGamesCount(id, common) < 4 {
			return ruleResult{applicable: false}
		}
		scores[id] = table.RecordAgainst(id, common).WinPercentage()
	}
	return ruleResult{scores: scores, applicable: true}
}

// conferenceRecordRule is rule 4: win percentage within the conference.
func conferenceRecordRule(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult {
	scores := make(map[core.TeamID]float64, len(teams))
	for _, id := range teams {
		s := table.Record(id)
		played := s.ConferenceWins + s.ConferenceLosses + s.ConferenceTies
		if played == 0 {
			scores[id] = 0.5
			continue
		}
		scores[id] = (float64(s.ConferenceWins) + 0.5*float64(s.ConferenceTies)) / float64(played)
	}
	return ruleResult{scores: scores, applicable: true}
}

// strengthOfVictoryRule is rule 5.
func strengthOfVictoryRule(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult {
	scores := make(map[core.TeamID]float64, len(teams))
	for _, id := range teams {
		scores[id] = table.StrengthOfVictory(id)
	}
	return ruleResult{scores: scores, applicable: true}
}

// strengthOfScheduleRule is rule 6.
func strengthOfScheduleRule(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult {
	scores := make(map[core.TeamID]float64, len(teams))
	for _, id := range teams {
		scores[id] = table.StrengthOfSchedule(id)
	}
	return ruleResult{scores: scores, applicable: true}
}

// combinedRankRule builds rules 7 and 8: best combined points-scored and
// points-allowed ranking within scope. Lower combined rank is better, so
// the score is negated — higher score still means "better" for topScoring.
func combinedRankRule(scope standings.Scope) rule {
	return func(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult {
		scores := make(map[core.TeamID]float64, len(teams))
		for _, id := range teams {
			scores[id] = -table.CombinedRank(id, scope)
		}
		return ruleResult{scores: scores, applicable: true}
	}
}

// netPointsCommonGamesRule is rule 9.
func netPointsCommonGamesRule(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult {
	common := table.CommonOpponents(teams)
	if len(common) == 0 {
		return ruleResult{applicable: false}
	}
	scores := make(map[core.TeamID]float64, len(teams))
	for _, id := range teams {
		scores[id] = float64(table.RecordAgainst(id, common).NetPoints())
	}
	return ruleResult{scores: scores, applicable: true}
}

// netPointsAllGamesRule is rule 10.
func netPointsAllGamesRule(kind Kind, table *standings.Table, teams []core.TeamID) ruleResult {
	scores := make(map[core.TeamID]float64, len(teams))
	for _, id := range teams {
		scores[id] = float64(table.Record(id).NetPoints())
	}
	return ruleResult{scores: scores, applicable: true}
}

// Package store persists the three file-backed inputs a simulation run
// needs — teams.json, schedule_<season>.json, and results_current.json —
// under a configured cache directory, per spec.md §6. ESPN ingestion
// itself is out of scope; this package only reads and writes the JSON
// files that ingestion (or a human operator) is expected to produce.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/fsutil"
	"github.com/gridironlabs/nflsim/internal/seed"
)

const teamsFileName = "teams.json"
const resultsFileName = "results_current.json"

func scheduleFileName(season int) string {
	return fmt.Sprintf("schedule_%d.json", season)
}

// ActualResult is one game's externally reported score, as persisted in
// results_current.json ahead of being folded into a schedule.
// @Description A reported actual score for one game
type ActualResult struct {
	GameID    core.GameID `json:"game_id"`
	HomeScore int         `json:"home_score"`
	AwayScore int         `json:"away_score"`
}

// Store is a concurrency-safe accessor for the cache directory's JSON
// fixtures.
type Store struct {
	mu  sync.RWMutex
	dir string
}

// Open ensures dir exists and returns a Store rooted there.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: create cache directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// Teams returns the persisted roster, bootstrapping teams.json from the
// bundled seed fixture on first run.
func (s *Store) Teams() ([]core.Team, error) {
	s.mu.RLock()
	var teams []core.Team
	err := fsutil.ReadJSON(s.path(teamsFileName), &teams)
	s.mu.RUnlock()

	if err == nil {
		return teams, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("store: read teams: %w", err)
	}

	teams, err = seed.Teams()
	if err != nil {
		return nil, fmt.Errorf("store: bootstrap teams: %w", err)
	}
	if err := s.SaveTeams(teams); err != nil {
		return nil, err
	}
	return teams, nil
}

// SaveTeams persists the roster atomically.
func (s *Store) SaveTeams(teams []core.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fsutil.WriteJSONAtomic(s.path(teamsFileName), teams)
}

// Schedule returns the persisted game list for season, or NotFound if it
// has not yet been materialized.
func (s *Store) Schedule(season int) ([]core.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var games []core.Game
	if err := fsutil.ReadJSON(s.path(scheduleFileName(season)), &games); err != nil {
		if os.IsNotExist(err) {
			return nil, core.NewNotFoundError("schedule", fmt.Sprintf("%d", season))
		}
		return nil, fmt.Errorf("store: read schedule: %w", err)
	}
	return games, nil
}

// SaveSchedule persists season's game list atomically.
func (s *Store) SaveSchedule(season int, games []core.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fsutil.WriteJSONAtomic(s.path(scheduleFileName(season)), games)
}

// Results returns the persisted actual-result overlay, or an empty slice
// if none has been recorded yet.
func (s *Store) Results() ([]ActualResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []ActualResult
	if err := fsutil.ReadJSON(s.path(resultsFileName), &results); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: read results: %w", err)
	}
	return results, nil
}

// SaveResults persists the actual-result overlay atomically.
func (s *Store) SaveResults(results []ActualResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fsutil.WriteJSONAtomic(s.path(resultsFileName), results)
}

// ApplyResults folds results onto games by matching GameID, marking each
// matched game completed. Games with no matching result are returned
// unchanged. Per spec.md §4.6's refresh-conflict policy, a game that is
// already overridden keeps its override fields untouched — the caller
// decides how to surface the actual-vs-override conflict.
func ApplyResults(games []core.Game, results []ActualResult) []core.Game {
	byGame := make(map[core.GameID]ActualResult, len(results))
	for _, r := range results {
		byGame[r.GameID] = r
	}

	out := make([]core.Game, len(games))
	for i, g := range games {
		out[i] = g
		if result, ok := byGame[g.ID]; ok {
			homeScore, awayScore := result.HomeScore, result.AwayScore
			out[i].ActualHomeScore = &homeScore
			out[i].ActualAwayScore = &awayScore
			out[i].IsCompleted = true
		}
	}
	return out
}

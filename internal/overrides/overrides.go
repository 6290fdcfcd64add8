// Package overrides implements the user override store (spec.md §4.6): a
// key-value mapping from game id to a substitute (home_score, away_score,
// set_at) applied before simulation, persisted atomically as a single JSON
// file. Grounded on the file-based JSON persistence style of
// prediction_storage_service.go (jshill103-hockey_home_dashboard), made
// atomic with a write-temp-then-rename sequence.
package overrides

import (
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/fsutil"
)

// fileName is the persisted override file's name within the configured
// cache directory.
const fileName = "user_overrides.json"

// Store is a concurrency-safe, file-backed override table.
type Store struct {
	mu   sync.RWMutex
	path string
	data map[core.GameID]core.Override
}

// Open loads dir/user_overrides.json if present, or starts empty if the
// file does not yet exist.
func Open(dir string) (*Store, error) {
	s := &Store{
		path: filepath.Join(dir, fileName),
		data: make(map[core.GameID]core.Override),
	}

	var entries []core.Override
	if err := fsutil.ReadJSON(s.path, &entries); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	for _, entry := range entries {
		s.data[entry.GameID] = entry
	}
	return s, nil
}

// Set records an override for gameID and persists the store.
func (s *Store) Set(gameID core.GameID, homeScore, awayScore int) (core.Override, error) {
	if homeScore < 0 || awayScore < 0 {
		return core.Override{}, core.NewValidationError("score", "must be non-negative")
	}

	override := core.Override{
		GameID:    gameID,
		HomeScore: homeScore,
		AwayScore: awayScore,
		SetAt:     time.Now(),
	}

	s.mu.Lock()
	s.data[gameID] = override
	err := s.persistLocked()
	s.mu.Unlock()

	return override, err
}

// Clear removes gameID's override, if any, and persists the store.
func (s *Store) Clear(gameID core.GameID) error {
	s.mu.Lock()
	delete(s.data, gameID)
	err := s.persistLocked()
	s.mu.Unlock()
	return err
}

// Get returns gameID's override, if set.
func (s *Store) Get(gameID core.GameID) (core.Override, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	override, ok := s.data[gameID]
	return override, ok
}

// List returns every override, sorted by game id for determinism.
func (s *Store) List() []core.Override {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Override, 0, len(s.data))
	for _, override := range s.data {
		out = append(out, override)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GameID < out[j].GameID })
	return out
}

// Apply returns a copy of games with every overridden game's override
// fields stamped on, per spec.md §4.6: overrides are applied by copying
// the schedule, not by mutating it in place. Games whose actual score has
// since appeared keep both the actual and override fields populated — the
// conflict is surfaced to the caller rather than resolved here.
func (s *Store) Apply(games []core.Game) []core.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Game, len(games))
	for i, g := range games {
		out[i] = g
		if override, ok := s.data[g.ID]; ok {
			homeScore, awayScore := override.HomeScore, override.AwayScore
			out[i].OverrideHomeScore = &homeScore
			out[i].OverrideAwayScore = &awayScore
			out[i].IsOverridden = true
		}
	}
	return out
}

// persistLocked writes the store to disk atomically. Callers must hold mu.
func (s *Store) persistLocked() error {
	entries := make([]core.Override, 0, len(s.data))
	for _, override := range s.data {
		entries = append(entries, override)
	}
	return fsutil.WriteJSONAtomic(s.path, entries)
}

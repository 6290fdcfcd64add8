// Package montecarlo implements the simulation driver (spec.md §4.4): N
// independent season trials partitioned across a worker pool, each folding
// unresolved games into a full GameOutcome set, deriving playoff seeds, and
// accumulating per-team probabilities.
package montecarlo

import (
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/seeding"
	"github.com/gridironlabs/nflsim/internal/standings"
)

// scoreLambda is the Poisson mean used to generate plausible scores for
// point-differential tiebreakers; games are otherwise decided by a fair
// coin flip.
const scoreLambda = 22.5

// maxRejectionAttempts bounds the winner/loser score rejection loop so a
// pathological draw can never hang a worker.
const maxRejectionAttempts = 10000

// numSeeds is the number of playoff seeds tracked per conference (1..7);
// index 0 is unused so SeedProbabilities can be indexed directly by seed.
const numSeeds = 8

// ProgressFunc is invoked roughly every 1% of total trials with the number
// of trials completed so far.
type ProgressFunc func(completed, total int)

// CancelToken is a cooperative cancellation signal checked once per
// progress tick. It carries no dependency on the job orchestrator so
// montecarlo stays usable standalone (e.g. from the CLI's synchronous
// simulate command).
type CancelToken struct {
	cancelled atomic.Bool
}

// NewCancelToken returns a token in the not-cancelled state.
func NewCancelToken() *CancelToken {
	return &CancelToken{}
}

// Cancel requests cancellation; idempotent.
func (c *CancelToken) Cancel() {
	if c == nil {
		return
	}
	c.cancelled.Store(true)
}

// Cancelled reports whether Cancel has been called.
func (c *CancelToken) Cancelled() bool {
	return c != nil && c.cancelled.Load()
}

type teamCounters struct {
	winsSum   int64
	seedCount [numSeeds]int64
}

// Simulate runs n trials of schedule and aggregates per-team probabilities.
// A nil seed picks one from a nondeterministic source; a non-nil seed
// produces byte-identical results across runs given the same inputs. A nil
// progress or cancel is treated as a no-op.
func Simulate(schedule []core.Game, teams []core.Team, n int, seed *int64, progress ProgressFunc, cancel *CancelToken) (*core.SimulationResult, error) {
	if n < 1 || n > 1_000_000 {
		return nil, core.NewValidationError("num_simulations", "must be between 1 and 1000000")
	}

	started := time.Now()

	actualSeed := resolveSeed(seed)

	base, unresolved := splitByResolution(schedule)

	workerCount := workerCountFor(n)
	bounds := partition(n, workerCount)

	results := make([]map[core.TeamID]*teamCounters, workerCount)
	cancelledFlags := make([]bool, workerCount)

	var completed atomic.Int64
	var progressMu sync.Mutex
	tick := max(1, n/100)

	var wg sync.WaitGroup
	for worker := 0; worker < workerCount; worker++ {
		worker := worker
		start, end := bounds[worker], bounds[worker+1]
		wg.Add(1)
		go func() {
			defer wg.Done()
			rng := rand.New(rand.NewSource(actualSeed ^ int64(worker)))
			local := make(map[core.TeamID]*teamCounters, len(teams))
			for _, team := range teams {
				local[team.ID] = &teamCounters{}
			}

			for trial := start; trial < end; trial++ {
				runTrial(schedule, teams, base, unresolved, rng, local)

				newCompleted := completed.Add(1)
				if newCompleted%int64(tick) == 0 || newCompleted == int64(n) {
					progressMu.Lock()
					if progress != nil {
						progress(int(newCompleted), n)
					}
					progressMu.Unlock()
					if cancel.Cancelled() {
						cancelledFlags[worker] = true
						results[worker] = local
						return
					}
				}
			}
			results[worker] = local
		}()
	}
	wg.Wait()

	for _, c := range cancelledFlags {
		if c {
			return nil, &core.CancelledError{}
		}
	}

	merged := mergeCounters(teams, results)
	result := toResult(merged, n, actualSeed)
	result.Duration = time.Since(started)
	return result, nil
}

func resolveSeed(seed *int64) int64 {
	if seed != nil {
		return *seed
	}
	return time.Now().UnixNano()
}

func workerCountFor(n int) int {
	cores := runtime.NumCPU()
	byLoad := n / 1000
	workers := min(cores, byLoad)
	if workers < 1 {
		workers = 1
	}
	return workers
}

// partition returns workerCount+1 boundaries splitting [0, n) into
// contiguous, deterministic chunks independent of goroutine scheduling.
func partition(n, workerCount int) []int {
	bounds := make([]int, workerCount+1)
	for i := 0; i <= workerCount; i++ {
		bounds[i] = i * n / workerCount
	}
	return bounds
}

// splitByResolution separates games already decided (completed or
// overridden) from games the simulator must resolve each trial.
func splitByResolution(schedule []core.Game) (resolved []core.GameOutcome, unresolved []core.Game) {
	for _, g := range schedule {
		if outcome, ok := g.EffectiveOutcome(); ok {
			resolved = append(resolved, outcome)
		} else {
			unresolved = append(unresolved, g)
		}
	}
	return resolved, unresolved
}

func runTrial(schedule []core.Game, teams []core.Team, base []core.GameOutcome, unresolved []core.Game, rng *rand.Rand, local map[core.TeamID]*teamCounters) {
	outcomes := make([]core.GameOutcome, 0, len(schedule))
	outcomes = append(outcomes, base...)

	poisson := distuv.Poisson{Lambda: scoreLambda, Src: rng}
	for _, g := range unresolved {
		outcomes = append(outcomes, resolveGame(g, poisson, rng))
	}

	table, err := standings.Compute(teams, schedule, outcomes)
	if err != nil {
		// Schedule/teams are validated before Simulate is called; a folding
		// error here means the caller passed inconsistent inputs.
		panic(err)
	}

	brackets := seeding.Seed(teams, table, rng)
	seedOf := make(map[core.TeamID]int, len(teams))
	for _, bracket := range brackets {
		for i, teamID := range bracket {
			seedOf[teamID] = i + 1
		}
	}

	for _, team := range teams {
		counters := local[team.ID]
		counters.winsSum += int64(table.Record(team.ID).Wins)
		if seed, ok := seedOf[team.ID]; ok {
			counters.seedCount[seed]++
		}
	}
}

// resolveGame draws a fair winner and a pair of Poisson scores consistent
// with that winner, rejecting draws where the loser's score would not be
// strictly lower.
func resolveGame(g core.Game, poisson distuv.Poisson, rng *rand.Rand) core.GameOutcome {
	homeWins := rng.Float64() < 0.5

	var winnerScore, loserScore int
	for attempt := 0; attempt < maxRejectionAttempts; attempt++ {
		winnerScore = drawScore(poisson)
		loserScore = drawScore(poisson)
		if winnerScore > loserScore {
			break
		}
	}
	if winnerScore <= loserScore {
		winnerScore = loserScore + 1
	}

	homeScore, awayScore := loserScore, winnerScore
	winner := core.WinnerAway
	if homeWins {
		homeScore, awayScore = winnerScore, loserScore
		winner = core.WinnerHome
	}

	return core.GameOutcome{
		GameID:    g.ID,
		HomeScore: homeScore,
		AwayScore: awayScore,
		Winner:    winner,
	}
}

func drawScore(poisson distuv.Poisson) int {
	score := int(math.Round(poisson.Rand()))
	if score < 0 {
		score = 0
	}
	return score
}

func mergeCounters(teams []core.Team, perWorker []map[core.TeamID]*teamCounters) map[core.TeamID]*teamCounters {
	merged := make(map[core.TeamID]*teamCounters, len(teams))
	for _, team := range teams {
		merged[team.ID] = &teamCounters{}
	}
	for _, workerResult := range perWorker {
		for teamID, c := range workerResult {
			total := merged[teamID]
			total.winsSum += c.winsSum
			for s := 0; s < numSeeds; s++ {
				total.seedCount[s] += c.seedCount[s]
			}
		}
	}
	return merged
}

func toResult(merged map[core.TeamID]*teamCounters, n int, seed int64) *core.SimulationResult {
	teamResults := make(map[core.TeamID]*core.TeamResult, len(merged))
	for teamID, c := range merged {
		var probs core.SeedProbabilities
		var playoffTotal, divisionTotal int64
		for s := 1; s < numSeeds; s++ {
			probs[s] = float64(c.seedCount[s]) / float64(n)
			playoffTotal += c.seedCount[s]
			if s <= 4 {
				divisionTotal += c.seedCount[s]
			}
		}

		teamResults[teamID] = &core.TeamResult{
			TeamID:                 teamID,
			AverageWins:            float64(c.winsSum) / float64(n),
			PlayoffProbability:     float64(playoffTotal) / float64(n),
			DivisionWinProbability: float64(divisionTotal) / float64(n),
			FirstSeedProbability:   float64(c.seedCount[1]) / float64(n),
			SeedProbabilities:      probs,
		}
	}

	return &core.SimulationResult{
		Trials: n,
		Teams:  teamResults,
		Seed:   seed,
	}
}

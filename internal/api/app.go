package api

import (
	"context"

	"github.com/gridironlabs/nflsim/internal/cache"
	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/jobs"
	"github.com/gridironlabs/nflsim/internal/overrides"
	"github.com/gridironlabs/nflsim/internal/standings"
	"github.com/gridironlabs/nflsim/internal/store"
)

// App bundles the dependencies every route handler needs: the file-backed
// store, the override store, the job registry, the season the API
// currently serves, and the optional response cache. Cache is nil when no
// Redis connection is configured; every cache-aware method degrades to a
// direct compute in that case.
type App struct {
	Store     *store.Store
	Overrides *overrides.Store
	Jobs      *jobs.Registry
	Season    int
	Cache     *cache.Client
}

// listCached wraps compute in the response cache's cache-aside path, keyed
// by resource and params. With no cache configured it just calls compute.
func (a *App) listCached(ctx context.Context, resource string, params map[string]string, compute func() (any, error)) (any, error) {
	if a.Cache == nil {
		return compute()
	}
	key := a.Cache.ListKey(resource, params)
	return a.Cache.GetOrCompute(ctx, key, a.Cache.ListTTL(), compute)
}

// invalidateScheduleDerived drops the cached schedule and standings
// listings after an override changes the outcome they're derived from.
func (a *App) invalidateScheduleDerived(ctx context.Context) {
	if a.Cache == nil {
		return
	}
	for _, resource := range []string{"schedule", "standings"} {
		prefix := a.Cache.KeyPrefix(cache.KeyTypeList, resource)
		_, _ = a.Cache.InvalidateByPrefix(ctx, prefix)
	}
}

// effectiveSchedule loads the current season's schedule, folds in the
// latest reported results, and stamps on any user overrides — the same
// pipeline a simulation run or a /schedule read uses. A season with no
// materialized schedule yet returns an empty slice rather than an error:
// ingestion happens out of process and may simply not have run.
func (a *App) effectiveSchedule() ([]core.Game, error) {
	games, err := a.Store.Schedule(a.Season)
	if err != nil {
		if core.IsNotFound(err) {
			games = nil
		} else {
			return nil, err
		}
	}

	results, err := a.Store.Results()
	if err != nil {
		return nil, err
	}
	games = store.ApplyResults(games, results)
	games = a.Overrides.Apply(games)
	return games, nil
}

func (a *App) standingsTable() (*standings.Table, []core.Team, error) {
	teams, err := a.Store.Teams()
	if err != nil {
		return nil, nil, err
	}
	games, err := a.effectiveSchedule()
	if err != nil {
		return nil, nil, err
	}

	var outcomes []core.GameOutcome
	for _, g := range games {
		if outcome, ok := g.EffectiveOutcome(); ok {
			outcomes = append(outcomes, outcome)
		}
	}

	table, err := standings.Compute(teams, games, outcomes)
	if err != nil {
		return nil, nil, err
	}
	return table, teams, nil
}

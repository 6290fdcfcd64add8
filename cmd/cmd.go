package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/gridironlabs/nflsim/internal/config"
	"github.com/gridironlabs/nflsim/internal/core"
	"github.com/gridironlabs/nflsim/internal/echo"
	"github.com/gridironlabs/nflsim/internal/montecarlo"
	"github.com/gridironlabs/nflsim/internal/overrides"
	"github.com/gridironlabs/nflsim/internal/standings"
	"github.com/gridironlabs/nflsim/internal/store"
)

// loadLocalStores loads config and opens the schedule/override stores
// rooted at the configured cache directory, for commands that operate
// directly on-disk rather than against a running server.
func loadLocalStores(cmd *cobra.Command) (*config.Config, *store.Store, *overrides.Store, error) {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	s, err := store.Open(cfg.Cache.Directory)
	if err != nil {
		return nil, nil, nil, err
	}
	o, err := overrides.Open(cfg.Cache.Directory)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, s, o, nil
}

func effectiveSchedule(cfg *config.Config, s *store.Store, o *overrides.Store) ([]core.Game, error) {
	games, err := s.Schedule(cfg.Server.Season)
	if err != nil {
		if core.IsNotFound(err) {
			games = nil
		} else {
			return nil, err
		}
	}
	results, err := s.Results()
	if err != nil {
		return nil, err
	}
	games = store.ApplyResults(games, results)
	return o.Apply(games), nil
}

// TeamsCmd lists the 32-team roster.
func TeamsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teams",
		Short: "List teams",
		Long:  "List all 32 teams, grouped by conference and division.",
		RunE:  listTeams,
	}
}

func listTeams(cmd *cobra.Command, args []string) error {
	_, s, _, err := loadLocalStores(cmd)
	if err != nil {
		return err
	}
	teams, err := s.Teams()
	if err != nil {
		return err
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Conference != teams[j].Conference {
			return teams[i].Conference < teams[j].Conference
		}
		if teams[i].Division != teams[j].Division {
			return teams[i].Division < teams[j].Division
		}
		return teams[i].ID < teams[j].ID
	})

	echo.Header("Teams")
	for _, t := range teams {
		echo.Infof("  [%s/%s] %-4s %s", t.Conference, t.Division, t.ID, t.Name)
	}
	echo.Successf("✓ %d teams", len(teams))
	return nil
}

// ScheduleCmd lists the current season's schedule.
func ScheduleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List schedule",
		Long:  "List the current season's games, optionally filtered by week.",
		RunE:  listSchedule,
	}
	cmd.Flags().Int("week", 0, "Filter by week number (0 = all weeks)")
	return cmd
}

func listSchedule(cmd *cobra.Command, args []string) error {
	cfg, s, o, err := loadLocalStores(cmd)
	if err != nil {
		return err
	}
	games, err := effectiveSchedule(cfg, s, o)
	if err != nil {
		return err
	}

	week, _ := cmd.Flags().GetInt("week")

	echo.Header("Schedule")
	for _, g := range games {
		if week != 0 && g.Week != week {
			continue
		}
		status := "unresolved"
		if outcome, ok := g.EffectiveOutcome(); ok {
			tag := "actual"
			if g.IsOverridden {
				tag = "override"
			}
			status = fmt.Sprintf("%s %d-%d", tag, outcome.HomeScore, outcome.AwayScore)
		}
		echo.Infof("  wk%-2d %s %-4s vs %-4s  [%s]", g.Week, g.ID, g.Home, g.Away, status)
	}
	return nil
}

// StandingsCmd lists current standings from completed and overridden games.
func StandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "List standings",
		Long:  "List every team's current win/loss/tie record, derived from completed and overridden games only.",
		RunE:  listStandings,
	}
}

func listStandings(cmd *cobra.Command, args []string) error {
	cfg, s, o, err := loadLocalStores(cmd)
	if err != nil {
		return err
	}
	teams, err := s.Teams()
	if err != nil {
		return err
	}
	games, err := effectiveSchedule(cfg, s, o)
	if err != nil {
		return err
	}

	var outcomes []core.GameOutcome
	for _, g := range games {
		if outcome, ok := g.EffectiveOutcome(); ok {
			outcomes = append(outcomes, outcome)
		}
	}

	table, err := standings.Compute(teams, games, outcomes)
	if err != nil {
		return err
	}

	sort.Slice(teams, func(i, j int) bool { return teams[i].ID < teams[j].ID })

	echo.Header("Standings")
	for _, t := range teams {
		rec := table.Record(t.ID)
		echo.Infof("  %-4s %2d-%2d-%-2d  pf %3d  pa %3d  net %+4d", t.ID, rec.Wins, rec.Losses, rec.Ties, rec.PointsFor, rec.PointsAgainst, rec.NetPoints())
	}
	return nil
}

// SimulateCmd runs a one-off Monte Carlo simulation synchronously and
// prints a probability table. Grounded on the teacher's direct-to-terminal
// command style (no server round trip needed).
func SimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a Monte Carlo season simulation",
		Long:  "Run num-simulations trials against the current schedule and print playoff/division/seed probabilities per team.",
		RunE:  runSimulate,
	}
	cmd.Flags().Int("num-simulations", 10000, "Number of trials to run (1..1000000)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = nondeterministic)")
	return cmd
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, s, o, err := loadLocalStores(cmd)
	if err != nil {
		return err
	}
	teams, err := s.Teams()
	if err != nil {
		return err
	}
	games, err := effectiveSchedule(cfg, s, o)
	if err != nil {
		return err
	}

	n, _ := cmd.Flags().GetInt("num-simulations")
	seedFlag, _ := cmd.Flags().GetInt64("seed")
	var seed *int64
	if seedFlag != 0 {
		seed = &seedFlag
	}

	echo.Header("Simulating")
	echo.Infof("Running %s trials...", formatLargeNumber(int64(n)))

	result, err := montecarlo.Simulate(games, teams, n, seed, nil, nil)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	sort.Slice(teams, func(i, j int) bool {
		return result.Teams[teams[i].ID].PlayoffProbability > result.Teams[teams[j].ID].PlayoffProbability
	})

	echo.Info("")
	echo.Infof("%-4s  %6s  %6s  %6s  %6s", "team", "playoff", "div", "1seed", "avgW")
	for _, t := range teams {
		tr := result.Teams[t.ID]
		echo.Infof("%-4s  %5.1f%%  %5.1f%%  %5.1f%%  %5.2f",
			t.ID, tr.PlayoffProbability*100, tr.DivisionWinProbability*100, tr.FirstSeedProbability*100, tr.AverageWins)
	}
	echo.Info("")
	echo.Successf("✓ %s trials in %s (seed %d)", formatLargeNumber(int64(result.Trials)), result.Duration, result.Seed)
	return nil
}

// OverrideCmd groups override set/clear/list subcommands.
func OverrideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "override",
		Short: "Manage game overrides",
		Long:  "Set, clear, or list user-supplied substitute outcomes applied before simulation.",
	}
	cmd.AddCommand(OverrideSetCmd())
	cmd.AddCommand(OverrideClearCmd())
	cmd.AddCommand(OverrideListCmd())
	return cmd
}

func OverrideSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <game_id> <home_score> <away_score>",
		Short: "Set a game override",
		Args:  cobra.ExactArgs(3),
		RunE:  setOverride,
	}
}

func setOverride(cmd *cobra.Command, args []string) error {
	_, _, o, err := loadLocalStores(cmd)
	if err != nil {
		return err
	}
	var home, away int
	if _, err := fmt.Sscanf(args[1], "%d", &home); err != nil {
		return fmt.Errorf("error: invalid home_score %q", args[1])
	}
	if _, err := fmt.Sscanf(args[2], "%d", &away); err != nil {
		return fmt.Errorf("error: invalid away_score %q", args[2])
	}

	override, err := o.Set(core.GameID(args[0]), home, away)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}
	echo.Successf("✓ %s overridden to %d-%d", override.GameID, override.HomeScore, override.AwayScore)
	return nil
}

func OverrideClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <game_id>",
		Short: "Clear a game override",
		Args:  cobra.ExactArgs(1),
		RunE:  clearOverride,
	}
}

func clearOverride(cmd *cobra.Command, args []string) error {
	_, _, o, err := loadLocalStores(cmd)
	if err != nil {
		return err
	}
	if err := o.Clear(core.GameID(args[0])); err != nil {
		return fmt.Errorf("error: %w", err)
	}
	echo.Successf("✓ %s override cleared", args[0])
	return nil
}

func OverrideListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all overrides",
		RunE:  listOverrides,
	}
}

func listOverrides(cmd *cobra.Command, args []string) error {
	_, _, o, err := loadLocalStores(cmd)
	if err != nil {
		return err
	}

	entries := o.List()
	sort.Slice(entries, func(i, j int) bool { return entries[i].GameID < entries[j].GameID })

	echo.Header("Overrides")
	for _, e := range entries {
		echo.Infof("  %s -> %d-%d (set %s)", e.GameID, e.HomeScore, e.AwayScore, humanizeModTime(e.SetAt))
	}
	echo.Successf("✓ %d overrides", len(entries))
	return nil
}

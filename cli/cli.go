package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/gridironlabs/nflsim/cmd"
	"github.com/gridironlabs/nflsim/internal/echo"
)

// RootCmd is the root command for the nflsim CLI.
var RootCmd = &cobra.Command{
	Use:   "nflsim",
	Short: "NFL Monte Carlo season simulator toolkit",
	Long: echo.HeaderStyle().Render("NFL Monte Carlo Simulator") + "\n\n" +
		"A toolkit for simulating the remainder of an NFL regular season:\n" +
		"standings, tiebreakers, playoff seeding, and Monte Carlo trial runs,\n" +
		"plus the HTTP API and cache tooling that back it.",
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "Path to config file (defaults to conf.toml / $HOME/.nflsim / /etc/nflsim)")

	RootCmd.AddCommand(cmd.TeamsCmd())
	RootCmd.AddCommand(cmd.ScheduleCmd())
	RootCmd.AddCommand(cmd.StandingsCmd())
	RootCmd.AddCommand(cmd.SimulateCmd())
	RootCmd.AddCommand(cmd.OverrideCmd())
	RootCmd.AddCommand(cmd.JobsCmd())
	RootCmd.AddCommand(cmd.ServerCmd())
	RootCmd.AddCommand(cmd.CacheCmd())
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

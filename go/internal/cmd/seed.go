package main

import (
	"fmt"

	"github.com/mcdev12/rosterdesk/go/internal/dbconfig"
	"github.com/mcdev12/rosterdesk/go/internal/tools/seed"
	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert fixture teams",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&seedFile, "file", "go/internal/assets/teams.json", "team fixture JSON")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	teams, err := seed.LoadTeams(seedFile)
	if err != nil {
		return err
	}

	pool, err := dbconfig.OpenPool(cmd.Context(), dbconfig.NewConfigFromEnv())
	if err != nil {
		return err
	}
	defer pool.Close()

	sum := seed.Teams(cmd.Context(), pool, teams)
	fmt.Printf(
		"Teams seed complete: %d total, %d inserted, %d skipped, %d errors\n",
		sum.Total, sum.Inserted, sum.Skipped, sum.Errors,
	)
	if sum.Errors > 0 {
		return fmt.Errorf("%d teams failed to seed", sum.Errors)
	}
	return nil
}

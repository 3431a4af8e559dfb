package main

import (
	"context"
	"os"

	"github.com/mcdev12/rosterdesk/go/internal/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	settings   config.Config
)

var rootCmd = &cobra.Command{
	Use:           "rosterdesk",
	Short:         "Roster and team management for seasonal leagues",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.LoadDotEnv()

		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}
		settings.Log.SetupLogging()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML settings file (defaults to $RULES_FILE)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("rosterdesk failed")
		os.Exit(1)
	}
}

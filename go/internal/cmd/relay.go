package main

import (
	"os/signal"
	"syscall"

	"github.com/mcdev12/rosterdesk/go/internal/outbox"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Publish pending outbox events to JetStream",
	RunE:  runRelay,
}

func init() {
	rootCmd.AddCommand(relayCmd)
}

func runRelay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := setupDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	publisher, err := outbox.NewJetStreamPublisher(ctx, publisherConfig(settings))
	if err != nil {
		return err
	}
	defer publisher.Close()

	relay := outbox.NewRelay(outbox.NewRepository(database), publisher, relayConfig(settings), nil)
	if err := relay.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	log.Info().Msg("stopping outbox relay")
	return relay.Stop()
}

package main

import (
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcdev12/rosterdesk/go/internal/gateway"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Serve the live roster websocket feed",
	RunE:  runGateway,
}

func init() {
	rootCmd.AddCommand(gatewayCmd)
}

func runGateway(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := gateway.NewHub(gateway.DefaultConfig())
	go hub.Run(ctx)

	consumer, err := gateway.NewConsumer(ctx, hub, consumerConfig(settings))
	if err != nil {
		return err
	}
	defer consumer.Stop()

	go func() {
		if err := consumer.Start(ctx); err != nil {
			log.Error().Err(err).Msg("roster event consumer stopped")
			stop()
		}
	}()

	mux := http.NewServeMux()
	gateway.NewHandler(hub).RegisterRoutes(mux)
	setupHealthCheck(mux)

	server := &http.Server{
		Addr:              ":" + settings.Gateway.Port,
		Handler:           cors.AllowAll().Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return listen(ctx, server)
}

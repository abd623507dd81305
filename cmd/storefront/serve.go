package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"storefront/internal/api"
	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("db", cfg.DBPath).
		Bool("events", cfg.RabbitURL != "").
		Msg("starting storefront")

	st, err := store.Open(cfg.DBPath, cfg.ProductCacheSize)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.SeedOnStart {
		if err := st.Seed(ctx); err != nil {
			return err
		}
		log.Info().Msg("seeded demo catalog")
	}

	var publisher events.Publisher
	if cfg.RabbitURL != "" {
		rabbit, err := events.Dial(cfg.RabbitURL, cfg.RabbitExchange)
		if err != nil {
			return err
		}
		defer rabbit.Close()
		publisher = rabbit
		log.Info().Str("exchange", cfg.RabbitExchange).Msg("event publisher connected")
	}

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.New(st, publisher, log.Logger).Handler(cfg.CORSOrigins),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Warn().Msg("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownGrace)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

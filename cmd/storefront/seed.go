package main

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"storefront/internal/config"
	"storefront/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the demo catalog and coupons",
	RunE:  runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	st, err := store.Open(cfg.DBPath, cfg.ProductCacheSize)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Seed(context.Background()); err != nil {
		return err
	}
	n, err := st.CountProducts(context.Background(), "")
	if err != nil {
		return err
	}
	log.Info().Int64("products", n).Str("db", cfg.DBPath).Msg("seed complete")
	return nil
}

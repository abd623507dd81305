package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Product catalog, cart, and pricing service",
	Long: `storefront serves a small shop over HTTP/JSON: a searchable
product catalog, per-token carts with tiered and bulk discounts,
coupons, and an admin surface for catalog maintenance.`,
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

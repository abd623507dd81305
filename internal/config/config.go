// Package config loads service configuration from the environment,
// with an optional .env overlay for local development.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr         string
	DBPath           string
	RabbitURL        string // empty disables event publishing
	RabbitExchange   string
	CORSOrigins      []string
	ProductCacheSize int
	SeedOnStart      bool
}

const ShutdownGrace = 10 * time.Second

// Load reads the environment. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		HTTPAddr:         getenv("HTTP_ADDR", ":8080"),
		DBPath:           getenv("DB_PATH", "./data/storefront.db"),
		RabbitURL:        getenv("RABBIT_URL", ""),
		RabbitExchange:   getenv("RABBIT_EXCHANGE", "storefront.events"),
		CORSOrigins:      splitComma(getenv("CORS_ORIGINS", "*")),
		ProductCacheSize: getint("PRODUCT_CACHE_SIZE", 256),
		SeedOnStart:      getenv("SEED_ON_START", "false") == "true",
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

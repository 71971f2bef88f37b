package shared

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv           string
	HTTPAddr         string
	MetricsAddr      string
	SourcePath       string
	ApprovalsBackend string // file | redis
	ApprovalsPath    string
	RedisAddr        string
	RedisDB          int
	RedisPass        string
	RateRPS          int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:           env("APP_ENV", "prod"),
		HTTPAddr:         env("HTTP_ADDR", ""),
		MetricsAddr:      env("METRICS_ADDR", ""),
		SourcePath:       env("HOSTAWAY_SOURCE_PATH", "mock/hostaway_reviews.json"),
		ApprovalsBackend: env("APPROVALS_BACKEND", "file"),
		ApprovalsPath:    env("APPROVALS_PATH", "mock/approvals.json"),
		RedisAddr:        env("REDIS_ADDR", "localhost:6379"),
		RedisPass:        env("REDIS_PASSWORD", ""),
		RedisDB:          atoi("REDIS_DB", 0),
		RateRPS:          atoi("HTTP_RATE_RPS", 0),
	}
	if c.HTTPAddr == "" {
		// legacy deployments configure just the port
		c.HTTPAddr = ":" + env("PORT", "8080")
	}
	if c.ApprovalsBackend != "file" && c.ApprovalsBackend != "redis" {
		log.Warn().Str("backend", c.ApprovalsBackend).Msg("unknown APPROVALS_BACKEND, using file")
		c.ApprovalsBackend = "file"
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

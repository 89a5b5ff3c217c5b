package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv          string
	HTTPAddr        string
	MetricsAddr     string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	ProviderBase    string
	ProviderToken   string
	ProviderVersion string
	SyncWorkers     int
	CustomerIDs     []string
	CacheTTL        time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:          env("APP_ENV", "prod"),
		HTTPAddr:        env("HTTP_ADDR", ":8080"),
		MetricsAddr:     env("METRICS_ADDR", ":9100"),
		MySQLDSN:        env("MYSQL_DSN", "root:root@tcp(localhost:3306)/staymarket?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:       env("REDIS_ADDR", "localhost:6379"),
		RedisPass:       env("REDIS_PASSWORD", ""),
		RedisDB:         atoi("REDIS_DB", 0),
		ProviderBase:    env("PROVIDER_BASE_URL", "https://connect.hospitable.com/api"),
		ProviderToken:   env("PROVIDER_PLATFORM_TOKEN", ""),
		ProviderVersion: env("PROVIDER_API_VERSION", "2024-01"),
		SyncWorkers:     atoi("SYNC_WORKERS", 4),
		CustomerIDs:     splitList(env("CUSTOMER_IDS", "")),
		CacheTTL:        time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.ProviderToken == "" {
		log.Warn().Msg("PROVIDER_PLATFORM_TOKEN is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

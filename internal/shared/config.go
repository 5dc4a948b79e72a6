package shared

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	ITunesBase   string
	ITunesRPS    int
	Countries    []string
	Workers      int
	ReviewTarget int
	CacheTTL     time.Duration
	ExportDir    string
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
	return Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/reviewpulse?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisDB:      atoi("REDIS_DB", 0),
		RedisPass:    env("REDIS_PASSWORD", ""),
		ITunesBase:   env("ITUNES_BASE_URL", "https://itunes.apple.com"),
		ITunesRPS:    atoi("ITUNES_RPS", 5),
		Countries:    splitCSV(env("STOREFRONTS", strings.Join(DefaultCountries, ","))),
		Workers:      atoi("INGEST_WORKERS", 4),
		ReviewTarget: atoi("INGEST_REVIEW_TARGET", 100),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		ExportDir:    env("EXPORT_DIR", "exports"),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if t := strings.TrimSpace(strings.ToLower(p)); t != "" {
			out = append(out, t)
		}
	}
	return out
}

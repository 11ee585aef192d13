package shared

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	WebhookURL     string
	WebhookTimeout time.Duration
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	CacheTTL       time.Duration
	TableLimit     int
}

// LoadEnv pulls a local .env file into the environment before Load reads it.
// Missing file is fine; the OS environment wins.
func LoadEnv() {
	if err := gotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("could not load .env file")
	}
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
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		WebhookURL:     webhookURL(),
		WebhookTimeout: time.Duration(atoi("WEBHOOK_TIMEOUT_SECONDS", 300)) * time.Second,
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASSWORD", ""),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		TableLimit:     atoi("TABLE_LIMIT", 50),
	}
	if c.WebhookURL == "" {
		log.Warn().Msg("no webhook URL configured (N8N_WEBHOOK_URL or config.json)")
	}
	return c
}

// webhookURL resolves the workflow URL: environment first, then the local
// config file's webhook_url field, then empty.
func webhookURL() string {
	if u := strings.TrimSpace(os.Getenv("N8N_WEBHOOK_URL")); u != "" {
		return u
	}
	path := env("N8N_CONFIG_FILE", "config.json")
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	var cfg struct {
		WebhookURL string `json:"webhook_url"`
	}
	if err := json.Unmarshal(b, &cfg); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("config file is not valid JSON")
		return ""
	}
	return strings.TrimSpace(cfg.WebhookURL)
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

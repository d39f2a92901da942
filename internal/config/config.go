package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AudioCachePath string

	AuthSecret      string
	EnableGuestAuth bool

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string

	// Speech synthesis backend; empty key disables speech and the API
	// reports unavailable instead of failing.
	GoogleTTSAPIKey string

	// Mock test session time limit; zero means untimed.
	MockTestTimeLimit time.Duration

	// Extra bank YAML files loaded at startup, beyond the built-in contexts.
	BankFiles []string
}

// fileConfig is the optional YAML config file. Env vars override whatever
// it sets.
type fileConfig struct {
	Mode     string `yaml:"mode"`
	HTTPAddr string `yaml:"http_addr"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	AudioCachePath string   `yaml:"audio_cache_path"`
	BankFiles      []string `yaml:"bank_files"`
}

// Load builds the config: .env file (if present), then the YAML file named
// by CONFIG_FILE (if any), then environment variables on top.
func Load() Config {
	_ = godotenv.Load()

	var fc fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if f, err := os.Open(path); err == nil {
			_ = yaml.NewDecoder(f).Decode(&fc)
			f.Close()
		}
	}

	mode := Mode(envOr("MODE", fc.Mode))
	if mode == "" {
		mode = ModeOffline
	}
	return Config{
		Mode:     mode,
		HTTPAddr: envOr("HTTP_ADDR", orDefault(fc.HTTPAddr, ":8080")),

		DBDriver: envOr("DB_DRIVER", orDefault(fc.Database.Driver, "sqlite")),
		DBDSN:    envOr("DB_DSN", fc.Database.DSN),

		AudioCachePath: envOr("AUDIO_CACHE_PATH", orDefault(fc.AudioCachePath, "./data")),

		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		EnableGuestAuth: envBool("ENABLE_GUEST_AUTH", true),

		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: os.Getenv("ADMIN_PASS_HASH"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://learn.speakeasy.example"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),

		GoogleTTSAPIKey: os.Getenv("GOOGLE_TTS_API_KEY"),

		MockTestTimeLimit: envDuration("MOCKTEST_TIME_LIMIT", 0),

		BankFiles: append(fc.BankFiles, csvOr("BANK_FILES", "")...),
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	GeminiAPIKey string
	GeminiModel  string

	DatabaseType string // "postgres" | "sqlite"
	DatabaseURL  string

	GmailAddress     string
	GmailAppPassword string
	SMTPHost         string
	SMTPPort         int

	PromptFile     string
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	LogLevel       string
}

type loader struct {
	missing []string
	bad     []string
}

func (l *loader) mustEnv(k string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		l.missing = append(l.missing, k)
	}
	return v
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func (l *loader) getInt(k string, def int) int {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		l.bad = append(l.bad, k)
		return def
	}
	return n
}

func (l *loader) getDuration(k string, def time.Duration) time.Duration {
	v := getEnv(k, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		l.bad = append(l.bad, k)
		return def
	}
	return d
}

// Load reads the environment, after an optional .env file in the working
// directory. All required keys are checked before returning so the process
// fails once with the full list instead of on the first request.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var l loader
	cfg := &Config{
		Port: getEnv("PORT", "8000"),

		GeminiAPIKey: l.mustEnv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		DatabaseType: strings.ToLower(getEnv("DATABASE_TYPE", "postgres")),

		GmailAddress:     l.mustEnv("GMAIL_ADDRESS"),
		GmailAppPassword: l.mustEnv("GMAIL_APP_PASSWORD"),
		SMTPHost:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:         l.getInt("SMTP_PORT", 587),

		PromptFile:     getEnv("PROMPT_FILE", ""),
		RequestTimeout: l.getDuration("REQUEST_TIMEOUT", 90*time.Second),
		MaxBodyBytes:   int64(l.getInt("MAX_BODY_BYTES", 16<<20)),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	l.database(cfg)
	if err := l.err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDatabase reads only the storage and logging settings, for commands
// that never call Gemini or SMTP.
func LoadDatabase() (*Config, error) {
	_ = godotenv.Load()

	var l loader
	cfg := &Config{
		DatabaseType: strings.ToLower(getEnv("DATABASE_TYPE", "postgres")),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
	l.database(cfg)
	if err := l.err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *loader) database(cfg *Config) {
	switch cfg.DatabaseType {
	case "postgres":
		cfg.DatabaseURL = resolveDSN()
	case "sqlite":
		cfg.DatabaseURL = getEnv("DATABASE_URL", "")
	default:
		l.bad = append(l.bad, "DATABASE_TYPE")
		return
	}
	if cfg.DatabaseURL == "" {
		l.missing = append(l.missing, "DATABASE_URL")
	}
}

func (l *loader) err() error {
	var errs []error
	if len(l.missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required env %s", strings.Join(l.missing, ", ")))
	}
	if len(l.bad) > 0 {
		errs = append(errs, fmt.Errorf("invalid env %s", strings.Join(l.bad, ", ")))
	}
	return errors.Join(errs...)
}

// resolveDSN prefers DATABASE_URL and otherwise assembles one from POSTGRES_*/PG* parts.
// Returns "" when neither a URL nor a password is available.
func resolveDSN() string {
	if v := getEnv("DATABASE_URL", ""); v != "" {
		return v
	}
	pass := os.Getenv("POSTGRES_PASSWORD")
	if pass == "" {
		return ""
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getEnv("POSTGRES_USER", "palmyst"), pass),
		Host:     net.JoinHostPort(getEnv("PGHOST", "db"), getEnv("PGPORT", "5432")),
		Path:     "/" + getEnv("POSTGRES_DB", "palmyst"),
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// SafeDSNSummary renders host/db/user without the password, for logs.
func SafeDSNSummary(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Host == "" {
		return "dsn: local"
	}
	host, port := u.Host, ""
	if h, p, err := net.SplitHostPort(u.Host); err == nil {
		host, port = h, p
	}
	db := strings.TrimPrefix(u.Path, "/")
	user := u.User.Username()
	if port == "" {
		return fmt.Sprintf("host=%s db=%s user=%s", host, db, user)
	}
	return fmt.Sprintf("host=%s port=%s db=%s user=%s", host, port, db, user)
}

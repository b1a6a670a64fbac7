package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Report       ReportConfig
	DangerZone   DangerZoneConfig
	Notification NotificationConfig
	Seed         SeedConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values. An empty DSN switches the
// service to the in-memory repositories.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// ReportConfig governs the submission workflow policies.
type ReportConfig struct {
	DailyLimit  int
	Timezone    string
	EmailDomain string
}

// DangerZoneConfig parameterizes the dangerous-zone scan. The threshold is
// deliberately configuration, not a constant.
type DangerZoneConfig struct {
	Threshold   int
	WindowHours int
}

// NotificationConfig holds stub notification endpoints and the Redis
// broadcast channel for emergency alerts.
type NotificationConfig struct {
	EmailFrom        string
	WebhookURL       string
	BroadcastChannel string
}

// SeedConfig describes the superuser account ensured at startup.
type SeedConfig struct {
	SuperuserName     string
	SuperuserEmail    string
	SuperuserPassword string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "campus-report-service"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Report: ReportConfig{
			DailyLimit:  getEnvAsInt("REPORT_DAILY_LIMIT", 3),
			Timezone:    getEnv("REPORT_TIMEZONE", "America/Lima"),
			EmailDomain: getEnv("REPORT_EMAIL_DOMAIN", "utp.edu.pe"),
		},
		DangerZone: DangerZoneConfig{
			Threshold:   getEnvAsInt("DANGER_ZONE_THRESHOLD", 3),
			WindowHours: getEnvAsInt("DANGER_ZONE_WINDOW_HOURS", 24),
		},
		Notification: NotificationConfig{
			EmailFrom:        getEnv("NOTIFY_EMAIL_FROM", "noreply@utp.edu.pe"),
			WebhookURL:       getEnv("NOTIFY_WEBHOOK_URL", ""),
			BroadcastChannel: getEnv("NOTIFY_BROADCAST_CHANNEL", "campus:alerts"),
		},
		Seed: SeedConfig{
			SuperuserName:     getEnv("SEED_SUPERUSER_NAME", "System Superuser"),
			SuperuserEmail:    getEnv("SEED_SUPERUSER_EMAIL", "superadmin@utp.edu.pe"),
			SuperuserPassword: getEnv("SEED_SUPERUSER_PASSWORD", "change-me"),
		},
	}

	if cfg.Report.DailyLimit <= 0 {
		return nil, fmt.Errorf("REPORT_DAILY_LIMIT must be positive, got %d", cfg.Report.DailyLimit)
	}
	if cfg.DangerZone.Threshold <= 0 {
		return nil, fmt.Errorf("DANGER_ZONE_THRESHOLD must be positive, got %d", cfg.DangerZone.Threshold)
	}
	if _, err := time.LoadLocation(cfg.Report.Timezone); err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE: %w", err)
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Location resolves the configured service timezone.
func (r ReportConfig) Location() *time.Location {
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// Window returns the danger-zone scan window as a duration.
func (d DangerZoneConfig) Window() time.Duration {
	if d.WindowHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(d.WindowHours) * time.Hour
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Upstream   UpstreamConfig
	Redis      RedisConfig
	Session    SessionConfig
	CORS       CORSConfig
	Log        LogConfig
	Attendance AttendanceConfig
	Autosave   AutosaveConfig
	Invoice    InvoiceConfig
	Payments   PaymentsConfig
	Metrics    MetricsConfig
}

// UpstreamConfig points the console at the school platform REST API.
type UpstreamConfig struct {
	BaseURL string
	Timeout time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig governs server-side session lifetime.
type SessionConfig struct {
	TTL       time.Duration
	KeyPrefix string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AttendanceConfig carries the fixed calendar rules and the backdating window
// for attendance marking.
type AttendanceConfig struct {
	Holidays       []string
	WeeklyOffDays  []int
	BackdateWindow int
}

// AutosaveConfig tunes the per-entity save queue.
type AutosaveConfig struct {
	Debounce    time.Duration
	Workers     int
	SavedExpiry time.Duration
}

// InvoiceConfig configures receipt PDF generation.
type InvoiceConfig struct {
	Enabled      bool
	CurrencyUnit string
}

// PaymentsConfig gates the payment submission flow.
type PaymentsConfig struct {
	Enabled bool
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Upstream = UpstreamConfig{
		BaseURL: strings.TrimRight(v.GetString("UPSTREAM_BASE_URL"), "/"),
		Timeout: parseDuration(v.GetString("UPSTREAM_TIMEOUT"), 15*time.Second),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.Session = SessionConfig{
		TTL:       parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		KeyPrefix: v.GetString("SESSION_KEY_PREFIX"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Attendance = AttendanceConfig{
		Holidays:       splitAndTrim(v.GetString("ATTENDANCE_HOLIDAYS")),
		WeeklyOffDays:  parseWeekdays(v.GetString("ATTENDANCE_WEEKLY_OFF")),
		BackdateWindow: v.GetInt("ATTENDANCE_BACKDATE_WINDOW"),
	}

	cfg.Autosave = AutosaveConfig{
		Debounce:    parseDuration(v.GetString("AUTOSAVE_DEBOUNCE"), 400*time.Millisecond),
		Workers:     v.GetInt("AUTOSAVE_WORKERS"),
		SavedExpiry: parseDuration(v.GetString("AUTOSAVE_SAVED_EXPIRY"), 3*time.Second),
	}

	cfg.Invoice = InvoiceConfig{
		Enabled:      v.GetBool("ENABLE_INVOICES"),
		CurrencyUnit: v.GetString("INVOICE_CURRENCY"),
	}

	cfg.Payments = PaymentsConfig{Enabled: v.GetBool("ENABLE_PAYMENTS")}
	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("UPSTREAM_BASE_URL", "http://localhost:3000")
	v.SetDefault("UPSTREAM_TIMEOUT", "15s")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_KEY_PREFIX", "console:session:")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ATTENDANCE_HOLIDAYS", "2025-07-15,2025-07-20")
	v.SetDefault("ATTENDANCE_WEEKLY_OFF", "0")
	v.SetDefault("ATTENDANCE_BACKDATE_WINDOW", 1)

	v.SetDefault("AUTOSAVE_DEBOUNCE", "400ms")
	v.SetDefault("AUTOSAVE_WORKERS", 2)
	v.SetDefault("AUTOSAVE_SAVED_EXPIRY", "3s")

	v.SetDefault("ENABLE_INVOICES", true)
	v.SetDefault("INVOICE_CURRENCY", "INR")
	v.SetDefault("ENABLE_PAYMENTS", true)
	v.SetDefault("ENABLE_METRICS", true)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// parseWeekdays parses a comma separated list of weekday numbers (0 = Sunday).
func parseWeekdays(raw string) []int {
	parts := splitAndTrim(raw)
	result := make([]int, 0, len(parts))
	for _, part := range parts {
		switch part {
		case "0", "1", "2", "3", "4", "5", "6":
			result = append(result, int(part[0]-'0'))
		}
	}
	return result
}

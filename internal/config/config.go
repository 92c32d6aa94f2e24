package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Auth     AuthConfig
	Analyzer AnalyzerConfig
	Archive  ArchiveConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings for the history sink.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// AuthConfig holds bearer-token identity settings. Tokens are optional;
// callers without one get an anonymous identity.
type AuthConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// AnalyzerConfig holds LLM analyzer settings.
type AnalyzerConfig struct {
	APIKey       string  `mapstructure:"api_key"`
	DefaultModel string  `mapstructure:"default_model"`
	MaxRetries   int     `mapstructure:"max_retries"`
	TimeoutSecs  int     `mapstructure:"timeout_secs"`
	Temperature  float64 `mapstructure:"temperature"`
}

// ArchiveConfig holds object storage settings for best-effort document
// archival. Archival is disabled when Bucket is empty.
type ArchiveConfig struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Enabled reports whether document archival is configured.
func (a *ArchiveConfig) Enabled() bool {
	return a.Bucket != ""
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the CLAUSEGENIE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CLAUSEGENIE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "clausegenie")
	v.SetDefault("db.password", "clausegenie_secret")
	v.SetDefault("db.name", "clausegenie_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Auth defaults
	v.SetDefault("auth.secret", "change-me-in-production")
	v.SetDefault("auth.issuer", "clausegenie")

	// Analyzer defaults
	v.SetDefault("analyzer.api_key", "")
	v.SetDefault("analyzer.default_model", "gemini-2.5-flash")
	v.SetDefault("analyzer.max_retries", 3)
	v.SetDefault("analyzer.timeout_secs", 120)
	v.SetDefault("analyzer.temperature", 0.1)

	// Archive defaults (disabled unless a bucket is set)
	v.SetDefault("archive.region", "us-east-1")
	v.SetDefault("archive.bucket", "")
	v.SetDefault("archive.endpoint", "")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "CLAUSEGENIE_SERVER_PORT",
		"server.read_timeout":    "CLAUSEGENIE_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "CLAUSEGENIE_SERVER_WRITE_TIMEOUT",
		"server.environment":     "CLAUSEGENIE_SERVER_ENVIRONMENT",
		"db.host":                "CLAUSEGENIE_DB_HOST",
		"db.port":                "CLAUSEGENIE_DB_PORT",
		"db.user":                "CLAUSEGENIE_DB_USER",
		"db.password":            "CLAUSEGENIE_DB_PASSWORD",
		"db.name":                "CLAUSEGENIE_DB_NAME",
		"db.sslmode":             "CLAUSEGENIE_DB_SSLMODE",
		"db.max_open":            "CLAUSEGENIE_DB_MAX_OPEN",
		"db.max_idle":            "CLAUSEGENIE_DB_MAX_IDLE",
		"auth.secret":            "CLAUSEGENIE_AUTH_SECRET",
		"auth.issuer":            "CLAUSEGENIE_AUTH_ISSUER",
		"analyzer.api_key":       "CLAUSEGENIE_ANALYZER_API_KEY",
		"analyzer.default_model": "CLAUSEGENIE_ANALYZER_DEFAULT_MODEL",
		"analyzer.max_retries":   "CLAUSEGENIE_ANALYZER_MAX_RETRIES",
		"analyzer.timeout_secs":  "CLAUSEGENIE_ANALYZER_TIMEOUT_SECS",
		"analyzer.temperature":   "CLAUSEGENIE_ANALYZER_TEMPERATURE",
		"archive.region":         "CLAUSEGENIE_ARCHIVE_REGION",
		"archive.bucket":         "CLAUSEGENIE_ARCHIVE_BUCKET",
		"archive.endpoint":       "CLAUSEGENIE_ARCHIVE_ENDPOINT",
		"archive.access_key":     "CLAUSEGENIE_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":     "CLAUSEGENIE_ARCHIVE_SECRET_KEY",
		"log.level":              "CLAUSEGENIE_LOG_LEVEL",
		"log.format":             "CLAUSEGENIE_LOG_FORMAT",
		"cors.allowed_origins":   "CLAUSEGENIE_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CLAUSEGENIE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CLAUSEGENIE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Auth = AuthConfig{
		Secret: v.GetString("auth.secret"),
		Issuer: v.GetString("auth.issuer"),
	}
	cfg.Analyzer = AnalyzerConfig{
		APIKey:       v.GetString("analyzer.api_key"),
		DefaultModel: v.GetString("analyzer.default_model"),
		MaxRetries:   v.GetInt("analyzer.max_retries"),
		TimeoutSecs:  v.GetInt("analyzer.timeout_secs"),
		Temperature:  v.GetFloat64("analyzer.temperature"),
	}
	cfg.Archive = ArchiveConfig{
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Progress   ProgressConfig   `mapstructure:"progress"`
	Admin      AdminConfig      `mapstructure:"admin"`
	Playground PlaygroundConfig `mapstructure:"playground"`
	GitHub     GitHubConfig     `mapstructure:"github"`
	Tracing    TracingConfig    `mapstructure:"tracing"`
	CORS       CORSConfig       `mapstructure:"cors"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`

	// Runtime flags (set from command line, not from the config file)
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

// ProgressConfig controls the learning-progress engine. Timezone decides
// which calendar day a completion falls on; the streak is computed against
// that zone everywhere, never against the client's clock.
type ProgressConfig struct {
	Timezone string `mapstructure:"timezone"`
}

// Location resolves the configured timezone, defaulting to UTC.
func (p *ProgressConfig) Location() (*time.Location, error) {
	if p.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(p.Timezone)
}

type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

type PlaygroundConfig struct {
	PistonURL string `mapstructure:"piston_url"`
}

type GitHubConfig struct {
	Username     string `mapstructure:"username"`
	Token        string `mapstructure:"token"`
	CacheMinutes int    `mapstructure:"cache_minutes"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("PORTFOLIO")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Admin bootstrap
	viper.BindEnv("admin.email", "ADMIN_EMAIL")
	viper.BindEnv("admin.password", "ADMIN_PASSWORD")

	// Progress engine
	viper.BindEnv("progress.timezone", "PROGRESS_TIMEZONE")

	// Playground
	viper.BindEnv("playground.piston_url", "PISTON_URL")

	// GitHub stats
	viper.BindEnv("github.username", "GITHUB_USERNAME")
	viper.BindEnv("github.token", "GITHUB_TOKEN")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	// Fail at startup rather than at the first completion event.
	if _, err := cfg.Progress.Location(); err != nil {
		return nil, fmt.Errorf("invalid progress timezone %q: %w", cfg.Progress.Timezone, err)
	}

	return &cfg, nil
}

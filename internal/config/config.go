package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config is the process configuration, read from defaults, an optional
// YAML file and the environment, in increasing order of precedence.
type Config struct {
	Server struct {
		Port              int           `mapstructure:"port"`
		ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
		ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout"`
		MaxBodyBytes      int64         `mapstructure:"max_body_bytes"`
	} `mapstructure:"server"`
	Database struct {
		URL             string        `mapstructure:"url"`
		MaxOpenConns    int           `mapstructure:"max_open_conns"`
		ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	} `mapstructure:"database"`
	Auth struct {
		JWTSecret  string        `mapstructure:"jwt_secret"`
		Issuer     string        `mapstructure:"issuer"`
		TokenTTL   time.Duration `mapstructure:"token_ttl"`
		BcryptCost int           `mapstructure:"bcrypt_cost"`
	} `mapstructure:"auth"`
	RateLimit struct {
		LoginPerMinute float64 `mapstructure:"login_per_minute"`
		LoginBurst     int     `mapstructure:"login_burst"`
	} `mapstructure:"ratelimit"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Seed struct {
		DemoPassword string `mapstructure:"demo_password"`
	} `mapstructure:"seed"`
	PDF struct {
		FontPath string `mapstructure:"font_path"`
	} `mapstructure:"pdf"`
}

// envBindings keeps the flat variable names operators already use.
var envBindings = map[string]string{
	"server.port":                "PORT",
	"server.max_body_bytes":      "MAX_BODY_BYTES",
	"database.url":               "DATABASE_URL",
	"database.max_open_conns":    "DATABASE_MAX_OPEN_CONNS",
	"auth.jwt_secret":            "JWT_SECRET",
	"auth.issuer":                "JWT_ISSUER",
	"auth.token_ttl":             "TOKEN_TTL",
	"auth.bcrypt_cost":           "BCRYPT_COST",
	"ratelimit.login_per_minute": "LOGIN_RATE_PER_MINUTE",
	"ratelimit.login_burst":      "LOGIN_RATE_BURST",
	"log.level":                  "LOG_LEVEL",
	"seed.demo_password":         "DEMO_PASSWORD",
	"pdf.font_path":              "PDF_FONT_PATH",
}

// Load reads the configuration. When path is empty a config.yaml in the
// working directory is used if present.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_header_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.max_body_bytes", 12<<20)
	v.SetDefault("database.url", "sqlite:newsdesk.db")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("auth.issuer", "newsdesk")
	v.SetDefault("auth.token_ttl", "30m")
	v.SetDefault("auth.bcrypt_cost", 12)
	v.SetDefault("ratelimit.login_per_minute", 10)
	v.SetDefault("ratelimit.login_burst", 5)
	v.SetDefault("log.level", "info")

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.Auth.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.Auth.BcryptCost)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.RateLimit.LoginPerMinute < 0 || c.RateLimit.LoginBurst < 1 {
		return errors.New("login rate limit must be non-negative with a burst of at least 1")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured level name, e.g. "debug" or "warn".
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.Log.Level, err)
	}
	return level, nil
}

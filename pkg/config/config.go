package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"server"`

	Database struct {
		DSN             string `yaml:"dsn"`
		MaxOpenConns    int    `yaml:"max_open_conns"`
		MaxIdleConns    int    `yaml:"max_idle_conns"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime"` // seconds
	} `yaml:"database"`

	Schedule ScheduleConfig `yaml:"schedule"`

	Fetch FetchConfig `yaml:"fetch"`
}

// ScheduleConfig holds adaptive refresh scheduling settings
type ScheduleConfig struct {
	MinInterval     time.Duration `yaml:"min_interval"`
	MaxInterval     time.Duration `yaml:"max_interval"`
	Speedup         float64       `yaml:"speedup"`  // interval multiplier when a fetch finds new entries
	Slowdown        float64       `yaml:"slowdown"` // interval multiplier on quiet or failed fetches
	DeactivateAfter time.Duration `yaml:"deactivate_after"`
	MaxWorkers      int           `yaml:"max_workers"`
}

// FetchConfig holds HTTP fetch client settings
type FetchConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"user_agent"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Default returns a configuration with all defaults applied, used when no
// config file is given
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:feedloop.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	if cfg.Schedule.MinInterval == 0 {
		cfg.Schedule.MinInterval = 15 * time.Minute
	}
	if cfg.Schedule.MaxInterval == 0 {
		cfg.Schedule.MaxInterval = 24 * time.Hour
	}
	if cfg.Schedule.Speedup == 0 {
		cfg.Schedule.Speedup = 0.9
	}
	if cfg.Schedule.Slowdown == 0 {
		cfg.Schedule.Slowdown = 1.1
	}
	if cfg.Schedule.DeactivateAfter == 0 {
		cfg.Schedule.DeactivateAfter = 7 * 24 * time.Hour
	}
	if cfg.Schedule.MaxWorkers == 0 {
		cfg.Schedule.MaxWorkers = 5
	}

	if cfg.Fetch.Timeout == 0 {
		cfg.Fetch.Timeout = 30 * time.Second
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "feedloop/1.0"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Schedule.MinInterval <= 0 {
		return fmt.Errorf("schedule.min_interval must be positive")
	}
	if cfg.Schedule.MaxInterval < cfg.Schedule.MinInterval {
		return fmt.Errorf("schedule.max_interval must be >= min_interval")
	}
	if cfg.Schedule.Speedup <= 0 || cfg.Schedule.Speedup > 1 {
		return fmt.Errorf("schedule.speedup must be in (0, 1]")
	}
	if cfg.Schedule.Slowdown < 1 {
		return fmt.Errorf("schedule.slowdown must be >= 1")
	}
	if cfg.Schedule.DeactivateAfter <= 0 {
		return fmt.Errorf("schedule.deactivate_after must be positive")
	}

	if cfg.Fetch.Timeout < time.Second {
		return fmt.Errorf("fetch timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	dirName  = ".memoy"
	fileName = "config.yaml"
)

// Config represents the game configuration
type Config struct {
	GridSize         int    `yaml:"grid_size"`
	Timed            bool   `yaml:"timed"`
	TimeLimitSeconds int    `yaml:"time_limit_seconds"`
	LedgerCapacity   int    `yaml:"ledger_capacity"`
	LedgerPath       string `yaml:"ledger_path"`
	LogDir           string `yaml:"log_dir"`
	LogLevel         string `yaml:"log_level"`
	Seed             uint64 `yaml:"seed,omitempty"` // 0 seeds from the clock
	Debug            bool   `yaml:"debug"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{
		GridSize:         4,
		TimeLimitSeconds: 120,
		LedgerCapacity:   10,
		LedgerPath:       "memoy_highscores.txt",
		LogLevel:         "info",
	}
	if dir, err := globalConfigDir(); err == nil {
		cfg.LedgerPath = filepath.Join(dir, "memoy_highscores.txt")
		cfg.LogDir = filepath.Join(dir, "logs")
	}
	return cfg
}

// TimeLimit returns the time limit as a duration
func (c *Config) TimeLimit() time.Duration {
	return time.Duration(c.TimeLimitSeconds) * time.Second
}

// Validate checks the configuration for values the game cannot run with
func (c *Config) Validate() error {
	if c.GridSize <= 0 || (c.GridSize*c.GridSize)%2 != 0 {
		return fmt.Errorf("grid_size must be a positive even number, got %d", c.GridSize)
	}
	if c.TimeLimitSeconds <= 0 {
		return fmt.Errorf("time_limit_seconds must be positive, got %d", c.TimeLimitSeconds)
	}
	if c.LedgerCapacity <= 0 {
		return fmt.Errorf("ledger_capacity must be positive, got %d", c.LedgerCapacity)
	}
	if c.LedgerPath == "" {
		return errors.New("ledger_path must not be empty")
	}
	return nil
}

// globalConfigDir returns the global config directory path (~/.memoy)
func globalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, dirName), nil
}

// projectConfigPath returns the project-level config path (.memoy/config.yaml in cwd)
func projectConfigPath() string {
	return filepath.Join(dirName, fileName)
}

// Load builds the configuration from defaults, the project or global config
// file, then environment variables (a .env file in the working directory is
// loaded first when present).
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if err := readFile(projectConfigPath(), cfg); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		dir, err := globalConfigDir()
		if err == nil {
			if err := readFile(filepath.Join(dir, fileName), cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// LoadFrom reads a single config file over the defaults, then the environment
func LoadFrom(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if err := readFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// Save writes the config to path, creating its directory
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

func applyEnv(cfg *Config) {
	cfg.GridSize = envInt("MEMOY_GRID_SIZE", cfg.GridSize)
	cfg.Timed = envBool("MEMOY_TIMED", cfg.Timed)
	cfg.TimeLimitSeconds = envInt("MEMOY_TIME_LIMIT", cfg.TimeLimitSeconds)
	cfg.LedgerCapacity = envInt("MEMOY_LEDGER_CAPACITY", cfg.LedgerCapacity)
	cfg.LedgerPath = envStr("MEMOY_LEDGER_PATH", cfg.LedgerPath)
	cfg.LogDir = envStr("MEMOY_LOG_DIR", cfg.LogDir)
	cfg.LogLevel = envStr("LOG_LEVEL", cfg.LogLevel)
	if v := os.Getenv("MEMOY_SEED"); v != "" {
		if s, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = s
		}
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

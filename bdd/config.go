package bdd

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// DefaultPrefix is the method name prefix that marks a scenario.
const DefaultPrefix = "Scenario"

// Environment variables read by ConfigFromEnv.
const (
	EnvDebug  = "SPICY_DEBUG"
	EnvConfig = "SPICY_CONFIG"
	EnvPrefix = "SPICY_PREFIX"
)

// Config controls scenario discovery and logging.
type Config struct {
	// Debug enables development logging of chain evaluation to stderr.
	Debug bool `yaml:"debug"`
	// Prefix marks scenario methods; empty means DefaultPrefix.
	Prefix string `yaml:"prefix,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{Prefix: DefaultPrefix}
}

// ParseConfig decodes a YAML configuration document over the defaults.
// This is a pure function with no I/O.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	return cfg, nil
}

// LoadConfigImpl reads and parses a YAML configuration file.
// This is an Impl function exempt from coverage requirements.
func LoadConfigImpl(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ConfigFromEnv starts from the file named by SPICY_CONFIG, if any, and
// applies SPICY_DEBUG and SPICY_PREFIX. Any non-empty SPICY_DEBUG that is
// not a boolean enables debugging.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if path := os.Getenv(EnvConfig); path != "" {
		c, err := LoadConfigImpl(path)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvConfig, err)
		}
		cfg = c
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		cfg.Debug = err != nil || debug
	}
	if p := os.Getenv(EnvPrefix); p != "" {
		cfg.Prefix = p
	}
	return cfg, nil
}

// Option configures a Suite.
type Option func(*settings)

type settings struct {
	cfg    Config
	log    *zap.Logger
	envErr error
}

// WithConfig replaces the environment-derived configuration.
func WithConfig(cfg Config) Option {
	return func(s *settings) {
		if cfg.Prefix == "" {
			cfg.Prefix = DefaultPrefix
		}
		s.cfg = cfg
		s.envErr = nil
	}
}

// WithPrefix sets the scenario method prefix.
func WithPrefix(prefix string) Option {
	return func(s *settings) { s.cfg.Prefix = prefix }
}

// WithLogger sets the logger; it takes precedence over Config.Debug.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) { s.log = log }
}

func newSettings(opts []Option) settings {
	cfg, err := ConfigFromEnv()
	s := settings{cfg: cfg, envErr: err}
	for _, opt := range opts {
		opt(&s)
	}
	if s.log == nil {
		log, err := NewLogger(s.cfg)
		if err != nil {
			log = zap.NewNop()
		}
		s.log = log
	}
	if s.envErr != nil {
		s.log.Warn("ignoring environment configuration", zap.Error(s.envErr))
	}
	return s
}

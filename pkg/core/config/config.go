package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Euler   EulerConfig   `toml:"euler" yaml:"euler"`
	Gateway GatewayConfig `toml:"gateway" yaml:"gateway"`
	Plot    PlotConfig    `toml:"plot" yaml:"plot"`
	Cache   CacheConfig   `toml:"cache" yaml:"cache"`
	Logging LoggingConfig `toml:"logging" yaml:"logging"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
}

// EulerConfig holds the gRPC solver service configuration
type EulerConfig struct {
	Port             int      `toml:"port" yaml:"port"`
	Host             string   `toml:"host" yaml:"host"`
	EnableReflection bool     `toml:"enable_reflection" yaml:"enable_reflection"`
	SolveTimeout     Duration `toml:"solve_timeout" yaml:"solve_timeout"`
	MaxBatch         int      `toml:"max_batch" yaml:"max_batch"`
}

// GatewayConfig holds HTTP gateway configuration
type GatewayConfig struct {
	Port         int        `toml:"port" yaml:"port"`
	Host         string     `toml:"host" yaml:"host"`
	ReadTimeout  Duration   `toml:"read_timeout" yaml:"read_timeout"`
	WriteTimeout Duration   `toml:"write_timeout" yaml:"write_timeout"`
	MaxBodyBytes int64      `toml:"max_body_bytes" yaml:"max_body_bytes"`
	EulerAddr    string     `toml:"euler_addr" yaml:"euler_addr"`
	CORS         CORSConfig `toml:"cors" yaml:"cors"`
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	Enabled        bool     `toml:"enabled" yaml:"enabled"`
	AllowedOrigins []string `toml:"allowed_origins" yaml:"allowed_origins"`
}

// PlotConfig holds chart rendering settings
type PlotConfig struct {
	Enabled bool    `toml:"enabled" yaml:"enabled"`
	Width   float64 `toml:"width_cm" yaml:"width_cm"`
	Height  float64 `toml:"height_cm" yaml:"height_cm"`
	DPI     int     `toml:"dpi" yaml:"dpi"`
}

// CacheConfig holds result cache settings
type CacheConfig struct {
	Enabled  bool     `toml:"enabled" yaml:"enabled"`
	TTL      Duration `toml:"ttl" yaml:"ttl"`
	MaxItems int      `toml:"max_items" yaml:"max_items"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("duration must be a scalar, got %v", node.Tag)
	}
	return d.UnmarshalText([]byte(node.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns a complete, runnable configuration
func Default() *Config {
	cfg := &Config{}
	cfg.Plot.Enabled = true
	cfg.Cache.Enabled = true
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML or YAML file, chosen by extension.
// Missing values fall back to the defaults.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("unknown config keys: %v", undecoded)
		}
	}

	cfg.applyDefaults()
	return cfg, nil
}

// LoadFromEnv loads the file named by EULER_CONFIG, or the first default
// location that exists, or returns the defaults
func LoadFromEnv() (*Config, error) {
	path := os.Getenv("EULER_CONFIG")
	if path == "" {
		for _, p := range DefaultPaths() {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// DefaultPaths lists the locations searched for a config file
func DefaultPaths() []string {
	return []string{
		"./configs/config.toml",
		"./configs/config.yaml",
		"./config.toml",
		filepath.Join(os.Getenv("HOME"), ".config/euler/config.toml"),
	}
}

// ApplyEnv overrides settings from EULER_* environment variables
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("EULER_HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EULER_HTTP_PORT: %w", err)
		}
		c.Gateway.Port = port
	}
	if v := os.Getenv("EULER_GRPC_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EULER_GRPC_PORT: %w", err)
		}
		c.Euler.Port = port
	}
	if v := os.Getenv("EULER_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("EULER_EULER_ADDR"); v != "" {
		c.Gateway.EulerAddr = v
	}
	return nil
}

// Validate checks ranges of the loaded values
func (c *Config) Validate() error {
	var problems []string
	checkPort := func(name string, port int) {
		if port < 0 || port > 65535 {
			problems = append(problems, fmt.Sprintf("%s: port %d out of range", name, port))
		}
	}
	checkPort("euler", c.Euler.Port)
	checkPort("gateway", c.Gateway.Port)

	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		problems = append(problems, "plot: width_cm and height_cm must be positive")
	}
	if c.Plot.DPI < 24 {
		problems = append(problems, "plot: dpi must be at least 24")
	}
	if c.Cache.MaxItems < 0 {
		problems = append(problems, "cache: max_items must not be negative")
	}
	if c.Gateway.MaxBodyBytes <= 0 {
		problems = append(problems, "gateway: max_body_bytes must be positive")
	}
	if c.Euler.MaxBatch < 1 {
		problems = append(problems, "euler: max_batch must be at least 1")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "euler"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}

	// Euler
	if c.Euler.Port == 0 {
		c.Euler.Port = 9300
	}
	if c.Euler.Host == "" {
		c.Euler.Host = "0.0.0.0"
	}
	if c.Euler.SolveTimeout.Duration == 0 {
		c.Euler.SolveTimeout.Duration = 30 * time.Second
	}
	if c.Euler.MaxBatch == 0 {
		c.Euler.MaxBatch = 16
	}

	// Gateway
	if c.Gateway.Port == 0 {
		c.Gateway.Port = 8080
	}
	if c.Gateway.Host == "" {
		c.Gateway.Host = "0.0.0.0"
	}
	if c.Gateway.ReadTimeout.Duration == 0 {
		c.Gateway.ReadTimeout.Duration = 30 * time.Second
	}
	if c.Gateway.WriteTimeout.Duration == 0 {
		c.Gateway.WriteTimeout.Duration = 60 * time.Second
	}
	if c.Gateway.MaxBodyBytes == 0 {
		c.Gateway.MaxBodyBytes = 1 << 20
	}

	// Plot
	if c.Plot.Width == 0 {
		c.Plot.Width = 16
	}
	if c.Plot.Height == 0 {
		c.Plot.Height = 10
	}
	if c.Plot.DPI == 0 {
		c.Plot.DPI = 96
	}

	// Cache
	if c.Cache.TTL.Duration == 0 {
		c.Cache.TTL.Duration = 10 * time.Minute
	}
	if c.Cache.MaxItems == 0 {
		c.Cache.MaxItems = 256
	}

	// Logging
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}

// EulerAddress returns the gRPC listen address
func (c *Config) EulerAddress() string {
	return fmt.Sprintf("%s:%d", c.Euler.Host, c.Euler.Port)
}

// GatewayAddress returns the HTTP listen address
func (c *Config) GatewayAddress() string {
	return fmt.Sprintf("%s:%d", c.Gateway.Host, c.Gateway.Port)
}

// Package config loads rootfind settings from TOML or YAML files.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/alexshd/rootfind"
)

// EnvConfig names the environment variable holding the config path.
const EnvConfig = "ROOTFIND_CONFIG"

// Config holds the complete application configuration
type Config struct {
	Solver    SolverConfig    `toml:"solver" yaml:"solver"`
	Bisection BisectionConfig `toml:"bisection" yaml:"bisection"`
	Newton    GuessConfig     `toml:"newton" yaml:"newton"`
	Iterative GuessConfig     `toml:"iterative" yaml:"iterative"`
	Sample    SampleConfig    `toml:"sample" yaml:"sample"`
	Server    ServerConfig    `toml:"server" yaml:"server"`
	Log       LogConfig       `toml:"log" yaml:"log"`
}

// SolverConfig holds settings shared by all methods
type SolverConfig struct {
	Tolerance       float64 `toml:"tolerance" yaml:"tolerance"`
	MaxIterations   int     `toml:"max_iterations" yaml:"max_iterations"`
	DerivativeFloor float64 `toml:"derivative_floor" yaml:"derivative_floor"`
	DivergenceBound float64 `toml:"divergence_bound" yaml:"divergence_bound"`
}

// BisectionConfig holds the default bracket
type BisectionConfig struct {
	A float64 `toml:"a" yaml:"a"`
	B float64 `toml:"b" yaml:"b"`
}

// GuessConfig holds a default initial guess
type GuessConfig struct {
	X0 float64 `toml:"x0" yaml:"x0"`
}

// SampleConfig holds the curve sampling grid
type SampleConfig struct {
	From   float64 `toml:"from" yaml:"from"`
	To     float64 `toml:"to" yaml:"to"`
	Points int     `toml:"points" yaml:"points"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Host              string   `toml:"host" yaml:"host"`
	Port              int      `toml:"port" yaml:"port"`
	ReadHeaderTimeout Duration `toml:"read_header_timeout" yaml:"read_header_timeout"`
	HistorySize       int      `toml:"history_size" yaml:"history_size"`
}

// LogConfig holds logger settings
type LogConfig struct {
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

// UnmarshalYAML parses a duration string
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults(nil)
	return cfg
}

// definedFunc reports whether section.key was present in the loaded file.
type definedFunc func(section, key string) bool

// Load loads configuration from a TOML or YAML file, chosen by extension.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var (
		cfg   Config
		isSet definedFunc
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		var raw map[string]map[string]any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		isSet = func(section, key string) bool {
			_, ok := raw[section][key]
			return ok
		}
	default:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		isSet = func(section, key string) bool { return md.IsDefined(section, key) }
	}

	cfg.applyDefaults(isSet)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadFromEnv loads the file named by ROOTFIND_CONFIG, falling back to
// ./rootfind.toml and finally to Default.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}

	for _, p := range []string{"./rootfind.toml", "./configs/rootfind.toml"} {
		if _, err := os.Stat(p); err == nil {
			return Load(p)
		}
	}

	return Default(), nil
}

// applyDefaults sets default values for missing configuration.
// solver.tolerance = 0 is a valid setting, so only an absent key gets the
// default there.
func (c *Config) applyDefaults(isSet definedFunc) {
	// Solver
	if isSet == nil || !isSet("solver", "tolerance") {
		c.Solver.Tolerance = rootfind.DefaultTolerance
	}
	if c.Solver.MaxIterations == 0 {
		c.Solver.MaxIterations = rootfind.DefaultMaxIterations
	}
	if c.Solver.DerivativeFloor == 0 {
		c.Solver.DerivativeFloor = rootfind.DefaultDerivativeFloor
	}
	if c.Solver.DivergenceBound == 0 {
		c.Solver.DivergenceBound = rootfind.DefaultDivergenceBound
	}

	// Starting data: the lower root's bracket and the form's x0.
	if c.Bisection.A == 0 && c.Bisection.B == 0 {
		c.Bisection.A, c.Bisection.B = 0.8, 0.9
	}
	if c.Newton.X0 == 0 {
		c.Newton.X0 = 1
	}
	if c.Iterative.X0 == 0 {
		c.Iterative.X0 = 1
	}

	// Sample
	def := rootfind.DefaultSampleConfig()
	if c.Sample.From == 0 && c.Sample.To == 0 {
		c.Sample.From, c.Sample.To = def.From, def.To
	}
	if c.Sample.Points == 0 {
		c.Sample.Points = def.Points
	}

	// Server
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadHeaderTimeout.Duration == 0 {
		c.Server.ReadHeaderTimeout.Duration = 5 * time.Second
	}
	if c.Server.HistorySize == 0 {
		c.Server.HistorySize = 100
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate rejects settings no solver could run with.
func (c *Config) Validate() error {
	if math.IsNaN(c.Solver.Tolerance) || c.Solver.Tolerance < 0 {
		return fmt.Errorf("solver.tolerance must be >= 0, got %g", c.Solver.Tolerance)
	}
	if c.Solver.MaxIterations < 0 {
		return fmt.Errorf("solver.max_iterations must be positive, got %d", c.Solver.MaxIterations)
	}
	if c.Sample.Points < 2 {
		return fmt.Errorf("sample.points must be at least 2, got %d", c.Sample.Points)
	}
	if !(c.Sample.From < c.Sample.To) {
		return fmt.Errorf("sample.from must be below sample.to, got [%g, %g]", c.Sample.From, c.Sample.To)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.Server.HistorySize < 0 {
		return fmt.Errorf("server.history_size must be positive, got %d", c.Server.HistorySize)
	}
	return nil
}

// Address returns host:port for the HTTP API.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Limits returns the solver safety floors.
func (c *Config) Limits() rootfind.Limits {
	return rootfind.Limits{
		DerivativeFloor: c.Solver.DerivativeFloor,
		DivergenceBound: c.Solver.DivergenceBound,
	}
}

// SampleGrid returns the sampling grid for rootfind.Sample.
func (c *Config) SampleGrid() rootfind.SampleConfig {
	return rootfind.SampleConfig{From: c.Sample.From, To: c.Sample.To, Points: c.Sample.Points}
}

// Params returns solver parameters for m filled from the configured defaults.
func (c *Config) Params(m rootfind.Method) rootfind.Params {
	p := rootfind.Params{
		Method:        m,
		Tolerance:     c.Solver.Tolerance,
		MaxIterations: c.Solver.MaxIterations,
		A:             c.Bisection.A,
		B:             c.Bisection.B,
	}
	switch m {
	case rootfind.MethodNewton:
		p.X0 = c.Newton.X0
	case rootfind.MethodIterative:
		p.X0 = c.Iterative.X0
	}
	return p
}

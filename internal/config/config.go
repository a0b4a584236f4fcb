package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/sortstep/internal/sortstep"
)

const (
	DefaultAlgorithm    = "bubble"
	DefaultLanguage     = "en"
	DefaultTheme        = "dark"
	DefaultGenerateSize = 10
	DefaultElement      = 600 * time.Millisecond
	DefaultStructural   = 800 * time.Millisecond
	DefaultNotifyTTL    = 3 * time.Second
)

type Config struct {
	Algorithm    string        `yaml:"algorithm"`
	Language     string        `yaml:"language"`
	Theme        string        `yaml:"theme"`
	List         []int         `yaml:"list,omitempty"`
	GenerateSize int           `yaml:"generate_size"`
	Seed         int64         `yaml:"seed"`
	Delays       DelayConfig   `yaml:"delays"`
	NotifyTTL    time.Duration `yaml:"notify_ttl"`
}

type DelayConfig struct {
	Element    time.Duration `yaml:"element"`
	Structural time.Duration `yaml:"structural"`
}

func DefaultConfig() *Config {
	return &Config{
		Algorithm:    DefaultAlgorithm,
		Language:     DefaultLanguage,
		Theme:        DefaultTheme,
		GenerateSize: DefaultGenerateSize,
		Delays: DelayConfig{
			Element:    DefaultElement,
			Structural: DefaultStructural,
		},
		NotifyTTL: DefaultNotifyTTL,
	}
}

// Load reads a YAML file over the defaults; keys missing from the file keep
// their default value.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.LoadFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes path on top of c.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Resolve layers defaults, the named preset and the config file, in that
// order. Empty preset or path skip their layer.
func Resolve(preset, path string) (*Config, error) {
	cfg := DefaultConfig()
	if preset != "" {
		p := GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", preset)
		}
		cfg.Merge(p)
	}
	if path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Merge copies every non-zero field of o into c.
func (c *Config) Merge(o *Config) {
	if o.Algorithm != "" {
		c.Algorithm = o.Algorithm
	}
	if o.Language != "" {
		c.Language = o.Language
	}
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	if len(o.List) > 0 {
		c.List = append([]int(nil), o.List...)
	}
	if o.GenerateSize != 0 {
		c.GenerateSize = o.GenerateSize
	}
	if o.Seed != 0 {
		c.Seed = o.Seed
	}
	if o.Delays.Element != 0 {
		c.Delays.Element = o.Delays.Element
	}
	if o.Delays.Structural != 0 {
		c.Delays.Structural = o.Delays.Structural
	}
	if o.NotifyTTL != 0 {
		c.NotifyTTL = o.NotifyTTL
	}
}

// Validate checks the list and size against the element bounds.
func (c *Config) Validate() error {
	if len(c.List) > sortstep.MaxLength {
		return &sortstep.InputError{Field: "list", Value: fmt.Sprint(c.List), Err: sortstep.ErrListFull}
	}
	for _, v := range c.List {
		if v < sortstep.MinValue || v > sortstep.MaxValue {
			return &sortstep.InputError{Field: "list", Value: fmt.Sprint(v), Err: sortstep.ErrValueRange}
		}
	}
	if c.GenerateSize < 1 || c.GenerateSize > sortstep.MaxLength {
		return &sortstep.InputError{Field: "generate_size", Value: fmt.Sprint(c.GenerateSize), Err: sortstep.ErrSizeRange}
	}
	if c.Delays.Element <= 0 || c.Delays.Structural <= 0 {
		return fmt.Errorf("delays must be positive")
	}
	return nil
}

// InitialList returns the configured list as an Array.
func (c *Config) InitialList() sortstep.Array {
	return sortstep.Array(append([]int(nil), c.List...))
}

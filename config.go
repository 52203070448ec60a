package i18nbundle

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/jelilio/i18n-resource-bundle/errs"
	"github.com/jelilio/i18n-resource-bundle/resource"
)

// Config is the YAML-loadable configuration surface for a Source.
//
//	basenames: [messages, errors]
//	resource_root: ./l10n
//	default_locale: en-US
//	cache_ttl: 5m          # a duration, or "permanent" (the default)
//	encoding: UTF-8
//	extension: .properties
//	fallback_to_system_locale: false
type Config struct {
	Basenames              []string `yaml:"basenames"`
	ResourceRoot           string   `yaml:"resource_root"`
	DefaultLocale          string   `yaml:"default_locale"`
	CacheTTL               string   `yaml:"cache_ttl"`
	Encoding               string   `yaml:"encoding"`
	Extension              string   `yaml:"extension"`
	FallbackToSystemLocale bool     `yaml:"fallback_to_system_locale"`
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML configuration data.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrConfiguration, err)
	}
	return &cfg, nil
}

// Validate checks required fields and value syntax, failing fast with
// errs.ErrConfiguration.
func (c *Config) Validate() error {
	if len(c.Basenames) == 0 {
		return fmt.Errorf("%w: basenames must not be empty", errs.ErrConfiguration)
	}
	for _, bn := range c.Basenames {
		if strings.TrimSpace(bn) == "" {
			return fmt.Errorf("%w: blank basename", errs.ErrConfiguration)
		}
	}
	if _, err := c.cacheTTL(); err != nil {
		return err
	}
	if c.DefaultLocale != "" {
		if _, err := ParseLocale(c.DefaultLocale); err != nil {
			return fmt.Errorf("%w: default_locale: %v", errs.ErrConfiguration, err)
		}
	}
	return nil
}

func (c *Config) cacheTTL() (time.Duration, error) {
	raw := strings.TrimSpace(c.CacheTTL)
	if raw == "" || strings.EqualFold(raw, "permanent") {
		return CachePermanent, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: cache_ttl %q: %v", errs.ErrConfiguration, raw, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: cache_ttl must not be negative", errs.ErrConfiguration)
	}
	return d, nil
}

// NewSourceFromConfig validates cfg and builds a Source from it. Additional
// options (a logger, a locator with a classpath filesystem) are applied
// after the configuration-derived ones and may override them.
func NewSourceFromConfig(cfg *Config, extra ...Option) (*Source, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", errs.ErrConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ttl, err := cfg.cacheTTL()
	if err != nil {
		return nil, err
	}

	opts := []Option{
		WithBasenames(cfg.Basenames...),
		WithCacheTTL(ttl),
		WithSystemLocaleFallback(cfg.FallbackToSystemLocale),
	}
	if cfg.ResourceRoot != "" {
		opts = append(opts, WithLocator(resource.NewLocator(resource.WithRoot(cfg.ResourceRoot))))
	}
	if cfg.DefaultLocale != "" {
		opts = append(opts, WithDefaultLocale(MustParseLocale(cfg.DefaultLocale)))
	}
	if cfg.Encoding != "" {
		opts = append(opts, WithEncoding(cfg.Encoding))
	}
	if cfg.Extension != "" {
		opts = append(opts, WithExtension(cfg.Extension))
	}
	return NewSource(append(opts, extra...)...)
}

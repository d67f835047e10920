// Package config provides loading and validation of the converter's YAML
// configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goldenagents/saa/archive"
	"github.com/goldenagents/saa/concordance"
	"github.com/goldenagents/saa/converr"
	"github.com/goldenagents/saa/identity"
	"github.com/goldenagents/saa/store"
	"github.com/goldenagents/saa/temporal"
)

// FileNames are the names Load looks for when given a directory.
var FileNames = []string{"saa.yaml", "saa.yml"}

// Config is the converter configuration.
type Config struct {
	Temporal    TemporalConfig    `yaml:"temporal"`
	Namespaces  NamespaceConfig   `yaml:"namespaces"`
	Concordance ConcordanceConfig `yaml:"concordance"`

	// Redis enables publication of the built concordances. Publication is
	// off when the section is absent.
	Redis *RedisConfig `yaml:"redis,omitempty"`
}

// TemporalConfig configures date normalization.
type TemporalConfig struct {
	// CircaWindowDays widens "ca." dates on both sides.
	// Default: 365
	CircaWindowDays *int `yaml:"circa_window_days,omitempty"`

	// DefaultBegin and DefaultEnd supply the components a partial date
	// leaves out, as "YYYY-MM-DD".
	// Default: 2100-01-01 and 2100-12-31
	DefaultBegin string `yaml:"default_begin,omitempty"`
	DefaultEnd   string `yaml:"default_end,omitempty"`
}

// NamespaceConfig holds the URI prefixes of the generated identities.
type NamespaceConfig struct {
	Index      string `yaml:"index,omitempty"`
	Physical   string `yaml:"physical,omitempty"`
	PersonName string `yaml:"person_name,omitempty"`
	Thesaurus  string `yaml:"thesaurus,omitempty"`
}

// ConcordanceConfig configures concordance building and lookups.
type ConcordanceConfig struct {
	// KnownDuplicateRoots lists the node IDs under which repeated local
	// codes are tolerated. An explicit empty list tolerates none.
	KnownDuplicateRoots []string `yaml:"known_duplicate_roots"`

	// Placeholder is the locator used for unresolved references.
	Placeholder string `yaml:"placeholder,omitempty"`
}

// RedisConfig configures the concordance store.
type RedisConfig struct {
	URL       string `yaml:"url"`
	KeyPrefix string `yaml:"key_prefix,omitempty"`

	// ConnectTimeout is a Go duration string (e.g., "5s").
	// Default: 5s
	ConnectTimeout string `yaml:"connect_timeout,omitempty"`
}

// Default returns the configuration of the source archive.
func Default() *Config {
	c := &Config{}
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Temporal.CircaWindowDays == nil {
		days := temporal.DefaultCircaWindowDays
		c.Temporal.CircaWindowDays = &days
	}
	if c.Temporal.DefaultBegin == "" {
		c.Temporal.DefaultBegin = temporal.DefaultBegin.Format(temporal.DateLayout)
	}
	if c.Temporal.DefaultEnd == "" {
		c.Temporal.DefaultEnd = temporal.DefaultEnd.Format(temporal.DateLayout)
	}

	if c.Namespaces.Index == "" {
		c.Namespaces.Index = archive.DefaultIndexNamespace
	}
	if c.Namespaces.Physical == "" {
		c.Namespaces.Physical = archive.DefaultPhysicalNamespace
	}
	if c.Namespaces.PersonName == "" {
		c.Namespaces.PersonName = identity.PersonNameNamespace
	}
	if c.Namespaces.Thesaurus == "" {
		c.Namespaces.Thesaurus = identity.ThesaurusNamespace
	}

	if c.Concordance.KnownDuplicateRoots == nil {
		c.Concordance.KnownDuplicateRoots = []string{archive.KnownDuplicateRoot}
	}
	if c.Concordance.Placeholder == "" {
		c.Concordance.Placeholder = concordance.DefaultPlaceholder
	}

	if c.Redis != nil {
		if c.Redis.KeyPrefix == "" {
			c.Redis.KeyPrefix = store.DefaultKeyPrefix
		}
		if c.Redis.ConnectTimeout == "" {
			c.Redis.ConnectTimeout = "5s"
		}
	}
}

// Validate checks the configuration. Every problem found is reported,
// wrapped in converr.ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error

	if c.Temporal.CircaWindowDays != nil && *c.Temporal.CircaWindowDays < 0 {
		errs = append(errs, fmt.Errorf("temporal.circa_window_days must not be negative, got %d", *c.Temporal.CircaWindowDays))
	}

	begin, beginErr := time.Parse(temporal.DateLayout, c.Temporal.DefaultBegin)
	if beginErr != nil {
		errs = append(errs, fmt.Errorf("temporal.default_begin: %w", beginErr))
	}
	end, endErr := time.Parse(temporal.DateLayout, c.Temporal.DefaultEnd)
	if endErr != nil {
		errs = append(errs, fmt.Errorf("temporal.default_end: %w", endErr))
	}
	if beginErr == nil && endErr == nil && begin.After(end) {
		errs = append(errs, fmt.Errorf("temporal.default_begin %s is after default_end %s", c.Temporal.DefaultBegin, c.Temporal.DefaultEnd))
	}

	for name, ns := range map[string]string{
		"index":       c.Namespaces.Index,
		"physical":    c.Namespaces.Physical,
		"person_name": c.Namespaces.PersonName,
		"thesaurus":   c.Namespaces.Thesaurus,
	} {
		if ns == "" {
			errs = append(errs, fmt.Errorf("namespaces.%s is required", name))
		}
	}
	if c.Namespaces.PersonName != "" && c.Namespaces.PersonName == c.Namespaces.Thesaurus {
		errs = append(errs, errors.New("namespaces.person_name and namespaces.thesaurus must differ"))
	}

	if c.Redis != nil {
		if c.Redis.URL == "" {
			errs = append(errs, errors.New("redis.url is required"))
		}
		if c.Redis.ConnectTimeout != "" {
			if _, err := time.ParseDuration(c.Redis.ConnectTimeout); err != nil {
				errs = append(errs, fmt.Errorf("redis.connect_timeout: %w", err))
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return converr.New("config.Validate", converr.KindConfiguration,
		fmt.Errorf("%w: %w", converr.ErrInvalidConfig, errors.Join(errs...)))
}

// CircaWindow returns the circa window in days.
func (t TemporalConfig) CircaWindow() int {
	if t.CircaWindowDays == nil {
		return temporal.DefaultCircaWindowDays
	}
	return *t.CircaWindowDays
}

// DefaultBeginDate parses DefaultBegin. Returns temporal.DefaultBegin if not
// set or invalid.
func (t TemporalConfig) DefaultBeginDate() time.Time {
	d, err := time.Parse(temporal.DateLayout, t.DefaultBegin)
	if err != nil {
		return temporal.DefaultBegin
	}
	return d
}

// DefaultEndDate parses DefaultEnd. Returns temporal.DefaultEnd if not set
// or invalid.
func (t TemporalConfig) DefaultEndDate() time.Time {
	d, err := time.Parse(temporal.DateLayout, t.DefaultEnd)
	if err != nil {
		return temporal.DefaultEnd
	}
	return d
}

// Normalizer builds the date normalizer described by t.
func (t TemporalConfig) Normalizer() *temporal.Normalizer {
	return temporal.New(
		temporal.WithCircaWindow(t.CircaWindow()),
		temporal.WithDefaults(t.DefaultBeginDate(), t.DefaultEndDate()),
	)
}

// GetConnectTimeout parses the connect timeout string and returns a duration.
// Returns the default value if not set or invalid.
func (r *RedisConfig) GetConnectTimeout() time.Duration {
	if r == nil || r.ConnectTimeout == "" {
		return 5 * time.Second
	}
	d, err := time.ParseDuration(r.ConnectTimeout)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// StoreOptions maps r to the options of a Redis store.
func (r *RedisConfig) StoreOptions() store.RedisOptions {
	return store.RedisOptions{
		URL:            r.URL,
		KeyPrefix:      r.KeyPrefix,
		ConnectTimeout: r.GetConnectTimeout(),
	}
}

// Parse decodes YAML data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, converr.New("config.Parse", converr.KindConfiguration,
			fmt.Errorf("%w: failed to parse config: %w", converr.ErrInvalidConfig, err))
	}

	config.ApplyDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Load reads and parses a configuration file. If the path is a directory,
// it looks for one of FileNames in that directory.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path: %w", err)
	}

	configPath := path
	if info.IsDir() {
		configPath = ""
		for _, name := range FileNames {
			candidate := filepath.Join(path, name)
			if _, err := os.Stat(candidate); err == nil {
				configPath = candidate
				break
			}
		}
		if configPath == "" {
			return nil, fmt.Errorf("no %s found in %s", FileNames[0], path)
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

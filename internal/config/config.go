// Package config resolves CLI settings from defaults, an optional YAML file,
// and MODELGEN_* environment variables. Flags are applied last by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelgen/internal/logging"
	"github.com/goliatone/go-modelgen/pkg/model"
	"github.com/goliatone/go-modelgen/pkg/sample"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "MODELGEN_"

// Config holds every CLI setting. Environment overrides use the upper-cased
// YAML key under EnvPrefix (MODELGEN_ROOT, MODELGEN_ALLOW_HTTP, ...), with
// MODELGEN_TIMEOUT_MS in milliseconds and MODELGEN_LOG_* for the log block.
// An empty Renderer picks one from the output file extension.
type Config struct {
	RootName  string            `yaml:"root"`
	Renderer  string            `yaml:"renderer"`
	Collision string            `yaml:"collision"`
	Format    string            `yaml:"format"`
	Select    string            `yaml:"select"`
	Timeout   time.Duration     `yaml:"timeout"`
	AllowHTTP bool              `yaml:"allow_http"`
	MaxBytes  int64             `yaml:"max_bytes"`
	Preset    string            `yaml:"preset"`
	Templates string            `yaml:"templates"`
	Renames   map[string]string `yaml:"renames"`
	Log       logging.Config    `yaml:"log"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		RootName:  model.DefaultRootName,
		Collision: string(model.CollisionQualify),
		Timeout:   10 * time.Second,
		AllowHTTP: true,
		MaxBytes:  10 << 20,
		Log:       logging.DefaultConfig(),
	}
}

// Load resolves defaults, then the YAML file at path (skipped when empty),
// then environment variables from lookup (os.LookupEnv when nil).
func Load(path string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.MergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MergeFile overlays the YAML document at path. Keys absent from the file keep
// their current values.
func (c *Config) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overlays MODELGEN_* variables. Malformed numeric or boolean values
// are reported rather than ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	env := envReader{lookup: lookup}

	env.str("ROOT", &c.RootName)
	env.str("RENDERER", &c.Renderer)
	env.str("COLLISION", &c.Collision)
	env.str("FORMAT", &c.Format)
	env.str("SELECT", &c.Select)
	env.str("PRESET", &c.Preset)
	env.str("TEMPLATES", &c.Templates)
	env.durationMs("TIMEOUT_MS", &c.Timeout)
	env.boolean("ALLOW_HTTP", &c.AllowHTTP)
	env.int64("MAX_BYTES", &c.MaxBytes)

	env.str("LOG_LEVEL", &c.Log.Level)
	env.str("LOG_FILE", &c.Log.FilePath)
	env.integer("LOG_MAX_SIZE_MB", &c.Log.MaxSizeMB)
	env.integer("LOG_MAX_BACKUPS", &c.Log.MaxBackups)
	env.integer("LOG_MAX_AGE_DAYS", &c.Log.MaxAgeDays)
	env.boolean("LOG_COMPRESS", &c.Log.Compress)

	return errors.Join(env.errs...)
}

// Validate checks enumerated settings.
func (c Config) Validate() error {
	var errs []error
	if _, ok := model.ParseCollisionPolicy(c.Collision); !ok {
		errs = append(errs, fmt.Errorf("config: unknown collision policy %q", c.Collision))
	}
	if _, err := sample.ParseFormat(c.Format); err != nil {
		errs = append(errs, fmt.Errorf("config: %w", err))
	}
	if c.Timeout < 0 {
		errs = append(errs, errors.New("config: timeout must not be negative"))
	}
	return errors.Join(errs...)
}

// CollisionPolicy returns the parsed collision policy, defaulting to qualify.
func (c Config) CollisionPolicy() model.CollisionPolicy {
	policy, ok := model.ParseCollisionPolicy(c.Collision)
	if !ok {
		return model.CollisionQualify
	}
	return policy
}

type envReader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (e *envReader) get(key string) (string, bool) {
	v, ok := e.lookup(EnvPrefix + key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) boolean(key string, dst *bool) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		*dst = true
	case "0", "false", "no", "off":
		*dst = false
	default:
		e.errs = append(e.errs, fmt.Errorf("config: %s%s: invalid boolean %q", EnvPrefix, key, v))
	}
}

func (e *envReader) integer(key string, dst *int) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err))
		return
	}
	*dst = i
}

func (e *envReader) int64(key string, dst *int64) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	i, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err))
		return
	}
	*dst = i
}

func (e *envReader) durationMs(key string, dst *time.Duration) {
	v, ok := e.get(key)
	if !ok {
		return
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("config: %s%s: %w", EnvPrefix, key, err))
		return
	}
	*dst = time.Duration(ms) * time.Millisecond
}

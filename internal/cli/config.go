package cli

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"github.com/plantforge/plantforge/pkg/core/plant"
	"github.com/plantforge/plantforge/pkg/pipeline"
)

// Environment variables that override the config file.
const (
	envMongoURI   = "PLANTFORGE_MONGO_URI"
	envRedisAddr  = "PLANTFORGE_REDIS_ADDR"
	envListenAddr = "PLANTFORGE_LISTEN_ADDR"
	envOwnerID    = "PLANTFORGE_OWNER_ID"
	envRedisDB    = "PLANTFORGE_REDIS_DB"
)

// Config is the on-disk CLI and server configuration.
type Config struct {
	MongoURI      string       `toml:"mongo_uri"`
	MongoDatabase string       `toml:"mongo_database"`
	RedisAddr     string       `toml:"redis_addr"`
	RedisPassword string       `toml:"redis_password"`
	RedisDB       int          `toml:"redis_db"`
	ListenAddr    string       `toml:"listen_addr"`
	StylePolicy   string       `toml:"style_policy"`
	OwnerID       string       `toml:"owner_id"`
	Tuning        plant.Tuning `toml:"tuning"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:  ":8080",
		StylePolicy: "default",
		OwnerID:     "local",
	}
}

// LoadConfig reads the TOML file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if _, err := plant.ParseStylePolicy(cfg.StylePolicy); err != nil {
		return nil, fmt.Errorf("config style_policy: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(envMongoURI); v != "" {
		c.MongoURI = v
	}
	if v := os.Getenv(envRedisAddr); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv(envListenAddr); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv(envOwnerID); v != "" {
		c.OwnerID = v
	}
	if v := os.Getenv(envRedisDB); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", envRedisDB, err)
		}
		c.RedisDB = db
	}
	return nil
}

// LayoutTuning returns the configured tuning merged over the defaults, or
// nil when the config overrides nothing.
func (c *Config) LayoutTuning() *plant.Tuning {
	if c.Tuning == (plant.Tuning{}) {
		return nil
	}
	t := c.Tuning
	return &t
}

// LayoutOptions returns the core options implied by the config.
func (c *Config) LayoutOptions() []plant.Option {
	policy, _ := plant.ParseStylePolicy(c.StylePolicy)
	opts := []plant.Option{plant.WithStylePolicy(policy)}
	if t := c.LayoutTuning(); t != nil {
		opts = append(opts, plant.WithTuning(plant.DefaultTuning().Merge(*t)))
	}
	return opts
}

// PipelineOptions returns pipeline options for raw with the configured
// style policy and tuning.
func (c *Config) PipelineOptions(raw plant.RawParams) pipeline.Options {
	return pipeline.Options{
		Params:      raw,
		StylePolicy: c.StylePolicy,
		Tuning:      c.LayoutTuning(),
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/plantforge/config.toml,
// falling back to ~/.config.
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

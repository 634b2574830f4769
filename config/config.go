// Package config loads the engine configuration. Values come from three
// layers: built-in defaults, an optional YAML file, and environment
// variables, each overriding the previous one.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	// Collection identity.
	Name    string `yaml:"name"    env:"GAMETOKEN_NAME"`
	Symbol  string `yaml:"symbol"  env:"GAMETOKEN_SYMBOL"`
	BaseURI string `yaml:"base_uri" env:"GAMETOKEN_BASE_URI"`

	// DBPath is the SQLite database file. Empty selects in-memory storage.
	DBPath string `yaml:"db_path" env:"GAMETOKEN_DB_PATH"`

	// GameAddress pins every token to one game (direct mode). Mutually
	// exclusive with GameRegistryAddress.
	GameAddress string `yaml:"game_address" env:"GAMETOKEN_GAME_ADDRESS"`

	// GameRegistryAddress enables registry mode: tokens may bind any game,
	// and new games are registered on first use.
	GameRegistryAddress string `yaml:"game_registry_address" env:"GAMETOKEN_GAME_REGISTRY_ADDRESS"`

	// RelayURL, when set, replaces local event logging with a websocket
	// relayer.
	RelayURL string `yaml:"relay_url" env:"GAMETOKEN_RELAY_URL"`

	// ProofDir is where compiled proving artifacts are cached.
	ProofDir string `yaml:"proof_dir" env:"GAMETOKEN_PROOF_DIR"`

	// GameStatePath points at a JSON file of reported game states, used by
	// the update command.
	GameStatePath string `yaml:"game_state_path" env:"GAMETOKEN_GAME_STATE_PATH"`

	// CacheSize bounds the rendered-metadata cache. Zero means unlimited.
	CacheSize int `yaml:"cache_size" env:"GAMETOKEN_CACHE_SIZE"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Name:      "Game Session Token",
		Symbol:    "GST",
		BaseURI:   "https://gametoken.local/token/",
		DBPath:    "gametoken.db",
		ProofDir:  "proofkeys",
		CacheSize: 1024,
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks mode consistency.
func (c Config) Validate() error {
	if c.GameAddress != "" && c.GameRegistryAddress != "" {
		return fmt.Errorf("config: game_address and game_registry_address are mutually exclusive")
	}
	if c.GameAddress == "" && c.GameRegistryAddress == "" {
		return fmt.Errorf("config: one of game_address or game_registry_address is required")
	}
	if c.Name == "" {
		return fmt.Errorf("config: name must not be empty")
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config: cache_size must be >= 0")
	}
	return nil
}

// RegistryMode reports whether games resolve through the registry.
func (c Config) RegistryMode() bool {
	return c.GameRegistryAddress != ""
}

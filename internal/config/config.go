// Package config loads the server settings from the environment and flags,
// and game settings from JSON files.
package config

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"mafia/internal/engine"
	"mafia/internal/engine/roles"
)

// ServerConfig holds process configuration.
type ServerConfig struct {
	Port         int    `env:"MAFIA_HTTP_PORT" envDefault:"8080"`
	BotPort      int    `env:"MAFIA_BOT_PORT" envDefault:"8081"`
	ArchiveDSN   string `env:"MAFIA_ARCHIVE_DSN" envDefault:"mafia.db"`
	GameConfig   string `env:"MAFIA_GAME_CONFIG"`
	Dev          bool   `env:"MAFIA_DEV" envDefault:"false"`
	OtelEndpoint string `env:"MAFIA_OTEL_ENDPOINT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig parses environment and flags into a ServerConfig. Flags win
// over the environment.
func ParseConfig(fs *flag.FlagSet, args []string) (ServerConfig, error) {
	var cfg ServerConfig
	if err := ParseEnv(&cfg); err != nil {
		return ServerConfig{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "chat UI server port")
	fs.IntVar(&cfg.BotPort, "bot-port", cfg.BotPort, "bot API server port (0 disables it)")
	fs.StringVar(&cfg.ArchiveDSN, "archive", cfg.ArchiveDSN, "sqlite DSN of the game archive (empty disables it)")
	fs.StringVar(&cfg.GameConfig, "game-config", cfg.GameConfig, "JSON game configuration file")
	fs.BoolVar(&cfg.Dev, "dev", cfg.Dev, "development logging")
	if err := fs.Parse(args); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// LoadGameConfig reads a JSON game configuration from path over the
// standard defaults. An empty path returns the defaults.
func LoadGameConfig(path string) (engine.GameConfig, error) {
	cfg := roles.DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return engine.GameConfig{}, fmt.Errorf("read game config: %w", err)
	}
	return ParseGameConfig(data, cfg)
}

// ParseGameConfig decodes data over base. Role weights and overrides given
// in data are merged into those of base.
func ParseGameConfig(data []byte, base engine.GameConfig) (engine.GameConfig, error) {
	weights := base.RoleWeights
	overrides := base.RoleOverrides
	base.RoleWeights = nil
	base.RoleOverrides = nil

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&base); err != nil {
		return engine.GameConfig{}, fmt.Errorf("parse game config: %w", err)
	}

	if weights == nil {
		weights = map[string]float64{}
	}
	for k, v := range base.RoleWeights {
		if v < 0 || v > 1 {
			return engine.GameConfig{}, fmt.Errorf("parse game config: weight of %s must be in [0,1], got %v", k, v)
		}
		weights[k] = v
	}
	if overrides == nil {
		overrides = map[string]map[string]any{}
	}
	for k, v := range base.RoleOverrides {
		overrides[k] = v
	}
	base.RoleWeights = weights
	base.RoleOverrides = overrides
	return base, nil
}

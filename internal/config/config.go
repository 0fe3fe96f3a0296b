package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config is the root server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Rules   RulesConfig   `mapstructure:"rules"`
}

// ServerConfig configures the HTTP/WebSocket listener.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CatalogConfig selects the card catalog backend. Backend "memory" serves
// the built-in starter set; "postgres" uses the DSN.
type CatalogConfig struct {
	Backend string `mapstructure:"backend"`
	DSN     string `mapstructure:"dsn"`
}

// RulesConfig carries the tunable game-rule parameters, including the
// deck-size validation policy whose strictness differs between rule
// revisions.
type RulesConfig struct {
	StartingPP           int  `mapstructure:"starting_pp"`
	OpeningHandSize      int  `mapstructure:"opening_hand_size"`
	LeaderCount          int  `mapstructure:"leader_count"`
	TacticsCount         int  `mapstructure:"tactics_count"`
	EnforceTacticsCount  bool `mapstructure:"enforce_tactics_count"`
	MainDeckCount        int  `mapstructure:"main_deck_count"`
	EnforceMainDeckCount bool `mapstructure:"enforce_main_deck_count"`
}

// Load reads configuration from the given file with environment overrides
// (prefix CROSSSTARS, e.g. CROSSSTARS_SERVER_ADDRESS). A missing file is not
// an error; defaults apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("CROSSSTARS")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		// File absent: run on defaults and environment.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("catalog.backend", "memory")
	v.SetDefault("catalog.dsn", "")
	v.SetDefault("rules.starting_pp", 3)
	v.SetDefault("rules.opening_hand_size", 4)
	v.SetDefault("rules.leader_count", 4)
	v.SetDefault("rules.tactics_count", 5)
	v.SetDefault("rules.enforce_tactics_count", true)
	v.SetDefault("rules.main_deck_count", 50)
	v.SetDefault("rules.enforce_main_deck_count", true)
}

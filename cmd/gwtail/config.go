package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/luciancaetano/gatewire/snowflake"
	"github.com/luciancaetano/gatewire/ws"
)

// tokenEnv overrides the token from the config file.
const tokenEnv = "GATEWAY_TOKEN"

// Config is the gwtail configuration file.
//
//	token: "..."             # or $GATEWAY_TOKEN
//	url: wss://gateway.example.gg
//	shard: {id: 0, total: 1}
//	intents: 513
//	status: online
//	guilds: [81384788765712384, "41771983423143937"]
//	member_limit: 0
//	log_level: debug
//	metrics_addr: ":9090"
type Config struct {
	Token            string              `yaml:"token"`
	URL              string              `yaml:"url"`
	Shard            ShardConfig         `yaml:"shard"`
	Intents          uint64              `yaml:"intents"`
	Status           string              `yaml:"status"`
	Guilds           []snowflake.GuildID `yaml:"guilds"`
	MemberLimit      uint16              `yaml:"member_limit"`
	LogLevel         string              `yaml:"log_level"`
	MetricsAddr      string              `yaml:"metrics_addr"`
	HandshakeTimeout time.Duration       `yaml:"handshake_timeout"`
}

type ShardConfig struct {
	ID    uint32 `yaml:"id"`
	Total uint32 `yaml:"total"`
}

func defaultConfig() *Config {
	return &Config{
		URL:              "wss://gateway.discord.gg",
		Shard:            ShardConfig{ID: 0, Total: 1},
		Intents:          uint64(ws.IntentsNonPrivileged),
		Status:           string(ws.StatusOnline),
		LogLevel:         "info",
		HandshakeTimeout: 10 * time.Second,
	}
}

// loadConfig reads path over the defaults. An empty path uses the defaults
// alone. The token environment variable wins over the file.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if token := os.Getenv(tokenEnv); token != "" {
		cfg.Token = token
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.Token == "" {
		return fmt.Errorf("no token: set token in the config file or %s", tokenEnv)
	}
	if c.URL == "" {
		return errors.New("url is empty")
	}
	if c.Shard.Total == 0 || c.Shard.ID >= c.Shard.Total {
		return fmt.Errorf("invalid shard [%d, %d]", c.Shard.ID, c.Shard.Total)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

func (c *Config) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

func (c *Config) shard() ws.ShardInfo {
	return ws.ShardInfo{ID: snowflake.ShardID(c.Shard.ID), Total: c.Shard.Total}
}

func (c *Config) presence() ws.Presence {
	return ws.Presence{Status: ws.Status(c.Status)}
}

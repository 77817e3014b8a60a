// Package config loads server configuration. Environment variables take
// precedence over an optional YAML file so container deployments stay
// twelve-factor while local runs can keep a checked-in file.
package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Server captures process-level configuration.
type Server struct {
	Addr string
	Env  string

	// DatabaseURL selects the postgres store when set; empty runs the
	// in-memory store with seed data.
	DatabaseURL string

	// SeedData loads the development dataset at startup.
	SeedData bool
}

const (
	defaultAddr = ":8080"
	defaultEnv  = "development"
)

// Load builds a Server config from the environment and an optional YAML
// file.
func Load(configFile string) (Server, error) {
	k := koanf.New(".")

	if configFile != "" {
		if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
			return Server{}, fmt.Errorf("load config file %s: %w", configFile, err)
		}
	}

	cfg := Server{
		Addr:        fromEnvOr("USERDIR_ADDR", k.String("addr"), defaultAddr),
		Env:         fromEnvOr("USERDIR_ENV", k.String("env"), defaultEnv),
		DatabaseURL: fromEnvOr("DATABASE_URL", k.String("database_url"), ""),
	}
	cfg.SeedData = cfg.Env == "development"
	if raw := os.Getenv("USERDIR_SEED"); raw != "" {
		cfg.SeedData = raw == "true"
	} else if k.Exists("seed_data") {
		cfg.SeedData = k.Bool("seed_data")
	}

	return cfg, nil
}

func fromEnvOr(envKey, fileVal, defaultVal string) string {
	if val := os.Getenv(envKey); val != "" {
		return val
	}
	if fileVal != "" {
		return fileVal
	}
	return defaultVal
}

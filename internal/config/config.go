package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	Postgres Postgres `koanf:"postgres"`
	HTTP     HTTP     `koanf:"http"`
	Storage  Storage  `koanf:"storage"`
	Operator Operator `koanf:"operator"`
	Log      Log      `koanf:"log"`
}

type Postgres struct {
	Address  string `koanf:"address"`
	Port     string `koanf:"port"`
	DB       string `koanf:"db"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	SSLMode  string `koanf:"sslmode"`
}

type HTTP struct {
	Port string `koanf:"port"`
}

type Storage struct {
	Driver string `koanf:"driver"`
}

type Operator struct {
	Workers   int `koanf:"workers"`
	QueueSize int `koanf:"queue"`
	Retries   int `koanf:"retries"`
}

type Log struct {
	Level string `koanf:"level"`
}

// In all cases the default behavior should be for the docker compose setup
var defaults = map[string]interface{}{
	"postgres.address":  "localhost",
	"postgres.port":     "5433",
	"postgres.db":       "postgres",
	"postgres.username": "postgres",
	"postgres.password": "testpassword",
	"postgres.sslmode":  "disable",
	"http.port":         "9446",
	"storage.driver":    StorageDriverPostgres,
	"operator.workers":  4,
	"operator.queue":    1000,
	"operator.retries":  3,
	"log.level":         "info",
}

// ProcessEnvironmentVariables loads defaults, then the YAML file named by
// CONFIG_FILE if set, then environment overrides such as POSTGRES_ADDRESS or
// OPERATOR_WORKERS.
func ProcessEnvironmentVariables() (*Config, error) {
	return Load(os.Getenv("CONFIG_FILE"))
}

// Load is ProcessEnvironmentVariables with an explicit config file path. An empty
// path skips the file layer.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps POSTGRES_ADDRESS to postgres.address. Only the first underscore
// separates the section from the key.
func envKey(s string) string {
	return strings.Replace(strings.ToLower(s), "_", ".", 1)
}

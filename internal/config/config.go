// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/torneo-cremesi/sheet-api/internal/errors"
)

// Config is the runtime configuration.
type Config struct {
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// DataDir holds the bundled catalog stubs and the rule variant datasets.
	DataDir string `env:"DATA_DIR" envDefault:"data"`

	// SaveDelay is the quiescence window for debounced persistence.
	SaveDelay time.Duration `env:"SAVE_DELAY" envDefault:"400ms"`

	// Catalog endpoints. An empty value makes the client load the bundled
	// stub directly instead of going to the network.
	RacesURL      string `env:"AON_RACES_URL" envDefault:"https://aonprd.com/Data/Races.json"`
	ClassesURL    string `env:"AON_CLASSES_URL" envDefault:"https://aonprd.com/Data/Classes.json"`
	ArchetypesURL string `env:"AON_ARCHETYPES_URL" envDefault:"https://aonprd.com/Data/Archetypes.json"`
	TraitsURL     string `env:"AON_TRAITS_URL" envDefault:"https://aonprd.com/Data/Traits.json"`
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, errors.Wrap(err, "failed to load .env file")
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}
	return &cfg, nil
}

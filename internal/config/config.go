// Package config reads client settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultWelcome greets a fresh conversation before any question is
// asked.
const DefaultWelcome = "🌊 Hi! I'm FloatChat, your oceanographic data assistant. Ask me about ARGO floats, temperature, salinity, or anything in the ocean data."

type Config struct {
	// Query service
	ServerURL string        `env:"FLOATCHAT_SERVER_URL" envDefault:"http://localhost:8000"`
	Timeout   time.Duration `env:"FLOATCHAT_TIMEOUT" envDefault:"120s"`

	// Result grid
	PageSize int `env:"FLOATCHAT_PAGE_SIZE" envDefault:"10"`

	// Files written by the client. DataDir holds persisted state such as
	// settings.json; empty means ~/.floatchat.
	DataDir        string `env:"FLOATCHAT_DATA_DIR"`
	ExportDir      string `env:"FLOATCHAT_EXPORT_DIR"`
	LogFile        string `env:"FLOATCHAT_LOG_FILE"`
	TranscriptFile string `env:"FLOATCHAT_TRANSCRIPT"`

	// Chat
	Welcome string `env:"FLOATCHAT_WELCOME"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Welcome == "" {
		cfg.Welcome = DefaultWelcome
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return cfg, nil
}

package app

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config is the environment-driven configuration, prefixed OPSBOARD_.
type Config struct {
	Addr            string        `envconfig:"ADDR" default:":8080"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`

	// DataPath is the CSV source. DataDSN, when set, switches the board to
	// its SQLite snapshot instead.
	DataPath string `envconfig:"DATA_PATH" default:"data.csv"`
	DataDSN  string `envconfig:"DATA_DSN"`

	// SettingsPath points at the optional board.yaml display settings.
	SettingsPath string `envconfig:"SETTINGS_PATH" default:"board.yaml"`

	// Watch reloads the CSV when it changes on disk.
	Watch bool `envconfig:"WATCH" default:"true"`
}

func NewConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("OPSBOARD", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

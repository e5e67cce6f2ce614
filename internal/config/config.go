package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	RedisURL string        `envconfig:"REDIS_URL" default:"redis://localhost:6379"`
	CacheTTL time.Duration `envconfig:"CACHE_TTL" default:"1h"`

	CSVSeparator string `envconfig:"CSV_SEPARATOR" default:","`
	Workers      int    `envconfig:"WORKERS" default:"4"`

	APIHost         string        `envconfig:"API_HOST" default:"0.0.0.0"`
	APIPort         string        `envconfig:"API_PORT" default:"8000"`
	APIReadTimeout  time.Duration `envconfig:"API_READ_TIMEOUT" default:"30s"`
	APIWriteTimeout time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	MaxUploadBytes  int           `envconfig:"MAX_UPLOAD_BYTES" default:"26214400"`

	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat   string `envconfig:"LOG_FORMAT" default:"json"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() *Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}
	return &cfg
}

// Separator returns the configured CSV delimiter as a rune, falling back to
// a comma when the value is empty.
func (c *Config) Separator() rune {
	if c.CSVSeparator == "" {
		return ','
	}
	return []rune(c.CSVSeparator)[0]
}

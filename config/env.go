package config

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v10"
	log "github.com/sirupsen/logrus"
)

// EnvPrefix prefixes every environment variable read by Env.
const EnvPrefix = "ARRAYBEAM_"

// Env holds the process settings taken from the environment.
type Env struct {
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	Workers   int    `env:"WORKERS" envDefault:"0"`
}

// ParseEnv reads Env from the environment.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Prefix: EnvPrefix}); err != nil {
		return e, fmt.Errorf("config: environment: %w", err)
	}
	if e.Workers < 0 {
		return e, fmt.Errorf("config: %sWORKERS must not be negative, got %d", EnvPrefix, e.Workers)
	}
	return e, nil
}

// NumWorkers is Workers, or GOMAXPROCS when unset.
func (e Env) NumWorkers() int {
	if e.Workers > 0 {
		return e.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// SetupLogger applies the level and format of e to the standard logrus
// logger. Logs go to stderr so tools can write data to stdout.
func SetupLogger(e Env) error {
	lvl, err := log.ParseLevel(e.LogLevel)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log.SetLevel(lvl)
	log.SetOutput(os.Stderr)
	switch strings.ToLower(e.LogFormat) {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("config: unknown log format %q", e.LogFormat)
	}
	return nil
}

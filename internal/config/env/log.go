package env

import (
	"fmt"
	"os"
	"strconv"

	"genesis_reels/internal/config"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logDevEnvName   = "LOG_DEVELOPMENT"
)

type logConfig struct {
	level string
	dev   bool
}

func NewLogConfig() (config.LogConfig, error) {
	level := os.Getenv(logLevelEnvName)
	if level == "" {
		level = "info"
	}

	dev := false
	if raw := os.Getenv(logDevEnvName); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, errInvalidEnv(logDevEnvName, raw)
		}
		dev = v
	}

	return &logConfig{level: level, dev: dev}, nil
}

func (cfg *logConfig) Level() string     { return cfg.level }
func (cfg *logConfig) Development() bool { return cfg.dev }

func errInvalidEnv(name, value string) error {
	return fmt.Errorf("invalid %s value %q", name, value)
}

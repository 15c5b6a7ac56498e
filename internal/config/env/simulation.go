package env

import (
	"os"
	"runtime"
	"strconv"

	"genesis_reels/internal/config"
)

const simWorkersEnvName = "SIM_WORKERS"

type simulationConfig struct {
	workers int
}

// NewSimulationConfig - число воркеров симуляции, по умолчанию GOMAXPROCS
func NewSimulationConfig() (config.SimulationConfig, error) {
	workers := runtime.GOMAXPROCS(0)
	if raw := os.Getenv(simWorkersEnvName); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, errInvalidEnv(simWorkersEnvName, raw)
		}
		workers = n
	}
	return &simulationConfig{workers: workers}, nil
}

func (cfg *simulationConfig) Workers() int { return cfg.workers }

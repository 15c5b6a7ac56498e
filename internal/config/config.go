package config

import (
	"time"

	"genesis_reels/internal/model"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

// CascadeConfig - математика игры и параметры денежной части сервиса
type CascadeConfig interface {
	Game() *model.GameConfig
	// BetUnit - сколько кредитов движка в одной денежной единице
	BetUnit() decimal.Decimal
	SessionStepLimit() int
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
	MaxConns() int32
	ConnectTimeout() time.Duration
}

type LogConfig interface {
	Level() string
	Development() bool
}

type SimulationConfig interface {
	Workers() int
}

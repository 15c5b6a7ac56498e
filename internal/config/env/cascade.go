package env

import (
	"fmt"
	"os"

	"genesis_reels/internal/config"
	"genesis_reels/internal/model"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	gameConfigPathEnvName = "GAME_CONFIG_PATH"
	defaultGameConfigPath = "config.yaml"

	defaultBetUnit          = 100
	defaultSessionStepLimit = 1000
)

type cascadeFile struct {
	BetUnit          int64            `yaml:"bet_unit"`
	SessionStepLimit int              `yaml:"session_step_limit"`
	Game             model.GameConfig `yaml:"game"`
}

type cascadeConfig struct {
	game      model.GameConfig
	betUnit   decimal.Decimal
	stepLimit int
}

// CascadeConfigPath - путь к YAML с математикой игры
func CascadeConfigPath() string {
	if p := os.Getenv(gameConfigPathEnvName); p != "" {
		return p
	}
	return defaultGameConfigPath
}

// NewCascadeConfigFromYAML читает конфигурацию поверх DefaultGameConfig.
// Таблицы весов и выплат из файла заменяют стандартные целиком
func NewCascadeConfigFromYAML(path string) (config.CascadeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cascade config: %w", err)
	}
	return ParseCascadeConfig(data)
}

func ParseCascadeConfig(data []byte) (config.CascadeConfig, error) {
	file := cascadeFile{
		BetUnit:          defaultBetUnit,
		SessionStepLimit: defaultSessionStepLimit,
		Game:             model.DefaultGameConfig(),
	}
	// yaml.v3 дописывает ключи в существующую map, таблицы со стандартными значениями обнуляются
	file.Game.Symbols = nil
	file.Game.Ways.Pays = nil
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse cascade config: %w", err)
	}

	def := model.DefaultGameConfig()
	g := &file.Game
	if g.Symbols == nil {
		g.Symbols = def.Symbols
	}
	if g.Ways.Pays == nil {
		g.Ways.Pays = def.Ways.Pays
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	if file.BetUnit <= 0 {
		return nil, fmt.Errorf("%w: bet_unit must be positive", model.ErrInvalidConfiguration)
	}
	if file.SessionStepLimit <= 0 {
		return nil, fmt.Errorf("%w: session_step_limit must be positive", model.ErrInvalidConfiguration)
	}

	return &cascadeConfig{
		game:      file.Game,
		betUnit:   decimal.NewFromInt(file.BetUnit),
		stepLimit: file.SessionStepLimit,
	}, nil
}

func (c *cascadeConfig) Game() *model.GameConfig  { return &c.game }
func (c *cascadeConfig) BetUnit() decimal.Decimal { return c.betUnit }
func (c *cascadeConfig) SessionStepLimit() int    { return c.stepLimit }

// Package freespins - сессия бесплатных вращений: вход по скаттерам,
// шаги с постоянной картой множителей, уровни, ретриггеры.
package freespins

import (
	"genesis_reels/internal/engine/multiplier"
	"genesis_reels/internal/engine/tumble"
	"genesis_reels/internal/model"
)

// DefaultBet - ставка, если вход выполнен без нее
const DefaultBet = 100

const MaxLevel = 5

// Feature - флаги бонусных возможностей сессии
type Feature uint8

const (
	FeatureGuaranteedEvolution Feature = 1 << iota
	FeatureHunt
	FeatureMorphBoost
	FeatureEpic
	FeatureLegendary
)

var featureNames = []struct {
	f    Feature
	name string
}{
	{FeatureGuaranteedEvolution, "guaranteed_evolution"},
	{FeatureHunt, "hunt"},
	{FeatureMorphBoost, "morph_boost"},
	{FeatureEpic, "epic"},
	{FeatureLegendary, "legendary"},
}

func (f Feature) Has(x Feature) bool { return f&x != 0 }

// Names - имена включенных флагов для клиента
func (f Feature) Names() []string {
	out := []string{}
	for _, fn := range featureNames {
		if f.Has(fn.f) {
			out = append(out, fn.name)
		}
	}
	return out
}

// State - значение сессии. Step возвращает новое значение, старое не меняется
type State struct {
	Seed             uint32          `json:"seed"`
	Bet              int64           `json:"bet"`
	SpinsTotal       int             `json:"spinsTotal"`
	SpinsLeft        int             `json:"spinsLeft"`
	StepIndex        int             `json:"stepIndex"`
	TotalWin         int64           `json:"totalWin"`
	Multipliers      *multiplier.Map `json:"multipliers"`
	Ended            bool            `json:"ended"`
	ProgressiveLevel int             `json:"progressiveLevel"`
	Features         Feature         `json:"features"`
	RetriggerCount   int             `json:"retriggerCount"`
	LastRetrigger    int             `json:"lastRetrigger,omitempty"` // спинов добавлено последним шагом
	LastSpin         *tumble.Result  `json:"lastSpin,omitempty"`
	StepEvents       []model.Event   `json:"stepEvents,omitempty"` // эволюции после спина
}

// WinX - выигрыш сессии в ставках
func (s State) WinX() float64 {
	if s.Bet == 0 {
		return 0
	}
	return float64(s.TotalWin) / float64(s.Bet)
}

// Mode - режим каскадов для следующего шага
func (s State) Mode(cfg *model.GameConfig) string {
	switch {
	case s.Features.Has(FeatureHunt):
		return model.ModeHunt
	case s.Features.Has(FeatureEpic):
		return model.ModeEpic
	}
	return cfg.Bonus.Mode
}

// LevelFor - уровень по выигрышу в ставках. Пороги задают уровни 2..5
func LevelFor(cfg *model.GameConfig, winX float64) int {
	level := 1
	for i, t := range cfg.FreeSpins.Progression {
		if winX >= t && i+2 > level {
			level = i + 2
		}
	}
	return min(level, MaxLevel)
}

func featuresForLevel(level int) Feature {
	var f Feature
	if level >= 3 {
		f |= FeatureMorphBoost
	}
	if level >= 5 {
		f |= FeatureEpic
	}
	return f
}

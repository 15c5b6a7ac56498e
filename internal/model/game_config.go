package model

import (
	"fmt"
	"math"
	"strconv"
)

const (
	GrowthDouble    = "double"
	GrowthIncrement = "increment"

	ModeNone   = ""
	ModeEpic   = "epic"
	ModeFrenzy = "frenzy"
	ModeHunt   = "hunt"

	MaxCascadesLimit = 50
)

// GameConfig - математика игры. Читается из YAML поверх Default
type GameConfig struct {
	Grid           GridConfig         `yaml:"grid"`
	MinClusterSize int                `yaml:"min_cluster_size"`
	MaxCascades    int                `yaml:"max_cascades"`
	MaxWinX        int                `yaml:"max_win_x"` // потолок выигрыша в ставках
	MaxTier        Tier               `yaml:"max_tier"`
	Species        []SpeciesConfig    `yaml:"species"`
	TierPay        []float64          `yaml:"tier_pay"` // коэффициент выплаты по уровню, индекс = tier-1
	Symbols        map[string]float64 `yaml:"symbols"`
	BonusSymbols   map[string]float64 `yaml:"bonus_symbols"` // веса во фриспинах, пусто - Symbols
	Multiplier     MultiplierConfig   `yaml:"multiplier"`
	RefillBoost    RefillBoostConfig  `yaml:"refill_boost"`
	Evolution      EvolutionConfig    `yaml:"evolution"`
	Morph          MorphConfig        `yaml:"morph"`
	Ways           WaysConfig         `yaml:"ways"`
	Bonus          BonusConfig        `yaml:"bonus"`
	FreeSpins      FreeSpinsConfig    `yaml:"free_spins"`
}

type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

type SpeciesConfig struct {
	Name         string  `yaml:"name"`
	RequiredTier Tier    `yaml:"required_tier"` // минимальный уровень для эволюции
	MinCluster   int     `yaml:"min_cluster"`   // минимальная группа для эволюции
	BasePay      float64 `yaml:"base_pay"`      // выплата за символ при ставке 1
}

type MultiplierConfig struct {
	Cap    int    `yaml:"cap"`
	Seed   int    `yaml:"seed"`
	Growth string `yaml:"growth"`
	Step   int    `yaml:"step"`
}

type RefillBoostConfig struct {
	PerLevel       int `yaml:"per_level"`
	ChainThreshold int `yaml:"chain_threshold"`
	ChainBonus     int `yaml:"chain_bonus"`
	TierBonus      int `yaml:"tier_bonus"`
}

type EvolutionConfig struct {
	BaseChance      float64                   `yaml:"base_chance"`
	LevelBonus      float64                   `yaml:"level_bonus"`
	PromoteRatio    float64                   `yaml:"promote_ratio"`
	MultiplierBoost int                       `yaml:"multiplier_boost"`
	TierMap         map[string]map[int]string `yaml:"tier_map"` // вид -> уровень -> id символа
}

type MorphConfig struct {
	Chance         float64  `yaml:"chance"`
	AdjacentChance float64  `yaml:"adjacent_chance"`
	WildChance     float64  `yaml:"wild_chance"`
	LevelBonus     float64  `yaml:"level_bonus"`
	WildPool       []string `yaml:"wild_pool"`
}

type WaysConfig struct {
	Enabled             bool                 `yaml:"enabled"`
	PayLeftToRight      bool                 `yaml:"pay_left_to_right"`
	PayRightToLeft      bool                 `yaml:"pay_right_to_left"`
	MinSymbols          int                  `yaml:"min_symbols"`
	MaxWays             int                  `yaml:"max_ways"`
	Pays                map[string][]float64 `yaml:"pays"` // вид -> выплата по длине серии, индекс = длина-1
	EvolutionChainBonus float64              `yaml:"evolution_chain_bonus"`
	FullBoardBonus      float64              `yaml:"full_board_bonus"`
}

type HuntConfig struct {
	RushTarget     int `yaml:"rush_target"`
	WildPerCascade int `yaml:"wild_per_cascade"`
}

type BonusConfig struct {
	Mode                string     `yaml:"mode"` // режим каскадов во фриспинах
	Hunt                HuntConfig `yaml:"hunt"`
	ChanceAddMultiplier float64    `yaml:"chance_add_multiplier"`
	ChanceMasterBall    float64    `yaml:"chance_master_ball"`
	MasterBallFactors   []int      `yaml:"master_ball_factors"`
}

type ScatterAward struct {
	Scatters int `yaml:"scatters"`
	Spins    int `yaml:"spins"`
}

type BonusSpinsConfig struct {
	From       int `yaml:"from"`
	PerScatter int `yaml:"per_scatter"`
}

type RetriggerConfig struct {
	Threshold       int `yaml:"threshold"`
	Spins           int `yaml:"spins"`
	ExtraPerScatter int `yaml:"extra_per_scatter"`
	Max             int `yaml:"max"`
}

type LegendaryConfig struct {
	Chance float64 `yaml:"chance"`
	Factor int     `yaml:"factor"`
}

type FreeSpinsConfig struct {
	ScatterTable          []ScatterAward   `yaml:"scatter_table"`
	BonusSpins            BonusSpinsConfig `yaml:"bonus_spins"`
	Progression           []float64        `yaml:"progression"` // пороги выигрыша в ставках для уровней 2..5
	Retrigger             RetriggerConfig  `yaml:"retrigger"`
	Legendary             LegendaryConfig  `yaml:"legendary"`
	GuaranteedEvolutionAt int              `yaml:"guaranteed_evolution_at"`
	HuntAt                int              `yaml:"hunt_at"`
	BuyScatters           int              `yaml:"buy_scatters"`
	BuyCostX              int              `yaml:"buy_cost_x"`
}

// DefaultGameConfig - поле 7x7, шесть видов по три уровня
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Grid:           GridConfig{Rows: 7, Cols: 7},
		MinClusterSize: 5,
		MaxCascades:    20,
		MaxWinX:        50000,
		MaxTier:        3,
		Species: []SpeciesConfig{
			{Name: "amber", RequiredTier: 1, MinCluster: 5, BasePay: 0.10},
			{Name: "volt", RequiredTier: 1, MinCluster: 5, BasePay: 0.12},
			{Name: "tide", RequiredTier: 1, MinCluster: 5, BasePay: 0.15},
			{Name: "leaf", RequiredTier: 1, MinCluster: 5, BasePay: 0.20},
			{Name: "ember", RequiredTier: 1, MinCluster: 6, BasePay: 0.30},
			{Name: "shade", RequiredTier: 2, MinCluster: 6, BasePay: 0.50},
		},
		TierPay: []float64{1, 2.5, 4},
		Symbols: map[string]float64{
			"tier1_amber": 14, "tier1_volt": 13, "tier1_tide": 12,
			"tier1_leaf": 10, "tier1_ember": 8, "tier1_shade": 6,
			"tier2_amber": 2, "tier2_volt": 2, "tier2_tide": 1.5,
			"tier2_leaf": 1.2, "tier2_ember": 1, "tier2_shade": 0.8,
			"tier3_ember": 0.2, "tier3_shade": 0.15,
			"wild":    1.5,
			"egg":     1,
			"scatter": 0.9,
		},
		Multiplier:  MultiplierConfig{Cap: 8192, Seed: 2, Growth: GrowthDouble, Step: 1},
		RefillBoost: RefillBoostConfig{PerLevel: 0, ChainThreshold: 5, ChainBonus: 1, TierBonus: 1},
		Evolution: EvolutionConfig{
			BaseChance:      0.15,
			LevelBonus:      0.05,
			PromoteRatio:    0.8,
			MultiplierBoost: 2,
		},
		Morph: MorphConfig{
			Chance:         0.01,
			AdjacentChance: 0.03,
			WildChance:     0.05,
			LevelBonus:     0.01,
			WildPool:       []string{"ember", "shade"},
		},
		Ways: WaysConfig{
			Enabled:        false,
			PayLeftToRight: true,
			MinSymbols:     3,
			MaxWays:        117649,
			Pays: map[string][]float64{
				"amber": {0, 0, 0.02, 0.04, 0.08, 0.15, 0.3},
				"volt":  {0, 0, 0.03, 0.05, 0.1, 0.2, 0.4},
				"tide":  {0, 0, 0.04, 0.08, 0.15, 0.3, 0.6},
				"leaf":  {0, 0, 0.05, 0.1, 0.2, 0.4, 0.8},
				"ember": {0, 0, 0.08, 0.15, 0.3, 0.6, 1.2},
				"shade": {0, 0, 0.1, 0.2, 0.5, 1, 2},
			},
			EvolutionChainBonus: 2,
			FullBoardBonus:      10,
		},
		Bonus: BonusConfig{
			Mode:                ModeNone,
			Hunt:                HuntConfig{RushTarget: 60, WildPerCascade: 1},
			ChanceAddMultiplier: 0.35,
			ChanceMasterBall:    0.02,
			MasterBallFactors:   []int{2, 3, 4, 5},
		},
		FreeSpins: FreeSpinsConfig{
			ScatterTable: []ScatterAward{
				{Scatters: 3, Spins: 10},
				{Scatters: 4, Spins: 15},
				{Scatters: 5, Spins: 20},
			},
			BonusSpins:            BonusSpinsConfig{From: 6, PerScatter: 5},
			Progression:           []float64{20, 50, 100, 250},
			Retrigger:             RetriggerConfig{Threshold: 3, Spins: 5, ExtraPerScatter: 5, Max: 3},
			Legendary:             LegendaryConfig{Chance: 0.05, Factor: 10},
			GuaranteedEvolutionAt: 7,
			HuntAt:                6,
			BuyScatters:           4,
			BuyCostX:              100,
		},
	}
}

// MaxBet - наибольшая ставка в кредитах, при которой потолок выигрыша
// max_win_x * bet помещается в int64
func (c *GameConfig) MaxBet() int64 {
	if c.MaxWinX <= 0 {
		return 0
	}
	return math.MaxInt64 / int64(c.MaxWinX)
}

// FloorCredits округляет выплату вниз и насыщает ее в [0, MaxInt64]
func FloorCredits(x float64) int64 {
	f := math.Floor(x)
	switch {
	case f >= math.MaxInt64, math.IsInf(f, 1):
		return math.MaxInt64
	case f <= 0, math.IsNaN(f):
		return 0
	}
	return int64(f)
}

// Validate проверяет конфигурацию до начала любой симуляции
func (c *GameConfig) Validate() error {
	if err := ValidateDimensions(c.Grid.Rows, c.Grid.Cols); err != nil {
		return err
	}
	if c.MinClusterSize < 1 {
		return invalid("min_cluster_size must be positive")
	}
	if c.MaxCascades < 1 || c.MaxCascades > MaxCascadesLimit {
		return invalid("max_cascades out of range: " + strconv.Itoa(c.MaxCascades))
	}
	if c.MaxWinX <= 0 {
		return invalid("max_win_x must be positive")
	}
	if c.MaxTier < 1 {
		return invalid("max_tier must be positive")
	}
	if len(c.Species) == 0 || len(c.Species) > 256 {
		return invalid("species list must hold 1..256 entries")
	}
	seen := make(map[string]struct{}, len(c.Species))
	for _, sp := range c.Species {
		if sp.Name == "" {
			return invalid("species without name")
		}
		if _, ok := seen[sp.Name]; ok {
			return invalid("duplicate species " + sp.Name)
		}
		seen[sp.Name] = struct{}{}
		if sp.BasePay < 0 {
			return invalid("negative base_pay for " + sp.Name)
		}
	}
	if len(c.TierPay) < int(c.MaxTier) {
		return invalid("tier_pay must cover every tier")
	}
	if len(c.Symbols) == 0 {
		return invalid("empty symbol weight table")
	}
	for _, table := range []map[string]float64{c.Symbols, c.BonusSymbols} {
		for key := range table {
			if _, err := ParseSymbolKey(key, c.Species, c.MaxTier); err != nil {
				return err
			}
		}
	}
	if c.Multiplier.Cap < 1 {
		return invalid("multiplier cap must be positive")
	}
	if c.Multiplier.Growth != GrowthDouble && c.Multiplier.Growth != GrowthIncrement {
		return invalid("unknown multiplier growth " + c.Multiplier.Growth)
	}
	switch c.Bonus.Mode {
	case ModeNone, ModeEpic, ModeFrenzy, ModeHunt:
	default:
		return invalid("unknown bonus mode " + c.Bonus.Mode)
	}
	if len(c.Bonus.MasterBallFactors) == 0 {
		return invalid("master_ball_factors is empty")
	}
	for _, f := range c.Bonus.MasterBallFactors {
		if f < 1 {
			return invalid("master_ball_factors must be positive: " + strconv.Itoa(f))
		}
	}
	for _, name := range c.Morph.WildPool {
		if _, ok := c.SpeciesByName(name); !ok {
			return invalid("unknown species in wild_pool: " + name)
		}
	}
	if c.Ways.Enabled && c.Ways.MinSymbols < 1 {
		return invalid("ways min_symbols must be positive")
	}
	return c.FreeSpins.validate()
}

func (f *FreeSpinsConfig) validate() error {
	if len(f.ScatterTable) == 0 {
		return invalid("scatter table is empty")
	}
	for _, row := range f.ScatterTable {
		if row.Scatters < 0 || row.Spins < 0 {
			return invalid("negative entry in scatter table")
		}
	}
	if len(f.Progression) == 0 {
		return invalid("progression thresholds are empty")
	}
	for _, t := range f.Progression {
		if t < 0 {
			return invalid("negative progression threshold")
		}
	}
	if f.Retrigger.Max < 0 || f.Retrigger.Spins < 0 || f.Retrigger.ExtraPerScatter < 0 || f.Retrigger.Threshold < 0 {
		return invalid("negative retrigger settings")
	}
	return nil
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, msg)
}

func (c *GameConfig) SpeciesByName(name string) (Species, bool) {
	for i, sp := range c.Species {
		if sp.Name == name {
			return Species(i), true
		}
	}
	return 0, false
}

func (c *GameConfig) SpeciesName(sp Species) string {
	if int(sp) < len(c.Species) {
		return c.Species[sp].Name
	}
	return "species" + strconv.Itoa(int(sp))
}

// BasePay - выплата за один символ данного вида и уровня
func (c *GameConfig) BasePay(sp Species, tier Tier) float64 {
	if int(sp) >= len(c.Species) || tier < 1 || int(tier) > len(c.TierPay) {
		return 0
	}
	return c.Species[sp].BasePay * c.TierPay[tier-1]
}

// SymbolID - id символа для клиента с учетом таблицы эволюции
func (c *GameConfig) SymbolID(cell Cell) string {
	switch cell.Kind {
	case KindStandard:
		name := c.SpeciesName(cell.Species)
		if byTier, ok := c.Evolution.TierMap[name]; ok {
			if id, ok := byTier[int(cell.Tier)]; ok {
				return id
			}
		}
		return "tier" + strconv.Itoa(int(cell.Tier)) + "_" + name
	case KindScatter:
		if cell.Variant > 0 {
			return "scatter_" + strconv.Itoa(int(cell.Variant))
		}
		return "scatter"
	}
	return cell.Kind.String()
}

// WeightsFor - таблица весов для базовой игры или фриспинов
func (c *GameConfig) WeightsFor(bonus bool) map[string]float64 {
	if bonus && len(c.BonusSymbols) > 0 {
		return c.BonusSymbols
	}
	return c.Symbols
}

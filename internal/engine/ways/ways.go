// Package ways - выплаты по способам: произведение числа символов
// в подряд идущих колонках от края поля.
package ways

import (
	"math"

	"genesis_reels/internal/engine/multiplier"
	"genesis_reels/internal/model"
)

type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

// Win - выигрыш одного символа в одном направлении
type Win struct {
	Species    model.Species
	Tier       model.Tier
	Direction  Direction
	Run        int // длина серии колонок
	Ways       int
	Positions  []model.Position
	Multiplier int
	Bonus      float64 // множитель мега-бонусов
	Amount     int64
}

type group struct {
	sp   model.Species
	tier model.Tier
}

// Evaluate считает все выигрыши по способам на поле
func Evaluate(g model.Grid, cfg *model.GameConfig, m *multiplier.Map, bet int64) []Win {
	wc := cfg.Ways
	bonus := MegaBonus(g, cfg)

	var out []Win
	if wc.PayLeftToRight {
		out = append(out, evaluateDir(g, cfg, m, bet, LeftToRight, bonus)...)
	}
	if wc.PayRightToLeft {
		out = append(out, evaluateDir(g, cfg, m, bet, RightToLeft, bonus)...)
	}
	return out
}

func evaluateDir(g model.Grid, cfg *model.GameConfig, m *multiplier.Map, bet int64, dir Direction, bonus float64) []Win {
	col := func(step int) int {
		if dir == RightToLeft {
			return g.Cols - 1 - step
		}
		return step
	}

	// кандидаты - стандартные символы краевой колонки в порядке строк
	var candidates []group
	seen := make(map[group]bool)
	for r := 0; r < g.Rows; r++ {
		cell := g.At(r, col(0))
		if !cell.IsStandard() {
			continue
		}
		key := group{cell.Species, cell.Tier}
		if !seen[key] {
			seen[key] = true
			candidates = append(candidates, key)
		}
	}

	limit := cfg.Ways.MaxWays
	if limit <= 0 {
		limit = math.MaxInt32
	}

	var out []Win
	for _, cand := range candidates {
		ways := 1
		run := 0
		var positions []model.Position
		for step := 0; step < g.Cols; step++ {
			c := col(step)
			count := 0
			for r := 0; r < g.Rows; r++ {
				cell := g.At(r, c)
				// на краевой колонке вайлд не ведет серию
				own := cell.IsStandard() && cell.Species == cand.sp && cell.Tier == cand.tier
				if own || (step > 0 && cell.Kind == model.KindWild) {
					count++
					positions = append(positions, model.Position{Row: r, Col: c})
				}
			}
			if count == 0 {
				break
			}
			run++
			if ways > limit/count {
				ways = limit
			} else {
				ways *= count
			}
		}
		if run < cfg.Ways.MinSymbols {
			continue
		}
		pay := Pay(cfg, cand.sp, cand.tier, run)
		if pay <= 0 {
			continue
		}
		mult := m.ProductUnder(positions)
		amount := model.FloorCredits(pay * float64(bet) * float64(mult) * float64(ways) * bonus)
		out = append(out, Win{
			Species:    cand.sp,
			Tier:       cand.tier,
			Direction:  dir,
			Run:        run,
			Ways:       ways,
			Positions:  positions,
			Multiplier: mult,
			Bonus:      bonus,
			Amount:     amount,
		})
	}
	return out
}

// Pay - выплата по виду и длине серии с учетом уровня
func Pay(cfg *model.GameConfig, sp model.Species, tier model.Tier, run int) float64 {
	pays := cfg.Ways.Pays[cfg.SpeciesName(sp)]
	if len(pays) == 0 || run < 1 {
		return 0
	}
	idx := min(run, len(pays)) - 1
	factor := 1.0
	if tier >= 1 && int(tier) <= len(cfg.TierPay) {
		factor = cfg.TierPay[tier-1]
	}
	return pays[idx] * factor
}

// MegaBonus - общий множитель поля: полная цепочка эволюции вида
// и поле из одного вида
func MegaBonus(g model.Grid, cfg *model.GameConfig) float64 {
	bonus := 1.0
	if cfg.Ways.EvolutionChainBonus > 0 && ChainComplete(g, cfg.MaxTier) {
		bonus *= cfg.Ways.EvolutionChainBonus
	}
	if cfg.Ways.FullBoardBonus > 0 && FullBoard(g) {
		bonus *= cfg.Ways.FullBoardBonus
	}
	return bonus
}

// ChainComplete - есть вид, представленный на поле всеми уровнями 1..maxTier
func ChainComplete(g model.Grid, maxTier model.Tier) bool {
	if maxTier < 2 {
		return false
	}
	tiers := make(map[model.Species]uint32)
	for _, c := range g.Cells {
		if c.IsStandard() && c.Tier >= 1 && c.Tier <= maxTier {
			tiers[c.Species] |= 1 << (c.Tier - 1)
		}
	}
	full := uint32(1)<<maxTier - 1
	for _, mask := range tiers {
		if mask == full {
			return true
		}
	}
	return false
}

// FullBoard - все ячейки заняты одним видом или вайлдами
func FullBoard(g model.Grid) bool {
	found := false
	var sp model.Species
	for _, c := range g.Cells {
		switch c.Kind {
		case model.KindWild:
		case model.KindStandard:
			if !found {
				found, sp = true, c.Species
			} else if c.Species != sp {
				return false
			}
		default:
			return false
		}
	}
	return found
}

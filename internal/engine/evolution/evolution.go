// Package evolution - повышение уровня видов после выигрышей и морфинг.
package evolution

import (
	"math"
	"sort"

	"genesis_reels/internal/engine/cluster"
	"genesis_reels/internal/engine/multiplier"
	"genesis_reels/internal/engine/rng"
	"genesis_reels/internal/model"
)

// Trigger - вид и уровень выигрышного кластера. Cells - его ячейки,
// рядом с ними ищется яйцо для мега-эволюции
type Trigger struct {
	Species model.Species
	Tier    model.Tier
	Cells   []model.Position
}

type Params struct {
	Level      int  // прогрессивный уровень сессии, 1 вне фриспинов
	Guaranteed bool // эволюция гарантирована сессией
}

// CanEvolve - вид и уровень в принципе могут эволюционировать
func CanEvolve(cfg *model.GameConfig, sp model.Species, tier model.Tier) bool {
	if int(sp) >= len(cfg.Species) {
		return false
	}
	return tier >= cfg.Species[sp].RequiredTier && tier < cfg.MaxTier
}

// FindEgg - первое яйцо, соседнее по 4 направлениям с любой из ячеек. Поле не меняется
func FindEgg(g model.Grid, cells []model.Position) (model.Position, bool) {
	for _, p := range cells {
		for _, n := range cluster.Neighbors4(g, p) {
			if g.AtPos(n).Kind == model.KindEgg {
				return n, true
			}
		}
	}
	return model.Position{}, false
}

// Evolve проходит по выигрышным видам на поле после удаления кластеров.
// Совпадающие триггеры объединяются. Яйцо рядом с кластером делает эволюцию
// мега и съедается только если эволюция произошла
func Evolve(g model.Grid, m *multiplier.Map, cfg *model.GameConfig, triggers []Trigger, p Params, r *rng.RNG) []model.Event {
	var events []model.Event
	for _, t := range merge(triggers) {
		if !CanEvolve(cfg, t.Species, t.Tier) {
			continue
		}
		group := positionsOf(g, t.Species, t.Tier)
		if len(group) < cfg.Species[t.Species].MinCluster || len(group) == 0 {
			continue
		}

		egg, mega := FindEgg(g, t.Cells)
		chance := cfg.Evolution.BaseChance + cfg.Evolution.LevelBonus*float64(max(p.Level-1, 0))
		if mega || p.Guaranteed {
			chance = 1
		}
		roll := r.Float64()
		if roll >= chance {
			continue
		}

		count := len(group)
		boost := cfg.Evolution.MultiplierBoost
		if mega {
			boost *= 2
		} else {
			count = int(math.Floor(cfg.Evolution.PromoteRatio * float64(len(group))))
			if count < 1 {
				count = 1
			}
			r.Shuffle(len(group), func(i, j int) { group[i], group[j] = group[j], group[i] })
		}
		promoted := group[:count]
		sort.Slice(promoted, func(i, j int) bool {
			if promoted[i].Row != promoted[j].Row {
				return promoted[i].Row < promoted[j].Row
			}
			return promoted[i].Col < promoted[j].Col
		})

		from := model.Standard(t.Species, t.Tier)
		to := model.Standard(t.Species, t.Tier+1)
		for _, pos := range promoted {
			g.Set(pos.Row, pos.Col, to)
			if boost > 0 {
				m.Add(pos, boost)
			}
		}
		ev := model.EvolutionEvent{
			Positions:   promoted,
			FromSpecies: t.Species,
			ToSpecies:   t.Species,
			FromSymbol:  cfg.SymbolID(from),
			ToSymbol:    cfg.SymbolID(to),
			TierAfter:   to.Tier,
			Mega:        mega,
		}
		if mega {
			g.Set(egg.Row, egg.Col, model.Cell{})
			ev.Egg = &egg
		}
		events = append(events, model.Evolution(ev))
	}
	return events
}

// Boost - эволюция по итогу спина сессии: триггерами служат все группы поля
func Boost(g model.Grid, m *multiplier.Map, cfg *model.GameConfig, p Params, r *rng.RNG) []model.Event {
	return Evolve(g, m, cfg, Groups(g), p, r)
}

// Groups - все пары вид/уровень на поле в порядке первого появления
func Groups(g model.Grid) []Trigger {
	var out []Trigger
	seen := make(map[[2]uint8]bool)
	for _, c := range g.Cells {
		if !c.IsStandard() {
			continue
		}
		key := [2]uint8{uint8(c.Species), uint8(c.Tier)}
		if !seen[key] {
			seen[key] = true
			out = append(out, Trigger{Species: c.Species, Tier: c.Tier})
		}
	}
	return out
}

func merge(triggers []Trigger) []Trigger {
	out := make([]Trigger, 0, len(triggers))
	idx := make(map[[2]uint8]int)
	for _, t := range triggers {
		key := [2]uint8{uint8(t.Species), uint8(t.Tier)}
		if i, ok := idx[key]; ok {
			out[i].Cells = append(out[i].Cells, t.Cells...)
			continue
		}
		idx[key] = len(out)
		t.Cells = append([]model.Position(nil), t.Cells...)
		out = append(out, t)
	}
	return out
}

func positionsOf(g model.Grid, sp model.Species, tier model.Tier) []model.Position {
	var out []model.Position
	for i, c := range g.Cells {
		if c.IsStandard() && c.Species == sp && c.Tier == tier {
			out = append(out, model.Position{Row: i / g.Cols, Col: i % g.Cols})
		}
	}
	return out
}

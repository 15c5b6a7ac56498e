package evolution

import (
	"genesis_reels/internal/engine/cluster"
	"genesis_reels/internal/engine/rng"
	"genesis_reels/internal/model"
)

// Morph - вероятностная смена вида стандартных символов. Соседи читаются
// со снимка поля до прохода, уровень символа не меняется.
// Каждая стандартная ячейка делает ровно один бросок
func Morph(g model.Grid, cfg *model.GameConfig, level int, r *rng.RNG) []model.Event {
	mc := cfg.Morph
	bonus := mc.LevelBonus * float64(max(level-1, 0))
	if mc.Chance+bonus <= 0 && mc.AdjacentChance+bonus <= 0 && mc.WildChance+bonus <= 0 {
		return nil
	}

	pool := make([]model.Species, 0, len(mc.WildPool))
	for _, name := range mc.WildPool {
		if sp, ok := cfg.SpeciesByName(name); ok {
			pool = append(pool, sp)
		}
	}

	snap := g.Clone()
	var events []model.Event
	for i, cell := range snap.Cells {
		if !cell.IsStandard() {
			continue
		}
		p := model.Position{Row: i / snap.Cols, Col: i % snap.Cols}

		var others []model.Species
		wild := false
		for _, n := range cluster.Neighbors8(snap, p) {
			nc := snap.AtPos(n)
			switch {
			case nc.Kind == model.KindWild:
				wild = true
			case nc.IsStandard() && nc.Species != cell.Species:
				others = append(others, nc.Species)
			}
		}

		roll := r.Float64()
		to, ok := cell.Species, false
		switch {
		case len(others) > 0 && roll < mc.AdjacentChance+bonus:
			to, ok = others[r.IntN(len(others))], true
		case wild && len(pool) > 0 && roll < mc.WildChance+bonus:
			to, ok = pool[r.IntN(len(pool))], true
		case len(cfg.Species) > 1 && roll < mc.Chance+bonus:
			k := r.IntN(len(cfg.Species) - 1)
			if k >= int(cell.Species) {
				k++
			}
			to, ok = model.Species(k), true
		}
		if !ok || to == cell.Species {
			continue
		}

		g.Set(p.Row, p.Col, model.Standard(to, cell.Tier))
		events = append(events, model.Morph(model.MorphEvent{
			Positions:   []model.Position{p},
			FromSpecies: cell.Species,
			ToSpecies:   to,
			Tier:        cell.Tier,
		}))
	}
	return events
}

package tumble

import (
	"sort"

	"genesis_reels/internal/engine/multiplier"
	"genesis_reels/internal/engine/rng"
	"genesis_reels/internal/model"
)

// preEffects - эффекты бонусных режимов до поиска кластеров.
// Порядок бросков фиксирован: засев множителя, вайлды охоты, мастербол
func (s *spin) preEffects(i int, r *rng.RNG) {
	switch s.mode {
	case model.ModeEpic:
		s.mults.AddSeeded(1)
	case model.ModeFrenzy:
		s.seedRandomCell(r)
	}
	if s.bonus && s.mode != model.ModeFrenzy && r.Chance(s.cfg.Bonus.ChanceAddMultiplier) {
		s.seedRandomCell(r)
	}

	if s.mode == model.ModeHunt && s.cfg.Bonus.Hunt.WildPerCascade > 0 {
		if injected := s.injectWilds(s.cfg.Bonus.Hunt.WildPerCascade, r); len(injected) > 0 {
			s.emit(model.WildInject(i, injected))
		}
	}

	if s.bonus && r.Chance(s.cfg.Bonus.ChanceMasterBall) {
		factors := s.cfg.Bonus.MasterBallFactors
		f := factors[r.IntN(len(factors))]
		s.mults.Scale(f)
		s.emit(model.MasterBall(i, f))
	}
}

// seedRandomCell засевает одну случайную пустую ячейку карты
func (s *spin) seedRandomCell(r *rng.RNG) {
	free := s.mults.Unseeded()
	if len(free) == 0 {
		return
	}
	p := free[r.IntN(len(free))]
	s.mults.Set(p, multiplier.SeedValue(s.policy, s.mults.Cap()))
}

// injectWilds превращает n случайных стандартных символов в вайлды
func (s *spin) injectWilds(n int, r *rng.RNG) []model.Position {
	var candidates []model.Position
	for idx, c := range s.grid.Cells {
		if c.IsStandard() {
			candidates = append(candidates, model.Position{Row: idx / s.grid.Cols, Col: idx % s.grid.Cols})
		}
	}
	if n > len(candidates) {
		n = len(candidates)
	}
	r.Shuffle(len(candidates), func(a, b int) { candidates[a], candidates[b] = candidates[b], candidates[a] })
	picked := candidates[:n]
	sort.Slice(picked, func(a, b int) bool {
		if picked[a].Row != picked[b].Row {
			return picked[a].Row < picked[b].Row
		}
		return picked[a].Col < picked[b].Col
	})
	for _, p := range picked {
		s.grid.Set(p.Row, p.Col, model.Wild())
	}
	return picked
}

// collapse сдвигает символы вниз с сохранением порядка, верх остается пустым.
// Возвращает освободившиеся позиции по колонкам сверху вниз
func collapse(g model.Grid) []model.Position {
	var fresh []model.Position
	stack := make([]model.Cell, 0, g.Rows)
	for c := 0; c < g.Cols; c++ {
		stack = stack[:0]
		for r := 0; r < g.Rows; r++ {
			if cell := g.At(r, c); !cell.IsEmpty() {
				stack = append(stack, cell)
			}
		}
		empty := g.Rows - len(stack)
		for r := 0; r < g.Rows; r++ {
			if r < empty {
				g.Set(r, c, model.Cell{})
				fresh = append(fresh, model.Position{Row: r, Col: c})
			} else {
				g.Set(r, c, stack[r-empty])
			}
		}
	}
	return fresh
}

// refill досыпает символы в освободившиеся ячейки и добавляет бонус глубины каскада
func (s *spin) refill(i int, fresh []model.Position, r *rng.RNG) {
	rb := s.cfg.RefillBoost
	level := i + 1
	for _, p := range fresh {
		cell := s.table.Draw(r)
		s.grid.Set(p.Row, p.Col, cell)

		add := rb.PerLevel * level
		if rb.ChainThreshold > 0 && level >= rb.ChainThreshold {
			add += rb.ChainBonus
		}
		if cell.IsStandard() && cell.Tier > 1 {
			add += rb.TierBonus * int(cell.Tier-1)
		}
		if add > 0 {
			s.mults.Add(p, add)
		}
	}
}

package multiplier

import "genesis_reels/internal/model"

// Policy - правило роста множителя выигрышной ячейки
type Policy interface {
	Next(current, limit int) int
}

// Doubling: пустая ячейка получает Seed, далее удвоение до cap
type Doubling struct {
	Seed int
}

func (d Doubling) Next(current, limit int) int {
	if current <= 0 {
		return min(d.Seed, limit)
	}
	if current > limit/2 {
		return limit
	}
	return current * 2
}

// Increment: пустая ячейка считается как 1, далее +Step
type Increment struct {
	Step int
}

func (in Increment) Next(current, limit int) int {
	return min(max(current, 1)+in.Step, limit)
}

// PolicyFor выбирает правило по конфигурации
func PolicyFor(cfg model.MultiplierConfig) Policy {
	if cfg.Growth == model.GrowthIncrement {
		step := cfg.Step
		if step < 1 {
			step = 1
		}
		return Increment{Step: step}
	}
	seed := cfg.Seed
	if seed < 1 {
		seed = 2
	}
	return Doubling{Seed: seed}
}

// SeedValue - значение, которым засеивается пустая ячейка
func SeedValue(p Policy, limit int) int {
	return p.Next(0, limit)
}

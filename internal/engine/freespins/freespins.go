package freespins

import (
	"fmt"
	"sort"

	"genesis_reels/internal/engine/evolution"
	"genesis_reels/internal/engine/generator"
	"genesis_reels/internal/engine/multiplier"
	"genesis_reels/internal/engine/rng"
	"genesis_reels/internal/engine/tumble"
	"genesis_reels/internal/model"
)

// AwardedSpins - спины за количество скаттеров: наибольший подходящий порог
// из таблицы плюс бонус за каждый скаттер начиная с BonusSpins.From
func AwardedSpins(cfg *model.GameConfig, scatters int) int {
	table := make([]model.ScatterAward, len(cfg.FreeSpins.ScatterTable))
	copy(table, cfg.FreeSpins.ScatterTable)
	sort.Slice(table, func(i, j int) bool { return table[i].Scatters > table[j].Scatters })

	spins := 0
	for _, row := range table {
		if scatters >= row.Scatters {
			spins = row.Spins
			break
		}
	}
	bs := cfg.FreeSpins.BonusSpins
	if spins > 0 && bs.From > 0 && bs.PerScatter > 0 && scatters >= bs.From {
		spins += bs.PerScatter * (scatters - bs.From + 1)
	}
	return spins
}

// Enter открывает сессию со ставкой по умолчанию
func Enter(cfg *model.GameConfig, scatters int, seed int64) (State, error) {
	return EnterWithBet(cfg, scatters, seed, DefaultBet)
}

// EnterWithBet открывает сессию. При нуле спинов сессия сразу завершена
func EnterWithBet(cfg *model.GameConfig, scatters int, seed int64, bet int64) (State, error) {
	if err := cfg.Validate(); err != nil {
		return State{}, err
	}
	if scatters < 0 {
		return State{}, fmt.Errorf("%w: %d", model.ErrInvalidScatterCount, scatters)
	}
	if err := model.ValidateSeed(seed); err != nil {
		return State{}, err
	}
	if bet <= 0 || bet > cfg.MaxBet() {
		return State{}, fmt.Errorf("%w: %d", model.ErrInvalidBet, bet)
	}

	spins := AwardedSpins(cfg, scatters)
	var features Feature
	fs := cfg.FreeSpins
	if fs.GuaranteedEvolutionAt > 0 && scatters >= fs.GuaranteedEvolutionAt {
		features |= FeatureGuaranteedEvolution
	}
	if fs.HuntAt > 0 && scatters >= fs.HuntAt {
		features |= FeatureHunt
	}

	return State{
		Seed:             uint32(seed),
		Bet:              bet,
		SpinsTotal:       spins,
		SpinsLeft:        spins,
		Multipliers:      multiplier.New(cfg.Grid.Rows, cfg.Grid.Cols, cfg.Multiplier.Cap),
		Ended:            spins == 0,
		ProgressiveLevel: 1,
		Features:         features,
	}, nil
}

// Step выполняет один бесплатный спин. Завершенная сессия возвращается как есть
func Step(state State, cfg *model.GameConfig) (State, error) {
	return StepWithCache(state, cfg, nil)
}

// StepWithCache - Step с общим кешем таблиц весов
func StepWithCache(state State, cfg *model.GameConfig, cache *generator.Cache) (State, error) {
	if state.Ended {
		return state, nil
	}
	if state.Multipliers == nil {
		return state, &model.StepProcessingError{Step: state.StepIndex, Err: fmt.Errorf("session has no multiplier map")}
	}

	level := max(state.ProgressiveLevel, 1)
	spinLevel := level
	if state.Features.Has(FeatureMorphBoost) {
		spinLevel++
	}
	guaranteed := state.Features.Has(FeatureGuaranteedEvolution)

	seed := int64(rng.Stream(state.Seed, rng.StreamFreeSpins, state.StepIndex))
	res, err := tumble.Spin(cfg, state.Bet, tumble.Options{
		Seed:                &seed,
		InitMultipliers:     state.Multipliers,
		InBonusMode:         true,
		Mode:                state.Mode(cfg),
		Level:               spinLevel,
		GuaranteedEvolution: guaranteed,
		Cache:               cache,
	})
	if err != nil {
		return state, &model.StepProcessingError{Step: state.StepIndex, Err: err}
	}

	// shown - спин в том виде, в каком его видит клиент: поле и карта
	// после событий шага. Сам res не меняется
	shown := *res
	next := state
	next.Multipliers = res.Multipliers.Clone()
	next.TotalWin = state.TotalWin + res.TotalWin
	next.StepIndex = state.StepIndex + 1
	next.ProgressiveLevel = max(level, LevelFor(cfg, next.WinX()))
	next.StepEvents = nil
	next.LastRetrigger = 0

	r := rng.New(rng.Stream(state.Seed, rng.StreamSession, state.StepIndex))

	if guaranteed || next.ProgressiveLevel >= 3 {
		shown.Grid = res.Grid.Clone()
		next.StepEvents = evolution.Boost(shown.Grid, next.Multipliers, cfg,
			evolution.Params{Level: next.ProgressiveLevel, Guaranteed: guaranteed}, r)
	}

	rt := cfg.FreeSpins.Retrigger
	added := 0
	if rt.Threshold > 0 && res.Hints.Scatters >= rt.Threshold && state.RetriggerCount < rt.Max {
		added = rt.Spins + rt.ExtraPerScatter*(res.Hints.Scatters-rt.Threshold)
		next.RetriggerCount = state.RetriggerCount + 1
		if lg := cfg.FreeSpins.Legendary; lg.Factor > 1 && r.Chance(lg.Chance) {
			next.Multipliers.Scale(lg.Factor)
			next.Features |= FeatureLegendary
			next.StepEvents = append(next.StepEvents, model.MasterBall(res.Hints.Cascades, lg.Factor))
		}
	}
	next.Features |= featuresForLevel(next.ProgressiveLevel)

	shown.Multipliers = next.Multipliers.Clone()
	shown.Hints.MaxMultiplier = shown.Multipliers.Max()
	next.LastSpin = &shown

	next.LastRetrigger = added
	next.SpinsTotal = state.SpinsTotal + added
	next.SpinsLeft = state.SpinsLeft - 1 + added
	next.Ended = next.SpinsLeft <= 0
	return next, nil
}

// Play проигрывает сессию до конца, ограничиваясь limit шагами
func Play(state State, cfg *model.GameConfig, cache *generator.Cache, limit int) (State, error) {
	var err error
	for i := 0; i < limit && !state.Ended; i++ {
		state, err = StepWithCache(state, cfg, cache)
		if err != nil {
			return state, err
		}
	}
	return state, nil
}

// Package tumble - спин с каскадами: поиск кластеров, выплата, рост
// множителей, эволюция, осыпание и досыпка.
package tumble

import (
	"fmt"
	"math/rand/v2"

	"genesis_reels/internal/engine/cluster"
	"genesis_reels/internal/engine/evolution"
	"genesis_reels/internal/engine/generator"
	"genesis_reels/internal/engine/multiplier"
	"genesis_reels/internal/engine/rng"
	"genesis_reels/internal/engine/ways"
	"genesis_reels/internal/model"
)

// Options - параметры одного спина
type Options struct {
	Seed                *int64          // nil - случайный сид, он попадет в Result
	MaxCascades         int             // 0 - из конфигурации
	InitMultipliers     *multiplier.Map // копируется, исходная карта не меняется
	InBonusMode         bool
	Mode                string // режим каскадов: epic, frenzy, hunt
	Level               int    // прогрессивный уровень сессии
	GuaranteedEvolution bool
	Cache               *generator.Cache
}

// Spin - основной метод движка. Все проверки выполняются до симуляции,
// после старта спин завершается без ошибок
func Spin(cfg *model.GameConfig, bet int64, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if bet <= 0 || bet > cfg.MaxBet() {
		return nil, fmt.Errorf("%w: %d", model.ErrInvalidBet, bet)
	}

	var seed uint32
	if opts.Seed != nil {
		if err := model.ValidateSeed(*opts.Seed); err != nil {
			return nil, err
		}
		seed = uint32(*opts.Seed)
	} else {
		seed = rand.Uint32()
	}

	maxCascades := opts.MaxCascades
	if maxCascades == 0 {
		maxCascades = cfg.MaxCascades
	}
	if maxCascades < 1 || maxCascades > model.MaxCascadesLimit {
		return nil, fmt.Errorf("%w: max cascades %d", model.ErrInvalidConfiguration, maxCascades)
	}

	switch opts.Mode {
	case model.ModeNone, model.ModeEpic, model.ModeFrenzy, model.ModeHunt:
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", model.ErrInvalidConfiguration, opts.Mode)
	}

	rows, cols := cfg.Grid.Rows, cfg.Grid.Cols
	var mults *multiplier.Map
	if opts.InitMultipliers != nil {
		if !opts.InitMultipliers.Fits(rows, cols) {
			return nil, fmt.Errorf("%w: multiplier map %dx%d for grid %dx%d", model.ErrInvalidGridDimensions,
				opts.InitMultipliers.Rows(), opts.InitMultipliers.Cols(), rows, cols)
		}
		mults = opts.InitMultipliers.Clone()
	} else {
		mults = multiplier.New(rows, cols, cfg.Multiplier.Cap)
	}

	weights := cfg.WeightsFor(opts.InBonusMode)
	var (
		table *generator.Table
		err   error
	)
	if opts.Cache != nil {
		table, err = opts.Cache.Table(weights, cfg.Species, cfg.MaxTier)
	} else {
		table, err = generator.NewTable(weights, cfg.Species, cfg.MaxTier)
	}
	if err != nil {
		return nil, err
	}

	s := &spin{
		cfg:         cfg,
		bet:         bet,
		root:        seed,
		maxCascades: maxCascades,
		mode:        opts.Mode,
		bonus:       opts.InBonusMode,
		evo:         evolution.Params{Level: max(opts.Level, 1), Guaranteed: opts.GuaranteedEvolution},
		table:       table,
		mults:       mults,
		policy:      multiplier.PolicyFor(cfg.Multiplier),
		maxWin:      int64(cfg.MaxWinX) * bet,
	}
	return s.run(), nil
}

// spin - состояние одного спина, живет только внутри Spin
type spin struct {
	cfg         *model.GameConfig
	bet         int64
	root        uint32
	maxCascades int
	mode        string
	bonus       bool
	evo         evolution.Params

	table  *generator.Table
	grid   model.Grid
	mults  *multiplier.Map
	policy multiplier.Policy

	events   []model.Event
	total    int64
	maxWin   int64
	capped   bool
	cascades int
	rush     int
}

func (s *spin) run() *Result {
	s.grid = s.table.Fill(s.cfg.Grid.Rows, s.cfg.Grid.Cols, rng.New(rng.Stream(s.root, rng.StreamGrid, 0)))
	initial := s.grid.Clone()

	s.emit(model.SpinStart(s.root))

	if s.cfg.Ways.Enabled {
		s.scoreWays()
	}

	for i := 0; i < s.maxCascades && !s.capped; i++ {
		if !s.cascade(i) {
			break
		}
	}

	scatters := s.grid.Count(model.KindScatter)
	if scatters > 0 {
		s.emit(model.Scatters(scatters))
	}
	s.emit(model.SpinEnd(s.total))

	hints := UIHints{
		Cascades:      s.cascades,
		Scatters:      scatters,
		WinCap:        s.capped,
		MaxMultiplier: s.mults.Max(),
	}
	if s.mode == model.ModeHunt {
		target := s.cfg.Bonus.Hunt.RushTarget
		hints.Rush = &RushHint{Progress: s.rush, Target: target, Reached: target > 0 && s.rush >= target}
	}

	return &Result{
		Seed:        s.root,
		Bet:         s.bet,
		InitialGrid: initial,
		Grid:        s.grid,
		Multipliers: s.mults,
		TotalWin:    s.total,
		Events:      s.events,
		Hints:       hints,
	}
}

// cascade - одна итерация. Возвращает false, если кластеров не было
func (s *spin) cascade(i int) bool {
	s.cascades++
	s.emit(model.CascadeStart(i))

	s.preEffects(i, rng.New(rng.Stream(s.root, rng.StreamBonus, i)))

	clusters := cluster.Find(s.grid, s.cfg.MinClusterSize)
	if len(clusters) == 0 {
		s.emit(model.CascadeEnd(i, 0))
		return false
	}

	removed := make([]bool, len(s.grid.Cells))
	var triggers []evolution.Trigger
	for _, cl := range clusters {
		base := s.cfg.BasePay(cl.Species, cl.Tier) * float64(cl.Size())
		factor := s.mults.ProductUnder(cl.Positions)
		win := model.FloorCredits(base * float64(s.bet) * float64(factor))
		capped := s.award(&win)

		s.emit(model.Win(model.WinEvent{
			Cells:      cl.Positions,
			Species:    cl.Species,
			Tier:       cl.Tier,
			Symbol:     s.cfg.SymbolID(model.Standard(cl.Species, cl.Tier)),
			Size:       cl.Size(),
			Multiplier: factor,
			WinAmount:  win,
			Category:   model.WinCluster,
			Capped:     capped,
		}))

		multiplier.Bump(s.mults, cl.Positions, s.policy)

		triggers = append(triggers, evolution.Trigger{Species: cl.Species, Tier: cl.Tier, Cells: cl.Positions})

		for _, p := range cl.Positions {
			removed[p.Row*s.grid.Cols+p.Col] = true
		}
	}

	count := 0
	for idx, gone := range removed {
		if gone {
			s.grid.Cells[idx] = model.Cell{}
			count++
		}
	}

	evolved := evolution.Evolve(s.grid, s.mults, s.cfg, triggers, s.evo,
		rng.New(rng.Stream(s.root, rng.StreamEvolution, i)))
	for _, e := range evolved {
		// съеденное яйцо уходит с поля вместе с кластером
		if e.Evolution.Egg != nil {
			count++
		}
	}
	s.events = append(s.events, evolved...)

	fresh := collapse(s.grid)
	s.refill(i, fresh, rng.New(rng.Stream(s.root, rng.StreamRefill, i)))

	s.events = append(s.events, evolution.Morph(s.grid, s.cfg, s.evo.Level,
		rng.New(rng.Stream(s.root, rng.StreamMorph, i)))...)

	if s.mode == model.ModeHunt {
		s.rush += count
	}
	s.emit(model.CascadeEnd(i, count))
	return true
}

// scoreWays - выплаты по способам на начальном поле
func (s *spin) scoreWays() {
	for _, w := range ways.Evaluate(s.grid, s.cfg, s.mults, s.bet) {
		amount := w.Amount
		capped := s.award(&amount)
		s.emit(model.Win(model.WinEvent{
			Cells:      w.Positions,
			Species:    w.Species,
			Tier:       w.Tier,
			Symbol:     s.cfg.SymbolID(model.Standard(w.Species, w.Tier)),
			Size:       len(w.Positions),
			Multiplier: w.Multiplier,
			WinAmount:  amount,
			Ways:       w.Ways,
			Category:   model.WinWays,
			Capped:     capped,
		}))
		if s.capped {
			return
		}
	}
}

// award начисляет выигрыш с учетом потолка. true - выигрыш урезан
func (s *spin) award(win *int64) bool {
	if *win > s.maxWin-s.total {
		*win = s.maxWin - s.total
		s.total = s.maxWin
		s.capped = true
		return true
	}
	s.total += *win
	return false
}

func (s *spin) emit(e model.Event) {
	s.events = append(s.events, e)
}

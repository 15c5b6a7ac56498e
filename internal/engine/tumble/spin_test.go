package tumble

import (
	"errors"
	"reflect"
	"testing"

	"genesis_reels/internal/engine/generator"
	"genesis_reels/internal/engine/multiplier"
	"genesis_reels/internal/model"
)

func seed(v int64) *int64 { return &v }

// singleSpecies - поле всегда целиком из amber 1-го уровня
func singleSpecies() *model.GameConfig {
	cfg := model.DefaultGameConfig()
	cfg.Symbols = map[string]float64{"tier1_amber": 1}
	cfg.Morph = model.MorphConfig{}
	cfg.RefillBoost = model.RefillBoostConfig{}
	cfg.Evolution.BaseChance = 0
	cfg.MaxWinX = 1_000_000
	return &cfg
}

func checkInvariants(t *testing.T, cfg *model.GameConfig, res *Result, maxCascades int) {
	t.Helper()
	ev := res.Events
	if len(ev) < 2 || ev[0].Type != model.EventSpinStart || ev[len(ev)-1].Type != model.EventSpinEnd {
		t.Fatalf("seed %d: events must start with spin_start and end with spin_end", res.Seed)
	}
	if res.Count(model.EventSpinStart) != 1 || res.Count(model.EventSpinEnd) != 1 {
		t.Fatalf("seed %d: duplicated spin brackets", res.Seed)
	}
	if sum := model.SumWins(ev); sum != res.TotalWin || ev[len(ev)-1].SpinEnd.TotalWin != res.TotalWin {
		t.Fatalf("seed %d: wins sum %d, total %d", res.Seed, sum, res.TotalWin)
	}
	if res.TotalWin > int64(cfg.MaxWinX)*res.Bet {
		t.Fatalf("seed %d: total %d above the win cap", res.Seed, res.TotalWin)
	}

	open, last := -1, -1
	for _, e := range ev {
		switch e.Type {
		case model.EventCascadeStart:
			if open != -1 || e.Cascade.Index <= last {
				t.Fatalf("seed %d: bad cascade_start %d", res.Seed, e.Cascade.Index)
			}
			open = e.Cascade.Index
		case model.EventCascadeEnd:
			if open != e.Cascade.Index {
				t.Fatalf("seed %d: cascade_end %d without start", res.Seed, e.Cascade.Index)
			}
			last, open = open, -1
		case model.EventWin:
			if e.Win.Category == model.WinCluster && e.Win.Size < cfg.MinClusterSize {
				t.Fatalf("seed %d: cluster win of size %d", res.Seed, e.Win.Size)
			}
		}
	}
	if open != -1 {
		t.Fatalf("seed %d: unbalanced cascades", res.Seed)
	}
	if n := res.Count(model.EventCascadeStart); n > maxCascades || n != res.Hints.Cascades {
		t.Fatalf("seed %d: %d cascades, limit %d, hint %d", res.Seed, n, maxCascades, res.Hints.Cascades)
	}

	m := res.Multipliers
	for r := 0; r < m.Rows(); r++ {
		for c := 0; c < m.Cols(); c++ {
			if v := m.At(model.Position{Row: r, Col: c}); v < 0 || v > m.Cap() {
				t.Fatalf("seed %d: multiplier %d out of bounds", res.Seed, v)
			}
		}
	}
}

func TestSpinDeterministic(t *testing.T) {
	cfg := model.DefaultGameConfig()
	for _, s := range []int64{0, 1, 42, 4294967295} {
		a, err := Spin(&cfg, 100, Options{Seed: seed(s)})
		if err != nil {
			t.Fatalf("spin: %v", err)
		}
		b, err := Spin(&cfg, 100, Options{Seed: seed(s)})
		if err != nil {
			t.Fatalf("spin: %v", err)
		}
		if !reflect.DeepEqual(a.Events, b.Events) || !reflect.DeepEqual(a.Grid, b.Grid) ||
			!reflect.DeepEqual(a.Multipliers.Matrix(), b.Multipliers.Matrix()) || a.TotalWin != b.TotalWin {
			t.Fatalf("seed %d: spins differ", s)
		}
	}
}

func TestSpinInvariants(t *testing.T) {
	cfg := model.DefaultGameConfig()
	cfg.Ways.Enabled = true
	cache := generator.NewCache()
	modes := []struct {
		mode  string
		bonus bool
	}{
		{model.ModeNone, false},
		{model.ModeNone, true},
		{model.ModeEpic, true},
		{model.ModeFrenzy, true},
		{model.ModeHunt, true},
	}
	for _, md := range modes {
		for s := int64(0); s < 150; s++ {
			res, err := Spin(&cfg, 100, Options{Seed: seed(s), InBonusMode: md.bonus, Mode: md.mode, Level: 3, Cache: cache})
			if err != nil {
				t.Fatalf("mode %q seed %d: %v", md.mode, s, err)
			}
			checkInvariants(t, &cfg, res, cfg.MaxCascades)
			if md.mode == model.ModeHunt && res.Hints.Rush == nil {
				t.Fatal("hunt mode must expose rush progress")
			}
		}
	}
	if cache.Len() != 1 {
		t.Errorf("expected a single cached table, got %d", cache.Len())
	}
}

func TestCascadesBoundedAndMultipliersGrow(t *testing.T) {
	cfg := singleSpecies()
	res, err := Spin(cfg, 100, Options{Seed: seed(7), MaxCascades: 5})
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, cfg, res, 5)
	if res.Hints.Cascades != 5 {
		t.Fatalf("every cascade wins, expected 5, got %d", res.Hints.Cascades)
	}
	for _, row := range res.Multipliers.Matrix() {
		for _, v := range row {
			if v != 32 {
				t.Fatalf("after five doublings every cell must be 32, got %v", res.Multipliers.Matrix())
			}
		}
	}
	// первый каскад: 0.1 * 49 * 100 * 1
	var first *model.WinEvent
	for _, e := range res.Events {
		if e.Type == model.EventWin {
			first = e.Win
			break
		}
	}
	if first == nil || first.WinAmount != 490 || first.Size != 49 || first.Multiplier != 1 {
		t.Fatalf("unexpected first win %+v", first)
	}
}

func TestWinCap(t *testing.T) {
	cfg := singleSpecies()
	cfg.MaxWinX = 2
	res, err := Spin(cfg, 100, Options{Seed: seed(3)})
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, cfg, res, cfg.MaxCascades)
	if res.TotalWin != 200 || !res.Hints.WinCap || res.WinX() != 2 {
		t.Fatalf("win must be clamped to 2x bet, got %d (cap hint %v)", res.TotalWin, res.Hints.WinCap)
	}
	if res.Hints.Cascades != 1 {
		t.Errorf("cascades must stop once the cap is hit, got %d", res.Hints.Cascades)
	}
}

func TestLargestBetStaysWithinCap(t *testing.T) {
	cfg := singleSpecies()
	cfg.MaxWinX = 50000
	cfg.Ways.Enabled = true
	cfg.Ways.Pays = map[string][]float64{"amber": {0, 0, 1, 1, 1, 1, 100}}
	bet := cfg.MaxBet()

	res, err := Spin(cfg, bet, Options{Seed: seed(1)})
	if err != nil {
		t.Fatal(err)
	}
	checkInvariants(t, cfg, res, cfg.MaxCascades)
	for _, e := range res.Events {
		if e.Type == model.EventWin && e.Win.WinAmount < 0 {
			t.Fatalf("negative win %d", e.Win.WinAmount)
		}
	}
	if !res.Hints.WinCap || res.TotalWin != int64(cfg.MaxWinX)*bet {
		t.Fatalf("saturated ways win must clamp to the cap, got %d", res.TotalWin)
	}
}

func TestWaysWinsComeBeforeCascades(t *testing.T) {
	cfg := singleSpecies()
	cfg.Ways.Enabled = true
	res, err := Spin(cfg, 100, Options{Seed: seed(5), MaxCascades: 1})
	if err != nil {
		t.Fatal(err)
	}
	if res.Events[1].Type != model.EventWin || res.Events[1].Win.Category != model.WinWays {
		t.Fatalf("expected a ways win right after spin_start, got %s", res.Events[1].Type)
	}
	if res.Events[1].Win.Ways != 117649 {
		t.Errorf("7^7 ways must be capped at 117649, got %d", res.Events[1].Win.Ways)
	}
}

func TestInitialMapNotAliased(t *testing.T) {
	cfg := singleSpecies()
	init := multiplier.New(7, 7, 8192)
	init.Set(model.Position{Row: 0, Col: 0}, 4)
	res, err := Spin(cfg, 100, Options{Seed: seed(1), InitMultipliers: init, MaxCascades: 1})
	if err != nil {
		t.Fatal(err)
	}
	if init.At(model.Position{Row: 0, Col: 0}) != 4 || init.At(model.Position{Row: 1, Col: 1}) != 0 {
		t.Fatal("caller map was mutated")
	}
	if res.Multipliers == init {
		t.Fatal("result must own a fresh map")
	}
	if res.Multipliers.At(model.Position{Row: 0, Col: 0}) != 8 {
		t.Errorf("persisted cell must keep growing, got %d", res.Multipliers.At(model.Position{Row: 0, Col: 0}))
	}
}

func TestSpinValidation(t *testing.T) {
	good := model.DefaultGameConfig()
	badGrid := model.DefaultGameConfig()
	badGrid.Grid.Rows = 21
	noTable := model.DefaultGameConfig()
	noTable.FreeSpins.ScatterTable = nil

	cases := []struct {
		name string
		cfg  model.GameConfig
		bet  int64
		opts Options
		want error
	}{
		{"grid", badGrid, 100, Options{Seed: seed(1)}, model.ErrInvalidGridDimensions},
		{"negative seed", good, 100, Options{Seed: seed(-1)}, model.ErrInvalidSeed},
		{"seed too large", good, 100, Options{Seed: seed(1 << 32)}, model.ErrInvalidSeed},
		{"bet", good, 0, Options{Seed: seed(1)}, model.ErrInvalidBet},
		{"bet overflows win cap", good, 1 << 48, Options{Seed: seed(1)}, model.ErrInvalidBet},
		{"bet just above max", good, good.MaxBet() + 1, Options{Seed: seed(1)}, model.ErrInvalidBet},
		{"cascades", good, 100, Options{Seed: seed(1), MaxCascades: 51}, model.ErrInvalidConfiguration},
		{"mode", good, 100, Options{Seed: seed(1), Mode: "turbo"}, model.ErrInvalidConfiguration},
		{"map", good, 100, Options{Seed: seed(1), InitMultipliers: multiplier.New(3, 3, 10)}, model.ErrInvalidGridDimensions},
		{"scatter table", noTable, 100, Options{Seed: seed(1)}, model.ErrInvalidConfiguration},
	}
	for _, tc := range cases {
		res, err := Spin(&tc.cfg, tc.bet, tc.opts)
		if !errors.Is(err, tc.want) || res != nil {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

func TestRandomSeedIsRecorded(t *testing.T) {
	cfg := model.DefaultGameConfig()
	res, err := Spin(&cfg, 100, Options{})
	if err != nil {
		t.Fatal(err)
	}
	s := int64(res.Seed)
	replay, err := Spin(&cfg, 100, Options{Seed: &s})
	if err != nil {
		t.Fatal(err)
	}
	if replay.TotalWin != res.TotalWin || !reflect.DeepEqual(replay.Events, res.Events) {
		t.Fatal("replaying the recorded seed must reproduce the spin")
	}
}

func TestCollapse(t *testing.T) {
	a, v := model.Standard(0, 1), model.Standard(1, 1)
	e := model.Cell{}
	g := model.GridFromRows([][]model.Cell{
		{a, e, a},
		{e, v, e},
		{v, e, e},
	})
	fresh := collapse(g)
	want := model.GridFromRows([][]model.Cell{
		{e, e, e},
		{a, e, e},
		{v, v, a},
	})
	if !reflect.DeepEqual(g, want) {
		t.Fatalf("collapse:\n got %v\nwant %v", g.Cells, want.Cells)
	}
	if len(fresh) != 5 {
		t.Errorf("fresh = %d, want 5", len(fresh))
	}
}

func TestEggCountedOnlyWhenEaten(t *testing.T) {
	for _, minCluster := range []int{100, 5} {
		cfg := singleSpecies()
		cfg.Symbols = map[string]float64{"tier1_amber": 4, "egg": 1}
		cfg.Evolution.BaseChance = 1
		cfg.Species[0].MinCluster = minCluster

		for s := int64(0); s < 30; s++ {
			res, err := Spin(cfg, 100, Options{Seed: seed(s), MaxCascades: 1})
			if err != nil {
				t.Fatal(err)
			}
			winCells, eaten, removed := 0, 0, -1
			for _, e := range res.Events {
				switch e.Type {
				case model.EventWin:
					winCells += e.Win.Size
				case model.EventEvolution:
					if minCluster == 100 {
						t.Fatalf("seed %d: group of %d can not evolve", s, minCluster)
					}
					if e.Evolution.Egg != nil {
						eaten++
					}
				case model.EventCascadeEnd:
					removed = e.Cascade.RemovedCount
				}
			}
			if removed != winCells+eaten {
				t.Fatalf("min cluster %d seed %d: removed %d, win cells %d, eggs eaten %d",
					minCluster, s, removed, winCells, eaten)
			}
		}
	}
}

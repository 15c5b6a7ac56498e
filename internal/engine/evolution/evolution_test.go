package evolution

import (
	"testing"

	"genesis_reels/internal/engine/multiplier"
	"genesis_reels/internal/engine/rng"
	"genesis_reels/internal/model"
)

const (
	amber model.Species = iota
	volt
)

func testConfig() *model.GameConfig {
	cfg := model.DefaultGameConfig()
	cfg.Species = []model.SpeciesConfig{
		{Name: "amber", RequiredTier: 1, MinCluster: 5, BasePay: 1},
		{Name: "volt", RequiredTier: 1, MinCluster: 5, BasePay: 1},
	}
	cfg.MaxTier = 3
	cfg.Evolution = model.EvolutionConfig{BaseChance: 1, PromoteRatio: 0.8, MultiplierBoost: 2}
	cfg.Morph = model.MorphConfig{WildPool: []string{"volt"}}
	return &cfg
}

// пять amber 1-го уровня и четыре volt
func boardAfterWin() model.Grid {
	a, v := model.Standard(amber, 1), model.Standard(volt, 1)
	return model.GridFromRows([][]model.Cell{
		{a, v, a},
		{v, a, v},
		{a, v, a},
	})
}

func countTier(g model.Grid, sp model.Species, tier model.Tier) int {
	n := 0
	for _, c := range g.Cells {
		if c.IsStandard() && c.Species == sp && c.Tier == tier {
			n++
		}
	}
	return n
}

func TestFindEgg(t *testing.T) {
	a := model.Standard(amber, 1)
	g := model.GridFromRows([][]model.Cell{
		{a, model.Egg(), a},
		{a, a, model.Egg()},
		{a, a, a},
	})
	p, ok := FindEgg(g, []model.Position{{Row: 1, Col: 1}})
	if !ok || p != (model.Position{Row: 0, Col: 1}) {
		t.Fatalf("found %v %v", p, ok)
	}
	if g.Count(model.KindEgg) != 2 {
		t.Fatal("lookup must not touch the board")
	}
	if _, ok := FindEgg(g, []model.Position{{Row: 2, Col: 0}}); ok {
		t.Fatal("no egg is adjacent to (2,0)")
	}
}

// пять amber 1-го уровня, яйцо в (0,3), выигрышный кластер уже убран из (1,3) и (2,3)
func boardWithEgg() (model.Grid, []model.Position) {
	a, v, e := model.Standard(amber, 1), model.Standard(volt, 1), model.Cell{}
	g := model.GridFromRows([][]model.Cell{
		{a, v, a, model.Egg()},
		{v, a, v, e},
		{a, v, a, e},
	})
	return g, []model.Position{{Row: 1, Col: 3}, {Row: 2, Col: 3}}
}

func TestMegaEvolutionPromotesWholeGroup(t *testing.T) {
	cfg := testConfig()
	cfg.Evolution.BaseChance = 0
	g, cells := boardWithEgg()
	m := multiplier.New(3, 4, 8192)

	events := Evolve(g, m, cfg, []Trigger{{Species: amber, Tier: 1, Cells: cells}}, Params{Level: 1}, rng.New(1))
	if len(events) != 1 {
		t.Fatalf("expected one evolution, got %d", len(events))
	}
	ev := events[0].Evolution
	if !ev.Mega || ev.TierAfter != 2 || len(ev.Positions) != 5 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.FromSpecies != amber || ev.ToSpecies != amber {
		t.Errorf("species %d -> %d", ev.FromSpecies, ev.ToSpecies)
	}
	if ev.FromSymbol != "tier1_amber" || ev.ToSymbol != "tier2_amber" {
		t.Errorf("symbols %s -> %s", ev.FromSymbol, ev.ToSymbol)
	}
	if ev.Egg == nil || *ev.Egg != (model.Position{Row: 0, Col: 3}) || !g.At(0, 3).IsEmpty() {
		t.Fatalf("egg must be eaten by the evolution, event egg %v", ev.Egg)
	}
	if countTier(g, amber, 2) != 5 {
		t.Error("every amber must be promoted")
	}
	if m.At(model.Position{Row: 0, Col: 0}) != 4 {
		t.Errorf("mega boost = %d, want 4", m.At(model.Position{Row: 0, Col: 0}))
	}
	if m.At(model.Position{Row: 0, Col: 1}) != 0 {
		t.Error("volt cells must not be boosted")
	}
}

func TestEggSurvivesWithoutEvolution(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *model.GameConfig)
	}{
		{"group too small", func(cfg *model.GameConfig) { cfg.Species[amber].MinCluster = 100 }},
		{"already max tier", func(cfg *model.GameConfig) { cfg.MaxTier = 1 }},
	}
	for _, tc := range cases {
		cfg := testConfig()
		tc.mutate(cfg)
		g, cells := boardWithEgg()
		events := Evolve(g, multiplier.New(3, 4, 8192), cfg, []Trigger{{Species: amber, Tier: 1, Cells: cells}}, Params{Level: 1}, rng.New(1))
		if len(events) != 0 {
			t.Errorf("%s: expected no evolution, got %d", tc.name, len(events))
		}
		if g.At(0, 3).Kind != model.KindEgg {
			t.Errorf("%s: egg must stay on the board", tc.name)
		}
	}
}

func TestRegularEvolutionPromotesEightyPercent(t *testing.T) {
	cfg := testConfig()
	g := boardAfterWin()
	events := Evolve(g, multiplier.New(3, 3, 8192), cfg, []Trigger{{Species: amber, Tier: 1}}, Params{Level: 1}, rng.New(9))
	if len(events) != 1 {
		t.Fatalf("expected one evolution, got %d", len(events))
	}
	if countTier(g, amber, 2) != 4 || countTier(g, amber, 1) != 1 {
		t.Fatalf("expected 4 promoted and 1 left, board %+v", g.Cells)
	}
}

func TestEvolutionGates(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(cfg *model.GameConfig)
		tier   model.Tier
	}{
		{"zero chance", func(cfg *model.GameConfig) { cfg.Evolution.BaseChance = 0 }, 1},
		{"group too small", func(cfg *model.GameConfig) { cfg.Species[amber].MinCluster = 6 }, 1},
		{"below required tier", func(cfg *model.GameConfig) { cfg.Species[amber].RequiredTier = 2 }, 1},
		{"already max tier", func(cfg *model.GameConfig) { cfg.MaxTier = 1 }, 1},
	}
	for _, tc := range cases {
		cfg := testConfig()
		tc.mutate(cfg)
		g := boardAfterWin()
		events := Evolve(g, multiplier.New(3, 3, 8192), cfg, []Trigger{{Species: amber, Tier: tc.tier}}, Params{Level: 1}, rng.New(3))
		if len(events) != 0 {
			t.Errorf("%s: expected no evolution, got %d", tc.name, len(events))
		}
	}
}

func TestLevelBonusRaisesChance(t *testing.T) {
	cfg := testConfig()
	cfg.Evolution.BaseChance = 0
	cfg.Evolution.LevelBonus = 0.5
	g := boardAfterWin()
	events := Evolve(g, multiplier.New(3, 3, 8192), cfg, []Trigger{{Species: amber, Tier: 1}}, Params{Level: 3}, rng.New(3))
	if len(events) != 1 {
		t.Fatal("level 3 bonus gives chance 1")
	}
}

func TestBoostUsesAllGroups(t *testing.T) {
	cfg := testConfig()
	cfg.Species[volt].MinCluster = 4
	g := boardAfterWin()
	events := Boost(g, multiplier.New(3, 3, 8192), cfg, Params{Level: 1, Guaranteed: true}, rng.New(4))
	if len(events) != 2 {
		t.Fatalf("both groups must evolve, got %d", len(events))
	}
}

func TestMorphKeepsTier(t *testing.T) {
	cfg := testConfig()
	cfg.Morph.Chance = 1
	a, v := model.Standard(amber, 2), model.Standard(volt, 3)
	g := model.GridFromRows([][]model.Cell{
		{a, a, a},
		{a, model.Scatter(0), a},
		{v, v, v},
	})
	before := g.Clone()
	events := Morph(g, cfg, 1, rng.New(11))
	if len(events) != 8 {
		t.Fatalf("every standard cell must morph, got %d", len(events))
	}
	for i, c := range g.Cells {
		old := before.Cells[i]
		if !old.IsStandard() {
			if c != old {
				t.Errorf("special cell %d changed", i)
			}
			continue
		}
		if c.Tier != old.Tier {
			t.Errorf("cell %d tier changed %d -> %d", i, old.Tier, c.Tier)
		}
		if c.Species == old.Species {
			t.Errorf("cell %d kept species", i)
		}
	}
}

func TestMorphTowardsWildPool(t *testing.T) {
	cfg := testConfig()
	cfg.Morph.WildChance = 1
	a := model.Standard(amber, 1)
	g := model.GridFromRows([][]model.Cell{
		{a, a, a},
		{a, model.Wild(), a},
		{a, a, a},
	})
	Morph(g, cfg, 1, rng.New(2))
	if countTier(g, volt, 1) != 8 {
		t.Fatalf("cells next to a wild must turn into the pool species, board %+v", g.Cells)
	}
}

func TestMorphDisabled(t *testing.T) {
	cfg := testConfig()
	g := boardAfterWin()
	if events := Morph(g, cfg, 1, rng.New(1)); len(events) != 0 {
		t.Fatalf("zero chances must not morph, got %d", len(events))
	}
}

// Package simulation прогоняет движок по серии сидов и считает RTP.
package simulation

import (
	"context"
	"fmt"

	"genesis_reels/internal/engine/freespins"
	"genesis_reels/internal/engine/generator"
	"genesis_reels/internal/engine/rng"
	"genesis_reels/internal/engine/tumble"
	"genesis_reels/internal/model"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const streamSim = "sim"

type Options struct {
	Spins         int
	Seed          uint32 // корневой сид серии
	Workers       int
	Bet           int64
	PlayFreeSpins bool
	StepLimit     int    // предел шагов одной сессии
}

// Report - итог серии. Не зависит от числа воркеров
type Report struct {
	Spins           int     `json:"spins"`
	TotalBet        int64   `json:"totalBet"`
	BaseWin         int64   `json:"baseWin"`
	FreeWin         int64   `json:"freeWin"`
	Hits            int     `json:"hits"`
	Triggers        int     `json:"freeSpinTriggers"`
	FreeSpinsPlayed int     `json:"freeSpinsPlayed"`
	Retriggers      int     `json:"retriggers"`
	Cascades        int64   `json:"cascades"`
	MaxCascades     int     `json:"maxCascades"`
	WinCapHits      int     `json:"winCapHits"`
	MaxWinX         float64 `json:"maxWinX"`
	MaxWinSeed      uint32  `json:"maxWinSeed"`
	MaxMultiplier   int     `json:"maxMultiplier"`
}

func (r Report) TotalWin() int64 { return r.BaseWin + r.FreeWin }

// RTP в процентах
func (r Report) RTP() float64 {
	if r.TotalBet == 0 {
		return 0
	}
	return float64(r.TotalWin()) / float64(r.TotalBet) * 100
}

func (r Report) HitRate() float64 {
	if r.Spins == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Spins)
}

func (r *Report) merge(o Report) {
	r.Spins += o.Spins
	r.TotalBet += o.TotalBet
	r.BaseWin += o.BaseWin
	r.FreeWin += o.FreeWin
	r.Hits += o.Hits
	r.Triggers += o.Triggers
	r.FreeSpinsPlayed += o.FreeSpinsPlayed
	r.Retriggers += o.Retriggers
	r.Cascades += o.Cascades
	r.MaxCascades = max(r.MaxCascades, o.MaxCascades)
	r.WinCapHits += o.WinCapHits
	r.MaxMultiplier = max(r.MaxMultiplier, o.MaxMultiplier)
	// при равенстве выигрыша берется меньший сид, чтобы итог не зависел от порядка
	if o.MaxWinX > r.MaxWinX || (o.MaxWinX == r.MaxWinX && o.MaxWinX > 0 && o.MaxWinSeed < r.MaxWinSeed) {
		r.MaxWinX = o.MaxWinX
		r.MaxWinSeed = o.MaxWinSeed
	}
}

// SpinSeed - сид i-го спина серии
func SpinSeed(root uint32, i int) int64 {
	return int64(rng.Stream(root, streamSim, i))
}

// Run распределяет спины по воркерам: воркер w берет спины w, w+n, w+2n...
func Run(ctx context.Context, cfg *model.GameConfig, opts Options, log *zap.Logger) (Report, error) {
	if err := cfg.Validate(); err != nil {
		return Report{}, err
	}
	if opts.Spins <= 0 {
		return Report{}, fmt.Errorf("%w: spins must be positive", model.ErrInvalidConfiguration)
	}
	if opts.Bet <= 0 || opts.Bet > cfg.MaxBet() {
		return Report{}, fmt.Errorf("%w: %d", model.ErrInvalidBet, opts.Bet)
	}
	workers := max(1, min(opts.Workers, opts.Spins))
	if opts.StepLimit <= 0 {
		opts.StepLimit = 1000
	}
	if log == nil {
		log = zap.NewNop()
	}

	cache := generator.NewCache()
	parts := make([]Report, workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < opts.Spins; i += workers {
				if i%1024 == 0 {
					if err := gctx.Err(); err != nil {
						return err
					}
				}
				if err := runOne(cfg, opts, cache, i, &parts[w]); err != nil {
					return fmt.Errorf("spin %d: %w", i, err)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	var total Report
	for _, p := range parts {
		total.merge(p)
	}
	log.Info("simulation finished",
		zap.Int("spins", total.Spins),
		zap.Int("workers", workers),
		zap.Float64("rtp", total.RTP()),
		zap.Float64("hit_rate", total.HitRate()),
		zap.Float64("max_win_x", total.MaxWinX),
	)
	return total, nil
}

func runOne(cfg *model.GameConfig, opts Options, cache *generator.Cache, i int, rep *Report) error {
	seed := SpinSeed(opts.Seed, i)
	res, err := tumble.Spin(cfg, opts.Bet, tumble.Options{Seed: &seed, Cache: cache})
	if err != nil {
		return err
	}

	rep.Spins++
	rep.TotalBet += opts.Bet
	rep.BaseWin += res.TotalWin
	rep.Cascades += int64(res.Hints.Cascades)
	rep.MaxCascades = max(rep.MaxCascades, res.Hints.Cascades)
	rep.MaxMultiplier = max(rep.MaxMultiplier, res.Hints.MaxMultiplier)
	if res.Hints.WinCap {
		rep.WinCapHits++
	}

	win := res.TotalWin
	if opts.PlayFreeSpins && freespins.AwardedSpins(cfg, res.Hints.Scatters) > 0 {
		rep.Triggers++
		st, err := freespins.EnterWithBet(cfg, res.Hints.Scatters, int64(rng.Stream(res.Seed, rng.StreamSession, 0)), opts.Bet)
		if err != nil {
			return err
		}
		start := st.StepIndex
		st, err = freespins.Play(st, cfg, cache, opts.StepLimit)
		if err != nil {
			return err
		}
		rep.FreeSpinsPlayed += st.StepIndex - start
		rep.Retriggers += st.RetriggerCount
		rep.FreeWin += st.TotalWin
		rep.MaxMultiplier = max(rep.MaxMultiplier, st.Multipliers.Max())
		win += st.TotalWin
	}

	if win > 0 {
		rep.Hits++
	}
	if x := float64(win) / float64(opts.Bet); x > rep.MaxWinX || (x == rep.MaxWinX && x > 0 && uint32(seed) < rep.MaxWinSeed) {
		rep.MaxWinX = x
		rep.MaxWinSeed = uint32(seed)
	}
	return nil
}

package simulation

import (
	"context"
	"errors"
	"testing"

	"genesis_reels/internal/model"
)

func TestRunIndependentOfWorkers(t *testing.T) {
	cfg := model.DefaultGameConfig()
	opts := Options{Spins: 400, Seed: 17, Bet: 100, PlayFreeSpins: true}

	opts.Workers = 1
	one, err := Run(context.Background(), &cfg, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	opts.Workers = 6
	many, err := Run(context.Background(), &cfg, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if one != many {
		t.Fatalf("reports differ:\n%+v\n%+v", one, many)
	}
	if one.Spins != 400 || one.TotalBet != 40000 {
		t.Errorf("unexpected totals %+v", one)
	}
	if one.RTP() < 0 || one.HitRate() > 1 {
		t.Errorf("rtp %v hit rate %v", one.RTP(), one.HitRate())
	}
}

func TestRunWithoutFreeSpins(t *testing.T) {
	cfg := model.DefaultGameConfig()
	rep, err := Run(context.Background(), &cfg, Options{Spins: 50, Seed: 3, Workers: 2, Bet: 100}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if rep.FreeWin != 0 || rep.Triggers != 0 || rep.FreeSpinsPlayed != 0 {
		t.Errorf("free spins must be skipped: %+v", rep)
	}
}

func TestRunValidation(t *testing.T) {
	cfg := model.DefaultGameConfig()
	if _, err := Run(context.Background(), &cfg, Options{Spins: 0, Bet: 100}, nil); !errors.Is(err, model.ErrInvalidConfiguration) {
		t.Errorf("zero spins: %v", err)
	}
	if _, err := Run(context.Background(), &cfg, Options{Spins: 5}, nil); !errors.Is(err, model.ErrInvalidBet) {
		t.Errorf("zero bet: %v", err)
	}
}

func TestRunCancelled(t *testing.T) {
	cfg := model.DefaultGameConfig()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, &cfg, Options{Spins: 10, Bet: 100, Workers: 2}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled run: %v", err)
	}
}

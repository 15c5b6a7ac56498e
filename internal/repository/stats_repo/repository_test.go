package stats_repo

import (
	"sync"
	"testing"

	repoModel "genesis_reels/internal/repository/stats_repo/model"

	"github.com/shopspring/decimal"
)

func TestRecordAndSnapshot(t *testing.T) {
	r := NewStatsRepository(2)
	one := decimal.NewFromInt(1)

	r.Record(repoModel.SpinRecord{Bet: one, Payout: decimal.Zero})
	r.Record(repoModel.SpinRecord{Bet: one, Payout: decimal.NewFromInt(3), WinX: 3, SessionOpened: true})
	r.Record(repoModel.SpinRecord{Bet: one, Payout: decimal.NewFromInt(1), WinX: 1, FreeSpin: true})

	s := r.Snapshot()
	if s.Spins != 3 || s.FreeSpins != 1 || s.Hits != 2 || s.SessionsOpened != 1 {
		t.Fatalf("counters: %+v", s)
	}
	if !s.TotalBet.Equal(decimal.NewFromInt(2)) || !s.TotalPayout.Equal(decimal.NewFromInt(4)) {
		t.Fatalf("free spins must not add to the bet total: bet %s payout %s", s.TotalBet, s.TotalPayout)
	}
	if s.RTP != 200 || s.MaxWinX != 3 {
		t.Errorf("rtp %v, max win %v", s.RTP, s.MaxWinX)
	}
	// в окне два последних спина: ставка 1, выплата 4
	if s.WindowRTP != 400 {
		t.Errorf("window rtp = %v", s.WindowRTP)
	}
}

func TestEmptySnapshot(t *testing.T) {
	s := NewStatsRepository(0).Snapshot()
	if s.RTP != 0 || s.WindowRTP != 0 || s.HitRate != 0 {
		t.Errorf("empty stats must be zero: %+v", s)
	}
}

func TestConcurrentRecord(t *testing.T) {
	r := NewStatsRepository(10)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Record(repoModel.SpinRecord{Bet: decimal.NewFromInt(1)})
			}
		}()
	}
	wg.Wait()
	if s := r.Snapshot(); s.Spins != 800 {
		t.Errorf("spins = %d", s.Spins)
	}
}

func TestBonusBuyIsNotASpin(t *testing.T) {
	r := NewStatsRepository(10)
	r.Record(repoModel.SpinRecord{Bet: decimal.NewFromInt(100), BonusBuy: true})
	r.Record(repoModel.SpinRecord{Payout: decimal.NewFromInt(50), FreeSpin: true})

	s := r.Snapshot()
	if s.Spins != 1 || s.SessionsOpened != 1 || s.HitRate != 1 {
		t.Fatalf("unexpected counters %+v", s)
	}
	if s.RTP != 50 || s.WindowRTP != 50 {
		t.Errorf("rtp %v window %v", s.RTP, s.WindowRTP)
	}
}

package stats_repo

import (
	"sync"

	repoModel "genesis_reels/internal/repository/stats_repo/model"
	servModel "genesis_reels/internal/service/cascade/model"

	"github.com/shopspring/decimal"
)

const defaultWindowSize = 500

var hundred = decimal.NewFromInt(100)

// StatsRepo - статистика процесса в памяти
type StatsRepo struct {
	mtx   sync.RWMutex
	state repoModel.StatsState
}

// NewStatsRepository Конструктор. windowSize <= 0 - окно по умолчанию
func NewStatsRepository(windowSize int) *StatsRepo {
	if windowSize <= 0 {
		windowSize = defaultWindowSize
	}
	return &StatsRepo{
		state: repoModel.StatsState{
			Window:     make([]repoModel.SpinRecord, 0, windowSize),
			WindowSize: windowSize,
		},
	}
}

// Record Обновление состояния после спина
func (r *StatsRepo) Record(rec repoModel.SpinRecord) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	st := &r.state
	if rec.BonusBuy {
		st.TotalBet = st.TotalBet.Add(rec.Bet)
		st.SessionsOpened++
		r.push(rec)
		return
	}

	st.Spins++
	if rec.FreeSpin {
		st.FreeSpins++
	} else {
		// фриспины не оплачиваются ставкой
		st.TotalBet = st.TotalBet.Add(rec.Bet)
	}
	st.TotalPayout = st.TotalPayout.Add(rec.Payout)
	if rec.Payout.IsPositive() {
		st.Hits++
	}
	if rec.SessionOpened {
		st.SessionsOpened++
	}
	if rec.WinX > st.MaxWinX {
		st.MaxWinX = rec.WinX
	}

	r.push(rec)
}

func (r *StatsRepo) push(rec repoModel.SpinRecord) {
	r.state.Window = append(r.state.Window, rec)
	if len(r.state.Window) > r.state.WindowSize {
		r.state.Window = r.state.Window[1:]
	}
}

// Snapshot Копия агрегатов
func (r *StatsRepo) Snapshot() servModel.Stats {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	st := r.state
	out := servModel.Stats{
		Spins:          st.Spins,
		FreeSpins:      st.FreeSpins,
		Hits:           st.Hits,
		SessionsOpened: st.SessionsOpened,
		TotalBet:       st.TotalBet,
		TotalPayout:    st.TotalPayout,
		RTP:            rtp(st.TotalBet, st.TotalPayout),
		MaxWinX:        st.MaxWinX,
	}
	if st.Spins > 0 {
		out.HitRate = float64(st.Hits) / float64(st.Spins)
	}

	var windowBet, windowPayout decimal.Decimal
	for _, rec := range st.Window {
		if !rec.FreeSpin {
			windowBet = windowBet.Add(rec.Bet)
		}
		windowPayout = windowPayout.Add(rec.Payout)
	}
	out.WindowRTP = rtp(windowBet, windowPayout)
	return out
}

// rtp в процентах
func rtp(bet, payout decimal.Decimal) float64 {
	if !bet.IsPositive() {
		return 0
	}
	return payout.Div(bet).Mul(hundred).InexactFloat64()
}

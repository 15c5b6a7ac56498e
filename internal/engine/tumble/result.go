package tumble

import (
	"genesis_reels/internal/engine/multiplier"
	"genesis_reels/internal/model"
)

// RushHint - прогресс режима охоты
type RushHint struct {
	Progress int  `json:"progress"`
	Target   int  `json:"target"`
	Reached  bool `json:"reached"`
}

// UIHints - подсказки для проигрывания спина на клиенте
type UIHints struct {
	Cascades      int       `json:"cascades"`
	Scatters      int       `json:"scatters"`
	WinCap        bool      `json:"winCap,omitempty"`
	MaxMultiplier int       `json:"maxMultiplier"`
	Rush          *RushHint `json:"rush,omitempty"`
}

// Result - итог одного спина. После возврата не изменяется
type Result struct {
	Seed        uint32          `json:"seed"`
	Bet         int64           `json:"bet"`
	InitialGrid model.Grid      `json:"initialGrid"`
	Grid        model.Grid      `json:"grid"`
	Multipliers *multiplier.Map `json:"multipliers"`
	TotalWin    int64           `json:"totalWin"`
	Events      []model.Event   `json:"events"`
	Hints       UIHints         `json:"uiHints"`
}

// WinX - выигрыш в ставках
func (r *Result) WinX() float64 {
	if r.Bet == 0 {
		return 0
	}
	return float64(r.TotalWin) / float64(r.Bet)
}

// Count - число событий данного типа
func (r *Result) Count(t model.EventType) int {
	n := 0
	for _, e := range r.Events {
		if e.Type == t {
			n++
		}
	}
	return n
}

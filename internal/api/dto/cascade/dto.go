package cascade

import (
	"genesis_reels/internal/engine/tumble"
	"genesis_reels/internal/model"

	"github.com/shopspring/decimal"
)

type SpinRequest struct {
	Bet  decimal.Decimal `json:"bet"`            // Ставка в денежных единицах
	Seed *int64          `json:"seed,omitempty"` // Сид для воспроизведения, 0..2^32-1
}

type BuyBonusRequest struct {
	Bet  decimal.Decimal `json:"bet"`
	Seed *int64          `json:"seed,omitempty"`
}

type ReplayRequest struct {
	Seed        int64  `json:"seed"`
	Bet         int64  `json:"bet,omitempty"` // В кредитах
	MaxCascades int    `json:"max_cascades,omitempty"`
	Mode        string `json:"mode,omitempty"`
	InBonusMode bool   `json:"in_bonus_mode,omitempty"`
}

type SpinResponse struct {
	Seed             uint32           `json:"seed"`
	FreeSpin         bool             `json:"free_spin"`
	Bet              decimal.Decimal  `json:"bet"`
	Win              decimal.Decimal  `json:"win"`
	WinX             float64          `json:"win_x"`
	InitialBoard     [][]string       `json:"initial_board"` // Символы (ID)
	Board            [][]string       `json:"board"`
	Multipliers      [][]int          `json:"multipliers"`
	Events           []model.Event    `json:"events"`
	Hints            tumble.UIHints   `json:"ui_hints"`
	AwardedFreeSpins int              `json:"awarded_free_spins,omitempty"`
	Retrigger        int              `json:"retrigger,omitempty"`
	SessionEvents    []model.Event    `json:"session_events,omitempty"` // Эволюции после фриспина
	Session          *SessionResponse `json:"session,omitempty"`
}

type SessionResponse struct {
	ID             string          `json:"id,omitempty"`
	Active         bool            `json:"active"`
	SpinsLeft      int             `json:"spins_left"`
	SpinsTotal     int             `json:"spins_total"`
	Step           int             `json:"step"`
	Level          int             `json:"level"`
	RetriggerCount int             `json:"retrigger_count"`
	Bet            decimal.Decimal `json:"bet"`
	TotalWin       decimal.Decimal `json:"total_win"`
	Features       []string        `json:"features"`
	MaxMultiplier  int             `json:"max_multiplier"`
}

type BuyBonusResponse struct {
	Cost    decimal.Decimal `json:"cost"`
	Session SessionResponse `json:"session"`
}

type StatsResponse struct {
	Spins          int64           `json:"spins"`
	FreeSpins      int64           `json:"free_spins"`
	Hits           int64           `json:"hits"`
	SessionsOpened int64           `json:"sessions_opened"`
	TotalBet       decimal.Decimal `json:"total_bet"`
	TotalPayout    decimal.Decimal `json:"total_payout"`
	RTP            float64         `json:"rtp"`
	WindowRTP      float64         `json:"window_rtp"`
	HitRate        float64         `json:"hit_rate"`
	MaxWinX        float64         `json:"max_win_x"`
}

type ReplayResponse struct {
	Seed         uint32         `json:"seed"`
	Bet          int64          `json:"bet"`
	TotalWin     int64          `json:"total_win"`
	WinX         float64        `json:"win_x"`
	InitialBoard [][]string     `json:"initial_board"`
	Board        [][]string     `json:"board"`
	Multipliers  [][]int        `json:"multipliers"`
	Events       []model.Event  `json:"events"`
	Hints        tumble.UIHints `json:"ui_hints"`
}

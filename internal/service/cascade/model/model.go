package model

import (
	"errors"
	"time"

	"genesis_reels/internal/engine/freespins"
	"genesis_reels/internal/engine/tumble"
	"genesis_reels/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrSessionActive - у игрока уже идет сессия фриспинов
var ErrSessionActive = errors.New("free spins session is already active")

// SpinRequest - платный спин. Во время сессии ставка берется из сессии
type SpinRequest struct {
	Bet  decimal.Decimal
	Seed *int64
}

type BuyBonusRequest struct {
	Bet  decimal.Decimal
	Seed *int64
}

// ReplayRequest - спин без состояния для проверки сида
type ReplayRequest struct {
	Seed        int64
	Bet         int64 // в кредитах, 0 - одна денежная единица
	MaxCascades int
	Mode        string
	InBonusMode bool
}

// Session - запись сессии фриспинов игрока
type Session struct {
	ID        uuid.UUID
	PlayerID  string
	State     freespins.State
	UpdatedAt time.Time
}

type SessionSummary struct {
	ID             uuid.UUID
	Active         bool
	SpinsLeft      int
	SpinsTotal     int
	StepIndex      int
	Level          int
	RetriggerCount int
	Bet            decimal.Decimal
	TotalWin       decimal.Decimal
	Features       []string
	MaxMultiplier  int
}

type SpinResult struct {
	Spin             *tumble.Result
	FreeSpin         bool
	Bet              decimal.Decimal
	Win              decimal.Decimal
	AwardedFreeSpins int
	Retrigger        int
	StepEvents       []model.Event
	Session          *SessionSummary
}

type BuyBonusResult struct {
	Cost    decimal.Decimal
	Session SessionSummary
}

// Stats - агрегаты по спинам процесса
type Stats struct {
	Spins          int64
	FreeSpins      int64
	Hits           int64
	SessionsOpened int64
	TotalBet       decimal.Decimal
	TotalPayout    decimal.Decimal
	RTP            float64
	WindowRTP      float64
	HitRate        float64
	MaxWinX        float64
}

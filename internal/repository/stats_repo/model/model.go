package model

import "github.com/shopspring/decimal"

// SpinRecord - итог одного спина для статистики
type SpinRecord struct {
	Bet           decimal.Decimal
	Payout        decimal.Decimal
	WinX          float64
	FreeSpin      bool
	SessionOpened bool
	BonusBuy      bool // покупка бонуса: только ставка, без спина
}

// StatsState - накопленное состояние
type StatsState struct {
	Spins          int64
	FreeSpins      int64
	Hits           int64
	SessionsOpened int64
	TotalBet       decimal.Decimal
	TotalPayout    decimal.Decimal
	MaxWinX        float64

	Window     []SpinRecord // окно последних спинов для RTP
	WindowSize int
}

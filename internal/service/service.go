package service

import (
	"context"

	"genesis_reels/internal/engine/tumble"
	servModel "genesis_reels/internal/service/cascade/model"
)

type CascadeService interface {
	Spin(ctx context.Context, playerID string, req servModel.SpinRequest) (*servModel.SpinResult, error)
	BuyBonus(ctx context.Context, playerID string, req servModel.BuyBonusRequest) (*servModel.BuyBonusResult, error)
	State(ctx context.Context, playerID string) (*servModel.SessionSummary, error)
	Stats() servModel.Stats
	Replay(req servModel.ReplayRequest) (*tumble.Result, error)
}

package converter

import (
	"genesis_reels/internal/api/dto/cascade"
	"genesis_reels/internal/engine/tumble"
	"genesis_reels/internal/model"
	servModel "genesis_reels/internal/service/cascade/model"
)

func ToSpinRequest(req cascade.SpinRequest) servModel.SpinRequest {
	return servModel.SpinRequest{
		Bet:  req.Bet,
		Seed: req.Seed,
	}
}

func ToBuyBonusRequest(req cascade.BuyBonusRequest) servModel.BuyBonusRequest {
	return servModel.BuyBonusRequest{
		Bet:  req.Bet,
		Seed: req.Seed,
	}
}

func ToReplayRequest(req cascade.ReplayRequest) servModel.ReplayRequest {
	return servModel.ReplayRequest{
		Seed:        req.Seed,
		Bet:         req.Bet,
		MaxCascades: req.MaxCascades,
		Mode:        req.Mode,
		InBonusMode: req.InBonusMode,
	}
}

func ToSpinResponse(res servModel.SpinResult, cfg *model.GameConfig) cascade.SpinResponse {
	spin := res.Spin
	out := cascade.SpinResponse{
		Seed:             spin.Seed,
		FreeSpin:         res.FreeSpin,
		Bet:              res.Bet,
		Win:              res.Win,
		WinX:             spin.WinX(),
		InitialBoard:     ToBoard(spin.InitialGrid, cfg),
		Board:            ToBoard(spin.Grid, cfg),
		Multipliers:      spin.Multipliers.Matrix(),
		Events:           spin.Events,
		Hints:            spin.Hints,
		AwardedFreeSpins: res.AwardedFreeSpins,
		Retrigger:        res.Retrigger,
		SessionEvents:    res.StepEvents,
	}
	if res.Session != nil {
		s := ToSessionResponse(*res.Session)
		out.Session = &s
	}
	return out
}

func ToSessionResponse(s servModel.SessionSummary) cascade.SessionResponse {
	out := cascade.SessionResponse{
		Active:         s.Active,
		SpinsLeft:      s.SpinsLeft,
		SpinsTotal:     s.SpinsTotal,
		Step:           s.StepIndex,
		Level:          s.Level,
		RetriggerCount: s.RetriggerCount,
		Bet:            s.Bet,
		TotalWin:       s.TotalWin,
		Features:       s.Features,
		MaxMultiplier:  s.MaxMultiplier,
	}
	if s.Active {
		out.ID = s.ID.String()
	}
	if out.Features == nil {
		out.Features = []string{}
	}
	return out
}

func ToBuyBonusResponse(res servModel.BuyBonusResult) cascade.BuyBonusResponse {
	return cascade.BuyBonusResponse{
		Cost:    res.Cost,
		Session: ToSessionResponse(res.Session),
	}
}

func ToStatsResponse(s servModel.Stats) cascade.StatsResponse {
	return cascade.StatsResponse{
		Spins:          s.Spins,
		FreeSpins:      s.FreeSpins,
		Hits:           s.Hits,
		SessionsOpened: s.SessionsOpened,
		TotalBet:       s.TotalBet,
		TotalPayout:    s.TotalPayout,
		RTP:            s.RTP,
		WindowRTP:      s.WindowRTP,
		HitRate:        s.HitRate,
		MaxWinX:        s.MaxWinX,
	}
}

func ToReplayResponse(res *tumble.Result, cfg *model.GameConfig) cascade.ReplayResponse {
	return cascade.ReplayResponse{
		Seed:         res.Seed,
		Bet:          res.Bet,
		TotalWin:     res.TotalWin,
		WinX:         res.WinX(),
		InitialBoard: ToBoard(res.InitialGrid, cfg),
		Board:        ToBoard(res.Grid, cfg),
		Multipliers:  res.Multipliers.Matrix(),
		Events:       res.Events,
		Hints:        res.Hints,
	}
}

// ToBoard - поле в виде id символов по строкам
func ToBoard(g model.Grid, cfg *model.GameConfig) [][]string {
	out := make([][]string, g.Rows)
	for r := range out {
		out[r] = make([]string, g.Cols)
		for c := range out[r] {
			out[r][c] = cfg.SymbolID(g.At(r, c))
		}
	}
	return out
}

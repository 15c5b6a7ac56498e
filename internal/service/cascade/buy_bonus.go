package cascade

import (
	"context"
	"fmt"
	"math/rand/v2"

	"genesis_reels/internal/engine/freespins"
	repoModel "genesis_reels/internal/repository/stats_repo/model"
	servModel "genesis_reels/internal/service/cascade/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BuyBonus Купить бонуску: сессия открывается как при buy_scatters скаттерах.
// Стоимость - ставка, умноженная на buy_cost_x
func (s *serv) BuyBonus(ctx context.Context, playerID string, req servModel.BuyBonusRequest) (*servModel.BuyBonusResult, error) {
	credits, err := s.toCredits(req.Bet)
	if err != nil {
		return nil, err
	}
	seed := int64(rand.Uint32())
	if req.Seed != nil {
		seed = *req.Seed
	}

	fs := s.game().FreeSpins
	var sess *servModel.Session
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.sessionRepo.GetActive(txCtx, playerID)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if active(current) {
			return servModel.ErrSessionActive
		}

		st, err := freespins.EnterWithBet(s.game(), fs.BuyScatters, seed, credits)
		if err != nil {
			return err
		}
		sess = &servModel.Session{ID: uuid.New(), PlayerID: playerID, State: st}
		return s.persist(txCtx, sess)
	})
	if err != nil {
		s.log.Error("buy bonus", zap.String("player", playerID), zap.Error(err))
		return nil, err
	}

	cost := req.Bet.Mul(decimal.NewFromInt(int64(fs.BuyCostX)))
	s.statsRepo.Record(repoModel.SpinRecord{Bet: cost, Payout: decimal.Zero, BonusBuy: true})
	s.log.Info("bonus bought",
		zap.String("player", playerID),
		zap.String("session", sess.ID.String()),
		zap.String("cost", cost.String()),
	)

	return &servModel.BuyBonusResult{
		Cost:    cost,
		Session: *s.summary(sess),
	}, nil
}

package cascade

import (
	"context"
	"fmt"

	"genesis_reels/internal/engine/freespins"
	"genesis_reels/internal/engine/rng"
	"genesis_reels/internal/engine/tumble"
	repoModel "genesis_reels/internal/repository/stats_repo/model"
	servModel "genesis_reels/internal/service/cascade/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spin - основной метод. При активной сессии выполняется фриспин,
// иначе платный спин, который может открыть сессию
func (s *serv) Spin(ctx context.Context, playerID string, req servModel.SpinRequest) (*servModel.SpinResult, error) {
	var (
		out    *servModel.SpinResult
		opened bool
	)
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		sess, err := s.sessionRepo.GetActive(txCtx, playerID)
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		if active(sess) {
			out, err = s.freeSpin(txCtx, sess)
			return err
		}
		out, opened, err = s.baseSpin(txCtx, playerID, req)
		return err
	})
	if err != nil {
		s.log.Error("spin", zap.String("player", playerID), zap.Error(err))
		return nil, err
	}

	s.statsRepo.Record(repoModel.SpinRecord{
		Bet:           out.Bet,
		Payout:        out.Win,
		WinX:          out.Spin.WinX(),
		FreeSpin:      out.FreeSpin,
		SessionOpened: opened,
	})
	s.log.Debug("spin",
		zap.String("player", playerID),
		zap.Uint32("seed", out.Spin.Seed),
		zap.Bool("free", out.FreeSpin),
		zap.Int64("win", out.Spin.TotalWin),
		zap.Int("cascades", out.Spin.Hints.Cascades),
	)
	return out, nil
}

// baseSpin - платный спин. Скаттеры на итоговом поле открывают сессию
func (s *serv) baseSpin(ctx context.Context, playerID string, req servModel.SpinRequest) (*servModel.SpinResult, bool, error) {
	credits, err := s.toCredits(req.Bet)
	if err != nil {
		return nil, false, err
	}

	res, err := tumble.Spin(s.game(), credits, tumble.Options{Seed: req.Seed, Cache: s.cache})
	if err != nil {
		return nil, false, err
	}

	out := &servModel.SpinResult{
		Spin: res,
		Bet:  s.toMoney(credits),
		Win:  s.toMoney(res.TotalWin),
	}

	awarded := freespins.AwardedSpins(s.game(), res.Hints.Scatters)
	if awarded == 0 {
		return out, false, nil
	}

	seed := int64(rng.Stream(res.Seed, rng.StreamSession, 0))
	st, err := freespins.EnterWithBet(s.game(), res.Hints.Scatters, seed, credits)
	if err != nil {
		return nil, false, err
	}
	sess := &servModel.Session{ID: uuid.New(), PlayerID: playerID, State: st}
	if err = s.sessionRepo.Save(ctx, sess); err != nil {
		return nil, false, fmt.Errorf("save session: %w", err)
	}
	s.log.Info("free spins awarded",
		zap.String("player", playerID),
		zap.String("session", sess.ID.String()),
		zap.Int("scatters", res.Hints.Scatters),
		zap.Int("spins", awarded),
	)

	out.AwardedFreeSpins = awarded
	out.Session = s.summary(sess)
	return out, true, nil
}

// freeSpin - шаг сессии. Ставка и карта множителей берутся из сессии
func (s *serv) freeSpin(ctx context.Context, sess *servModel.Session) (*servModel.SpinResult, error) {
	next, err := freespins.StepWithCache(sess.State, s.game(), s.cache)
	if err != nil {
		return nil, err
	}
	sess.State = next
	if err = s.persist(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	if next.Ended {
		s.log.Info("free spins finished",
			zap.String("player", sess.PlayerID),
			zap.String("session", sess.ID.String()),
			zap.Int64("total_win", next.TotalWin),
			zap.Int("level", next.ProgressiveLevel),
		)
	}

	return &servModel.SpinResult{
		Spin:       next.LastSpin,
		FreeSpin:   true,
		Bet:        s.toMoney(next.Bet),
		Win:        s.toMoney(next.LastSpin.TotalWin),
		Retrigger:  next.LastRetrigger,
		StepEvents: next.StepEvents,
		Session:    s.summary(sess),
	}, nil
}

// Replay - спин без сессии и статистики, для проверки сида
func (s *serv) Replay(req servModel.ReplayRequest) (*tumble.Result, error) {
	bet := req.Bet
	if bet == 0 {
		bet = s.cfg.BetUnit().IntPart()
	}
	seed := req.Seed
	return tumble.Spin(s.game(), bet, tumble.Options{
		Seed:        &seed,
		MaxCascades: req.MaxCascades,
		Mode:        req.Mode,
		InBonusMode: req.InBonusMode,
		Cache:       s.cache,
	})
}

func (s *serv) Stats() servModel.Stats {
	return s.statsRepo.Snapshot()
}

package cascade

import (
	"context"

	servModel "genesis_reels/internal/service/cascade/model"
)

func (s *serv) summary(sess *servModel.Session) *servModel.SessionSummary {
	st := sess.State
	sum := &servModel.SessionSummary{
		ID:             sess.ID,
		Active:         !st.Ended,
		SpinsLeft:      max(st.SpinsLeft, 0),
		SpinsTotal:     st.SpinsTotal,
		StepIndex:      st.StepIndex,
		Level:          st.ProgressiveLevel,
		RetriggerCount: st.RetriggerCount,
		Bet:            s.toMoney(st.Bet),
		TotalWin:       s.toMoney(st.TotalWin),
		Features:       st.Features.Names(),
	}
	if st.Multipliers != nil {
		sum.MaxMultiplier = st.Multipliers.Max()
	}
	return sum
}

// State - сводка по сессии игрока. Без сессии Active = false
func (s *serv) State(ctx context.Context, playerID string) (*servModel.SessionSummary, error) {
	sess, err := s.sessionRepo.GetActive(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return &servModel.SessionSummary{Features: []string{}}, nil
	}
	return s.summary(sess), nil
}

// persist сохраняет незавершенную сессию и удаляет завершенную
func (s *serv) persist(ctx context.Context, sess *servModel.Session) error {
	if sess.State.Ended {
		return s.sessionRepo.Close(ctx, sess.PlayerID)
	}
	return s.sessionRepo.Save(ctx, sess)
}

func active(sess *servModel.Session) bool {
	return sess != nil && !sess.State.Ended
}

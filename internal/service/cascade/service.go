package cascade

import (
	"context"
	"fmt"

	"genesis_reels/internal/config"
	"genesis_reels/internal/engine/generator"
	"genesis_reels/internal/model"
	"genesis_reels/internal/repository"
	"genesis_reels/internal/service"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TxManager - часть trm.Manager, которой пользуется сервис
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serv struct {
	cfg         config.CascadeConfig
	txManager   TxManager
	sessionRepo repository.SessionRepository
	statsRepo   repository.StatsRepository
	cache       *generator.Cache
	log         *zap.Logger
}

// NewCascadeService Создать сервис каскадной игры
func NewCascadeService(
	cfg config.CascadeConfig,
	txManager TxManager,
	sessionRepo repository.SessionRepository,
	statsRepo repository.StatsRepository,
	log *zap.Logger,
) service.CascadeService {
	return &serv{
		cfg:         cfg,
		txManager:   txManager,
		sessionRepo: sessionRepo,
		statsRepo:   statsRepo,
		cache:       generator.NewCache(),
		log:         log,
	}
}

func (s *serv) game() *model.GameConfig {
	return s.cfg.Game()
}

// toCredits переводит ставку в кредиты движка. Ставка должна делиться на шаг
// и не превышать MaxBet, иначе потолок выигрыша переполнится
func (s *serv) toCredits(bet decimal.Decimal) (int64, error) {
	credits := bet.Mul(s.cfg.BetUnit())
	if !credits.IsPositive() || !credits.IsInteger() || credits.GreaterThan(decimal.NewFromInt(s.game().MaxBet())) {
		return 0, fmt.Errorf("%w: %s", model.ErrInvalidBet, bet.String())
	}
	return credits.IntPart(), nil
}

func (s *serv) toMoney(credits int64) decimal.Decimal {
	return decimal.NewFromInt(credits).Div(s.cfg.BetUnit())
}

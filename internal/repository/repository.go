package repository

import (
	"context"

	repoModel "genesis_reels/internal/repository/stats_repo/model"
	servModel "genesis_reels/internal/service/cascade/model"
)

type SessionRepository interface {
	// GetActive возвращает nil без ошибки, если сессии нет
	GetActive(ctx context.Context, playerID string) (*servModel.Session, error)
	Save(ctx context.Context, session *servModel.Session) error
	Close(ctx context.Context, playerID string) error
}

type StatsRepository interface {
	Record(rec repoModel.SpinRecord)
	Snapshot() servModel.Stats
}

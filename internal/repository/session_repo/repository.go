package session_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"genesis_reels/internal/repository"
	servModel "genesis_reels/internal/service/cascade/model"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table     = "cascade_sessions"
	playerId  = "player_id"
	sessionId = "session_id"
	state     = "state"
	updatedAt = "updated_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
	now    func() time.Time
}

func NewSessionRepository(dbc *pgxpool.Pool) repository.SessionRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
		now:    time.Now,
	}
}

// GetActive - сессия фриспинов игрока
// Возвращает nil, если записи нет
func (r *repo) GetActive(ctx context.Context, id string) (*servModel.Session, error) {
	query := sq.Select(sessionId, state, updatedAt).
		From(table).
		Where(sq.Eq{playerId: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var (
		sid uuid.UUID
		raw []byte
		ts  time.Time
	)
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&sid, &raw, &ts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select session: %w", err)
	}

	st, err := decodeState(raw)
	if err != nil {
		return nil, err
	}

	return &servModel.Session{
		ID:        sid,
		PlayerID:  id,
		State:     st,
		UpdatedAt: ts,
	}, nil
}

// Save - сохранение состояния сессии
// Создает запись, если ее нет
func (r *repo) Save(ctx context.Context, s *servModel.Session) error {
	stateStr, err := encodeState(s.State)
	if err != nil {
		return err
	}
	s.UpdatedAt = r.now()
	conn := r.getter.DefaultTrOrDB(ctx, r.dbc)

	query := sq.Update(table).
		Set(sessionId, s.ID).
		Set(state, stateStr).
		Set(updatedAt, s.UpdatedAt).
		Where(sq.Eq{playerId: s.PlayerID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := conn.Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}

	if res.RowsAffected() == 0 {
		insertQuery := sq.Insert(table).
			Columns(playerId, sessionId, state, updatedAt).
			Values(s.PlayerID, s.ID, stateStr, s.UpdatedAt).
			PlaceholderFormat(sq.Dollar)

		sqlStr, args, err = insertQuery.ToSql()
		if err != nil {
			return err
		}

		_, err = conn.Exec(ctx, sqlStr, args...)
		if err != nil {
			return fmt.Errorf("insert session: %w", err)
		}
	}
	return nil
}

// Close - удаление завершенной сессии
func (r *repo) Close(ctx context.Context, id string) error {
	query := sq.Delete(table).
		Where(sq.Eq{playerId: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

package middleware

import (
	"context"
	"net/http"
	"strings"
)

const (
	PlayerHeader = "X-Player-ID"

	maxPlayerIDLen = 64
)

type playerKey struct{}

// Player кладет идентификатор игрока из заголовка в контекст запроса
func Player(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(PlayerHeader))
		if id == "" {
			http.Error(w, "missing "+PlayerHeader+" header", http.StatusUnauthorized)
			return
		}
		if len(id) > maxPlayerIDLen {
			http.Error(w, "player id is too long", http.StatusBadRequest)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithPlayerID(r.Context(), id)))
	})
}

func WithPlayerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, playerKey{}, id)
}

func PlayerID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(playerKey{}).(string)
	return id, ok && id != ""
}

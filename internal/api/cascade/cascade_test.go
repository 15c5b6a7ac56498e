package cascade

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "genesis_reels/internal/api/dto/cascade"
	"genesis_reels/internal/engine/tumble"
	"genesis_reels/internal/middleware"
	"genesis_reels/internal/model"
	servModel "genesis_reels/internal/service/cascade/model"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

type servStub struct {
	cfg     *model.GameConfig
	err     error
	lastBet decimal.Decimal
}

func (s *servStub) spin(seed int64) *tumble.Result {
	res, err := tumble.Spin(s.cfg, 100, tumble.Options{Seed: &seed})
	if err != nil {
		panic(err)
	}
	return res
}

func (s *servStub) Spin(_ context.Context, _ string, r servModel.SpinRequest) (*servModel.SpinResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastBet = r.Bet
	res := s.spin(5)
	return &servModel.SpinResult{Spin: res, Bet: r.Bet, Win: decimal.NewFromInt(res.TotalWin).Shift(-2)}, nil
}

func (s *servStub) BuyBonus(_ context.Context, _ string, r servModel.BuyBonusRequest) (*servModel.BuyBonusResult, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &servModel.BuyBonusResult{Cost: r.Bet.Mul(decimal.NewFromInt(100)), Session: servModel.SessionSummary{Active: true, SpinsLeft: 15}}, nil
}

func (s *servStub) State(context.Context, string) (*servModel.SessionSummary, error) {
	return &servModel.SessionSummary{}, s.err
}

func (s *servStub) Stats() servModel.Stats { return servModel.Stats{Spins: 3} }

func (s *servStub) Replay(r servModel.ReplayRequest) (*tumble.Result, error) {
	if r.Mode != "" {
		return nil, fmt.Errorf("%w: mode", model.ErrInvalidConfiguration)
	}
	return s.spin(r.Seed), nil
}

func newHandler(err error) (*Handler, *servStub) {
	cfg := model.DefaultGameConfig()
	stub := &servStub{cfg: &cfg, err: err}
	return NewHandler(HandlerDeps{Serv: stub, Game: &cfg}), stub
}

func call(h http.HandlerFunc, body string, player string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if player != "" {
		r = r.WithContext(middleware.WithPlayerID(r.Context(), player))
	}
	w := httptest.NewRecorder()
	h(w, r)
	return w
}

func TestSpinHandler(t *testing.T) {
	h, stub := newHandler(nil)
	w := call(h.Spin, `{"bet":"2.50","seed":5}`, "p1")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}
	if !stub.lastBet.Equal(decimal.RequireFromString("2.5")) {
		t.Errorf("bet = %s", stub.lastBet)
	}

	var out dto.SpinResponse
	if err := jsoniter.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Board) != 7 || len(out.Board[0]) != 7 || len(out.Multipliers) != 7 {
		t.Fatal("board and multipliers must be 7x7")
	}
	if out.Events[0].Type != model.EventSpinStart || out.Events[len(out.Events)-1].Type != model.EventSpinEnd {
		t.Error("events must keep their order")
	}
}

func TestSpinHandlerStatuses(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		body   string
		player string
		status int
	}{
		{"no player", nil, `{"bet":1}`, "", http.StatusUnauthorized},
		{"bad json", nil, `{"bet":true}`, "p1", http.StatusBadRequest},
		{"validation", fmt.Errorf("%w: 0", model.ErrInvalidBet), `{"bet":0}`, "p1", http.StatusBadRequest},
		{"internal", errors.New("db down"), `{"bet":1}`, "p1", http.StatusInternalServerError},
	}
	for _, tc := range cases {
		h, _ := newHandler(tc.err)
		if w := call(h.Spin, tc.body, tc.player); w.Code != tc.status {
			t.Errorf("%s: status %d, want %d", tc.name, w.Code, tc.status)
		}
	}

	h, _ := newHandler(errors.New("db down"))
	if w := call(h.Spin, `{"bet":1}`, "p1"); strings.Contains(w.Body.String(), "db down") {
		t.Error("internal errors must not leak")
	}
}

func TestBuyBonusHandler(t *testing.T) {
	h, _ := newHandler(nil)
	w := call(h.BuyBonus, `{"bet":1}`, "p1")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"spins_left":15`) {
		t.Fatalf("status %d: %s", w.Code, w.Body.String())
	}

	h, _ = newHandler(servModel.ErrSessionActive)
	if w = call(h.BuyBonus, `{"bet":1}`, "p1"); w.Code != http.StatusConflict {
		t.Errorf("active session: status %d", w.Code)
	}
}

func TestReplayAndStatsHandlers(t *testing.T) {
	h, _ := newHandler(nil)
	w := call(h.Replay, `{"seed":5}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("replay status %d", w.Code)
	}
	var out dto.ReplayResponse
	if err := jsoniter.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Seed != 5 {
		t.Fatalf("replay response %+v %v", out, err)
	}
	if w = call(h.Replay, `{"seed":5,"mode":"turbo"}`, ""); w.Code != http.StatusBadRequest {
		t.Errorf("bad mode: status %d", w.Code)
	}

	w = call(h.Stats, "", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"spins":3`) {
		t.Errorf("stats: %d %s", w.Code, w.Body.String())
	}

	w = call(h.State, "", "p1")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"active":false`) {
		t.Errorf("state: %d %s", w.Code, w.Body.String())
	}
}

package cascade

import (
	"errors"
	"net/http"

	dto "genesis_reels/internal/api/dto/cascade"
	"genesis_reels/internal/converter"
	"genesis_reels/internal/middleware"
	"genesis_reels/internal/model"
	"genesis_reels/internal/service"
	servModel "genesis_reels/internal/service/cascade/model"
	"genesis_reels/pkg/req"
	"genesis_reels/pkg/resp"

	"go.uber.org/zap"
)

type HandlerDeps struct {
	Serv service.CascadeService
	Game *model.GameConfig
	Log  *zap.Logger
}

type Handler struct {
	serv service.CascadeService
	game *model.GameConfig
	log  *zap.Logger
}

func NewHandler(deps HandlerDeps) *Handler {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{serv: deps.Serv, game: deps.Game, log: log}
}

func (h *Handler) Spin(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.PlayerID(r.Context())
	if !ok {
		http.Error(w, "unknown player", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.SpinRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Spin(r.Context(), playerID, converter.ToSpinRequest(payload))
	if err != nil {
		h.writeError(w, err)
		return
	}

	response := converter.ToSpinResponse(*result, h.game)

	resp.WriteJSONResponse(w, http.StatusOK, response)
}

func (h *Handler) BuyBonus(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.PlayerID(r.Context())
	if !ok {
		http.Error(w, "unknown player", http.StatusUnauthorized)
		return
	}

	payload, err := req.Decode[dto.BuyBonusRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.BuyBonus(r.Context(), playerID, converter.ToBuyBonusRequest(payload))
	if err != nil {
		h.writeError(w, err)
		return
	}
	response := converter.ToBuyBonusResponse(*result)

	resp.WriteJSONResponse(w, http.StatusOK, response)
}

func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	playerID, ok := middleware.PlayerID(r.Context())
	if !ok {
		http.Error(w, "unknown player", http.StatusUnauthorized)
		return
	}

	result, err := h.serv.State(r.Context(), playerID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToSessionResponse(*result))
}

func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp.WriteJSONResponse(w, http.StatusOK, converter.ToStatsResponse(h.serv.Stats()))
}

// Replay - спин по сиду без сессии
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	payload, err := req.Decode[dto.ReplayRequest](r.Body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.serv.Replay(converter.ToReplayRequest(payload))
	if err != nil {
		h.writeError(w, err)
		return
	}

	resp.WriteJSONResponse(w, http.StatusOK, converter.ToReplayResponse(result, h.game))
}

// writeError - ошибки ввода 400, занятая сессия 409, остальное 500
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case model.IsValidation(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, servModel.ErrSessionActive):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.log.Error("request failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

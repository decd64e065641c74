package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/jcaldw/trickortreth/internal/api/apierr"
	"github.com/jcaldw/trickortreth/internal/api/request"
	"github.com/jcaldw/trickortreth/internal/api/response"
	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/services/player"
)

// PlayerHandler handles player-related endpoints
type PlayerHandler struct {
	players player.ServiceInterface
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(players player.ServiceInterface) *PlayerHandler {
	return &PlayerHandler{
		players: players,
	}
}

// List handles GET /api/v1/players
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.players.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerListFromModel(players))
}

// Get handles GET /api/v1/players/{fid}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFID(mux.Vars(r)["fid"])
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("fid must be an integer"))
		return
	}

	p, err := h.players.Get(r.Context(), fid)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

// Upsert handles POST /api/v1/players
func (h *PlayerHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req request.UpsertPlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.FID <= 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("fid is required"))
		return
	}

	p, err := h.players.Upsert(r.Context(), model.FID(req.FID),
		req.WalletAddress, req.DisplayName, req.AvatarURL)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.PlayerFromModel(p))
}

func parseFID(raw string) (model.FID, error) {
	fid, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return model.FID(fid), nil
}

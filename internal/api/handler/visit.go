package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/jcaldw/trickortreth/internal/api/apierr"
	"github.com/jcaldw/trickortreth/internal/api/request"
	"github.com/jcaldw/trickortreth/internal/api/response"
	"github.com/jcaldw/trickortreth/internal/doorbell"
	"github.com/jcaldw/trickortreth/internal/model"
	"github.com/jcaldw/trickortreth/internal/services/visit"
)

// VisitHandler handles visit-related endpoints
type VisitHandler struct {
	visits   visit.ControllerInterface
	doorbell *doorbell.Registry
}

// NewVisitHandler creates a new visit handler
func NewVisitHandler(visits visit.ControllerInterface, doorbellRegistry *doorbell.Registry) *VisitHandler {
	return &VisitHandler{
		visits:   visits,
		doorbell: doorbellRegistry,
	}
}

// Create handles POST /api/v1/visits
func (h *VisitHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.VisitorFID <= 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("visitor_fid is required"))
		return
	}
	if req.HomeownerFID <= 0 {
		apierr.WriteError(w, apierr.NewInvalidRequestError("homeowner_fid is required"))
		return
	}

	v, err := h.visits.Create(r.Context(),
		model.FID(req.VisitorFID), model.FID(req.HomeownerFID), req.Message)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	h.doorbell.NotifyVisitCreated(v)

	response.JSON(w, http.StatusCreated, response.VisitFromModel(v))
}

// List handles GET /api/v1/visits?homeowner_fid=
func (h *VisitHandler) List(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFID(r.URL.Query().Get("homeowner_fid"))
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("homeowner_fid must be an integer"))
		return
	}

	visits, err := h.visits.ListUndecided(r.Context(), fid)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.VisitListFromModel(visits))
}

// Decide handles PATCH /api/v1/visits/{id}
func (h *VisitHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id := model.VisitID(mux.Vars(r)["id"])

	var req request.DecideVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Matched == nil && req.Seen == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("at least one of matched or seen is required"))
		return
	}
	// A decision always marks the visit seen; un-seeing is not a thing
	if req.Seen != nil && !*req.Seen {
		apierr.WriteError(w, apierr.NewInvalidRequestError("seen cannot be set to false"))
		return
	}

	accepted := req.Matched != nil && *req.Matched

	v, err := h.visits.RecordDecision(r.Context(), id, accepted)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.VisitFromModel(v))
}

// Events handles GET /api/v1/visits/events?homeowner_fid=
func (h *VisitHandler) Events(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFID(r.URL.Query().Get("homeowner_fid"))
	if err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("homeowner_fid must be an integer"))
		return
	}

	hub := h.doorbell.GetOrCreateHub(fid)
	doorbell.ServeSSE(w, r, hub)
}

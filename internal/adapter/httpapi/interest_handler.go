package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/adapter/httpapi/middleware"
	"github.com/freecosystem/marketplace/internal/interest/usecase"
)

type InterestHandler struct {
	interests *usecase.InterestUsecase
	logger    *zap.Logger
}

func NewInterestHandler(interests *usecase.InterestUsecase, logger *zap.Logger) *InterestHandler {
	return &InterestHandler{interests: interests, logger: logger.Named("InterestHandler")}
}

type createInterestRequest struct {
	ListingID string `json:"listingId"`
	Message   string `json:"message"`
}

func (h *InterestHandler) HandleCreateInterest(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createInterestRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !validObjectID(req.ListingID) {
		respondError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	interest, err := h.interests.CreateInterest(r.Context(), actor.ID, req.ListingID, req.Message)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusCreated, "interest sent", interest)
}

func (h *InterestHandler) HandleReceivedInterests(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, limit := pagination(r)
	interests, total, err := h.interests.ReceivedInterests(r.Context(), actor.ID, page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"interests": interests, "total": total})
}

func (h *InterestHandler) HandleSentInterests(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, limit := pagination(r)
	interests, total, err := h.interests.SentInterests(r.Context(), actor.ID, page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"interests": interests, "total": total})
}

func (h *InterestHandler) HandleCheckInterest(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	listingID := chi.URLParam(r, "listingId")
	if !validObjectID(listingID) {
		respondError(w, http.StatusBadRequest, "invalid listing id")
		return
	}
	exists, err := h.interests.CheckInterest(r.Context(), actor.ID, listingID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"exists": exists})
}

type respondInterestRequest struct {
	Accept bool `json:"accept"`
}

func (h *InterestHandler) HandleRespondToInterest(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")
	if !validObjectID(id) {
		respondError(w, http.StatusBadRequest, "invalid interest id")
		return
	}

	var req respondInterestRequest
	if !decodeBody(w, r, &req) {
		return
	}

	interest, err := h.interests.RespondToInterest(r.Context(), id, actor.ID, req.Accept)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "interest updated", interest)
}

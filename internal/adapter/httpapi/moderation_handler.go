package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/adapter/httpapi/middleware"
	interestusecase "github.com/freecosystem/marketplace/internal/interest/usecase"
	listingdomain "github.com/freecosystem/marketplace/internal/listing/domain"
	listingusecase "github.com/freecosystem/marketplace/internal/listing/usecase"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
	"github.com/freecosystem/marketplace/internal/moderation/usecase"
	userusecase "github.com/freecosystem/marketplace/internal/user/usecase"
)

// families maps the URL segment onto the entity family.
var families = map[string]moderation.Family{
	"users":     moderation.FamilyUser,
	"listings":  moderation.FamilyListing,
	"interests": moderation.FamilyInterest,
}

type moderateRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
	Role   string `json:"role"`
}

type bulkModerateRequest struct {
	IDs    []string `json:"ids"`
	Action string   `json:"action"`
	Reason string   `json:"reason"`
	Role   string   `json:"role"`
}

// moderator is the shared surface of both facades.
type moderator interface {
	Moderate(ctx context.Context, req usecase.ModerateRequest) (*moderation.Snapshot, error)
	BulkModerate(ctx context.Context, req usecase.BulkRequest) (usecase.BulkResult, error)
}

// ModerationHandler serves both the moderator and the admin surface; the
// router decides which facade and which role gate a route group gets.
type ModerationHandler struct {
	listings  *listingusecase.ListingUsecase
	users     *userusecase.UserUsecase
	interests *interestusecase.InterestUsecase
	logger    *zap.Logger
}

func NewModerationHandler(listings *listingusecase.ListingUsecase, users *userusecase.UserUsecase, interests *interestusecase.InterestUsecase, logger *zap.Logger) *ModerationHandler {
	return &ModerationHandler{
		listings:  listings,
		users:     users,
		interests: interests,
		logger:    logger.Named("ModerationHandler"),
	}
}

// HandleModerate applies one action to one entity through the given facade.
func (h *ModerationHandler) HandleModerate(surface moderator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		family, ok := families[chi.URLParam(r, "family")]
		if !ok {
			respondError(w, http.StatusBadRequest, "unknown entity family")
			return
		}
		id := chi.URLParam(r, "id")
		if !validObjectID(id) {
			respondError(w, http.StatusBadRequest, "invalid entity id")
			return
		}

		var req moderateRequest
		if !decodeBody(w, r, &req) {
			return
		}

		snap, err := surface.Moderate(r.Context(), usecase.ModerateRequest{
			Family:   family,
			EntityID: id,
			Action:   moderation.Action(req.Action),
			Actor:    actor,
			Reason:   req.Reason,
			Role:     moderation.Role(req.Role),
		})
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		if family == moderation.FamilyListing {
			h.listings.Invalidate(r.Context(), id)
		}
		respondMessage(w, http.StatusOK, "moderation applied", snap)
	}
}

// HandleBulkModerate applies one action to a set of ids.
func (h *ModerationHandler) HandleBulkModerate(surface moderator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := middleware.ActorFromContext(r.Context())
		if !ok {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		family, ok := families[chi.URLParam(r, "family")]
		if !ok {
			respondError(w, http.StatusBadRequest, "unknown entity family")
			return
		}

		var req bulkModerateRequest
		if !decodeBody(w, r, &req) {
			return
		}
		for _, id := range req.IDs {
			if !validObjectID(id) {
				respondError(w, http.StatusBadRequest, "invalid entity id: "+id)
				return
			}
		}

		result, err := surface.BulkModerate(r.Context(), usecase.BulkRequest{
			Family:    family,
			EntityIDs: req.IDs,
			Action:    moderation.Action(req.Action),
			Actor:     actor,
			Reason:    req.Reason,
			Role:      moderation.Role(req.Role),
		})
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		if family == moderation.FamilyListing {
			for _, id := range req.IDs {
				h.listings.Invalidate(r.Context(), id)
			}
		}
		respondJSON(w, http.StatusOK, map[string]int64{"matchedCount": result.MatchedCount})
	}
}

// HandleListingQueue is the listing review queue, filtered by status (default
// pending) and optionally by type.
func (h *ModerationHandler) HandleListingQueue(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	q := r.URL.Query()

	listings, total, err := h.listings.ListForModeration(r.Context(),
		listingdomain.Type(q.Get("type")),
		moderation.Status(q.Get("status")),
		page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"listings": listings, "total": total})
}

func (h *ModerationHandler) HandleUserQueue(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, limit := pagination(r)
	users, total, err := h.users.ListForModeration(r.Context(), actor,
		moderation.Status(r.URL.Query().Get("status")), page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users, "total": total})
}

func (h *ModerationHandler) HandleInterestQueue(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, limit := pagination(r)
	interests, total, err := h.interests.ListForModeration(r.Context(), actor,
		moderation.Status(r.URL.Query().Get("status")), page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"interests": interests, "total": total})
}

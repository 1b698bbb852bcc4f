package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/adapter/httpapi/middleware"
	"github.com/freecosystem/marketplace/internal/user/usecase"
)

type UserHandler struct {
	users  *usecase.UserUsecase
	logger *zap.Logger
}

func NewUserHandler(users *usecase.UserUsecase, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger.Named("UserHandler")}
}

func (h *UserHandler) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	user, err := h.users.GetProfile(r.Context(), actor.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

type updateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Pincode   string `json:"pincode"`
	State     string `json:"state"`
	City      string `json:"city"`
}

func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.users.UpdateProfile(r.Context(), actor.ID, req.FirstName, req.LastName, req.Pincode, req.State, req.City)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "profile updated", user)
}

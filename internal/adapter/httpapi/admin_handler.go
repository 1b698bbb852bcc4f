package httpapi

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/adapter/httpapi/middleware"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
	"github.com/freecosystem/marketplace/internal/moderation/usecase"
	sysconfigdomain "github.com/freecosystem/marketplace/internal/sysconfig/domain"
	sysconfigusecase "github.com/freecosystem/marketplace/internal/sysconfig/usecase"
	userdomain "github.com/freecosystem/marketplace/internal/user/domain"
	userusecase "github.com/freecosystem/marketplace/internal/user/usecase"
)

// AdminHandler serves the admin-only surface: dashboards, the user directory
// and the system configuration. Moderation actions go through
// ModerationHandler with the admin facade.
type AdminHandler struct {
	moderators *usecase.ModeratorFacade
	admins     *usecase.AdminFacade
	users      *userusecase.UserUsecase
	sysconfig  *sysconfigusecase.Service
	logger     *zap.Logger
}

func NewAdminHandler(moderators *usecase.ModeratorFacade, admins *usecase.AdminFacade, users *userusecase.UserUsecase, sysconfig *sysconfigusecase.Service, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		moderators: moderators,
		admins:     admins,
		users:      users,
		sysconfig:  sysconfig,
		logger:     logger.Named("AdminHandler"),
	}
}

func (h *AdminHandler) HandleModeratorDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.moderators.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, dash)
}

func (h *AdminHandler) HandleAdminDashboard(w http.ResponseWriter, r *http.Request) {
	dash, err := h.admins.Dashboard(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, dash)
}

func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, limit := pagination(r)
	q := r.URL.Query()

	users, total, err := h.users.ListUsers(r.Context(), actor, userdomain.Filter{
		Role:   moderation.Role(q.Get("role")),
		Status: moderation.Status(q.Get("status")),
		Search: q.Get("search"),
		Page:   page,
		Limit:  limit,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users, "total": total})
}

func (h *AdminHandler) HandleGetSystemConfig(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.sysconfig.Get(r.Context()))
}

func (h *AdminHandler) HandleUpdateSystemConfig(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	var cfg sysconfigdomain.SystemConfig
	if !decodeBody(w, r, &cfg) {
		return
	}
	updated, err := h.sysconfig.Update(r.Context(), actor, cfg)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "system config updated", updated)
}

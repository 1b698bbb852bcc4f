package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/adapter/httpapi/middleware"
	"github.com/freecosystem/marketplace/internal/notification/usecase"
)

type NotificationHandler struct {
	notifications *usecase.NotificationUsecase
	logger        *zap.Logger
}

func NewNotificationHandler(notifications *usecase.NotificationUsecase, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger.Named("NotificationHandler")}
}

func (h *NotificationHandler) HandleMyNotifications(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	page, limit := pagination(r)
	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, total, err := h.notifications.MyNotifications(r.Context(), actor.ID, unreadOnly, page, limit)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"notifications": notifications, "total": total})
}

func (h *NotificationHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	count, err := h.notifications.UnreadCount(r.Context(), actor.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")
	if !validObjectID(id) {
		respondError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := h.notifications.MarkRead(r.Context(), id, actor.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "notification marked read", nil)
}

func (h *NotificationHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	updated, err := h.notifications.MarkAllRead(r.Context(), actor.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"updated": updated})
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/freecosystem/marketplace/internal/adapter/httpapi/middleware"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
	moderationusecase "github.com/freecosystem/marketplace/internal/moderation/usecase"
)

type RouterDeps struct {
	Listings      *ListingHandler
	Interests     *InterestHandler
	Notifications *NotificationHandler
	Users         *UserHandler
	Moderation    *ModerationHandler
	Admin         *AdminHandler

	ModeratorFacade *moderationusecase.ModeratorFacade
	AdminFacade     *moderationusecase.AdminFacade

	Maintenance MaintenanceChecker

	JWTSecret      string
	RequestTimeout time.Duration
}

func NewRouter(deps RouterDeps) *chi.Mux {
	mux := chi.NewRouter()
	mux.Use(chimiddleware.RequestID)
	mux.Use(chimiddleware.RealIP)
	mux.Use(chimiddleware.Recoverer)
	if deps.RequestTimeout > 0 {
		mux.Use(chimiddleware.Timeout(deps.RequestTimeout))
	}

	auth := middleware.JWTAuth(deps.JWTSecret)
	modOnly := middleware.RequireRole(moderation.RoleModerator, moderation.RoleAdmin)
	adminOnly := middleware.RequireRole(moderation.RoleAdmin)
	maintenance := maintenanceGate(deps.Maintenance)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Public browse.
	mux.Group(func(r chi.Router) {
		r.Use(maintenance)

		r.Get("/api/listings/{type}", deps.Listings.HandleSearchListings)
		r.Get("/api/listings/{type}/{id}", deps.Listings.HandleGetListing)
	})

	// Authenticated self-service.
	mux.Group(func(r chi.Router) {
		r.Use(maintenance, auth)

		r.Post("/api/listings/{type}", deps.Listings.HandleCreateListing)
		r.Put("/api/listings/{type}/{id}", deps.Listings.HandleUpdateListing)
		r.Delete("/api/listings/{type}/{id}", deps.Listings.HandleDeactivateListing)
		r.Post("/api/listings/images", deps.Listings.HandleUploadImages)
		r.Get("/api/my-listings", deps.Listings.HandleMyListings)

		r.Post("/api/interests", deps.Interests.HandleCreateInterest)
		r.Get("/api/interests/received", deps.Interests.HandleReceivedInterests)
		r.Get("/api/interests/sent", deps.Interests.HandleSentInterests)
		r.Get("/api/interests/check/{listingId}", deps.Interests.HandleCheckInterest)
		r.Put("/api/interests/{id}/respond", deps.Interests.HandleRespondToInterest)

		r.Get("/api/notifications", deps.Notifications.HandleMyNotifications)
		r.Get("/api/notifications/unread-count", deps.Notifications.HandleUnreadCount)
		r.Put("/api/notifications/{id}/read", deps.Notifications.HandleMarkRead)
		r.Put("/api/notifications/read-all", deps.Notifications.HandleMarkAllRead)

		r.Get("/api/users/me", deps.Users.HandleGetProfile)
		r.Put("/api/users/me", deps.Users.HandleUpdateProfile)
	})

	// Moderator review surface: approve/reject only.
	mux.Route("/api/mod", func(r chi.Router) {
		r.Use(maintenance, auth, modOnly)

		r.Get("/dashboard", deps.Admin.HandleModeratorDashboard)
		r.Get("/queues/listings", deps.Moderation.HandleListingQueue)
		r.Get("/queues/users", deps.Moderation.HandleUserQueue)
		r.Get("/queues/interests", deps.Moderation.HandleInterestQueue)
		r.Post("/{family}/{id}", deps.Moderation.HandleModerate(deps.ModeratorFacade))
		r.Post("/{family}/bulk", deps.Moderation.HandleBulkModerate(deps.ModeratorFacade))
	})

	// Admin surface: the full action vocabulary plus configuration.
	mux.Route("/api/admin", func(r chi.Router) {
		r.Use(auth, adminOnly)

		r.Get("/dashboard", deps.Admin.HandleAdminDashboard)
		r.Get("/users", deps.Admin.HandleListUsers)
		r.Get("/system-config", deps.Admin.HandleGetSystemConfig)
		r.Put("/system-config", deps.Admin.HandleUpdateSystemConfig)
		r.Post("/{family}/{id}", deps.Moderation.HandleModerate(deps.AdminFacade))
		r.Post("/{family}/bulk", deps.Moderation.HandleBulkModerate(deps.AdminFacade))
	})

	return mux
}

package httpapi

import "net/http"

// MaintenanceChecker reports whether the platform is closed for maintenance.
type MaintenanceChecker interface {
	MaintenanceMode() bool
}

// maintenanceGate rejects requests with 503 while maintenance mode is on.
// Admin routes stay open so maintenance mode can be switched back off.
func maintenanceGate(check MaintenanceChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if check != nil && check.MaintenanceMode() {
				respondError(w, http.StatusServiceUnavailable, "service is under maintenance")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

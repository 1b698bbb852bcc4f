package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	interestdomain "github.com/freecosystem/marketplace/internal/interest/domain"
	interestusecase "github.com/freecosystem/marketplace/internal/interest/usecase"
	listingdomain "github.com/freecosystem/marketplace/internal/listing/domain"
	listingusecase "github.com/freecosystem/marketplace/internal/listing/usecase"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
	notificationdomain "github.com/freecosystem/marketplace/internal/notification/domain"
	userdomain "github.com/freecosystem/marketplace/internal/user/domain"
	userusecase "github.com/freecosystem/marketplace/internal/user/usecase"
)

// Every endpoint answers the same envelope so clients never branch on shape.
type response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, status int, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Success: false, Message: message})
}

// writeError maps domain errors onto HTTP statuses. Unknown errors are
// reported as 500 without leaking their text.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, moderation.ErrNotFound),
		errors.Is(err, listingdomain.ErrListingNotFound),
		errors.Is(err, userdomain.ErrUserNotFound),
		errors.Is(err, interestdomain.ErrInterestNotFound),
		errors.Is(err, notificationdomain.ErrNotificationNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, moderation.ErrInvalidAction),
		errors.Is(err, moderation.ErrValidation),
		errors.Is(err, listingdomain.ErrInvalidListingType),
		errors.Is(err, listingdomain.ErrInvalidListingData),
		errors.Is(err, listingdomain.ErrTooManyImages),
		errors.Is(err, interestdomain.ErrSelfInterest),
		errors.Is(err, interestdomain.ErrDuplicateInterest):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, moderation.ErrUnauthorized),
		errors.Is(err, moderation.ErrForbidden),
		errors.Is(err, listingusecase.ErrForbidden),
		errors.Is(err, interestusecase.ErrForbidden),
		errors.Is(err, userusecase.ErrUnauthorized):
		respondError(w, http.StatusForbidden, err.Error())
	default:
		logger.Error("request failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// validObjectID guards the store from malformed ids before any query runs.
func validObjectID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}

func pagination(r *http.Request) (page, limit int64) {
	page, _ = strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	limit, _ = strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

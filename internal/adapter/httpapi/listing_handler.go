package httpapi

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/adapter/httpapi/middleware"
	"github.com/freecosystem/marketplace/internal/listing/domain"
	"github.com/freecosystem/marketplace/internal/listing/usecase"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
)

const maxUploadBytes = 10 << 20

type ListingHandler struct {
	listings *usecase.ListingUsecase
	photos   *usecase.PhotoUsecase
	logger   *zap.Logger
}

func NewListingHandler(listings *usecase.ListingUsecase, photos *usecase.PhotoUsecase, logger *zap.Logger) *ListingHandler {
	return &ListingHandler{listings: listings, photos: photos, logger: logger.Named("ListingHandler")}
}

type createListingRequest struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Images      []string       `json:"images"`
	Details     domain.Details `json:"details"`
}

func (h *ListingHandler) HandleCreateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req createListingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	typ := domain.Type(chi.URLParam(r, "type"))
	listing, err := h.listings.CreateListing(r.Context(), actor.ID, typ, req.Title, req.Description, req.Images, req.Details)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusCreated, "listing created", listing)
}

func (h *ListingHandler) HandleGetListing(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !validObjectID(id) {
		respondError(w, http.StatusBadRequest, "invalid listing id")
		return
	}
	listing, err := h.listings.GetListingByID(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) HandleSearchListings(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)
	q := r.URL.Query()

	// Public search only ever sees live listings.
	filter := domain.Filter{
		Type:   domain.Type(chi.URLParam(r, "type")),
		Status: moderation.StatusActive,
		Query:  q.Get("q"),
		Page:   page,
		Limit:  limit,
		SortBy: q.Get("sortBy"),
		Desc:   q.Get("order") != "asc",
	}

	listings, total, err := h.listings.SearchListings(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"listings": listings,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

func (h *ListingHandler) HandleMyListings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	listings, err := h.listings.MyListings(r.Context(), actor.ID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

type updateListingRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Images      []string        `json:"images"`
	Details     *domain.Details `json:"details"`
}

func (h *ListingHandler) HandleUpdateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")
	if !validObjectID(id) {
		respondError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	var req updateListingRequest
	if !decodeBody(w, r, &req) {
		return
	}

	listing, err := h.listings.UpdateListing(r.Context(), id, actor.ID, domain.Update{
		Title:       req.Title,
		Description: req.Description,
		Images:      req.Images,
		Details:     req.Details,
	})
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "listing updated", listing)
}

func (h *ListingHandler) HandleDeactivateListing(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id := chi.URLParam(r, "id")
	if !validObjectID(id) {
		respondError(w, http.StatusBadRequest, "invalid listing id")
		return
	}
	if err := h.listings.DeactivateListing(r.Context(), id, actor.ID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondMessage(w, http.StatusOK, "listing deactivated", nil)
}

// HandleUploadImages accepts a multipart form with one or more "images"
// parts and returns the stored URLs.
func (h *ListingHandler) HandleUploadImages(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.ActorFromContext(r.Context()); !ok {
		respondError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		respondError(w, http.StatusBadRequest, "no images provided")
		return
	}

	uploads := make([]usecase.ImageUpload, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			respondError(w, http.StatusBadRequest, "unreadable image part")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondError(w, http.StatusBadRequest, "unreadable image part")
			return
		}
		uploads = append(uploads, usecase.ImageUpload{FileName: fh.Filename, Data: data})
	}

	urls, err := h.photos.UploadImages(r.Context(), uploads)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{"urls": urls})
}

package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/listing/domain"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
)

var (
	ErrListingNotFound = domain.ErrListingNotFound
	ErrForbidden       = errors.New("user not authorized to perform this action")
)

// Settings exposes the runtime configuration the listing flow depends on.
type Settings interface {
	RequireModeration(ctx context.Context) bool
	MaxImagesPerListing(ctx context.Context) int
}

type ListingUsecase struct {
	repo     domain.Repository
	cache    domain.Cache
	settings Settings
	logger   *zap.Logger
}

func NewListingUsecase(repo domain.Repository, cache domain.Cache, settings Settings, logger *zap.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:     repo,
		cache:    cache,
		settings: settings,
		logger:   logger.Named("ListingUsecase"),
	}
}

// CreateListing stores a new listing for its owner. New listings start in
// pending unless moderation is disabled marketplace-wide.
func (uc *ListingUsecase) CreateListing(ctx context.Context, userID string, typ domain.Type, title, description string, images []string, details domain.Details) (*domain.Listing, error) {
	if !typ.Valid() {
		return nil, domain.ErrInvalidListingType
	}
	if userID == "" || title == "" {
		return nil, domain.ErrInvalidListingData
	}
	if max := uc.settings.MaxImagesPerListing(ctx); max > 0 && len(images) > max {
		return nil, domain.ErrTooManyImages
	}
	if !details.Matches(typ) {
		return nil, domain.ErrInvalidListingData
	}

	status := moderation.StatusPending
	if !uc.settings.RequireModeration(ctx) {
		status = moderation.StatusActive
	}

	if images == nil {
		images = []string{}
	}
	now := time.Now()
	listing := &domain.Listing{
		Type:        typ,
		UserID:      userID,
		Title:       title,
		Description: description,
		Images:      images,
		Status:      status,
		Details:     details,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("failed to create listing", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("listing created",
		zap.String("listingID", listing.ID),
		zap.String("type", string(typ)),
		zap.String("userID", userID),
		zap.String("status", string(status)))
	return listing, nil
}

// GetListingByID serves from the cache when possible.
func (uc *ListingUsecase) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		if err != nil {
			uc.logger.Warn("listing cache read failed", zap.String("listingID", id), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("listing cache write failed", zap.String("listingID", id), zap.Error(err))
		}
	}
	return listing, nil
}

// SearchListings returns a filtered page plus the total match count.
func (uc *ListingUsecase) SearchListings(ctx context.Context, filter domain.Filter) ([]*domain.Listing, int64, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, domain.ErrInvalidListingType
	}
	return uc.repo.FindByFilter(ctx, filter)
}

// MyListings groups the owner's listings by type.
func (uc *ListingUsecase) MyListings(ctx context.Context, userID string) (map[domain.Type][]*domain.Listing, error) {
	out := make(map[domain.Type][]*domain.Listing, len(domain.Types()))
	for _, typ := range domain.Types() {
		listings, _, err := uc.repo.FindByFilter(ctx, domain.Filter{Type: typ, UserID: userID})
		if err != nil {
			return nil, err
		}
		out[typ] = listings
	}
	return out, nil
}

// ListForModeration is the review queue: listings filtered by status
// (default pending) and optionally by type, newest first.
func (uc *ListingUsecase) ListForModeration(ctx context.Context, typ domain.Type, status moderation.Status, page, limit int64) ([]*domain.Listing, int64, error) {
	if status == "" {
		status = moderation.StatusPending
	}
	return uc.repo.FindByFilter(ctx, domain.Filter{
		Type:   typ,
		Status: status,
		Page:   page,
		Limit:  limit,
	})
}

// UpdateListing applies an owner's edit. Owner, creation time and status are
// not part of the update shape, so they can never be touched here.
func (uc *ListingUsecase) UpdateListing(ctx context.Context, id, userID string, update domain.Update) (*domain.Listing, error) {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.UserID != userID {
		uc.logger.Warn("forbidden listing update",
			zap.String("listingID", id),
			zap.String("ownerID", listing.UserID),
			zap.String("userID", userID))
		return nil, ErrForbidden
	}

	if update.Title != "" {
		listing.Title = update.Title
	}
	if update.Description != "" {
		listing.Description = update.Description
	}
	if update.Images != nil {
		if max := uc.settings.MaxImagesPerListing(ctx); max > 0 && len(update.Images) > max {
			return nil, domain.ErrTooManyImages
		}
		listing.Images = update.Images
	}
	if update.Details != nil {
		// The payload variant is fixed by the listing's type; an edit cannot
		// turn a product into a service.
		if !update.Details.Matches(listing.Type) {
			return nil, domain.ErrInvalidListingData
		}
		listing.Details = *update.Details
	}
	listing.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("failed to update listing", zap.String("listingID", id), zap.Error(err))
		return nil, err
	}
	uc.invalidate(ctx, id)
	return listing, nil
}

// DeactivateListing is the owner's soft delete: status moves to inactive with
// no audit stamp and no notifications.
func (uc *ListingUsecase) DeactivateListing(ctx context.Context, id, userID string) error {
	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.UserID != userID {
		uc.logger.Warn("forbidden listing deactivation",
			zap.String("listingID", id),
			zap.String("ownerID", listing.UserID),
			zap.String("userID", userID))
		return ErrForbidden
	}

	listing.Status = moderation.StatusInactive
	listing.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("failed to deactivate listing", zap.String("listingID", id), zap.Error(err))
		return err
	}
	uc.invalidate(ctx, id)

	uc.logger.Info("listing deactivated by owner", zap.String("listingID", id), zap.String("userID", userID))
	return nil
}

// Invalidate drops the cached copy of a listing, typically after a moderation
// transition applied outside this usecase.
func (uc *ListingUsecase) Invalidate(ctx context.Context, id string) {
	uc.invalidate(ctx, id)
}

func (uc *ListingUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warn("listing cache invalidation failed", zap.String("listingID", id), zap.Error(err))
	}
}

package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/interest/domain"
	listingdomain "github.com/freecosystem/marketplace/internal/listing/domain"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
)

var ErrForbidden = errors.New("user not authorized to perform this action")

// ListingSource resolves the listing an interest points at, mainly to find
// its owner (the interest's receiver).
type ListingSource interface {
	GetListingByID(ctx context.Context, id string) (*listingdomain.Listing, error)
}

// Dispatcher mirrors the notification contract used by the moderation engine.
type Dispatcher interface {
	Dispatch(ctx context.Context, event moderation.NotificationEvent) error
}

type InterestUsecase struct {
	repo       domain.Repository
	listings   ListingSource
	dispatcher Dispatcher
	logger     *zap.Logger
}

func NewInterestUsecase(repo domain.Repository, listings ListingSource, dispatcher Dispatcher, logger *zap.Logger) *InterestUsecase {
	return &InterestUsecase{
		repo:       repo,
		listings:   listings,
		dispatcher: dispatcher,
		logger:     logger.Named("InterestUsecase"),
	}
}

// CreateInterest registers a pending interest of sender in a listing. The
// receiver is the listing's owner; a sender cannot target their own listing
// and cannot express interest in the same listing twice.
func (uc *InterestUsecase) CreateInterest(ctx context.Context, senderID, listingID, message string) (*domain.Interest, error) {
	listing, err := uc.listings.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.UserID == senderID {
		return nil, domain.ErrSelfInterest
	}

	exists, err := uc.repo.Exists(ctx, senderID, listingID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateInterest
	}

	interest := &domain.Interest{
		SenderID:   senderID,
		ReceiverID: listing.UserID,
		ListingID:  listingID,
		Message:    message,
		Status:     moderation.StatusPending,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, interest); err != nil {
		uc.logger.Error("failed to create interest",
			zap.String("senderID", senderID),
			zap.String("listingID", listingID),
			zap.Error(err))
		return nil, err
	}

	uc.logger.Info("interest created",
		zap.String("interestID", interest.ID),
		zap.String("senderID", senderID),
		zap.String("receiverID", interest.ReceiverID),
		zap.String("listingID", listingID))
	return interest, nil
}

func (uc *InterestUsecase) ReceivedInterests(ctx context.Context, userID string, page, limit int64) ([]*domain.Interest, int64, error) {
	return uc.repo.FindByFilter(ctx, domain.Filter{ReceiverID: userID, Page: page, Limit: limit})
}

func (uc *InterestUsecase) SentInterests(ctx context.Context, userID string, page, limit int64) ([]*domain.Interest, int64, error) {
	return uc.repo.FindByFilter(ctx, domain.Filter{SenderID: userID, Page: page, Limit: limit})
}

// CheckInterest reports whether the user already expressed interest in a listing.
func (uc *InterestUsecase) CheckInterest(ctx context.Context, userID, listingID string) (bool, error) {
	return uc.repo.Exists(ctx, userID, listingID)
}

// ListForModeration is the pending-interests queue, newest first.
func (uc *InterestUsecase) ListForModeration(ctx context.Context, actor moderation.Actor, status moderation.Status, page, limit int64) ([]*domain.Interest, int64, error) {
	if !actor.Role.CanModerate() {
		return nil, 0, ErrForbidden
	}
	if status == "" {
		status = moderation.StatusPending
	}
	return uc.repo.FindByFilter(ctx, domain.Filter{Status: status, Page: page, Limit: limit})
}

// RespondToInterest lets the receiver accept or reject an interest aimed at
// them. This is an owner action: no audit stamp is written, and only the
// sender is told about the outcome.
func (uc *InterestUsecase) RespondToInterest(ctx context.Context, id, userID string, accept bool) (*domain.Interest, error) {
	interest, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interest.ReceiverID != userID {
		uc.logger.Warn("forbidden interest response",
			zap.String("interestID", id),
			zap.String("receiverID", interest.ReceiverID),
			zap.String("userID", userID))
		return nil, ErrForbidden
	}

	status := moderation.StatusRejected
	eventType := "interest_rejected"
	message := "Your interest has been declined"
	if accept {
		status = moderation.StatusApproved
		eventType = "interest_accepted"
		message = "Your interest has been accepted"
	}

	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		uc.logger.Error("failed to update interest status", zap.String("interestID", id), zap.Error(err))
		return nil, err
	}
	interest.Status = status

	if err := uc.dispatcher.Dispatch(ctx, moderation.NotificationEvent{
		Recipient: interest.SenderID,
		Type:      eventType,
		Message:   message,
		Related:   moderation.EntityRef{Family: moderation.FamilyInterest, ID: id},
	}); err != nil {
		uc.logger.Error("failed to dispatch interest response notification",
			zap.String("interestID", id), zap.Error(err))
	}

	return interest, nil
}

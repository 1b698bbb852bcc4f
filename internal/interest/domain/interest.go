package domain

import (
	"context"
	"errors"
	"time"

	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
)

var (
	ErrInterestNotFound  = errors.New("interest not found")
	ErrDuplicateInterest = errors.New("interest already exists for this listing")
	ErrSelfInterest      = errors.New("cannot express interest in your own listing")
)

// Interest records one user's interest in another user's listing. The
// sender, receiver and listing references are immutable after creation.
type Interest struct {
	ID         string            `json:"id"`
	SenderID   string            `json:"senderId"`
	ReceiverID string            `json:"receiverId"`
	ListingID  string            `json:"listingId"`
	Message    string            `json:"message,omitempty"`
	Status     moderation.Status `json:"status"`

	ModeratedBy     string     `json:"moderatedBy,omitempty"`
	ModeratedAt     *time.Time `json:"moderatedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

type Filter struct {
	SenderID   string
	ReceiverID string
	ListingID  string
	Status     moderation.Status
	Page       int64
	Limit      int64
}

type Repository interface {
	Create(ctx context.Context, interest *Interest) error
	FindByID(ctx context.Context, id string) (*Interest, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Interest, int64, error)
	Exists(ctx context.Context, senderID, listingID string) (bool, error)
	UpdateStatus(ctx context.Context, id string, status moderation.Status) error
}

package domain

import (
	"context"
	"errors"
	"time"

	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
)

var ErrUserNotFound = errors.New("user not found")

// User is the account record. Credentials, OTP and verification state belong
// to the identity provider and are never stored here.
type User struct {
	ID          string            `json:"id"`
	FirstName   string            `json:"firstName"`
	LastName    string            `json:"lastName"`
	Email       string            `json:"email"`
	PhoneNumber string            `json:"phoneNumber"`
	Gender      string            `json:"gender,omitempty"`
	Pincode     string            `json:"pincode,omitempty"`
	State       string            `json:"state,omitempty"`
	City        string            `json:"city,omitempty"`
	Role        moderation.Role   `json:"role"`
	Status      moderation.Status `json:"status"`

	ModeratedBy     string     `json:"moderatedBy,omitempty"`
	ModeratedAt     *time.Time `json:"moderatedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Filter narrows admin user queries.
type Filter struct {
	Role   moderation.Role
	Status moderation.Status
	Search string // matches name, email or phone, case-insensitive
	Page   int64
	Limit  int64
}

type Repository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*User, int64, error)
	Update(ctx context.Context, user *User) error
	CountAll(ctx context.Context) (int64, error)
}

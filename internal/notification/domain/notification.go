package domain

import (
	"context"
	"errors"
	"time"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is a persisted in-app message for a single user.
type Notification struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Type          string    `json:"type"`
	Title         string    `json:"title"`
	Message       string    `json:"message"`
	RelatedFamily string    `json:"relatedFamily,omitempty"`
	RelatedID     string    `json:"relatedId,omitempty"`
	Read          bool      `json:"read"`
	CreatedAt     time.Time `json:"createdAt"`
}

type Filter struct {
	UserID     string
	UnreadOnly bool
	Page       int64
	Limit      int64
}

type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindByFilter(ctx context.Context, filter Filter) ([]*Notification, int64, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

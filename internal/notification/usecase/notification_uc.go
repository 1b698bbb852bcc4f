package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
	"github.com/freecosystem/marketplace/internal/notification/domain"
	userdomain "github.com/freecosystem/marketplace/internal/user/domain"
)

// EventPublisher pushes a moderation event onto the message bus.
type EventPublisher interface {
	Publish(subject string, payload interface{}) error
}

// Mailer sends transactional mail.
type Mailer interface {
	Send(to, subject, body string) error
}

var titles = map[string]string{
	"listing_approved":  "Listing Approved",
	"listing_rejected":  "Listing Rejected",
	"interest_received": "New Interest",
	"interest_accepted": "Interest Accepted",
	"interest_rejected": "Interest Declined",
	"account_approved":  "Account Approved",
	"account_rejected":  "Account Rejected",
}

// NotificationUsecase persists notifications, mirrors them onto NATS and, for
// account decisions, sends the user an email. It is the Dispatcher the
// moderation engine and the interest flow fan out through.
type NotificationUsecase struct {
	repo      domain.Repository
	users     userdomain.Repository
	publisher EventPublisher
	mailer    Mailer
	logger    *zap.Logger
}

func NewNotificationUsecase(repo domain.Repository, users userdomain.Repository, publisher EventPublisher, mailer Mailer, logger *zap.Logger) *NotificationUsecase {
	return &NotificationUsecase{
		repo:      repo,
		users:     users,
		publisher: publisher,
		mailer:    mailer,
		logger:    logger.Named("NotificationUsecase"),
	}
}

// Dispatch stores the notification and best-effort forwards it to the bus and
// the mailer. Only the store write can fail the call; bus and mail problems
// are logged and swallowed so moderation outcomes never depend on them.
func (uc *NotificationUsecase) Dispatch(ctx context.Context, event moderation.NotificationEvent) error {
	title, ok := titles[event.Type]
	if !ok {
		title = "Notification"
	}

	n := &domain.Notification{
		UserID:        event.Recipient,
		Type:          event.Type,
		Title:         title,
		Message:       event.Message,
		RelatedFamily: string(event.Related.Family),
		RelatedID:     event.Related.ID,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Create(ctx, n); err != nil {
		return err
	}

	if uc.publisher != nil {
		subject := fmt.Sprintf("moderation.%s.%s", event.Related.Family, event.Type)
		if err := uc.publisher.Publish(subject, n); err != nil {
			uc.logger.Error("failed to publish notification event",
				zap.String("subject", subject), zap.Error(err))
		}
	}

	if event.Type == "account_approved" || event.Type == "account_rejected" {
		uc.sendAccountMail(ctx, event, title)
	}

	return nil
}

func (uc *NotificationUsecase) sendAccountMail(ctx context.Context, event moderation.NotificationEvent, subject string) {
	if uc.mailer == nil {
		return
	}
	user, err := uc.users.FindByID(ctx, event.Recipient)
	if err != nil {
		uc.logger.Error("failed to load user for account mail",
			zap.String("userID", event.Recipient), zap.Error(err))
		return
	}
	if user.Email == "" {
		return
	}
	if err := uc.mailer.Send(user.Email, subject, event.Message); err != nil {
		uc.logger.Error("failed to send account mail",
			zap.String("userID", event.Recipient), zap.Error(err))
	}
}

func (uc *NotificationUsecase) MyNotifications(ctx context.Context, userID string, unreadOnly bool, page, limit int64) ([]*domain.Notification, int64, error) {
	return uc.repo.FindByFilter(ctx, domain.Filter{
		UserID:     userID,
		UnreadOnly: unreadOnly,
		Page:       page,
		Limit:      limit,
	})
}

func (uc *NotificationUsecase) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return uc.repo.CountUnread(ctx, userID)
}

// MarkRead flips a single notification; the userID guard keeps users from
// touching each other's rows.
func (uc *NotificationUsecase) MarkRead(ctx context.Context, id, userID string) error {
	return uc.repo.MarkRead(ctx, id, userID)
}

func (uc *NotificationUsecase) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	return uc.repo.MarkAllRead(ctx, userID)
}

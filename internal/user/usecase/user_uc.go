package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
	"github.com/freecosystem/marketplace/internal/user/domain"
)

var ErrUnauthorized = errors.New("unauthorized")

type UserUsecase struct {
	repo   domain.Repository
	logger *zap.Logger
}

func NewUserUsecase(repo domain.Repository, logger *zap.Logger) *UserUsecase {
	return &UserUsecase{repo: repo, logger: logger.Named("UserUsecase")}
}

func (u *UserUsecase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return u.repo.FindByID(ctx, userID)
}

// UpdateProfile applies a user's own edit. Role, status and moderation
// fields are not reachable from here.
func (u *UserUsecase) UpdateProfile(ctx context.Context, userID, firstName, lastName, pincode, state, city string) (*domain.User, error) {
	user, err := u.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if pincode != "" {
		user.Pincode = pincode
	}
	if state != "" {
		user.State = state
	}
	if city != "" {
		user.City = city
	}
	user.UpdatedAt = time.Now()

	if err := u.repo.Update(ctx, user); err != nil {
		u.logger.Error("failed to update profile", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ListUsers is the admin/moderator read view with role, status and search
// filters. Callers reach it only through role-gated routes.
func (u *UserUsecase) ListUsers(ctx context.Context, actor moderation.Actor, filter domain.Filter) ([]*domain.User, int64, error) {
	if !actor.Role.CanModerate() {
		return nil, 0, ErrUnauthorized
	}
	return u.repo.FindByFilter(ctx, filter)
}

// ListForModeration is the pending-accounts queue, newest first.
func (u *UserUsecase) ListForModeration(ctx context.Context, actor moderation.Actor, status moderation.Status, page, limit int64) ([]*domain.User, int64, error) {
	if !actor.Role.CanModerate() {
		return nil, 0, ErrUnauthorized
	}
	if status == "" {
		status = moderation.StatusPending
	}
	return u.repo.FindByFilter(ctx, domain.Filter{Status: status, Page: page, Limit: limit})
}

package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
	"github.com/freecosystem/marketplace/internal/notification/domain"
	userdomain "github.com/freecosystem/marketplace/internal/user/domain"
)

type MockNotificationRepository struct{ mock.Mock }

func (m *MockNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}
func (m *MockNotificationRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Notification, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Notification), args.Get(1).(int64), args.Error(2)
}
func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockNotificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*userdomain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userdomain.User), args.Error(1)
}
func (m *MockUserRepository) FindByFilter(ctx context.Context, filter userdomain.Filter) ([]*userdomain.User, int64, error) {
	args := m.Called(ctx, filter)
	return nil, args.Get(1).(int64), args.Error(2)
}
func (m *MockUserRepository) Update(ctx context.Context, user *userdomain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type recordingPublisher struct {
	subjects []string
	err      error
}

func (p *recordingPublisher) Publish(subject string, _ interface{}) error {
	p.subjects = append(p.subjects, subject)
	return p.err
}

type recordingMailer struct {
	to       []string
	subjects []string
	err      error
}

func (m *recordingMailer) Send(to, subject, _ string) error {
	m.to = append(m.to, to)
	m.subjects = append(m.subjects, subject)
	return m.err
}

func TestDispatchPersistsAndPublishes(t *testing.T) {
	repo := new(MockNotificationRepository)
	users := new(MockUserRepository)
	publisher := &recordingPublisher{}
	uc := NewNotificationUsecase(repo, users, publisher, nil, zap.NewNop())

	repo.On("Create", mock.Anything, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.UserID == "owner-1" && n.Type == "listing_approved" &&
			n.Title == "Listing Approved" && n.RelatedFamily == "listing" && n.RelatedID == "l1"
	})).Return(nil)

	err := uc.Dispatch(context.Background(), moderation.NotificationEvent{
		Recipient: "owner-1",
		Type:      "listing_approved",
		Message:   `Your listing "Bike" has been approved`,
		Related:   moderation.EntityRef{Family: moderation.FamilyListing, ID: "l1"},
	})
	require.NoError(t, err)
	require.Len(t, publisher.subjects, 1)
	assert.Equal(t, "moderation.listing.listing_approved", publisher.subjects[0])
	repo.AssertExpectations(t)
}

func TestDispatchStoreFailureIsFatal(t *testing.T) {
	repo := new(MockNotificationRepository)
	users := new(MockUserRepository)
	publisher := &recordingPublisher{}
	uc := NewNotificationUsecase(repo, users, publisher, nil, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	err := uc.Dispatch(context.Background(), moderation.NotificationEvent{
		Recipient: "owner-1",
		Type:      "listing_approved",
	})
	assert.Error(t, err)
	assert.Empty(t, publisher.subjects)
}

func TestDispatchPublishFailureIsSwallowed(t *testing.T) {
	repo := new(MockNotificationRepository)
	users := new(MockUserRepository)
	publisher := &recordingPublisher{err: assert.AnError}
	uc := NewNotificationUsecase(repo, users, publisher, nil, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.Dispatch(context.Background(), moderation.NotificationEvent{
		Recipient: "owner-1",
		Type:      "listing_rejected",
		Related:   moderation.EntityRef{Family: moderation.FamilyListing, ID: "l1"},
	})
	assert.NoError(t, err)
}

func TestDispatchAccountDecisionSendsMail(t *testing.T) {
	repo := new(MockNotificationRepository)
	users := new(MockUserRepository)
	mail := &recordingMailer{}
	uc := NewNotificationUsecase(repo, users, nil, mail, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("FindByID", mock.Anything, "u1").
		Return(&userdomain.User{ID: "u1", Email: "u1@example.com"}, nil)

	err := uc.Dispatch(context.Background(), moderation.NotificationEvent{
		Recipient: "u1",
		Type:      "account_approved",
		Message:   "Your account has been approved",
		Related:   moderation.EntityRef{Family: moderation.FamilyUser, ID: "u1"},
	})
	require.NoError(t, err)
	require.Len(t, mail.to, 1)
	assert.Equal(t, "u1@example.com", mail.to[0])
	assert.Equal(t, "Account Approved", mail.subjects[0])
}

func TestDispatchMailFailureIsSwallowed(t *testing.T) {
	repo := new(MockNotificationRepository)
	users := new(MockUserRepository)
	mail := &recordingMailer{err: assert.AnError}
	uc := NewNotificationUsecase(repo, users, nil, mail, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	users.On("FindByID", mock.Anything, "u1").
		Return(&userdomain.User{ID: "u1", Email: "u1@example.com"}, nil)

	err := uc.Dispatch(context.Background(), moderation.NotificationEvent{
		Recipient: "u1",
		Type:      "account_rejected",
		Message:   "Your account has been rejected: spam",
		Related:   moderation.EntityRef{Family: moderation.FamilyUser, ID: "u1"},
	})
	assert.NoError(t, err)
}

func TestDispatchNonAccountEventSendsNoMail(t *testing.T) {
	repo := new(MockNotificationRepository)
	users := new(MockUserRepository)
	mail := &recordingMailer{}
	uc := NewNotificationUsecase(repo, users, nil, mail, zap.NewNop())

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	err := uc.Dispatch(context.Background(), moderation.NotificationEvent{
		Recipient: "s1",
		Type:      "interest_accepted",
		Related:   moderation.EntityRef{Family: moderation.FamilyInterest, ID: "i1"},
	})
	require.NoError(t, err)
	assert.Empty(t, mail.to)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestMarkReadScopedToUser(t *testing.T) {
	repo := new(MockNotificationRepository)
	users := new(MockUserRepository)
	uc := NewNotificationUsecase(repo, users, nil, nil, zap.NewNop())

	repo.On("MarkRead", mock.Anything, "n1", "u1").Return(domain.ErrNotificationNotFound)
	err := uc.MarkRead(context.Background(), "n1", "u1")
	assert.ErrorIs(t, err, domain.ErrNotificationNotFound)
}

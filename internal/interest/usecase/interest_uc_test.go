package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/interest/domain"
	listingdomain "github.com/freecosystem/marketplace/internal/listing/domain"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
)

type MockInterestRepository struct{ mock.Mock }

func (m *MockInterestRepository) Create(ctx context.Context, interest *domain.Interest) error {
	args := m.Called(ctx, interest)
	return args.Error(0)
}
func (m *MockInterestRepository) FindByID(ctx context.Context, id string) (*domain.Interest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interest), args.Error(1)
}
func (m *MockInterestRepository) FindByFilter(ctx context.Context, filter domain.Filter) ([]*domain.Interest, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*domain.Interest), args.Get(1).(int64), args.Error(2)
}
func (m *MockInterestRepository) Exists(ctx context.Context, senderID, listingID string) (bool, error) {
	args := m.Called(ctx, senderID, listingID)
	return args.Bool(0), args.Error(1)
}
func (m *MockInterestRepository) UpdateStatus(ctx context.Context, id string, status moderation.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

type stubListingSource struct {
	listing *listingdomain.Listing
	err     error
}

func (s stubListingSource) GetListingByID(context.Context, string) (*listingdomain.Listing, error) {
	return s.listing, s.err
}

type recordingDispatcher struct {
	events []moderation.NotificationEvent
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event moderation.NotificationEvent) error {
	d.events = append(d.events, event)
	return d.err
}

func newTestInterestUsecase(repo domain.Repository, listings ListingSource, dispatcher Dispatcher) *InterestUsecase {
	return NewInterestUsecase(repo, listings, dispatcher, zap.NewNop())
}

func TestCreateInterest(t *testing.T) {
	repo := new(MockInterestRepository)
	listings := stubListingSource{listing: &listingdomain.Listing{ID: "l1", UserID: "receiver-1"}}
	uc := newTestInterestUsecase(repo, listings, &recordingDispatcher{})

	repo.On("Exists", mock.Anything, "sender-1", "l1").Return(false, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(i *domain.Interest) bool {
		return i.SenderID == "sender-1" && i.ReceiverID == "receiver-1" &&
			i.ListingID == "l1" && i.Status == moderation.StatusPending
	})).Return(nil)

	interest, err := uc.CreateInterest(context.Background(), "sender-1", "l1", "still available?")
	require.NoError(t, err)
	assert.Equal(t, "receiver-1", interest.ReceiverID)
	assert.Equal(t, moderation.StatusPending, interest.Status)
	repo.AssertExpectations(t)
}

func TestCreateInterestRejectsOwnListing(t *testing.T) {
	repo := new(MockInterestRepository)
	listings := stubListingSource{listing: &listingdomain.Listing{ID: "l1", UserID: "sender-1"}}
	uc := newTestInterestUsecase(repo, listings, &recordingDispatcher{})

	_, err := uc.CreateInterest(context.Background(), "sender-1", "l1", "")
	assert.ErrorIs(t, err, domain.ErrSelfInterest)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateInterestRejectsDuplicate(t *testing.T) {
	repo := new(MockInterestRepository)
	listings := stubListingSource{listing: &listingdomain.Listing{ID: "l1", UserID: "receiver-1"}}
	uc := newTestInterestUsecase(repo, listings, &recordingDispatcher{})

	repo.On("Exists", mock.Anything, "sender-1", "l1").Return(true, nil)

	_, err := uc.CreateInterest(context.Background(), "sender-1", "l1", "")
	assert.ErrorIs(t, err, domain.ErrDuplicateInterest)
}

func TestCreateInterestUnknownListing(t *testing.T) {
	repo := new(MockInterestRepository)
	listings := stubListingSource{err: listingdomain.ErrListingNotFound}
	uc := newTestInterestUsecase(repo, listings, &recordingDispatcher{})

	_, err := uc.CreateInterest(context.Background(), "sender-1", "missing", "")
	assert.ErrorIs(t, err, listingdomain.ErrListingNotFound)
}

func TestRespondToInterestAccept(t *testing.T) {
	repo := new(MockInterestRepository)
	dispatcher := &recordingDispatcher{}
	uc := newTestInterestUsecase(repo, stubListingSource{}, dispatcher)

	repo.On("FindByID", mock.Anything, "i1").
		Return(&domain.Interest{ID: "i1", SenderID: "s1", ReceiverID: "r1", Status: moderation.StatusPending}, nil)
	repo.On("UpdateStatus", mock.Anything, "i1", moderation.StatusApproved).Return(nil)

	interest, err := uc.RespondToInterest(context.Background(), "i1", "r1", true)
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusApproved, interest.Status)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "s1", dispatcher.events[0].Recipient)
	assert.Equal(t, "interest_accepted", dispatcher.events[0].Type)
	repo.AssertExpectations(t)
}

func TestRespondToInterestReject(t *testing.T) {
	repo := new(MockInterestRepository)
	dispatcher := &recordingDispatcher{}
	uc := newTestInterestUsecase(repo, stubListingSource{}, dispatcher)

	repo.On("FindByID", mock.Anything, "i1").
		Return(&domain.Interest{ID: "i1", SenderID: "s1", ReceiverID: "r1", Status: moderation.StatusPending}, nil)
	repo.On("UpdateStatus", mock.Anything, "i1", moderation.StatusRejected).Return(nil)

	interest, err := uc.RespondToInterest(context.Background(), "i1", "r1", false)
	require.NoError(t, err)
	assert.Equal(t, moderation.StatusRejected, interest.Status)
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "interest_rejected", dispatcher.events[0].Type)
}

func TestRespondToInterestOnlyReceiver(t *testing.T) {
	repo := new(MockInterestRepository)
	uc := newTestInterestUsecase(repo, stubListingSource{}, &recordingDispatcher{})

	repo.On("FindByID", mock.Anything, "i1").
		Return(&domain.Interest{ID: "i1", SenderID: "s1", ReceiverID: "r1"}, nil)

	_, err := uc.RespondToInterest(context.Background(), "i1", "s1", true)
	assert.ErrorIs(t, err, ErrForbidden)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestRespondToInterestDispatchFailureIsNotFatal(t *testing.T) {
	repo := new(MockInterestRepository)
	dispatcher := &recordingDispatcher{err: assert.AnError}
	uc := newTestInterestUsecase(repo, stubListingSource{}, dispatcher)

	repo.On("FindByID", mock.Anything, "i1").
		Return(&domain.Interest{ID: "i1", SenderID: "s1", ReceiverID: "r1"}, nil)
	repo.On("UpdateStatus", mock.Anything, "i1", moderation.StatusApproved).Return(nil)

	_, err := uc.RespondToInterest(context.Background(), "i1", "r1", true)
	assert.NoError(t, err)
}

func TestListForModerationRequiresModeratorRole(t *testing.T) {
	repo := new(MockInterestRepository)
	uc := newTestInterestUsecase(repo, stubListingSource{}, &recordingDispatcher{})

	_, _, err := uc.ListForModeration(context.Background(),
		moderation.Actor{ID: "u1", Role: moderation.RoleUser}, "", 1, 20)
	assert.ErrorIs(t, err, ErrForbidden)

	repo.On("FindByFilter", mock.Anything, mock.MatchedBy(func(f domain.Filter) bool {
		return f.Status == moderation.StatusPending
	})).Return([]*domain.Interest{}, int64(0), nil)

	_, _, err = uc.ListForModeration(context.Background(),
		moderation.Actor{ID: "m1", Role: moderation.RoleModerator}, "", 1, 20)
	assert.NoError(t, err)
}

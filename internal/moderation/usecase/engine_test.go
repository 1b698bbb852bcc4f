package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/freecosystem/marketplace/internal/moderation/domain"
)

type MockEntityStore struct{ mock.Mock }

func (m *MockEntityStore) FindByID(ctx context.Context, family domain.Family, id string) (*domain.Snapshot, error) {
	args := m.Called(ctx, family, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockEntityStore) FindManyByIDs(ctx context.Context, family domain.Family, ids []string) ([]domain.Snapshot, error) {
	args := m.Called(ctx, family, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Snapshot), args.Error(1)
}

func (m *MockEntityStore) ApplyTransition(ctx context.Context, family domain.Family, id string, patch TransitionPatch) (*domain.Snapshot, error) {
	args := m.Called(ctx, family, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockEntityStore) ApplyTransitionMany(ctx context.Context, family domain.Family, ids []string, patch TransitionPatch) (int64, error) {
	args := m.Called(ctx, family, ids, patch)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntityStore) Delete(ctx context.Context, family domain.Family, id string) error {
	args := m.Called(ctx, family, id)
	return args.Error(0)
}

func (m *MockEntityStore) DeleteMany(ctx context.Context, family domain.Family, ids []string) (int64, error) {
	args := m.Called(ctx, family, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntityStore) Count(ctx context.Context, family domain.Family, status domain.Status) (int64, error) {
	args := m.Called(ctx, family, status)
	return args.Get(0).(int64), args.Error(1)
}

// recordingDispatcher collects every event and can be told to fail.
type recordingDispatcher struct {
	events []domain.NotificationEvent
	err    error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, event domain.NotificationEvent) error {
	d.events = append(d.events, event)
	return d.err
}

func newTestEngine(store EntityStore, dispatcher Dispatcher) *Engine {
	return NewEngine(store, dispatcher, zap.NewNop())
}

func TestModerateApprovesListing(t *testing.T) {
	store := new(MockEntityStore)
	dispatcher := &recordingDispatcher{}
	engine := newTestEngine(store, dispatcher)

	snap := &domain.Snapshot{
		ID:      "l1",
		Family:  domain.FamilyListing,
		Status:  domain.StatusActive,
		OwnerID: "owner-1",
		Title:   "Garden table",
	}
	store.On("ApplyTransition", mock.Anything, domain.FamilyListing, "l1",
		mock.MatchedBy(func(p TransitionPatch) bool {
			return p.Status == domain.StatusActive && p.ModeratedBy == "mod-1" && !p.ModeratedAt.IsZero()
		})).Return(snap, nil)

	got, err := engine.Moderate(context.Background(), ModerateRequest{
		Family:   domain.FamilyListing,
		EntityID: "l1",
		Action:   domain.ActionApprove,
		Actor:    domain.Actor{ID: "mod-1", Role: domain.RoleModerator},
	})
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "owner-1", dispatcher.events[0].Recipient)
	assert.Equal(t, "listing_approved", dispatcher.events[0].Type)
	store.AssertExpectations(t)
}

func TestModerateRejectStampsReason(t *testing.T) {
	store := new(MockEntityStore)
	dispatcher := &recordingDispatcher{}
	engine := newTestEngine(store, dispatcher)

	snap := &domain.Snapshot{ID: "u1", Family: domain.FamilyUser, Status: domain.StatusRejected, OwnerID: "u1"}
	store.On("ApplyTransition", mock.Anything, domain.FamilyUser, "u1",
		mock.MatchedBy(func(p TransitionPatch) bool {
			return p.Status == domain.StatusRejected && p.RejectionReason == domain.DefaultRejectionReason
		})).Return(snap, nil)

	_, err := engine.Moderate(context.Background(), ModerateRequest{
		Family:   domain.FamilyUser,
		EntityID: "u1",
		Action:   domain.ActionReject,
		Actor:    domain.Actor{ID: "adm-1", Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "account_rejected", dispatcher.events[0].Type)
	store.AssertExpectations(t)
}

func TestModerateUnknownEntity(t *testing.T) {
	store := new(MockEntityStore)
	engine := newTestEngine(store, &recordingDispatcher{})

	store.On("ApplyTransition", mock.Anything, domain.FamilyListing, "missing", mock.Anything).
		Return(nil, domain.ErrNotFound)

	_, err := engine.Moderate(context.Background(), ModerateRequest{
		Family:   domain.FamilyListing,
		EntityID: "missing",
		Action:   domain.ActionApprove,
		Actor:    domain.Actor{ID: "mod-1", Role: domain.RoleModerator},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestModerateBlankIDFailsBeforeStore(t *testing.T) {
	store := new(MockEntityStore)
	engine := newTestEngine(store, &recordingDispatcher{})

	_, err := engine.Moderate(context.Background(), ModerateRequest{
		Family:   domain.FamilyListing,
		EntityID: "   ",
		Action:   domain.ActionApprove,
		Actor:    domain.Actor{ID: "mod-1", Role: domain.RoleModerator},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	store.AssertNotCalled(t, "ApplyTransition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestModerateDispatchFailureIsNotFatal(t *testing.T) {
	store := new(MockEntityStore)
	dispatcher := &recordingDispatcher{err: assert.AnError}
	engine := newTestEngine(store, dispatcher)

	snap := &domain.Snapshot{ID: "l1", Family: domain.FamilyListing, OwnerID: "owner-1", Title: "Sofa"}
	store.On("ApplyTransition", mock.Anything, domain.FamilyListing, "l1", mock.Anything).Return(snap, nil)

	_, err := engine.Moderate(context.Background(), ModerateRequest{
		Family:   domain.FamilyListing,
		EntityID: "l1",
		Action:   domain.ActionApprove,
		Actor:    domain.Actor{ID: "mod-1", Role: domain.RoleModerator},
	})
	assert.NoError(t, err)
	assert.Len(t, dispatcher.events, 1)
}

func TestModerateDeleteLoadsThenRemoves(t *testing.T) {
	store := new(MockEntityStore)
	dispatcher := &recordingDispatcher{}
	engine := newTestEngine(store, dispatcher)

	snap := &domain.Snapshot{ID: "i1", Family: domain.FamilyInterest}
	store.On("FindByID", mock.Anything, domain.FamilyInterest, "i1").Return(snap, nil)
	store.On("Delete", mock.Anything, domain.FamilyInterest, "i1").Return(nil)

	got, err := engine.Moderate(context.Background(), ModerateRequest{
		Family:   domain.FamilyInterest,
		EntityID: "i1",
		Action:   domain.ActionDelete,
		Actor:    domain.Actor{ID: "adm-1", Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, snap, got)
	// Deletion is silent.
	assert.Empty(t, dispatcher.events)
	store.AssertExpectations(t)
}

func TestBulkModerateCountsMatchedNotModified(t *testing.T) {
	store := new(MockEntityStore)
	dispatcher := &recordingDispatcher{}
	engine := newTestEngine(store, dispatcher)

	ids := []string{"l1", "l2", "l3"}
	// l3 does not exist; l2 is already active but still matches.
	store.On("ApplyTransitionMany", mock.Anything, domain.FamilyListing, ids, mock.Anything).
		Return(int64(2), nil)
	store.On("FindManyByIDs", mock.Anything, domain.FamilyListing, ids).
		Return([]domain.Snapshot{
			{ID: "l1", Family: domain.FamilyListing, OwnerID: "o1", Title: "A"},
			{ID: "l2", Family: domain.FamilyListing, OwnerID: "o2", Title: "B"},
		}, nil)

	result, err := engine.BulkModerate(context.Background(), BulkRequest{
		Family:    domain.FamilyListing,
		EntityIDs: ids,
		Action:    domain.ActionApprove,
		Actor:     domain.Actor{ID: "mod-1", Role: domain.RoleModerator},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.MatchedCount)

	// One notification per affected entity, none for the unknown id.
	require.Len(t, dispatcher.events, 2)
	assert.Equal(t, "o1", dispatcher.events[0].Recipient)
	assert.Equal(t, "o2", dispatcher.events[1].Recipient)
	store.AssertExpectations(t)
}

func TestBulkModerateValidatesWholesale(t *testing.T) {
	store := new(MockEntityStore)
	engine := newTestEngine(store, &recordingDispatcher{})

	_, err := engine.BulkModerate(context.Background(), BulkRequest{
		Family:    domain.FamilyListing,
		EntityIDs: nil,
		Action:    domain.ActionApprove,
		Actor:     domain.Actor{ID: "mod-1", Role: domain.RoleModerator},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = engine.BulkModerate(context.Background(), BulkRequest{
		Family:    domain.FamilyListing,
		EntityIDs: []string{"l1", " "},
		Action:    domain.ActionApprove,
		Actor:     domain.Actor{ID: "mod-1", Role: domain.RoleModerator},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	store.AssertNotCalled(t, "ApplyTransitionMany", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBulkModerateDelete(t *testing.T) {
	store := new(MockEntityStore)
	dispatcher := &recordingDispatcher{}
	engine := newTestEngine(store, dispatcher)

	ids := []string{"u1", "u2"}
	store.On("DeleteMany", mock.Anything, domain.FamilyUser, ids).Return(int64(1), nil)

	result, err := engine.BulkModerate(context.Background(), BulkRequest{
		Family:    domain.FamilyUser,
		EntityIDs: ids,
		Action:    domain.ActionDelete,
		Actor:     domain.Actor{ID: "adm-1", Role: domain.RoleAdmin},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Empty(t, dispatcher.events)
}

func TestBulkModerateInterestApproveFansOutToBothParties(t *testing.T) {
	store := new(MockEntityStore)
	dispatcher := &recordingDispatcher{}
	engine := newTestEngine(store, dispatcher)

	ids := []string{"i1"}
	store.On("ApplyTransitionMany", mock.Anything, domain.FamilyInterest, ids, mock.Anything).
		Return(int64(1), nil)
	store.On("FindManyByIDs", mock.Anything, domain.FamilyInterest, ids).
		Return([]domain.Snapshot{
			{ID: "i1", Family: domain.FamilyInterest, SenderID: "s1", ReceiverID: "r1"},
		}, nil)

	_, err := engine.BulkModerate(context.Background(), BulkRequest{
		Family:    domain.FamilyInterest,
		EntityIDs: ids,
		Action:    domain.ActionApprove,
		Actor:     domain.Actor{ID: "mod-1", Role: domain.RoleModerator},
	})
	require.NoError(t, err)
	require.Len(t, dispatcher.events, 2)
	assert.Equal(t, "interest_accepted", dispatcher.events[0].Type)
	assert.Equal(t, "interest_received", dispatcher.events[1].Type)
}

func TestBulkModerateFanOutLoadFailureIsNotFatal(t *testing.T) {
	store := new(MockEntityStore)
	dispatcher := &recordingDispatcher{}
	engine := newTestEngine(store, dispatcher)

	ids := []string{"l1"}
	store.On("ApplyTransitionMany", mock.Anything, domain.FamilyListing, ids, mock.Anything).
		Return(int64(1), nil)
	store.On("FindManyByIDs", mock.Anything, domain.FamilyListing, ids).
		Return(nil, assert.AnError)

	result, err := engine.BulkModerate(context.Background(), BulkRequest{
		Family:    domain.FamilyListing,
		EntityIDs: ids,
		Action:    domain.ActionApprove,
		Actor:     domain.Actor{ID: "mod-1", Role: domain.RoleModerator},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)
	assert.Empty(t, dispatcher.events)
}

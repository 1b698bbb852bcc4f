package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow   = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	moderator = Actor{ID: "mod-1", Role: RoleModerator}
	admin     = Actor{ID: "adm-1", Role: RoleAdmin}
)

func TestEvaluateTargetStatuses(t *testing.T) {
	cases := []struct {
		family Family
		action Action
		want   Status
	}{
		{FamilyListing, ActionApprove, StatusActive},
		{FamilyListing, ActionReject, StatusRejected},
		{FamilyListing, ActionActivate, StatusActive},
		{FamilyListing, ActionDeactivate, StatusInactive},
		{FamilyUser, ActionApprove, StatusActive},
		{FamilyUser, ActionReject, StatusRejected},
		{FamilyUser, ActionSuspend, StatusSuspended},
		{FamilyUser, ActionDeactivate, StatusInactive},
		{FamilyInterest, ActionApprove, StatusApproved},
		{FamilyInterest, ActionReject, StatusRejected},
	}
	for _, tc := range cases {
		plan, err := Evaluate(Request{Family: tc.family, Action: tc.action, Actor: admin}, testNow)
		require.NoError(t, err, "%s/%s", tc.family, tc.action)
		assert.Equal(t, tc.want, plan.NewStatus, "%s/%s", tc.family, tc.action)
		assert.False(t, plan.Delete)
		assert.Equal(t, "adm-1", plan.Stamp.By)
		assert.Equal(t, testNow, plan.Stamp.At)
	}
}

func TestEvaluateRejectsUndefinedActions(t *testing.T) {
	cases := []struct {
		family Family
		action Action
	}{
		{FamilyListing, ActionSuspend},
		{FamilyListing, ActionSetRole},
		{FamilyInterest, ActionActivate},
		{FamilyInterest, ActionDeactivate},
		{FamilyInterest, ActionSuspend},
		{FamilyInterest, ActionSetRole},
		{FamilyUser, Action("publish")},
	}
	for _, tc := range cases {
		_, err := Evaluate(Request{Family: tc.family, Action: tc.action, Actor: admin}, testNow)
		assert.ErrorIs(t, err, ErrInvalidAction, "%s/%s", tc.family, tc.action)
	}
}

func TestEvaluateRoleGating(t *testing.T) {
	_, err := Evaluate(Request{Family: FamilyListing, Action: ActionApprove, Actor: Actor{ID: "u1", Role: RoleUser}}, testNow)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// setRole is admin-only even though moderators can moderate users.
	_, err = Evaluate(Request{Family: FamilyUser, Action: ActionSetRole, Actor: moderator, Role: RoleModerator}, testNow)
	assert.ErrorIs(t, err, ErrUnauthorized)

	plan, err := Evaluate(Request{Family: FamilyUser, Action: ActionSetRole, Actor: admin, Role: RoleModerator}, testNow)
	require.NoError(t, err)
	assert.Equal(t, RoleModerator, plan.NewRole)
	assert.Empty(t, plan.NewStatus)
}

func TestEvaluateSetRoleRequiresValidRole(t *testing.T) {
	_, err := Evaluate(Request{Family: FamilyUser, Action: ActionSetRole, Actor: admin, Role: Role("superuser")}, testNow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEvaluateInvalidFamily(t *testing.T) {
	_, err := Evaluate(Request{Family: Family("orders"), Action: ActionApprove, Actor: admin}, testNow)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEvaluateRejectionReasonDefaults(t *testing.T) {
	plan, err := Evaluate(Request{Family: FamilyListing, Action: ActionReject, Actor: moderator}, testNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultRejectionReason, plan.RejectionReason)

	plan, err = Evaluate(Request{Family: FamilyListing, Action: ActionReject, Actor: moderator, Reason: "spam"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "spam", plan.RejectionReason)

	// Non-reject actions never carry a reason.
	plan, err = Evaluate(Request{Family: FamilyListing, Action: ActionApprove, Actor: moderator, Reason: "ignored"}, testNow)
	require.NoError(t, err)
	assert.Empty(t, plan.RejectionReason)
}

func TestEvaluateDelete(t *testing.T) {
	for _, family := range []Family{FamilyUser, FamilyListing, FamilyInterest} {
		plan, err := Evaluate(Request{Family: family, Action: ActionDelete, Actor: admin}, testNow)
		require.NoError(t, err)
		assert.True(t, plan.Delete)
		assert.Empty(t, plan.NewStatus)
	}
}

func TestNotificationsListingFanOut(t *testing.T) {
	snap := Snapshot{ID: "l1", Family: FamilyListing, OwnerID: "owner-1", Title: "Old bike"}

	plan, _ := Evaluate(Request{Family: FamilyListing, Action: ActionApprove, Actor: moderator}, testNow)
	events := plan.Notifications(snap)
	require.Len(t, events, 1)
	assert.Equal(t, "owner-1", events[0].Recipient)
	assert.Equal(t, "listing_approved", events[0].Type)
	assert.Contains(t, events[0].Message, "Old bike")
	assert.Equal(t, EntityRef{Family: FamilyListing, ID: "l1"}, events[0].Related)

	plan, _ = Evaluate(Request{Family: FamilyListing, Action: ActionReject, Actor: moderator, Reason: "blurry photos"}, testNow)
	events = plan.Notifications(snap)
	require.Len(t, events, 1)
	assert.Equal(t, "listing_rejected", events[0].Type)
	assert.Contains(t, events[0].Message, "blurry photos")
}

func TestNotificationsInterestApproveNotifiesBothParties(t *testing.T) {
	snap := Snapshot{ID: "i1", Family: FamilyInterest, SenderID: "sender-1", ReceiverID: "receiver-1"}

	plan, _ := Evaluate(Request{Family: FamilyInterest, Action: ActionApprove, Actor: moderator}, testNow)
	events := plan.Notifications(snap)
	require.Len(t, events, 2)
	assert.Equal(t, "sender-1", events[0].Recipient)
	assert.Equal(t, "interest_accepted", events[0].Type)
	assert.Equal(t, "receiver-1", events[1].Recipient)
	assert.Equal(t, "interest_received", events[1].Type)

	plan, _ = Evaluate(Request{Family: FamilyInterest, Action: ActionReject, Actor: moderator}, testNow)
	events = plan.Notifications(snap)
	require.Len(t, events, 1)
	assert.Equal(t, "sender-1", events[0].Recipient)
	assert.Equal(t, "interest_rejected", events[0].Type)
}

func TestNotificationsUserDecisions(t *testing.T) {
	snap := Snapshot{ID: "u1", Family: FamilyUser, OwnerID: "u1"}

	plan, _ := Evaluate(Request{Family: FamilyUser, Action: ActionApprove, Actor: admin}, testNow)
	events := plan.Notifications(snap)
	require.Len(t, events, 1)
	assert.Equal(t, "u1", events[0].Recipient)
	assert.Equal(t, "account_approved", events[0].Type)

	plan, _ = Evaluate(Request{Family: FamilyUser, Action: ActionReject, Actor: admin}, testNow)
	events = plan.Notifications(snap)
	require.Len(t, events, 1)
	assert.Equal(t, "account_rejected", events[0].Type)
}

func TestNotificationsSilentActions(t *testing.T) {
	snap := Snapshot{ID: "l1", Family: FamilyListing, OwnerID: "owner-1"}
	for _, action := range []Action{ActionActivate, ActionDeactivate} {
		plan, err := Evaluate(Request{Family: FamilyListing, Action: action, Actor: admin}, testNow)
		require.NoError(t, err)
		assert.Empty(t, plan.Notifications(snap), string(action))
	}

	userSnap := Snapshot{ID: "u1", Family: FamilyUser, OwnerID: "u1"}
	plan, err := Evaluate(Request{Family: FamilyUser, Action: ActionSuspend, Actor: admin}, testNow)
	require.NoError(t, err)
	assert.Empty(t, plan.Notifications(userSnap))
}

func TestValidStatusDomains(t *testing.T) {
	assert.True(t, ValidStatus(FamilyUser, StatusSuspended))
	assert.False(t, ValidStatus(FamilyListing, StatusSuspended))
	assert.False(t, ValidStatus(FamilyListing, StatusApproved))
	assert.True(t, ValidStatus(FamilyInterest, StatusApproved))
	assert.False(t, ValidStatus(FamilyInterest, StatusActive))
}

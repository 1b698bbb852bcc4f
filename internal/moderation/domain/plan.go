package domain

import (
	"fmt"
	"time"
)

// DefaultRejectionReason is recorded when a rejection carries no explicit reason.
const DefaultRejectionReason = "Did not meet community guidelines"

// Snapshot is the base moderatable shape shared by all three families. The
// engine and the store exchange snapshots so that the transition machinery
// never has to know family-specific payloads.
type Snapshot struct {
	ID      string `json:"id"`
	Family  Family `json:"family"`
	Status  Status `json:"status"`
	OwnerID string `json:"ownerId,omitempty"` // user: the user itself; listing: the creator

	// Interest references, empty for other families.
	SenderID   string `json:"senderId,omitempty"`
	ReceiverID string `json:"receiverId,omitempty"`
	ListingID  string `json:"listingId,omitempty"`

	Title           string     `json:"title,omitempty"` // used in notification messages, empty for interests
	ModeratedBy     string     `json:"moderatedBy,omitempty"`
	ModeratedAt     *time.Time `json:"moderatedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
}

// AuditStamp records who performed a moderation transition and when. Both
// fields commit together with the status change.
type AuditStamp struct {
	By string
	At time.Time
}

// EntityRef points a notification at the entity whose state changed.
type EntityRef struct {
	Family Family
	ID     string
}

// NotificationEvent is a request to durably record a message for a recipient.
type NotificationEvent struct {
	Recipient string
	Type      string
	Message   string
	Related   EntityRef
}

// Request carries one requested transition into Evaluate.
type Request struct {
	Family Family
	Action Action
	Actor  Actor
	Reason string // reject only
	Role   Role   // setRole only
}

// TransitionPlan is the computed outcome of one legal transition: the new
// status, the audit stamp, and enough context to derive notification events.
type TransitionPlan struct {
	Family          Family
	Action          Action
	NewStatus       Status // empty for delete and setRole
	Delete          bool
	Stamp           AuditStamp
	RejectionReason string // set only when Action is reject
	NewRole         Role   // set only when Action is setRole
}

// Evaluate decides whether the requested transition is legal and, if so,
// returns the plan to apply. It performs no I/O.
func Evaluate(req Request, now time.Time) (*TransitionPlan, error) {
	if !req.Family.Valid() {
		return nil, ErrValidation
	}
	if !req.Actor.Role.CanModerate() {
		return nil, ErrUnauthorized
	}
	if !ValidAction(req.Family, req.Action) {
		return nil, ErrInvalidAction
	}
	if req.Action == ActionSetRole {
		if req.Actor.Role != RoleAdmin {
			return nil, ErrUnauthorized
		}
		if !req.Role.Valid() {
			return nil, ErrValidation
		}
	}

	plan := &TransitionPlan{
		Family: req.Family,
		Action: req.Action,
		Stamp:  AuditStamp{By: req.Actor.ID, At: now},
	}

	switch req.Action {
	case ActionDelete:
		plan.Delete = true
	case ActionSetRole:
		plan.NewRole = req.Role
	default:
		plan.NewStatus = targetStatus[req.Family][req.Action]
	}

	if req.Action == ActionReject {
		plan.RejectionReason = req.Reason
		if plan.RejectionReason == "" {
			plan.RejectionReason = DefaultRejectionReason
		}
	}

	return plan, nil
}

// Notifications derives the fan-out for one affected entity from its
// post-transition snapshot. Delete and the status-only legacy actions
// (activate, deactivate, suspend, setRole) emit nothing.
func (p *TransitionPlan) Notifications(s Snapshot) []NotificationEvent {
	ref := EntityRef{Family: p.Family, ID: s.ID}

	switch {
	case p.Family == FamilyListing && p.Action == ActionApprove:
		return []NotificationEvent{{
			Recipient: s.OwnerID,
			Type:      "listing_approved",
			Message:   fmt.Sprintf("Your listing %q has been approved", s.Title),
			Related:   ref,
		}}
	case p.Family == FamilyListing && p.Action == ActionReject:
		return []NotificationEvent{{
			Recipient: s.OwnerID,
			Type:      "listing_rejected",
			Message:   fmt.Sprintf("Your listing %q has been rejected: %s", s.Title, p.RejectionReason),
			Related:   ref,
		}}
	case p.Family == FamilyInterest && p.Action == ActionApprove:
		return []NotificationEvent{
			{
				Recipient: s.SenderID,
				Type:      "interest_accepted",
				Message:   "Your interest has been approved",
				Related:   ref,
			},
			{
				Recipient: s.ReceiverID,
				Type:      "interest_received",
				Message:   "You have received a new approved interest",
				Related:   ref,
			},
		}
	case p.Family == FamilyInterest && p.Action == ActionReject:
		return []NotificationEvent{{
			Recipient: s.SenderID,
			Type:      "interest_rejected",
			Message:   fmt.Sprintf("Your interest has been rejected: %s", p.RejectionReason),
			Related:   ref,
		}}
	case p.Family == FamilyUser && p.Action == ActionApprove:
		return []NotificationEvent{{
			Recipient: s.ID,
			Type:      "account_approved",
			Message:   "Your account has been approved",
			Related:   ref,
		}}
	case p.Family == FamilyUser && p.Action == ActionReject:
		return []NotificationEvent{{
			Recipient: s.ID,
			Type:      "account_rejected",
			Message:   fmt.Sprintf("Your account has been rejected: %s", p.RejectionReason),
			Related:   ref,
		}}
	}
	return nil
}

package domain

// Action is a moderation action. The vocabulary is the superset across all
// families; Evaluate accepts only the subset defined for the target family.
type Action string

const (
	ActionApprove    Action = "approve"
	ActionReject     Action = "reject"
	ActionActivate   Action = "activate"
	ActionDeactivate Action = "deactivate"
	ActionSuspend    Action = "suspend"
	ActionSetRole    Action = "setRole"
	ActionDelete     Action = "delete"
)

// targetStatus maps every non-delete action to the status it moves the entity
// into. Transitions are valid from any current status: a rejected listing can
// be approved straight back to active, which re-moderation flows rely on.
var targetStatus = map[Family]map[Action]Status{
	FamilyUser: {
		ActionApprove:    StatusActive,
		ActionReject:     StatusRejected,
		ActionActivate:   StatusActive,
		ActionDeactivate: StatusInactive,
		ActionSuspend:    StatusSuspended,
	},
	FamilyListing: {
		ActionApprove:    StatusActive,
		ActionReject:     StatusRejected,
		ActionActivate:   StatusActive,
		ActionDeactivate: StatusInactive,
	},
	FamilyInterest: {
		ActionApprove: StatusApproved,
		ActionReject:  StatusRejected,
	},
}

// ValidAction reports whether the action is defined for the family.
func ValidAction(f Family, a Action) bool {
	if a == ActionDelete {
		return f.Valid()
	}
	if a == ActionSetRole {
		return f == FamilyUser
	}
	_, ok := targetStatus[f][a]
	return ok
}

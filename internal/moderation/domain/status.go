package domain

// Status is an entity's moderation status. Each family accepts only a subset.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusPending   Status = "pending"
	StatusRejected  Status = "rejected"
	StatusSuspended Status = "suspended"
	StatusApproved  Status = "approved"
)

var statusDomains = map[Family][]Status{
	FamilyUser:     {StatusActive, StatusInactive, StatusPending, StatusRejected, StatusSuspended},
	FamilyListing:  {StatusActive, StatusInactive, StatusPending, StatusRejected},
	FamilyInterest: {StatusPending, StatusApproved, StatusRejected},
}

// ValidStatus reports whether s belongs to the family's status domain.
func ValidStatus(f Family, s Status) bool {
	for _, v := range statusDomains[f] {
		if v == s {
			return true
		}
	}
	return false
}

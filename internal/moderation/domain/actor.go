package domain

// Role is the authenticated principal's role as supplied by the identity provider.
type Role string

const (
	RoleUser      Role = "user"
	RoleModerator Role = "moderator"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

// CanModerate reports whether the role may perform moderation transitions.
func (r Role) CanModerate() bool {
	return r == RoleModerator || r == RoleAdmin
}

// Actor is the authenticated principal performing an action. It is supplied
// per request by the identity provider and never mutated here.
type Actor struct {
	ID   string
	Role Role
}

// Family identifies one of the moderatable entity families. All three share
// the same transition machinery but have distinct status domains.
type Family string

const (
	FamilyUser     Family = "user"
	FamilyListing  Family = "listing"
	FamilyInterest Family = "interest"
)

func (f Family) Valid() bool {
	switch f {
	case FamilyUser, FamilyListing, FamilyInterest:
		return true
	}
	return false
}

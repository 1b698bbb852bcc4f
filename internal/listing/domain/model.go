package domain

import (
	"time"

	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
)

// Type discriminates the four listing variants stored in one collection.
type Type string

const (
	TypeProduct   Type = "product"
	TypeService   Type = "service"
	TypeJob       Type = "job"
	TypeMatrimony Type = "matrimony"
)

func (t Type) Valid() bool {
	switch t {
	case TypeProduct, TypeService, TypeJob, TypeMatrimony:
		return true
	}
	return false
}

// Types lists all listing types in a stable order.
func Types() []Type {
	return []Type{TypeProduct, TypeService, TypeJob, TypeMatrimony}
}

type ProductDetails struct {
	Price     float64 `json:"price"`
	Category  string  `json:"category"`
	Condition string  `json:"condition"`
}

type ServiceDetails struct {
	ServiceType string  `json:"serviceType"`
	Rate        float64 `json:"rate"`
}

type JobDetails struct {
	Company        string  `json:"company"`
	Salary         float64 `json:"salary"`
	EmploymentType string  `json:"employmentType"`
}

type MatrimonyDetails struct {
	Age        int    `json:"age"`
	Religion   string `json:"religion"`
	Profession string `json:"profession"`
}

// Details is the family-specific payload behind the type tag. Exactly one
// field is non-nil, matching the listing's Type.
type Details struct {
	Product   *ProductDetails   `json:"product,omitempty"`
	Service   *ServiceDetails   `json:"service,omitempty"`
	Job       *JobDetails       `json:"job,omitempty"`
	Matrimony *MatrimonyDetails `json:"matrimony,omitempty"`
}

// Matches reports whether exactly the payload variant for t is set.
func (d Details) Matches(t Type) bool {
	switch t {
	case TypeProduct:
		return d.Product != nil && d.Service == nil && d.Job == nil && d.Matrimony == nil
	case TypeService:
		return d.Service != nil && d.Product == nil && d.Job == nil && d.Matrimony == nil
	case TypeJob:
		return d.Job != nil && d.Product == nil && d.Service == nil && d.Matrimony == nil
	case TypeMatrimony:
		return d.Matrimony != nil && d.Product == nil && d.Service == nil && d.Job == nil
	}
	return false
}

// Listing is the base moderatable shape plus the tagged payload. UserID is
// immutable after creation; status changes go through the moderation engine
// or the owner's soft-deactivate.
type Listing struct {
	ID          string            `json:"id"`
	Type        Type              `json:"type"`
	UserID      string            `json:"userId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Images      []string          `json:"images"`
	Status      moderation.Status `json:"status"`
	Details     Details           `json:"details"`

	ModeratedBy     string     `json:"moderatedBy,omitempty"`
	ModeratedAt     *time.Time `json:"moderatedAt,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Update carries the owner-editable fields. Owner, creation time and status
// are deliberately absent: they are stripped from any self-submitted payload
// before this struct is ever built.
type Update struct {
	Title       string
	Description string
	Images      []string
	Details     *Details
}

// Filter narrows listing queries.
type Filter struct {
	Type   Type
	Status moderation.Status
	UserID string
	Query  string
	Page   int64
	Limit  int64
	SortBy string
	Desc   bool
}

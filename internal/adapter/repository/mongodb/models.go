package mongodb

import (
	"time"

	interestdomain "github.com/freecosystem/marketplace/internal/interest/domain"
	listingdomain "github.com/freecosystem/marketplace/internal/listing/domain"
	moderation "github.com/freecosystem/marketplace/internal/moderation/domain"
	notificationdomain "github.com/freecosystem/marketplace/internal/notification/domain"
	userdomain "github.com/freecosystem/marketplace/internal/user/domain"
)

// All four listing payloads live flat in one document behind the type tag.
// omitempty keeps each document to its own family's fields.
type listingDocument struct {
	ID          string   `bson:"_id"`
	Type        string   `bson:"type"`
	UserID      string   `bson:"user_id"`
	Title       string   `bson:"title"`
	Description string   `bson:"description,omitempty"`
	Images      []string `bson:"images,omitempty"`
	Status      string   `bson:"status"`

	Price          float64 `bson:"price,omitempty"`
	Category       string  `bson:"category,omitempty"`
	Condition      string  `bson:"condition,omitempty"`
	ServiceType    string  `bson:"service_type,omitempty"`
	Rate           float64 `bson:"rate,omitempty"`
	Company        string  `bson:"company,omitempty"`
	Salary         float64 `bson:"salary,omitempty"`
	EmploymentType string  `bson:"employment_type,omitempty"`
	Age            int     `bson:"age,omitempty"`
	Religion       string  `bson:"religion,omitempty"`
	Profession     string  `bson:"profession,omitempty"`

	ModeratedBy     string     `bson:"moderated_by,omitempty"`
	ModeratedAt     *time.Time `bson:"moderated_at,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toListingDocument(l *listingdomain.Listing) *listingDocument {
	d := &listingDocument{
		ID:              l.ID,
		Type:            string(l.Type),
		UserID:          l.UserID,
		Title:           l.Title,
		Description:     l.Description,
		Images:          l.Images,
		Status:          string(l.Status),
		ModeratedBy:     l.ModeratedBy,
		ModeratedAt:     l.ModeratedAt,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
	switch {
	case l.Details.Product != nil:
		d.Price = l.Details.Product.Price
		d.Category = l.Details.Product.Category
		d.Condition = l.Details.Product.Condition
	case l.Details.Service != nil:
		d.ServiceType = l.Details.Service.ServiceType
		d.Rate = l.Details.Service.Rate
	case l.Details.Job != nil:
		d.Company = l.Details.Job.Company
		d.Salary = l.Details.Job.Salary
		d.EmploymentType = l.Details.Job.EmploymentType
	case l.Details.Matrimony != nil:
		d.Age = l.Details.Matrimony.Age
		d.Religion = l.Details.Matrimony.Religion
		d.Profession = l.Details.Matrimony.Profession
	}
	return d
}

func toDomainListing(d *listingDocument) *listingdomain.Listing {
	if d == nil {
		return nil
	}
	l := &listingdomain.Listing{
		ID:              d.ID,
		Type:            listingdomain.Type(d.Type),
		UserID:          d.UserID,
		Title:           d.Title,
		Description:     d.Description,
		Images:          d.Images,
		Status:          moderation.Status(d.Status),
		ModeratedBy:     d.ModeratedBy,
		ModeratedAt:     d.ModeratedAt,
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
	switch l.Type {
	case listingdomain.TypeProduct:
		l.Details.Product = &listingdomain.ProductDetails{Price: d.Price, Category: d.Category, Condition: d.Condition}
	case listingdomain.TypeService:
		l.Details.Service = &listingdomain.ServiceDetails{ServiceType: d.ServiceType, Rate: d.Rate}
	case listingdomain.TypeJob:
		l.Details.Job = &listingdomain.JobDetails{Company: d.Company, Salary: d.Salary, EmploymentType: d.EmploymentType}
	case listingdomain.TypeMatrimony:
		l.Details.Matrimony = &listingdomain.MatrimonyDetails{Age: d.Age, Religion: d.Religion, Profession: d.Profession}
	}
	return l
}

type userDocument struct {
	ID          string `bson:"_id"`
	FirstName   string `bson:"first_name"`
	LastName    string `bson:"last_name"`
	Email       string `bson:"email"`
	PhoneNumber string `bson:"phone_number,omitempty"`
	Gender      string `bson:"gender,omitempty"`
	Pincode     string `bson:"pincode,omitempty"`
	State       string `bson:"state,omitempty"`
	City        string `bson:"city,omitempty"`
	Role        string `bson:"role"`
	Status      string `bson:"status"`

	ModeratedBy     string     `bson:"moderated_by,omitempty"`
	ModeratedAt     *time.Time `bson:"moderated_at,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func toUserDocument(u *userdomain.User) *userDocument {
	return &userDocument{
		ID:              u.ID,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		PhoneNumber:     u.PhoneNumber,
		Gender:          u.Gender,
		Pincode:         u.Pincode,
		State:           u.State,
		City:            u.City,
		Role:            string(u.Role),
		Status:          string(u.Status),
		ModeratedBy:     u.ModeratedBy,
		ModeratedAt:     u.ModeratedAt,
		RejectionReason: u.RejectionReason,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

func toDomainUser(d *userDocument) *userdomain.User {
	if d == nil {
		return nil
	}
	return &userdomain.User{
		ID:              d.ID,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Email:           d.Email,
		PhoneNumber:     d.PhoneNumber,
		Gender:          d.Gender,
		Pincode:         d.Pincode,
		State:           d.State,
		City:            d.City,
		Role:            moderation.Role(d.Role),
		Status:          moderation.Status(d.Status),
		ModeratedBy:     d.ModeratedBy,
		ModeratedAt:     d.ModeratedAt,
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

type interestDocument struct {
	ID         string `bson:"_id"`
	SenderID   string `bson:"sender_id"`
	ReceiverID string `bson:"receiver_id"`
	ListingID  string `bson:"listing_id"`
	Message    string `bson:"message,omitempty"`
	Status     string `bson:"status"`

	ModeratedBy     string     `bson:"moderated_by,omitempty"`
	ModeratedAt     *time.Time `bson:"moderated_at,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
}

func toInterestDocument(i *interestdomain.Interest) *interestDocument {
	return &interestDocument{
		ID:              i.ID,
		SenderID:        i.SenderID,
		ReceiverID:      i.ReceiverID,
		ListingID:       i.ListingID,
		Message:         i.Message,
		Status:          string(i.Status),
		ModeratedBy:     i.ModeratedBy,
		ModeratedAt:     i.ModeratedAt,
		RejectionReason: i.RejectionReason,
		CreatedAt:       i.CreatedAt,
	}
}

func toDomainInterest(d *interestDocument) *interestdomain.Interest {
	if d == nil {
		return nil
	}
	return &interestdomain.Interest{
		ID:              d.ID,
		SenderID:        d.SenderID,
		ReceiverID:      d.ReceiverID,
		ListingID:       d.ListingID,
		Message:         d.Message,
		Status:          moderation.Status(d.Status),
		ModeratedBy:     d.ModeratedBy,
		ModeratedAt:     d.ModeratedAt,
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
	}
}

type notificationDocument struct {
	ID            string    `bson:"_id"`
	UserID        string    `bson:"user_id"`
	Type          string    `bson:"type"`
	Title         string    `bson:"title"`
	Message       string    `bson:"message"`
	RelatedFamily string    `bson:"related_family,omitempty"`
	RelatedID     string    `bson:"related_id,omitempty"`
	Read          bool      `bson:"read"`
	CreatedAt     time.Time `bson:"created_at"`
}

func toNotificationDocument(n *notificationdomain.Notification) *notificationDocument {
	return &notificationDocument{
		ID:            n.ID,
		UserID:        n.UserID,
		Type:          n.Type,
		Title:         n.Title,
		Message:       n.Message,
		RelatedFamily: n.RelatedFamily,
		RelatedID:     n.RelatedID,
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}

func toDomainNotification(d *notificationDocument) *notificationdomain.Notification {
	if d == nil {
		return nil
	}
	return &notificationdomain.Notification{
		ID:            d.ID,
		UserID:        d.UserID,
		Type:          d.Type,
		Title:         d.Title,
		Message:       d.Message,
		RelatedFamily: d.RelatedFamily,
		RelatedID:     d.RelatedID,
		Read:          d.Read,
		CreatedAt:     d.CreatedAt,
	}
}

// snapshotDocument is the family-agnostic projection the moderation store
// decodes from any of the three collections.
type snapshotDocument struct {
	ID              string     `bson:"_id"`
	Status          string     `bson:"status"`
	UserID          string     `bson:"user_id,omitempty"`
	SenderID        string     `bson:"sender_id,omitempty"`
	ReceiverID      string     `bson:"receiver_id,omitempty"`
	ListingID       string     `bson:"listing_id,omitempty"`
	Title           string     `bson:"title,omitempty"`
	ModeratedBy     string     `bson:"moderated_by,omitempty"`
	ModeratedAt     *time.Time `bson:"moderated_at,omitempty"`
	RejectionReason string     `bson:"rejection_reason,omitempty"`
}

func (d *snapshotDocument) toSnapshot(family moderation.Family) moderation.Snapshot {
	s := moderation.Snapshot{
		ID:              d.ID,
		Family:          family,
		Status:          moderation.Status(d.Status),
		SenderID:        d.SenderID,
		ReceiverID:      d.ReceiverID,
		ListingID:       d.ListingID,
		Title:           d.Title,
		ModeratedBy:     d.ModeratedBy,
		ModeratedAt:     d.ModeratedAt,
		RejectionReason: d.RejectionReason,
	}
	switch family {
	case moderation.FamilyUser:
		s.OwnerID = d.ID
	case moderation.FamilyListing:
		s.OwnerID = d.UserID
	}
	return s
}

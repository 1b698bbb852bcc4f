package domain

import "context"

type Repository interface {
	Create(ctx context.Context, listing *Listing) error
	Update(ctx context.Context, listing *Listing) error
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByFilter(ctx context.Context, filter Filter) ([]*Listing, int64, error)
	CountByType(ctx context.Context) (map[string]int64, error)
}

// Cache is a read-through cache for single-listing lookups. A nil listing
// with a nil error is a miss.
type Cache interface {
	GetListing(ctx context.Context, id string) (*Listing, error)
	SetListing(ctx context.Context, listing *Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// Storage is the media store collaborator. Images are uploaded before the
// listing record is created; the core only ever sees the resulting URLs.
type Storage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
}

package domain

import "errors"

var (
	ErrListingNotFound    = errors.New("listing not found")
	ErrInvalidListingType = errors.New("invalid listing type")
	ErrInvalidListingData = errors.New("invalid listing data")
	ErrTooManyImages      = errors.New("too many images for one listing")
)

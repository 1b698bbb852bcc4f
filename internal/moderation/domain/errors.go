package domain

import "errors"

var (
	ErrNotFound      = errors.New("entity not found")
	ErrInvalidAction = errors.New("action is not defined for this entity family")
	ErrUnauthorized  = errors.New("actor is not allowed to perform this action")
	ErrForbidden     = errors.New("actor does not own this entity")
	ErrValidation    = errors.New("invalid moderation request")
)

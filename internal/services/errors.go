package services

import "errors"

// Domain sentinel errors returned by the services. Controllers map them
// to HTTP status codes with errors.Is so wrapped errors still match.
var (
	ErrNotFound          = errors.New("record not found")
	ErrForbidden         = errors.New("forbidden")
	ErrSelfPurchase      = errors.New("owner cannot purchase their own listing")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyExists     = errors.New("record already exists")
)

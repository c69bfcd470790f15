package domain

import "errors"

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrPlaneNotFound    = errors.New("plane not found")
	ErrFlightNotFound   = errors.New("flight not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrClientNotFound   = errors.New("client not found")
	ErrRegularCollision = errors.New("there's already a regular flight for this date in this plane")
	ErrFlightCancelled  = errors.New("flight was cancelled")
	ErrOperatorExists   = errors.New("operator already registered")
	ErrUnauthorized     = errors.New("invalid credentials")
)

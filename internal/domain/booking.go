package domain

import "time"

// Booking.ID is the booking number handed back to the caller.
type Booking struct {
	ID          int64
	FlightID    int64
	Seats       int
	ClientEmail string
	Price       float64
	CreatedAt   time.Time
}

type BookingRef struct {
	FlightID  int64
	BookingID int64
}

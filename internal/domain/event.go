package domain

import "time"

const (
	EventBookingScheduled = "booking_scheduled"
	EventBookingCancelled = "booking_cancelled"
	EventBookingModified  = "booking_modified"
	EventCharterScheduled = "charter_scheduled"
	EventFlightCancelled  = "flight_cancelled"
	EventFlightDeparted   = "flight_departed"
)

// BookingEvent is published for every change a client may want to hear about.
type BookingEvent struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	FlightID    int64     `json:"flight_id"`
	BookingID   int64     `json:"booking_id"`
	Seats       int       `json:"seats"`
	Email       string    `json:"email"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Date        time.Time `json:"date"`
	Price       float64   `json:"price"`
	OccurredAt  time.Time `json:"occurred_at"`
}

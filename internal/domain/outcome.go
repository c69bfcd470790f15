package domain

import "fmt"

type OutcomeKind string

const (
	OutcomeUnknownFlight     OutcomeKind = "UNKNOWN_FLIGHT"
	OutcomeUnknownBooking    OutcomeKind = "UNKNOWN_BOOKING"
	OutcomeCharter           OutcomeKind = "CHARTER"
	OutcomeOver              OutcomeKind = "OVER"
	OutcomeInsufficientSeats OutcomeKind = "INSUFFICIENT_SEATS"
	OutcomeUnavailable       OutcomeKind = "UNAVAILABLE"
	OutcomeScheduled         OutcomeKind = "SCHEDULED"
	OutcomeCancelled         OutcomeKind = "CANCELLED"
	OutcomeModified          OutcomeKind = "MODIFIED"
	OutcomeModifyFailed      OutcomeKind = "MODIFY_FAILED"
	OutcomeCharterBooked     OutcomeKind = "CHARTER_BOOKED"
	OutcomeNoPlane           OutcomeKind = "NO_PLANE"
	OutcomeInvalid           OutcomeKind = "INVALID"
)

// Outcome is the result of a booking-side operation. String renders the
// exact text returned to front-office callers.
type Outcome struct {
	Kind          OutcomeKind `json:"kind"`
	Seats         int         `json:"seats,omitempty"`
	BookingNumber int64       `json:"booking_number,omitempty"`
	FlightID      int64       `json:"flight_id,omitempty"`
	BookingID     int64       `json:"booking_id,omitempty"`
	Cause         *Outcome    `json:"cause,omitempty"`
}

func (o Outcome) OK() bool {
	switch o.Kind {
	case OutcomeScheduled, OutcomeCancelled, OutcomeModified, OutcomeCharterBooked:
		return true
	}
	return false
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeUnknownFlight:
		return "Innexistent flight"
	case OutcomeUnknownBooking:
		return "Innexistent booking"
	case OutcomeCharter:
		return "Charter"
	case OutcomeOver:
		return "Over"
	case OutcomeInsufficientSeats:
		return fmt.Sprintf("InsufficientSeats %d", o.Seats)
	case OutcomeUnavailable:
		return "Unavailable"
	case OutcomeScheduled:
		return fmt.Sprintf("Scheduled %d", o.BookingNumber)
	case OutcomeCancelled:
		return "Cancelled"
	case OutcomeModified:
		return fmt.Sprintf("Booking scheduled, with booking number %d and flight number %d.", o.BookingNumber, o.FlightID)
	case OutcomeModifyFailed:
		cause := ""
		if o.Cause != nil {
			cause = o.Cause.String()
		}
		return fmt.Sprintf("%s\nYour booking with ID %d to flight %d still exists", cause, o.BookingID, o.FlightID)
	case OutcomeCharterBooked:
		return "Charter was booked successfully"
	case OutcomeNoPlane:
		return "It wasn't possible to book the charter, no planes available"
	case OutcomeInvalid:
		return "Invalid data"
	default:
		return string(o.Kind)
	}
}

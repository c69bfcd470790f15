package backoffice

import (
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
)

// Command is a request handled by Service.Dispatch.
type Command interface {
	CommandName() string
}

type ScheduleBooking struct {
	FlightID      int64  `json:"flight_id" validate:"gte=0"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"required,email"`
	Seats         int    `json:"seats" validate:"gt=0"`
	IsOperator    bool   `json:"-"`
	BookingNumber int64  `json:"booking_number"`
}

type CancelBooking struct {
	FlightID  int64 `json:"flight_id" validate:"gte=0"`
	BookingID int64 `json:"booking_id" validate:"gte=0"`
}

type ModifyBooking struct {
	FlightID      int64 `json:"flight_id" validate:"gte=0"`
	BookingID     int64 `json:"booking_id" validate:"gte=0"`
	NewFlightID   int64 `json:"new_flight_id" validate:"gte=0"`
	IsOperator    bool  `json:"-"`
	BookingNumber int64 `json:"booking_number"`
}

type ScheduleCharter struct {
	Date        time.Time `json:"date" validate:"required"`
	Origin      string    `json:"origin" validate:"required,destination"`
	Destination string    `json:"destination" validate:"required,destination,nefield=Origin"`
	Seats       int       `json:"seats" validate:"gt=0"`
}

type BookingPrice struct {
	FlightID int64  `json:"flight_id" validate:"gte=0"`
	Email    string `json:"email" validate:"required"`
}

type UpdateMiles struct {
	Miles float64 `json:"miles"`
	Email string  `json:"email" validate:"required"`
}

type BookingInfo struct {
	FlightID  int64 `json:"flight_id" validate:"gte=0"`
	BookingID int64 `json:"booking_id" validate:"gte=0"`
}

type BuyPlane struct {
	Seats   int    `json:"seats" validate:"gt=0"`
	Company string `json:"company" validate:"required"`
	Model   string `json:"model" validate:"required"`
}

type SellPlane struct {
	PlaneID int64 `json:"plane_id" validate:"gt=0"`
}

type ScheduleFlight struct {
	PlaneID     int64     `json:"plane_id" validate:"gt=0"`
	Date        time.Time `json:"date" validate:"required"`
	Origin      string    `json:"origin" validate:"required,destination"`
	Destination string    `json:"destination" validate:"required,destination,nefield=Origin"`
	Charter     bool      `json:"charter"`
}

type ScheduleRegularFlight struct {
	PlaneID     int64        `json:"plane_id" validate:"gt=0"`
	Weekday     time.Weekday `json:"weekday" validate:"gte=0,lte=6"`
	Hour        int          `json:"hour" validate:"gte=0,lte=23"`
	Minute      int          `json:"minute" validate:"gte=0,lte=59"`
	Origin      string       `json:"origin" validate:"required,destination"`
	Destination string       `json:"destination" validate:"required,destination,nefield=Origin"`
	Charter     bool         `json:"charter"`
}

type RescheduleFlight struct {
	FlightID int64     `json:"flight_id" validate:"gt=0"`
	Date     time.Time `json:"date" validate:"required"`
}

type CancelFlight struct {
	FlightID int64 `json:"flight_id" validate:"gt=0"`
}

func (ScheduleBooking) CommandName() string       { return "schedule_booking" }
func (CancelBooking) CommandName() string         { return "cancel_booking" }
func (ModifyBooking) CommandName() string         { return "modify_booking" }
func (ScheduleCharter) CommandName() string       { return "schedule_charter" }
func (BookingPrice) CommandName() string          { return "booking_price" }
func (UpdateMiles) CommandName() string           { return "update_miles" }
func (BookingInfo) CommandName() string           { return "booking_info" }
func (BuyPlane) CommandName() string              { return "buy_plane" }
func (SellPlane) CommandName() string             { return "sell_plane" }
func (ScheduleFlight) CommandName() string        { return "schedule_flight" }
func (ScheduleRegularFlight) CommandName() string { return "schedule_regular_flight" }
func (RescheduleFlight) CommandName() string      { return "reschedule_flight" }
func (CancelFlight) CommandName() string          { return "cancel_flight" }

// Result carries whatever the dispatched command produced. Booking-side
// commands always set Outcome.
type Result struct {
	Outcome   *domain.Outcome
	Plane     *domain.Airplane
	Flight    *domain.Flight
	Regular   *domain.RegularFlight
	Booking   *domain.Booking
	Price     float64
	Miles     float64
	Cancelled []int64
}

package api

import (
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/jinzhu/copier"
)

type bookingResponse struct {
	ID          int64     `json:"id"`
	FlightID    int64     `json:"flight_id"`
	Seats       int       `json:"seats"`
	ClientEmail string    `json:"client_email"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
}

type flightResponse struct {
	ID          int64             `json:"id"`
	PlaneID     int64             `json:"plane_id"`
	PlaneSeats  int               `json:"plane_seats"`
	Date        time.Time         `json:"date"`
	Origin      string            `json:"origin"`
	Destination string            `json:"destination"`
	Charter     bool              `json:"charter"`
	Regular     bool              `json:"regular"`
	EmptySeats  int               `json:"empty_seats"`
	Bookings    []bookingResponse `json:"bookings,omitempty"`
}

type regularFlightResponse struct {
	ID          int64  `json:"id"`
	PlaneID     int64  `json:"plane_id"`
	Weekday     string `json:"weekday"`
	Hour        int    `json:"hour"`
	Minute      int    `json:"minute"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Charter     bool   `json:"charter"`
}

type planeResponse struct {
	ID      int64   `json:"id"`
	Seats   int     `json:"seats"`
	Company string  `json:"company"`
	Model   string  `json:"model"`
	Flights []int64 `json:"flights"`
}

type clientResponse struct {
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Miles   float64 `json:"miles"`
}

type outcomeResponse struct {
	Outcome       string             `json:"outcome"`
	OK            bool               `json:"ok"`
	Kind          domain.OutcomeKind `json:"kind"`
	BookingNumber *int64             `json:"booking_number,omitempty"`
	FlightID      int64              `json:"flight_id,omitempty"`
}

func toOutcome(o domain.Outcome) outcomeResponse {
	out := outcomeResponse{Outcome: o.String(), OK: o.OK(), Kind: o.Kind, FlightID: o.FlightID}
	if o.Kind == domain.OutcomeScheduled || o.Kind == domain.OutcomeModified {
		n := o.BookingNumber
		out.BookingNumber = &n
	}
	return out
}

func toFlight(f domain.Flight) flightResponse {
	var out flightResponse
	_ = copier.Copy(&out, &f)
	return out
}

func toFlights(fs []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(fs))
	for _, f := range fs {
		out = append(out, toFlight(f))
	}
	return out
}

func toRegular(r domain.RegularFlight) regularFlightResponse {
	var out regularFlightResponse
	_ = copier.Copy(&out, &r)
	out.Weekday = r.Weekday.String()
	return out
}

func toBooking(b domain.Booking) bookingResponse {
	var out bookingResponse
	_ = copier.Copy(&out, &b)
	return out
}

func toPlane(p domain.Airplane) planeResponse {
	var out planeResponse
	_ = copier.Copy(&out, &p)
	return out
}

func toPlanes(ps []domain.Airplane) []planeResponse {
	out := make([]planeResponse, 0, len(ps))
	_ = copier.Copy(&out, &ps)
	return out
}

func toClients(cs []domain.Client) []clientResponse {
	out := make([]clientResponse, 0, len(cs))
	_ = copier.Copy(&out, &cs)
	return out
}

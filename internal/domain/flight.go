package domain

import "time"

type Flight struct {
	ID          int64
	PlaneID     int64
	PlaneSeats  int
	Date        time.Time
	Origin      string
	Destination string
	Charter     bool
	Regular     bool
	EmptySeats  int
	Bookings    []Booking
	Cancelled   bool
}

// FindBooking returns the index of the booking with the given id, or -1.
func (f *Flight) FindBooking(id int64) int {
	for i := range f.Bookings {
		if f.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}

// Finished reports whether the flight has already left at now.
func (f *Flight) Finished(now time.Time) bool {
	return !f.Date.After(now)
}

// Clone returns a copy that shares no memory with f.
func (f *Flight) Clone() Flight {
	c := *f
	c.Bookings = append([]Booking(nil), f.Bookings...)
	return c
}

// RegularFlight is a weekly slot. It only becomes a Flight when booked.
type RegularFlight struct {
	ID          int64
	PlaneID     int64
	Weekday     time.Weekday
	Hour        int
	Minute      int
	Origin      string
	Destination string
	Charter     bool
}

package flights

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
)

type PlaneRegistry interface {
	Get(id int64) (*domain.Airplane, error)
	AttachFlight(planeID, flightID int64) error
	DetachFlight(planeID, flightID int64)
}

type ScheduleInput struct {
	PlaneID     int64
	Date        time.Time
	Origin      string
	Destination string
	Regular     bool
	Charter     bool
}

// entry pairs a flight with the mutex that serializes its seat and booking
// changes. The directory hands out the mutex, the flight never owns it.
type entry struct {
	mu     sync.Mutex
	flight *domain.Flight

	// date mirrors flight.Date for directory scans that must not wait on mu.
	date atomic.Pointer[time.Time]
}

func (e *entry) setDate(date time.Time) {
	e.flight.Date = date
	e.date.Store(&date)
}

// Directory owns dated flights and regular flight templates. Both draw ids
// from the same sequence, so a flight materialized from a template keeps the
// template id.
//
// d.mu guards the maps and is never held while waiting on an entry's mu, so a
// flight held by a slow booking only delays callers of that flight. Mutable
// flight fields need entry.mu; scans under d.mu read entry.date instead.
type Directory struct {
	planes PlaneRegistry

	mu      sync.RWMutex
	nextID  int64
	flights map[int64]*entry
	regular map[int64]*domain.RegularFlight
}

func NewDirectory(planes PlaneRegistry) *Directory {
	return &Directory{
		planes:  planes,
		nextID:  1,
		flights: make(map[int64]*entry),
		regular: make(map[int64]*domain.RegularFlight),
	}
}

// Schedule creates a flight unless the plane already has a regular flight on
// the same day.
func (d *Directory) Schedule(in ScheduleInput) (*domain.Flight, error) {
	if in.Origin == "" || in.Destination == "" {
		return nil, fmt.Errorf("origin and destination are required: %w", domain.ErrInvalidInput)
	}
	plane, err := d.planes.Get(in.PlaneID)
	if err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.regularOnDayLocked(plane.ID, in.Date) {
		return nil, domain.ErrRegularCollision
	}
	id := d.nextID
	d.nextID++
	return d.insertLocked(id, plane, in)
}

func (d *Directory) insertLocked(id int64, plane *domain.Airplane, in ScheduleInput) (*domain.Flight, error) {
	if err := d.planes.AttachFlight(plane.ID, id); err != nil {
		return nil, err
	}
	f := &domain.Flight{
		ID:          id,
		PlaneID:     plane.ID,
		PlaneSeats:  plane.Seats,
		Date:        in.Date,
		Origin:      in.Origin,
		Destination: in.Destination,
		Charter:     in.Charter,
		Regular:     in.Regular,
		EmptySeats:  plane.Seats,
	}
	e := &entry{flight: f}
	e.date.Store(&in.Date)
	d.flights[id] = e
	out := f.Clone()
	return &out, nil
}

func (d *Directory) regularOnDayLocked(planeID int64, date time.Time) bool {
	for _, e := range d.flights {
		f := e.flight
		if f.Regular && f.PlaneID == planeID && sameDay(*e.date.Load(), date) {
			return true
		}
	}
	return false
}

// Get returns a snapshot of the flight.
func (d *Directory) Get(id int64) (*domain.Flight, error) {
	d.mu.RLock()
	e, ok := d.flights[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", id, domain.ErrFlightNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	out := e.flight.Clone()
	return &out, nil
}

// Update runs fn on the live flight while holding that flight's lock. fn may
// change seats and bookings; it must not touch the date.
func (d *Directory) Update(id int64, fn func(f *domain.Flight) error) error {
	d.mu.RLock()
	e, ok := d.flights[id]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("flight %d: %w", id, domain.ErrFlightNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.flight.Cancelled {
		return fmt.Errorf("flight %d: %w: %w", id, domain.ErrFlightCancelled, domain.ErrFlightNotFound)
	}
	return fn(e.flight)
}

// Cancel removes the flight and returns the bookings it still held. A booking
// in progress on the flight completes first and is included.
func (d *Directory) Cancel(id int64) (*domain.Flight, error) {
	d.mu.Lock()
	e, ok := d.flights[id]
	if ok {
		delete(d.flights, id)
	}
	d.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", id, domain.ErrFlightNotFound)
	}

	e.mu.Lock()
	e.flight.Cancelled = true
	out := e.flight.Clone()
	e.mu.Unlock()

	d.planes.DetachFlight(out.PlaneID, id)
	return &out, nil
}

// Reschedule moves the flight to date. Seats and bookings are untouched.
func (d *Directory) Reschedule(id int64, date time.Time) (*domain.Flight, error) {
	d.mu.RLock()
	e, ok := d.flights[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("flight %d: %w", id, domain.ErrFlightNotFound)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.flight.Cancelled {
		return nil, fmt.Errorf("flight %d: %w: %w", id, domain.ErrFlightCancelled, domain.ErrFlightNotFound)
	}
	e.setDate(date)
	out := e.flight.Clone()
	return &out, nil
}

// Upcoming lists flights that have not left yet at now, earliest first.
func (d *Directory) Upcoming(now time.Time) []domain.Flight {
	return d.filter(func(f *domain.Flight) bool { return !f.Finished(now) })
}

// Finished lists flights dated at or before now.
func (d *Directory) Finished(now time.Time) []domain.Flight {
	return d.filter(func(f *domain.Flight) bool { return f.Finished(now) })
}

func (d *Directory) All() []domain.Flight {
	return d.filter(func(*domain.Flight) bool { return true })
}

// Find lists upcoming flights on day's calendar date for the route, including
// regular flights whose next occurrence falls on that day and has not been
// materialized yet. Empty origin or destination matches any.
func (d *Directory) Find(day time.Time, origin, destination string, now time.Time) []domain.Flight {
	route := func(o, dst string) bool {
		return (origin == "" || origin == o) && (destination == "" || destination == dst)
	}

	out := d.filter(func(f *domain.Flight) bool {
		return sameDay(f.Date, day) && !f.Finished(now) && route(f.Origin, f.Destination)
	})

	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, r := range d.regular {
		if _, materialized := d.flights[r.ID]; materialized || !route(r.Origin, r.Destination) {
			continue
		}
		date := NextOccurrence(now, r.Weekday, r.Hour, r.Minute)
		if !sameDay(date, day) {
			continue
		}
		plane, err := d.planes.Get(r.PlaneID)
		if err != nil {
			continue
		}
		out = append(out, domain.Flight{
			ID:          r.ID,
			PlaneID:     r.PlaneID,
			PlaneSeats:  plane.Seats,
			Date:        date,
			Origin:      r.Origin,
			Destination: r.Destination,
			Charter:     r.Charter,
			Regular:     true,
			EmptySeats:  plane.Seats,
		})
	}
	sortFlights(out)
	return out
}

func (d *Directory) filter(keep func(f *domain.Flight) bool) []domain.Flight {
	d.mu.RLock()
	entries := make([]*entry, 0, len(d.flights))
	for _, e := range d.flights {
		entries = append(entries, e)
	}
	d.mu.RUnlock()

	out := make([]domain.Flight, 0, len(entries))
	for _, e := range entries {
		e.mu.Lock()
		f := e.flight.Clone()
		e.mu.Unlock()
		if f.Cancelled || !keep(&f) {
			continue
		}
		out = append(out, f)
	}
	sortFlights(out)
	return out
}

func sortFlights(fs []domain.Flight) {
	sort.Slice(fs, func(i, j int) bool {
		if fs[i].Date.Equal(fs[j].Date) {
			return fs[i].ID < fs[j].ID
		}
		return fs[i].Date.Before(fs[j].Date)
	})
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

package flights

import (
	"fmt"
	"sort"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
)

type RegularInput struct {
	PlaneID     int64
	Weekday     time.Weekday
	Hour        int
	Minute      int
	Origin      string
	Destination string
	Charter     bool
}

func (d *Directory) ScheduleRegular(in RegularInput) (*domain.RegularFlight, error) {
	if in.Weekday < time.Sunday || in.Weekday > time.Saturday ||
		in.Hour < 0 || in.Hour > 23 || in.Minute < 0 || in.Minute > 59 {
		return nil, fmt.Errorf("bad weekly slot %v %02d:%02d: %w", in.Weekday, in.Hour, in.Minute, domain.ErrInvalidInput)
	}
	if in.Origin == "" || in.Destination == "" {
		return nil, fmt.Errorf("origin and destination are required: %w", domain.ErrInvalidInput)
	}
	if _, err := d.planes.Get(in.PlaneID); err != nil {
		return nil, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	r := &domain.RegularFlight{
		ID:          d.nextID,
		PlaneID:     in.PlaneID,
		Weekday:     in.Weekday,
		Hour:        in.Hour,
		Minute:      in.Minute,
		Origin:      in.Origin,
		Destination: in.Destination,
		Charter:     in.Charter,
	}
	d.nextID++
	d.regular[r.ID] = r
	out := *r
	return &out, nil
}

func (d *Directory) GetRegular(id int64) (*domain.RegularFlight, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.regular[id]
	if !ok {
		return nil, fmt.Errorf("regular flight %d: %w", id, domain.ErrFlightNotFound)
	}
	out := *r
	return &out, nil
}

func (d *Directory) ListRegular() []domain.RegularFlight {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.RegularFlight, 0, len(d.regular))
	for _, r := range d.regular {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CancelRegular drops the template. Flights already materialized from it stay.
func (d *Directory) CancelRegular(id int64) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.regular[id]; !ok {
		return fmt.Errorf("regular flight %d: %w", id, domain.ErrFlightNotFound)
	}
	delete(d.regular, id)
	return nil
}

// CancelRegularForPlane drops every template flown by the plane.
func (d *Directory) CancelRegularForPlane(planeID int64) []int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	var ids []int64
	for id, r := range d.regular {
		if r.PlaneID == planeID {
			ids = append(ids, id)
			delete(d.regular, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Materialize returns the dated flight for template id, creating it for the
// template's next occurrence after now if it does not exist yet. Concurrent
// calls for the same template get the same flight.
func (d *Directory) Materialize(id int64, now time.Time) (*domain.Flight, error) {
	d.mu.Lock()
	if e, ok := d.flights[id]; ok {
		d.mu.Unlock()
		e.mu.Lock()
		defer e.mu.Unlock()
		out := e.flight.Clone()
		return &out, nil
	}
	defer d.mu.Unlock()

	r, ok := d.regular[id]
	if !ok {
		return nil, fmt.Errorf("regular flight %d: %w", id, domain.ErrFlightNotFound)
	}
	plane, err := d.planes.Get(r.PlaneID)
	if err != nil {
		return nil, err
	}

	date := NextOccurrence(now, r.Weekday, r.Hour, r.Minute)
	if d.regularOnDayLocked(plane.ID, date) {
		return nil, domain.ErrRegularCollision
	}
	return d.insertLocked(r.ID, plane, ScheduleInput{
		PlaneID:     plane.ID,
		Date:        date,
		Origin:      r.Origin,
		Destination: r.Destination,
		Regular:     true,
		Charter:     r.Charter,
	})
}

// NextOccurrence returns the first weekday at hour:minute that is strictly
// after now, in now's location. A slot at exactly now counts as passed.
func NextOccurrence(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	date := now
	if date.Weekday() == weekday &&
		(date.Hour() > hour || (date.Hour() == hour && date.Minute() >= minute)) {
		date = date.AddDate(0, 0, 7)
	}
	for date.Weekday() != weekday {
		date = date.AddDate(0, 0, 1)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, now.Location())
}

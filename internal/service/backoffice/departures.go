package backoffice

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
)

type Emitter interface {
	Emit(ctx context.Context, event domain.BookingEvent)
}

// Departures publishes flight_departed once for every flight whose date has
// passed.
type Departures struct {
	dir     Directory
	emitter Emitter
	clock   clockwork.Clock

	mu   sync.Mutex
	seen map[int64]time.Time
}

func NewDepartures(dir Directory, emitter Emitter, clock clockwork.Clock) *Departures {
	return &Departures{
		dir:     dir,
		emitter: emitter,
		clock:   clock,
		seen:    make(map[int64]time.Time),
	}
}

// Sweep publishes the departures not seen before and returns how many it
// published. A flight rescheduled after departing is reported again. Flights
// no longer in the directory are forgotten.
func (d *Departures) Sweep(ctx context.Context) int {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := 0
	finished := d.dir.Finished(d.clock.Now())
	current := make(map[int64]struct{}, len(finished))
	for _, f := range finished {
		current[f.ID] = struct{}{}
		if at, ok := d.seen[f.ID]; ok && at.Equal(f.Date) {
			continue
		}
		d.seen[f.ID] = f.Date
		seats := f.PlaneSeats - f.EmptySeats
		d.emitter.Emit(ctx, domain.BookingEvent{
			Type:        domain.EventFlightDeparted,
			FlightID:    f.ID,
			Seats:       seats,
			Origin:      f.Origin,
			Destination: f.Destination,
			Date:        f.Date,
		})
		n++
	}
	for id := range d.seen {
		if _, ok := current[id]; !ok {
			delete(d.seen, id)
		}
	}
	if n > 0 {
		log.Printf("departures sweep: %d flights departed", n)
	}
	return n
}

// Start runs Sweep every interval on a gocron scheduler driven by the
// departures clock. The caller shuts the scheduler down.
func (d *Departures) Start(ctx context.Context, interval time.Duration) (gocron.Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithClock(d.clock))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { d.Sweep(ctx) }),
		gocron.WithName("departures sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("schedule departures sweep: %w", err)
	}

	s.Start()
	log.Printf("departures sweep started (every %s)", interval)
	return s, nil
}

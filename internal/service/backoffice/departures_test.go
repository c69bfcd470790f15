package backoffice

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepartures_SweepOncePerFlight(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	plane := fx.buyPlane(t, 20)
	early := fx.scheduleFlight(t, plane, monday.Add(time.Hour))
	fx.scheduleFlight(t, plane, monday.Add(48*time.Hour))
	_, err := fx.service.Dispatch(ctx, ScheduleBooking{FlightID: early, Email: "ana@example.com", Seats: 4})
	require.NoError(t, err)

	d := NewDepartures(fx.dir, fx.ledger, fx.clock)
	assert.Equal(t, 0, d.Sweep(ctx))

	fx.clock.Advance(2 * time.Hour)
	assert.Equal(t, 1, d.Sweep(ctx))
	assert.Equal(t, 0, d.Sweep(ctx))

	departed := fx.producer.events(domain.EventFlightDeparted)
	require.Len(t, departed, 1)
	assert.Equal(t, early, departed[0].FlightID)
	assert.Equal(t, 4, departed[0].Seats)

	// moved to another past date: departs again
	_, err = fx.service.Dispatch(ctx, RescheduleFlight{FlightID: early, Date: monday.Add(90 * time.Minute)})
	require.NoError(t, err)
	assert.Equal(t, 1, d.Sweep(ctx))
}

func TestDepartures_Start(t *testing.T) {
	fx := newFixture(t)
	d := NewDepartures(fx.dir, fx.ledger, fx.clock)

	s, err := d.Start(context.Background(), time.Minute)
	require.NoError(t, err)
	jobs := s.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "departures sweep", jobs[0].Name())
	assert.NoError(t, s.Shutdown())
}

func TestDepartures_ForgetsCancelledFlights(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	plane := fx.buyPlane(t, 20)
	first := fx.scheduleFlight(t, plane, monday.Add(time.Hour))
	second := fx.scheduleFlight(t, plane, monday.Add(2*time.Hour))

	d := NewDepartures(fx.dir, fx.ledger, fx.clock)
	fx.clock.Advance(3 * time.Hour)
	assert.Equal(t, 2, d.Sweep(ctx))
	assert.Len(t, d.seen, 2)

	_, err := fx.service.Dispatch(ctx, CancelFlight{FlightID: first})
	require.NoError(t, err)
	assert.Equal(t, 0, d.Sweep(ctx))
	assert.Len(t, d.seen, 1)
	assert.Contains(t, d.seen, second)
}

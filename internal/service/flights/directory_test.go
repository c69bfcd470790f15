package flights

import (
	"sync"
	"testing"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/Domenick1991/backoffice/internal/service/fleet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Monday 19 October 2026, 09:00 UTC.
var monday = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func newDirectory(t *testing.T, seats ...int) (*Directory, *fleet.Registry, []int64) {
	t.Helper()
	planes := fleet.NewRegistry()
	var ids []int64
	for _, s := range seats {
		p, err := planes.Add(s, "TAP", "A320")
		require.NoError(t, err)
		ids = append(ids, p.ID)
	}
	return NewDirectory(planes), planes, ids
}

func TestDirectory_Schedule(t *testing.T) {
	dir, planes, ids := newDirectory(t, 100)

	f, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(48 * time.Hour), Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)
	assert.Equal(t, 100, f.EmptySeats)
	assert.Equal(t, 100, f.PlaneSeats)
	assert.False(t, f.Regular)

	plane, err := planes.Get(ids[0])
	require.NoError(t, err)
	assert.Equal(t, []int64{f.ID}, plane.Flights)

	got, err := dir.Get(f.ID)
	require.NoError(t, err)
	assert.Equal(t, f.Origin, got.Origin)
}

func TestDirectory_ScheduleErrors(t *testing.T) {
	dir, _, ids := newDirectory(t, 100)

	_, err := dir.Schedule(ScheduleInput{PlaneID: 42, Date: monday, Origin: "Lisbon", Destination: "Paris"})
	assert.ErrorIs(t, err, domain.ErrPlaneNotFound)

	_, err = dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday, Origin: "", Destination: "Paris"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDirectory_RegularCollisionSameDay(t *testing.T) {
	dir, _, ids := newDirectory(t, 100, 100)

	_, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(2 * time.Hour), Origin: "Lisbon", Destination: "Paris", Regular: true})
	require.NoError(t, err)

	// same plane, same day, later hour
	_, err = dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(8 * time.Hour), Origin: "Paris", Destination: "Lisbon"})
	assert.ErrorIs(t, err, domain.ErrRegularCollision)

	// other plane is free
	_, err = dir.Schedule(ScheduleInput{PlaneID: ids[1], Date: monday.Add(8 * time.Hour), Origin: "Paris", Destination: "Lisbon", Regular: true})
	assert.NoError(t, err)

	// next day is free
	_, err = dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(24 * time.Hour), Origin: "Paris", Destination: "Lisbon"})
	assert.NoError(t, err)
}

func TestDirectory_NonRegularFlightsDoNotCollide(t *testing.T) {
	dir, _, ids := newDirectory(t, 100)

	for i := 0; i < 3; i++ {
		_, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(time.Duration(i) * time.Hour), Origin: "Lisbon", Destination: "Porto"})
		require.NoError(t, err)
	}
	assert.Len(t, dir.All(), 3)
}

func TestDirectory_Cancel(t *testing.T) {
	dir, planes, ids := newDirectory(t, 100)
	f, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday, Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)

	require.NoError(t, dir.Update(f.ID, func(live *domain.Flight) error {
		live.Bookings = append(live.Bookings, domain.Booking{ID: 7, FlightID: live.ID, Seats: 2})
		live.EmptySeats -= 2
		return nil
	}))

	cancelled, err := dir.Cancel(f.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.Len(t, cancelled.Bookings, 1)

	_, err = dir.Get(f.ID)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	_, err = dir.Cancel(f.ID)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)

	plane, err := planes.Get(ids[0])
	require.NoError(t, err)
	assert.Empty(t, plane.Flights)
}

func TestDirectory_UpdateAfterCancel(t *testing.T) {
	dir, _, ids := newDirectory(t, 100)
	f, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday, Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)
	_, err = dir.Cancel(f.ID)
	require.NoError(t, err)

	called := false
	err = dir.Update(f.ID, func(*domain.Flight) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.False(t, called)
}

func TestDirectory_Reschedule(t *testing.T) {
	dir, _, ids := newDirectory(t, 100)
	f, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday, Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)

	newDate := monday.Add(72 * time.Hour)
	moved, err := dir.Reschedule(f.ID, newDate)
	require.NoError(t, err)
	assert.Equal(t, newDate, moved.Date)
	assert.Equal(t, 100, moved.EmptySeats)

	_, err = dir.Reschedule(999, newDate)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestDirectory_UpcomingAndFinished(t *testing.T) {
	dir, _, ids := newDirectory(t, 100)
	past, _ := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(-time.Hour), Origin: "Lisbon", Destination: "Paris"})
	now, _ := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday, Origin: "Lisbon", Destination: "Paris"})
	later, _ := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(time.Hour), Origin: "Lisbon", Destination: "Paris"})

	upcoming := dir.Upcoming(monday)
	require.Len(t, upcoming, 1)
	assert.Equal(t, later.ID, upcoming[0].ID)

	finished := dir.Finished(monday)
	require.Len(t, finished, 2)
	assert.Equal(t, past.ID, finished[0].ID)
	assert.Equal(t, now.ID, finished[1].ID)
}

func TestDirectory_Find(t *testing.T) {
	dir, _, ids := newDirectory(t, 100, 150)
	wednesday := monday.Add(48 * time.Hour)

	match, _ := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: wednesday.Add(3 * time.Hour), Origin: "Lisbon", Destination: "Paris"})
	_, _ = dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: wednesday.Add(4 * time.Hour), Origin: "Lisbon", Destination: "Rome"})
	_, _ = dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(24 * time.Hour), Origin: "Lisbon", Destination: "Paris"})
	regular, err := dir.ScheduleRegular(RegularInput{PlaneID: ids[1], Weekday: time.Wednesday, Hour: 7, Minute: 30, Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)

	found := dir.Find(wednesday, "Lisbon", "Paris", monday)
	require.Len(t, found, 2)
	assert.Equal(t, regular.ID, found[0].ID)
	assert.True(t, found[0].Regular)
	assert.Equal(t, 150, found[0].EmptySeats)
	assert.Equal(t, match.ID, found[1].ID)

	assert.Len(t, dir.Find(wednesday, "", "", monday), 3)
	assert.Empty(t, dir.Find(wednesday, "Porto", "", monday))
}

func TestDirectory_ConcurrentUpdatesSerialized(t *testing.T) {
	dir, _, ids := newDirectory(t, 1000)
	f, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday, Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 500; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = dir.Update(f.ID, func(live *domain.Flight) error {
				live.EmptySeats--
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := dir.Get(f.ID)
	require.NoError(t, err)
	assert.Equal(t, 500, got.EmptySeats)
}

func TestDirectory_HeldFlightDoesNotBlockOthers(t *testing.T) {
	dir, _, ids := newDirectory(t, 100, 150)
	a, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(24 * time.Hour), Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)
	b, err := dir.Schedule(ScheduleInput{PlaneID: ids[1], Date: monday.Add(24 * time.Hour), Origin: "Porto", Destination: "Rome"})
	require.NoError(t, err)
	tmpl, err := dir.ScheduleRegular(RegularInput{PlaneID: ids[1], Weekday: time.Friday, Hour: 8, Origin: "Lisbon", Destination: "London"})
	require.NoError(t, err)

	held := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = dir.Update(a.ID, func(f *domain.Flight) error {
			close(held)
			<-release
			f.EmptySeats--
			return nil
		})
	}()
	<-held

	rescheduled := make(chan struct{})
	go func() {
		_, _ = dir.Reschedule(a.ID, monday.Add(48*time.Hour))
		close(rescheduled)
	}()
	cancelled := make(chan *domain.Flight, 1)
	go func() {
		f, _ := dir.Cancel(a.ID)
		cancelled <- f
	}()
	time.Sleep(20 * time.Millisecond)

	done := make(chan error, 1)
	go func() {
		if err := dir.Update(b.ID, func(f *domain.Flight) error {
			f.EmptySeats--
			return nil
		}); err != nil {
			done <- err
			return
		}
		if _, err := dir.Schedule(ScheduleInput{PlaneID: ids[1], Date: monday.Add(72 * time.Hour), Origin: "Porto", Destination: "Paris"}); err != nil {
			done <- err
			return
		}
		if _, err := dir.Materialize(tmpl.ID, monday); err != nil {
			done <- err
			return
		}
		_, err := dir.Get(b.ID)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("flight B waited for flight A's lock")
	}

	close(release)
	<-rescheduled
	f := <-cancelled
	require.NotNil(t, f)
	assert.Equal(t, 99, f.EmptySeats)
	_, err = dir.Get(a.ID)
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
}

func TestDirectory_RescheduleCancelled(t *testing.T) {
	dir, _, ids := newDirectory(t, 100)
	f, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(24 * time.Hour), Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)
	_, err = dir.Cancel(f.ID)
	require.NoError(t, err)

	_, err = dir.Reschedule(f.ID, monday.Add(48*time.Hour))
	assert.ErrorIs(t, err, domain.ErrFlightNotFound)
	assert.Empty(t, dir.Upcoming(monday))
}

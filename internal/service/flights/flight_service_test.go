package flights

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetFlights(ctx context.Context) ([]domain.Flight, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockCache) SetFlights(ctx context.Context, flights []domain.Flight) error {
	args := m.Called(ctx, flights)
	return args.Error(0)
}

func (m *MockCache) InvalidateFlights(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestFlightService_List_CacheMiss(t *testing.T) {
	dir, _, ids := newDirectory(t, 100)
	f, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(time.Hour), Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)
	_, err = dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(-time.Hour), Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)

	mockCache := &MockCache{}
	service := NewFlightService(dir, mockCache, clockwork.NewFakeClockAt(monday))
	ctx := context.Background()

	mockCache.On("GetFlights", ctx).Return(nil, nil).Once()
	mockCache.On("SetFlights", ctx, mock.AnythingOfType("[]domain.Flight")).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, f.ID, result[0].ID)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheHit(t *testing.T) {
	dir, _, _ := newDirectory(t)
	mockCache := &MockCache{}
	service := NewFlightService(dir, mockCache, clockwork.NewFakeClockAt(monday))
	ctx := context.Background()

	cached := []domain.Flight{{ID: 4, Origin: "Lisbon", Destination: "Porto", EmptySeats: 10}}
	mockCache.On("GetFlights", ctx).Return(cached, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, cached, result)
	mockCache.AssertNotCalled(t, "SetFlights", mock.Anything, mock.Anything)
	mockCache.AssertExpectations(t)
}

func TestFlightService_List_CacheErrorFallsBack(t *testing.T) {
	dir, _, ids := newDirectory(t, 100)
	_, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(time.Hour), Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)

	mockCache := &MockCache{}
	service := NewFlightService(dir, mockCache, clockwork.NewFakeClockAt(monday))
	ctx := context.Background()

	mockCache.On("GetFlights", ctx).Return(nil, errors.New("redis down")).Once()
	mockCache.On("SetFlights", ctx, mock.Anything).Return(errors.New("redis down")).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	mockCache.AssertExpectations(t)
}

func TestFlightService_NoCache(t *testing.T) {
	dir, _, ids := newDirectory(t, 100)
	clock := clockwork.NewFakeClockAt(monday)
	f, err := dir.Schedule(ScheduleInput{PlaneID: ids[0], Date: monday.Add(time.Hour), Origin: "Lisbon", Destination: "Paris"})
	require.NoError(t, err)

	service := NewFlightService(dir, nil, clock)
	ctx := context.Background()

	upcoming, err := service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, upcoming, 1)

	clock.Advance(2 * time.Hour)
	upcoming, err = service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, upcoming)

	finished, err := service.ListFinished(ctx)
	require.NoError(t, err)
	require.Len(t, finished, 1)
	assert.Equal(t, f.ID, finished[0].ID)

	got, err := service.GetByID(ctx, f.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paris", got.Destination)

	service.Invalidate(ctx)
}

func TestFlightService_Invalidate(t *testing.T) {
	dir, _, _ := newDirectory(t)
	mockCache := &MockCache{}
	service := NewFlightService(dir, mockCache, clockwork.NewFakeClockAt(monday))
	ctx := context.Background()

	mockCache.On("InvalidateFlights", ctx).Return(errors.New("boom")).Once()

	service.Invalidate(ctx)

	mockCache.AssertExpectations(t)
}

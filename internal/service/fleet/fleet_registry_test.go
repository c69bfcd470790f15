package fleet

import (
	"testing"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_AddAssignsSequentialIDs(t *testing.T) {
	r := NewRegistry()

	a, err := r.Add(100, "TAP", "A320")
	require.NoError(t, err)
	b, err := r.Add(180, "TAP", "A321")
	require.NoError(t, err)

	assert.Equal(t, int64(1), a.ID)
	assert.Equal(t, int64(2), b.ID)
	assert.Len(t, r.List(), 2)
}

func TestRegistry_AddValidation(t *testing.T) {
	r := NewRegistry()

	testCases := []struct {
		name    string
		seats   int
		company string
		model   string
	}{
		{name: "Zero seats", seats: 0, company: "TAP", model: "A320"},
		{name: "Negative seats", seats: -1, company: "TAP", model: "A320"},
		{name: "Empty company", seats: 10, company: "", model: "A320"},
		{name: "Empty model", seats: 10, company: "TAP", model: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := r.Add(tc.seats, tc.company, tc.model)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, r.List())
}

func TestRegistry_FindBySeatsReturnsFirstMatch(t *testing.T) {
	r := NewRegistry()
	_, _ = r.Add(50, "TAP", "E190")
	big, _ := r.Add(300, "TAP", "A330")
	_, _ = r.Add(200, "TAP", "A321")

	p, err := r.FindBySeats(150)
	require.NoError(t, err)
	assert.Equal(t, big.ID, p.ID)

	_, err = r.FindBySeats(500)
	assert.ErrorIs(t, err, domain.ErrPlaneNotFound)
}

func TestRegistry_FlightReferences(t *testing.T) {
	r := NewRegistry()
	p, _ := r.Add(100, "TAP", "A320")

	require.NoError(t, r.AttachFlight(p.ID, 10))
	require.NoError(t, r.AttachFlight(p.ID, 11))
	r.DetachFlight(p.ID, 10)

	got, err := r.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, got.Flights)

	assert.ErrorIs(t, r.AttachFlight(99, 1), domain.ErrPlaneNotFound)

	flights, err := r.Remove(p.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{11}, flights)

	_, err = r.Get(p.ID)
	assert.ErrorIs(t, err, domain.ErrPlaneNotFound)
	_, err = r.Remove(p.ID)
	assert.ErrorIs(t, err, domain.ErrPlaneNotFound)
}

package fleet

import (
	"fmt"
	"sync"

	"github.com/Domenick1991/backoffice/internal/domain"
)

// Registry owns the airline's airplanes. Planes keep the ids of the flights
// scheduled on them; the flight directory maintains those references.
type Registry struct {
	mu     sync.RWMutex
	nextID int64
	planes []*domain.Airplane
}

func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

func (r *Registry) Add(seats int, company, model string) (*domain.Airplane, error) {
	if seats <= 0 {
		return nil, fmt.Errorf("seats must be positive: %w", domain.ErrInvalidInput)
	}
	if company == "" || model == "" {
		return nil, fmt.Errorf("company and model are required: %w", domain.ErrInvalidInput)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	plane := &domain.Airplane{ID: r.nextID, Seats: seats, Company: company, Model: model}
	r.nextID++
	r.planes = append(r.planes, plane)
	out := copyPlane(plane)
	return &out, nil
}

func (r *Registry) Get(id int64) (*domain.Airplane, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p := r.find(id)
	if p == nil {
		return nil, fmt.Errorf("plane %d: %w", id, domain.ErrPlaneNotFound)
	}
	out := copyPlane(p)
	return &out, nil
}

// FindBySeats returns the first plane, in purchase order, with at least seats
// seats.
func (r *Registry) FindBySeats(seats int) (*domain.Airplane, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.planes {
		if p.Seats >= seats {
			out := copyPlane(p)
			return &out, nil
		}
	}
	return nil, fmt.Errorf("no plane with %d seats: %w", seats, domain.ErrPlaneNotFound)
}

func (r *Registry) List() []domain.Airplane {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Airplane, 0, len(r.planes))
	for _, p := range r.planes {
		out = append(out, copyPlane(p))
	}
	return out
}

func (r *Registry) AttachFlight(planeID, flightID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.find(planeID)
	if p == nil {
		return fmt.Errorf("plane %d: %w", planeID, domain.ErrPlaneNotFound)
	}
	p.Flights = append(p.Flights, flightID)
	return nil
}

func (r *Registry) DetachFlight(planeID, flightID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.find(planeID)
	if p == nil {
		return
	}
	for i, id := range p.Flights {
		if id == flightID {
			p.Flights = append(p.Flights[:i], p.Flights[i+1:]...)
			return
		}
	}
}

// Remove deletes the plane and returns the flights that were still attached.
func (r *Registry) Remove(id int64) ([]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.planes {
		if p.ID == id {
			r.planes = append(r.planes[:i], r.planes[i+1:]...)
			return p.Flights, nil
		}
	}
	return nil, fmt.Errorf("plane %d: %w", id, domain.ErrPlaneNotFound)
}

func (r *Registry) find(id int64) *domain.Airplane {
	for _, p := range r.planes {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func copyPlane(p *domain.Airplane) domain.Airplane {
	out := *p
	out.Flights = append([]int64(nil), p.Flights...)
	return out
}

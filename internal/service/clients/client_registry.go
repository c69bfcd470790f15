package clients

import (
	"fmt"
	"sort"
	"sync"

	"github.com/Domenick1991/backoffice/internal/domain"
)

// Registry keeps one client record per e-mail address.
type Registry struct {
	mu      sync.RWMutex
	clients map[string]*domain.Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*domain.Client)}
}

// Put stores client unless its e-mail is already known, in which case the
// existing record is kept. The booking is added to the stored record either way.
func (r *Registry) Put(client domain.Client, ref domain.BookingRef) domain.Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.clients[client.Email]
	if !ok {
		c := client
		c.Bookings = nil
		stored = &c
		r.clients[client.Email] = stored
	}
	stored.Bookings = append(stored.Bookings, ref)
	return copyClient(stored)
}

func (r *Registry) Get(email string) (*domain.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[email]
	if !ok {
		return nil, fmt.Errorf("client %q: %w", email, domain.ErrClientNotFound)
	}
	out := copyClient(c)
	return &out, nil
}

// AddMiles adds delta to the client's mileage and returns the new balance.
func (r *Registry) AddMiles(delta float64, email string) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.clients[email]
	if !ok {
		return 0, fmt.Errorf("client %q: %w", email, domain.ErrClientNotFound)
	}
	c.Miles += delta
	return c.Miles, nil
}

func (r *Registry) List() []domain.Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, copyClient(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

func copyClient(c *domain.Client) domain.Client {
	out := *c
	out.Bookings = append([]domain.BookingRef(nil), c.Bookings...)
	return out
}

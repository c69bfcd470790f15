package flights

import (
	"context"
	"log"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/jonboulle/clockwork"
)

type FlightUseCase interface {
	List(ctx context.Context) ([]domain.Flight, error)
	ListFinished(ctx context.Context) ([]domain.Flight, error)
	ListRegular(ctx context.Context) ([]domain.RegularFlight, error)
	Find(ctx context.Context, day time.Time, origin, destination string) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
}

// FlightCache holds the rendered list of upcoming flights.
type FlightCache interface {
	GetFlights(ctx context.Context) ([]domain.Flight, error)
	SetFlights(ctx context.Context, flights []domain.Flight) error
	InvalidateFlights(ctx context.Context) error
}

// FlightService is the read side of the directory used by the API layer.
type FlightService struct {
	dir   *Directory
	cache FlightCache
	clock clockwork.Clock
}

func NewFlightService(dir *Directory, cache FlightCache, clock clockwork.Clock) *FlightService {
	return &FlightService{dir: dir, cache: cache, clock: clock}
}

func (s *FlightService) List(ctx context.Context) ([]domain.Flight, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetFlights(ctx); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("flights cache read: %v", err)
		}
	}

	flights := s.dir.Upcoming(s.clock.Now())
	if s.cache != nil {
		_ = s.cache.SetFlights(ctx, flights)
	}
	return flights, nil
}

func (s *FlightService) ListFinished(ctx context.Context) ([]domain.Flight, error) {
	return s.dir.Finished(s.clock.Now()), nil
}

func (s *FlightService) ListRegular(ctx context.Context) ([]domain.RegularFlight, error) {
	return s.dir.ListRegular(), nil
}

func (s *FlightService) Find(ctx context.Context, day time.Time, origin, destination string) ([]domain.Flight, error) {
	return s.dir.Find(day, origin, destination, s.clock.Now()), nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.dir.Get(id)
}

// Invalidate drops the cached listing after the directory changed.
func (s *FlightService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateFlights(ctx); err != nil {
		log.Printf("WARNING: failed to invalidate flights cache: %v", err)
	}
}

var _ FlightUseCase = (*FlightService)(nil)

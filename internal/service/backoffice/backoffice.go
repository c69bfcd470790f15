package backoffice

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/Domenick1991/backoffice/internal/service/booking"
	"github.com/Domenick1991/backoffice/internal/service/flights"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
)

type Dispatcher interface {
	Dispatch(ctx context.Context, cmd Command) (*Result, error)
	Planes() []domain.Airplane
	Clients() []domain.Client
	Destinations() []string
}

// Ledger is the booking side plus the event emitter it already owns.
type Ledger interface {
	booking.BookingUseCase
	Emit(ctx context.Context, event domain.BookingEvent)
}

type Fleet interface {
	Add(seats int, company, model string) (*domain.Airplane, error)
	Remove(id int64) ([]int64, error)
	List() []domain.Airplane
}

type Directory interface {
	Schedule(in flights.ScheduleInput) (*domain.Flight, error)
	ScheduleRegular(in flights.RegularInput) (*domain.RegularFlight, error)
	Reschedule(id int64, date time.Time) (*domain.Flight, error)
	Cancel(id int64) (*domain.Flight, error)
	CancelRegular(id int64) error
	CancelRegularForPlane(planeID int64) []int64
	Finished(now time.Time) []domain.Flight
}

type Clients interface {
	List() []domain.Client
}

type Destinations interface {
	Destinations() []string
	Known(name string) bool
}

// Invalidator drops cached flight listings.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

type Service struct {
	ledger      Ledger
	fleet       Fleet
	dir         Directory
	clients     Clients
	places      Destinations
	invalidator Invalidator
	validate    *validator.Validate
}

func NewService(ledger Ledger, fleet Fleet, dir Directory, clients Clients, places Destinations, invalidator Invalidator) *Service {
	v := validator.New()
	_ = v.RegisterValidation("destination", func(fl validator.FieldLevel) bool {
		return places.Known(fl.Field().String())
	})
	return &Service{
		ledger:      ledger,
		fleet:       fleet,
		dir:         dir,
		clients:     clients,
		places:      places,
		invalidator: invalidator,
		validate:    v,
	}
}

func (s *Service) Dispatch(ctx context.Context, cmd Command) (*Result, error) {
	if cmd == nil {
		return nil, fmt.Errorf("nil command: %w", domain.ErrInvalidInput)
	}
	if err := s.validate.Struct(cmd); err != nil {
		if bookingSide(cmd) {
			return outcome(domain.Outcome{Kind: domain.OutcomeInvalid}), nil
		}
		return nil, fmt.Errorf("%s: %v: %w", cmd.CommandName(), err, domain.ErrInvalidInput)
	}

	res, err := s.dispatch(ctx, cmd)
	if err == nil && mutates(cmd) && s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
	return res, err
}

func (s *Service) dispatch(ctx context.Context, cmd Command) (*Result, error) {
	switch c := cmd.(type) {
	case ScheduleBooking:
		var in booking.ScheduleBookingInput
		if err := copier.Copy(&in, &c); err != nil {
			return nil, err
		}
		return outcome(s.ledger.ScheduleBooking(ctx, in)), nil
	case CancelBooking:
		return outcome(s.ledger.CancelBooking(ctx, c.FlightID, c.BookingID)), nil
	case ModifyBooking:
		var in booking.ModifyBookingInput
		if err := copier.Copy(&in, &c); err != nil {
			return nil, err
		}
		return outcome(s.ledger.ModifyBooking(ctx, in)), nil
	case ScheduleCharter:
		var in booking.CharterInput
		if err := copier.Copy(&in, &c); err != nil {
			return nil, err
		}
		return outcome(s.ledger.ScheduleCharter(ctx, in)), nil
	case BookingPrice:
		price, miles, err := s.ledger.BookingPrice(ctx, c.FlightID, c.Email)
		if err != nil {
			return nil, err
		}
		return &Result{Price: price, Miles: miles}, nil
	case UpdateMiles:
		if err := s.ledger.UpdateMiles(ctx, c.Miles, c.Email); err != nil {
			return nil, err
		}
		return &Result{}, nil
	case BookingInfo:
		b, err := s.ledger.BookingInfo(ctx, c.FlightID, c.BookingID)
		if err != nil {
			return nil, err
		}
		return &Result{Booking: b}, nil
	case BuyPlane:
		p, err := s.fleet.Add(c.Seats, c.Company, c.Model)
		if err != nil {
			return nil, err
		}
		log.Printf("plane %d bought (%s %s, %d seats)", p.ID, p.Company, p.Model, p.Seats)
		return &Result{Plane: p}, nil
	case SellPlane:
		return s.sellPlane(ctx, c.PlaneID)
	case ScheduleFlight:
		f, err := s.dir.Schedule(flights.ScheduleInput{
			PlaneID:     c.PlaneID,
			Date:        c.Date,
			Origin:      c.Origin,
			Destination: c.Destination,
			Charter:     c.Charter,
		})
		if err != nil {
			return nil, err
		}
		log.Printf("flight %d scheduled on plane %d for %s", f.ID, f.PlaneID, f.Date.Format(time.RFC3339))
		return &Result{Flight: f}, nil
	case ScheduleRegularFlight:
		var in flights.RegularInput
		if err := copier.Copy(&in, &c); err != nil {
			return nil, err
		}
		r, err := s.dir.ScheduleRegular(in)
		if err != nil {
			return nil, err
		}
		log.Printf("regular flight %d scheduled on plane %d every %s at %02d:%02d", r.ID, r.PlaneID, r.Weekday, r.Hour, r.Minute)
		return &Result{Regular: r}, nil
	case RescheduleFlight:
		f, err := s.dir.Reschedule(c.FlightID, c.Date)
		if err != nil {
			return nil, err
		}
		return &Result{Flight: f}, nil
	case CancelFlight:
		return s.cancelFlight(ctx, c.FlightID)
	default:
		return nil, fmt.Errorf("unknown command %s: %w", cmd.CommandName(), domain.ErrInvalidInput)
	}
}

// cancelFlight cancels a dated flight, or the regular template with that id
// when no dated flight exists. Every booking on a cancelled flight gets a
// flight_cancelled event.
func (s *Service) cancelFlight(ctx context.Context, id int64) (*Result, error) {
	f, err := s.dir.Cancel(id)
	if errors.Is(err, domain.ErrFlightNotFound) {
		if rerr := s.dir.CancelRegular(id); rerr == nil {
			log.Printf("regular flight %d cancelled", id)
			return &Result{Cancelled: []int64{id}}, nil
		}
	}
	if err != nil {
		return nil, err
	}

	s.notifyCancelled(ctx, f)
	log.Printf("flight %d cancelled, %d bookings dropped", f.ID, len(f.Bookings))
	return &Result{Flight: f, Cancelled: []int64{f.ID}}, nil
}

// sellPlane removes the plane first so nothing new can be scheduled on it,
// then cancels its flights and templates.
func (s *Service) sellPlane(ctx context.Context, planeID int64) (*Result, error) {
	flightIDs, err := s.fleet.Remove(planeID)
	if err != nil {
		return nil, err
	}

	var cancelled []int64
	for _, id := range flightIDs {
		f, err := s.dir.Cancel(id)
		if err != nil {
			log.Printf("WARNING: sell plane %d: cancel flight %d: %v", planeID, id, err)
			continue
		}
		s.notifyCancelled(ctx, f)
		cancelled = append(cancelled, f.ID)
	}
	cancelled = append(cancelled, s.dir.CancelRegularForPlane(planeID)...)

	log.Printf("plane %d sold, %d flights cancelled", planeID, len(cancelled))
	return &Result{Cancelled: cancelled}, nil
}

func (s *Service) notifyCancelled(ctx context.Context, f *domain.Flight) {
	for _, b := range f.Bookings {
		s.ledger.Emit(ctx, domain.BookingEvent{
			Type:        domain.EventFlightCancelled,
			FlightID:    f.ID,
			BookingID:   b.ID,
			Seats:       b.Seats,
			Email:       b.ClientEmail,
			Origin:      f.Origin,
			Destination: f.Destination,
			Date:        f.Date,
			Price:       b.Price,
		})
	}
}

func (s *Service) Planes() []domain.Airplane {
	return s.fleet.List()
}

func (s *Service) Clients() []domain.Client {
	return s.clients.List()
}

func (s *Service) Destinations() []string {
	return s.places.Destinations()
}

func outcome(o domain.Outcome) *Result {
	return &Result{Outcome: &o}
}

func bookingSide(cmd Command) bool {
	switch cmd.(type) {
	case ScheduleBooking, CancelBooking, ModifyBooking, ScheduleCharter:
		return true
	}
	return false
}

func mutates(cmd Command) bool {
	switch cmd.(type) {
	case BookingPrice, BookingInfo, UpdateMiles:
		return false
	}
	return true
}

var _ Dispatcher = (*Service)(nil)

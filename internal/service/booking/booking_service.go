package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/Domenick1991/backoffice/internal/domain"
	"github.com/Domenick1991/backoffice/internal/service/flights"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

type BookingUseCase interface {
	ScheduleBooking(ctx context.Context, input ScheduleBookingInput) domain.Outcome
	CancelBooking(ctx context.Context, flightID, bookingID int64) domain.Outcome
	ModifyBooking(ctx context.Context, input ModifyBookingInput) domain.Outcome
	ScheduleCharter(ctx context.Context, input CharterInput) domain.Outcome
	BookingPrice(ctx context.Context, flightID int64, email string) (float64, float64, error)
	UpdateMiles(ctx context.Context, miles float64, email string) error
	BookingInfo(ctx context.Context, flightID, bookingID int64) (*domain.Booking, error)
}

type FlightDirectory interface {
	Get(id int64) (*domain.Flight, error)
	GetRegular(id int64) (*domain.RegularFlight, error)
	Materialize(id int64, now time.Time) (*domain.Flight, error)
	Update(id int64, fn func(f *domain.Flight) error) error
	Schedule(in flights.ScheduleInput) (*domain.Flight, error)
}

type PlaneFinder interface {
	FindBySeats(seats int) (*domain.Airplane, error)
}

type ClientRegistry interface {
	Put(client domain.Client, ref domain.BookingRef) domain.Client
	Get(email string) (*domain.Client, error)
	AddMiles(delta float64, email string) (float64, error)
}

type PriceTable interface {
	Price(from, to string) float64
}

// Counter hands out booking numbers. The returned number is usable even when
// err reports that persisting the next value failed.
type Counter interface {
	Reserve(ctx context.Context) (int64, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	flights            FlightDirectory
	planes             PlaneFinder
	clients            ClientRegistry
	prices             PriceTable
	counter            Counter
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	clock              clockwork.Clock
	numbers            numbers
}

// numbers remembers the highest booking number handed out. While the counter
// store fails, numbers continue from there instead of repeating.
type numbers struct {
	mu   sync.Mutex
	last int64
	used bool
}

func (n *numbers) issue(reserved int64, err error) int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	if err != nil && n.used && reserved <= n.last {
		reserved = n.last + 1
	}
	if !n.used || reserved > n.last {
		n.last = reserved
		n.used = true
	}
	return reserved
}

type ScheduleBookingInput struct {
	FlightID   int64  `json:"flight_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	Seats      int    `json:"seats"`
	IsOperator bool   `json:"-"`
	// BookingNumber is accepted for compatibility with front-office callers;
	// numbers always come from the counter store.
	BookingNumber int64 `json:"booking_number"`
}

type ModifyBookingInput struct {
	FlightID      int64 `json:"flight_id"`
	BookingID     int64 `json:"booking_id"`
	NewFlightID   int64 `json:"new_flight_id"`
	IsOperator    bool  `json:"-"`
	BookingNumber int64 `json:"booking_number"`
}

type CharterInput struct {
	Date        time.Time `json:"date"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	Seats       int       `json:"seats"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(clock clockwork.Clock) BookingServiceOption {
	return func(s *BookingService) {
		s.clock = clock
	}
}

func NewBookingService(
	flightDir FlightDirectory,
	planes PlaneFinder,
	clients ClientRegistry,
	prices PriceTable,
	counter Counter,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		flights:      flightDir,
		planes:       planes,
		clients:      clients,
		prices:       prices,
		counter:      counter,
		producer:     producer,
		bookingTopic: bookingTopic,
		clock:        clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) ScheduleBooking(ctx context.Context, input ScheduleBookingInput) domain.Outcome {
	if input.Seats <= 0 || input.Email == "" {
		return domain.Outcome{Kind: domain.OutcomeInvalid}
	}
	now := s.clock.Now()

	if _, err := s.flights.Get(input.FlightID); err != nil {
		regular, err := s.flights.GetRegular(input.FlightID)
		if err != nil {
			return domain.Outcome{Kind: domain.OutcomeUnknownFlight}
		}
		if regular.Charter && !input.IsOperator {
			return domain.Outcome{Kind: domain.OutcomeCharter}
		}
		if _, err := s.flights.Materialize(regular.ID, now); err != nil {
			if errors.Is(err, domain.ErrRegularCollision) {
				return domain.Outcome{Kind: domain.OutcomeUnavailable}
			}
			return domain.Outcome{Kind: domain.OutcomeUnknownFlight}
		}
	}

	var (
		outcome domain.Outcome
		created domain.Booking
		route   domain.Flight
	)
	err := s.flights.Update(input.FlightID, func(f *domain.Flight) error {
		switch {
		case f.Charter && !input.IsOperator:
			outcome = domain.Outcome{Kind: domain.OutcomeCharter}
			return nil
		case f.Date.Before(now):
			outcome = domain.Outcome{Kind: domain.OutcomeOver}
			return nil
		case f.EmptySeats-input.Seats < 0:
			outcome = domain.Outcome{Kind: domain.OutcomeInsufficientSeats, Seats: f.EmptySeats}
			return nil
		}

		number, err := s.counter.Reserve(ctx)
		if err != nil {
			log.Printf("WARNING: booking counter: %v", err)
		}
		number = s.numbers.issue(number, err)
		created = domain.Booking{
			ID:          number,
			FlightID:    f.ID,
			Seats:       input.Seats,
			ClientEmail: input.Email,
			Price:       s.prices.Price(f.Origin, f.Destination),
			CreatedAt:   now,
		}
		s.clients.Put(domain.Client{
			Name:    input.Name,
			Address: input.Address,
			Phone:   input.Phone,
			Email:   input.Email,
		}, domain.BookingRef{FlightID: f.ID, BookingID: number})
		f.Bookings = append(f.Bookings, created)
		f.EmptySeats -= input.Seats
		route = domain.Flight{ID: f.ID, Origin: f.Origin, Destination: f.Destination, Date: f.Date}

		outcome = domain.Outcome{Kind: domain.OutcomeScheduled, BookingNumber: number, FlightID: f.ID}
		return nil
	})
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeUnknownFlight}
	}

	if outcome.Kind == domain.OutcomeScheduled {
		log.Printf("booking %d scheduled on flight %d (%d seats)", created.ID, created.FlightID, created.Seats)
		s.publishBooking(ctx, domain.EventBookingScheduled, created, route)
	}
	return outcome
}

func (s *BookingService) CancelBooking(ctx context.Context, flightID, bookingID int64) domain.Outcome {
	removed, route, err := s.removeBooking(flightID, bookingID)
	switch {
	case errors.Is(err, domain.ErrBookingNotFound):
		return domain.Outcome{Kind: domain.OutcomeUnknownBooking}
	case err != nil:
		return domain.Outcome{Kind: domain.OutcomeUnknownFlight}
	}

	log.Printf("booking %d on flight %d cancelled", bookingID, flightID)
	s.publishBooking(ctx, domain.EventBookingCancelled, removed, route)
	return domain.Outcome{Kind: domain.OutcomeCancelled, BookingID: bookingID, FlightID: flightID}
}

// ModifyBooking moves a booking to another flight. The old booking is only
// removed once the new one has been scheduled.
func (s *BookingService) ModifyBooking(ctx context.Context, input ModifyBookingInput) domain.Outcome {
	flight, err := s.flights.Get(input.FlightID)
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeUnknownFlight}
	}
	i := flight.FindBooking(input.BookingID)
	if i < 0 {
		return domain.Outcome{Kind: domain.OutcomeUnknownBooking}
	}
	old := flight.Bookings[i]

	request := ScheduleBookingInput{
		FlightID:      input.NewFlightID,
		Email:         old.ClientEmail,
		Seats:         old.Seats,
		IsOperator:    input.IsOperator,
		BookingNumber: input.BookingNumber,
	}
	if client, err := s.clients.Get(old.ClientEmail); err == nil {
		request.Name = client.Name
		request.Address = client.Address
		request.Phone = client.Phone
	}

	scheduled := s.ScheduleBooking(ctx, request)
	if scheduled.Kind != domain.OutcomeScheduled {
		return domain.Outcome{
			Kind:      domain.OutcomeModifyFailed,
			BookingID: input.BookingID,
			FlightID:  input.FlightID,
			Cause:     &scheduled,
		}
	}

	removed, route, err := s.removeBooking(input.FlightID, input.BookingID)
	if err != nil {
		// cancelled concurrently; the new booking stands
		log.Printf("WARNING: modify booking %d: old booking already gone: %v", input.BookingID, err)
	} else {
		s.publishBooking(ctx, domain.EventBookingModified, removed, route)
	}

	return domain.Outcome{
		Kind:          domain.OutcomeModified,
		BookingNumber: scheduled.BookingNumber,
		FlightID:      input.NewFlightID,
	}
}

// ScheduleCharter books the first plane large enough for a one-off charter.
func (s *BookingService) ScheduleCharter(ctx context.Context, input CharterInput) domain.Outcome {
	if input.Seats <= 0 {
		return domain.Outcome{Kind: domain.OutcomeInvalid}
	}
	plane, err := s.planes.FindBySeats(input.Seats)
	if err != nil {
		return domain.Outcome{Kind: domain.OutcomeNoPlane}
	}
	flight, err := s.flights.Schedule(flights.ScheduleInput{
		PlaneID:     plane.ID,
		Date:        input.Date,
		Origin:      input.Origin,
		Destination: input.Destination,
		Charter:     true,
	})
	if err != nil {
		log.Printf("charter on plane %d: %v", plane.ID, err)
		return domain.Outcome{Kind: domain.OutcomeNoPlane}
	}

	log.Printf("charter flight %d scheduled on plane %d", flight.ID, plane.ID)
	s.Emit(ctx, domain.BookingEvent{
		Type:        domain.EventCharterScheduled,
		FlightID:    flight.ID,
		Seats:       input.Seats,
		Origin:      flight.Origin,
		Destination: flight.Destination,
		Date:        flight.Date,
	})
	return domain.Outcome{Kind: domain.OutcomeCharterBooked, FlightID: flight.ID}
}

// BookingPrice returns the fare of the flight's route and the client's miles.
func (s *BookingService) BookingPrice(ctx context.Context, flightID int64, email string) (float64, float64, error) {
	var origin, destination string
	if f, err := s.flights.Get(flightID); err == nil {
		origin, destination = f.Origin, f.Destination
	} else if r, err := s.flights.GetRegular(flightID); err == nil {
		origin, destination = r.Origin, r.Destination
	} else {
		return 0, 0, fmt.Errorf("flight %d: %w", flightID, domain.ErrFlightNotFound)
	}

	client, err := s.clients.Get(email)
	if err != nil {
		return 0, 0, err
	}
	return s.prices.Price(origin, destination), client.Miles, nil
}

// UpdateMiles adds miles (negative to spend them) to the client's balance.
func (s *BookingService) UpdateMiles(ctx context.Context, miles float64, email string) error {
	balance, err := s.clients.AddMiles(miles, email)
	if err != nil {
		return err
	}
	log.Printf("client %s now has %.1f miles", email, balance)
	return nil
}

func (s *BookingService) BookingInfo(ctx context.Context, flightID, bookingID int64) (*domain.Booking, error) {
	flight, err := s.flights.Get(flightID)
	if err != nil {
		return nil, err
	}
	i := flight.FindBooking(bookingID)
	if i < 0 {
		return nil, fmt.Errorf("booking %d on flight %d: %w", bookingID, flightID, domain.ErrBookingNotFound)
	}
	b := flight.Bookings[i]
	return &b, nil
}

func (s *BookingService) removeBooking(flightID, bookingID int64) (domain.Booking, domain.Flight, error) {
	var (
		removed domain.Booking
		route   domain.Flight
	)
	err := s.flights.Update(flightID, func(f *domain.Flight) error {
		i := f.FindBooking(bookingID)
		if i < 0 {
			return fmt.Errorf("booking %d on flight %d: %w", bookingID, flightID, domain.ErrBookingNotFound)
		}
		removed = f.Bookings[i]
		f.Bookings = append(f.Bookings[:i], f.Bookings[i+1:]...)
		f.EmptySeats += removed.Seats
		route = domain.Flight{ID: f.ID, Origin: f.Origin, Destination: f.Destination, Date: f.Date}
		return nil
	})
	return removed, route, err
}

func (s *BookingService) publishBooking(ctx context.Context, eventType string, b domain.Booking, f domain.Flight) {
	s.Emit(ctx, domain.BookingEvent{
		Type:        eventType,
		FlightID:    b.FlightID,
		BookingID:   b.ID,
		Seats:       b.Seats,
		Email:       b.ClientEmail,
		Origin:      f.Origin,
		Destination: f.Destination,
		Date:        f.Date,
		Price:       b.Price,
	})
}

// Emit publishes event to the booking topic and, when configured, to the
// notifications topic. Failures are logged and dropped.
func (s *BookingService) Emit(ctx context.Context, event domain.BookingEvent) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.clock.Now()
	}
	key := strconv.FormatInt(event.FlightID, 10)

	if err := s.producer.Publish(ctx, s.bookingTopic, key, event); err != nil {
		log.Printf("WARNING: Failed to publish %s event for flight %d: %v", event.Type, event.FlightID, err)
		return
	}
	if s.notificationsTopic != "" && event.Email != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			log.Printf("WARNING: Failed to publish %s notification for %s: %v", event.Type, event.Email, err)
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)

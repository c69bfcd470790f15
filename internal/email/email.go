package email

import (
	"context"
	"fmt"
	"log"

	"github.com/Domenick1991/backoffice/config"
	"github.com/Domenick1991/backoffice/internal/domain"
	"gopkg.in/gomail.v2"
)

type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// Sender mails clients about changes to their bookings. Without an SMTP host
// messages are only logged.
type Sender struct {
	from   string
	dialer Dialer
}

func NewSender(cfg config.SMTPConfig) *Sender {
	s := &Sender{from: cfg.From}
	if cfg.Host != "" {
		s.dialer = gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	}
	return s
}

func NewSenderWithDialer(from string, dialer Dialer) *Sender {
	return &Sender{from: from, dialer: dialer}
}

func (s *Sender) Send(ctx context.Context, event domain.BookingEvent) error {
	if event.Email == "" {
		return nil
	}
	subject, body := compose(event)
	if s.dialer == nil {
		log.Printf("send email to %s: %s", event.Email, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", event.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send email to %s: %w", event.Email, err)
	}
	log.Printf("sent %s email to %s", event.Type, event.Email)
	return nil
}

func compose(e domain.BookingEvent) (string, string) {
	route := fmt.Sprintf("%s to %s on %s", e.Origin, e.Destination, e.Date.Format("2006-01-02 15:04"))
	switch e.Type {
	case domain.EventBookingScheduled:
		return fmt.Sprintf("Booking %d confirmed", e.BookingID),
			fmt.Sprintf("Your booking %d for %d seat(s) on flight %d, %s, is confirmed. Price per seat: %.2f.",
				e.BookingID, e.Seats, e.FlightID, route, e.Price)
	case domain.EventBookingCancelled:
		return fmt.Sprintf("Booking %d cancelled", e.BookingID),
			fmt.Sprintf("Your booking %d on flight %d, %s, was cancelled.", e.BookingID, e.FlightID, route)
	case domain.EventBookingModified:
		return fmt.Sprintf("Booking %d moved", e.BookingID),
			fmt.Sprintf("Your booking %d on flight %d, %s, was replaced by a booking on another flight.", e.BookingID, e.FlightID, route)
	case domain.EventFlightCancelled:
		return fmt.Sprintf("Flight %d cancelled", e.FlightID),
			fmt.Sprintf("Flight %d, %s, was cancelled by the airline. Your booking %d no longer stands.", e.FlightID, route, e.BookingID)
	default:
		return fmt.Sprintf("Flight %d update", e.FlightID),
			fmt.Sprintf("There is an update (%s) for flight %d, %s.", e.Type, e.FlightID, route)
	}
}

package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/pingo/internal/domain"
	"github.com/Domenick1991/pingo/internal/kafka"
	"github.com/Domenick1991/pingo/internal/logging"
	"github.com/Domenick1991/pingo/internal/metrics"
	"github.com/Domenick1991/pingo/internal/repository"
	"github.com/Domenick1991/pingo/internal/session"
	"github.com/sirupsen/logrus"
)

// DefaultSeatNumber is assigned to every new booking. Seats are not chosen by
// the user and capacity is not checked.
const DefaultSeatNumber = "A1"

var ErrBookingFailed = errors.New("booking failed")

type BookingUseCase interface {
	CreateBooking(ctx context.Context, sess session.Provider, flightID string) (*domain.Booking, error)
	ListBookingsForUser(ctx context.Context, sess session.Provider) ([]domain.Booking, error)
	DeleteBooking(ctx context.Context, sess session.Provider, bookingID string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	producer           Producer
	bookingTopic       string
	notificationsTopic string
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	producer Producer,
	bookingTopic string,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		producer:     producer,
		bookingTopic: bookingTopic,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, sess session.Provider, flightID string) (*domain.Booking, error) {
	user := currentUser(sess)
	if user == nil {
		return nil, domain.ErrNotLoggedIn
	}

	booking := &domain.Booking{
		UserID:     user.ID,
		FlightID:   flightID,
		SeatNumber: DefaultSeatNumber,
		Status:     domain.BookingStatusConfirmed,
	}
	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	s.publish(ctx, kafka.EventBookingCreated, booking, user.Email)
	return booking, nil
}

func (s *BookingService) ListBookingsForUser(ctx context.Context, sess session.Provider) ([]domain.Booking, error) {
	user := currentUser(sess)
	if user == nil {
		return nil, domain.ErrNotLoggedIn
	}

	bookings, err := s.bookings.ListByUserWithFlights(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}
	return bookings, nil
}

// DeleteBooking only removes bookings owned by the session user; anything else
// reports domain.ErrNotFound.
func (s *BookingService) DeleteBooking(ctx context.Context, sess session.Provider, bookingID string) error {
	user := currentUser(sess)
	if user == nil {
		return domain.ErrNotLoggedIn
	}

	deleted, err := s.bookings.Delete(ctx, bookingID, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrBookingFailed, err)
	}

	s.publish(ctx, kafka.EventBookingDeleted, deleted, user.Email)
	return nil
}

func currentUser(sess session.Provider) *domain.User {
	if sess == nil {
		return nil
	}
	return sess.CurrentUser()
}

// publish never fails the calling operation: the booking is already stored.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, email string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.NewBookingEvent(eventType, booking, email)
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"event":      eventType,
		"booking_id": booking.ID,
	})

	topics := []string{s.bookingTopic}
	if s.notificationsTopic != "" {
		topics = append(topics, s.notificationsTopic)
	}
	for _, topic := range topics {
		if err := s.producer.Publish(ctx, topic, booking.ID, event); err != nil {
			metrics.BookingEventsPublished.WithLabelValues(eventType, "error").Inc()
			log.WithError(err).WithField("topic", topic).Warn("failed to publish booking event")
			continue
		}
		metrics.BookingEventsPublished.WithLabelValues(eventType, "ok").Inc()
	}
}

var _ BookingUseCase = (*BookingService)(nil)

package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/kafka"
	"github.com/Domenick1991/carbooking/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error)
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.StatusUpdateResult, error)
	ModifyDates(ctx context.Context, id int64, input ModifyDatesInput) (domain.UpdateResult, error)
}

type Cache interface {
	InvalidateRecentCars(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings repository.BookingRepository
	cache    Cache
	producer Producer
	topic    string
	log      *zap.Logger
}

type CreateBookingInput struct {
	CarID     int64  `json:"car_id"`
	Email     string `json:"booked_user_email"`
	StartDate string `json:"booking_start_date"`
	EndDate   string `json:"booking_end_date"`
}

type UpdateStatusInput struct {
	BookingID int64
	CarID     int64
	Status    string
}

type ModifyDatesInput struct {
	StartDate  string  `json:"booking_start_date"`
	EndDate    string  `json:"booking_end_date"`
	Days       int     `json:"booking_days_difference"`
	TotalPrice float64 `json:"totalPriceOfEntireBookingPeriod"`
}

func NewBookingService(
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	topic string,
	log *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		cache:    cache,
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

// CreateBooking inserts the booking and flips the referenced car to
// unavailable in one store transaction. The day count is computed here;
// the total price comes from the car's daily price read under the same
// row lock as the insert.
func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*domain.Booking, error) {
	if input.CarID <= 0 {
		return nil, fmt.Errorf("%w: car id is required", domain.ErrInvalidInput)
	}
	if input.Email == "" {
		return nil, fmt.Errorf("%w: booked user email is required", domain.ErrInvalidInput)
	}
	days, err := bookingDays(input.StartDate, input.EndDate)
	if err != nil {
		return nil, err
	}

	booking := &domain.Booking{
		CarID:     input.CarID,
		Reference: uuid.NewString(),
		UserEmail: input.Email,
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		Days:      days,
		Status:    domain.BookingStatusConfirmed,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "booking_created", booking)
	return booking, nil
}

func (s *BookingService) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	return s.bookings.ListByEmail(ctx, email)
}

// UpdateStatus applies the booking status and the car state the status
// implies: Confirmed parks the car as unavailable, Cancelled frees it.
// Any other status label updates the booking only.
func (s *BookingService) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*domain.StatusUpdateResult, error) {
	if input.Status == "" {
		return nil, fmt.Errorf("%w: booking status is required", domain.ErrInvalidInput)
	}

	result, err := s.bookings.UpdateStatus(ctx, input.BookingID, input.Status, input.CarID, carStateFor(input.Status))
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.publish(ctx, "booking_status_changed", &domain.Booking{
		ID:     input.BookingID,
		CarID:  input.CarID,
		Status: input.Status,
	})
	return result, nil
}

// ModifyDates is a pure booking mutation; the referenced car is never
// touched.
func (s *BookingService) ModifyDates(ctx context.Context, id int64, input ModifyDatesInput) (domain.UpdateResult, error) {
	if _, err := bookingDays(input.StartDate, input.EndDate); err != nil {
		return domain.UpdateResult{}, err
	}

	return s.bookings.UpdateDates(ctx, id, domain.BookingDatesUpdate{
		StartDate:  input.StartDate,
		EndDate:    input.EndDate,
		Days:       input.Days,
		TotalPrice: input.TotalPrice,
	})
}

func carStateFor(status string) *domain.CarBookingState {
	switch status {
	case domain.BookingStatusConfirmed:
		return &domain.CarBookingState{Availability: domain.AvailabilityNo, BookingStatus: domain.BookingStatusConfirmed}
	case domain.BookingStatusCancelled:
		return &domain.CarBookingState{Availability: domain.AvailabilityYes, BookingStatus: ""}
	}
	return nil
}

func bookingDays(start, end string) (int, error) {
	from, err := time.Parse(dateLayout, start)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid booking start date", domain.ErrInvalidInput)
	}
	to, err := time.Parse(dateLayout, end)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid booking end date", domain.ErrInvalidInput)
	}
	if to.Before(from) {
		return 0, fmt.Errorf("%w: booking end date is before start date", domain.ErrInvalidInput)
	}

	days := int(to.Sub(from).Hours() / 24)
	if days == 0 {
		// Same-day rentals count as one day.
		days = 1
	}
	return days, nil
}

func (s *BookingService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateRecentCars(ctx)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.topic == "" {
		return
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		Reference: booking.Reference,
		BookingID: booking.ID,
		CarID:     booking.CarID,
		Email:     booking.UserEmail,
		Status:    booking.Status,
		At:        time.Now(),
	}
	key := booking.Reference
	if key == "" {
		key = fmt.Sprintf("booking-%d", booking.ID)
	}
	if err := s.producer.Publish(ctx, s.topic, key, event); err != nil {
		s.log.Warn("failed to publish booking event",
			zap.String("type", eventType),
			zap.Int64("booking_id", booking.ID),
			zap.Error(err))
	}
}

var _ BookingUseCase = (*BookingService)(nil)

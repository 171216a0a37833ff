package booking

import (
	"context"
	"errors"
	"testing"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status string, carID int64, carState *domain.CarBookingState) (*domain.StatusUpdateResult, error) {
	args := m.Called(ctx, id, status, carID, carState)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StatusUpdateResult), args.Error(1)
}

func (m *MockBookingRepository) UpdateDates(ctx context.Context, id int64, upd domain.BookingDatesUpdate) (domain.UpdateResult, error) {
	args := m.Called(ctx, id, upd)
	return args.Get(0).(domain.UpdateResult), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) InvalidateRecentCars(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newTestService(bookings *MockBookingRepository, cache *MockCache, producer *MockProducer) *BookingService {
	var c Cache
	if cache != nil {
		c = cache
	}
	var p Producer
	if producer != nil {
		p = producer
	}
	return NewBookingService(bookings, c, p, "booking-events", zap.NewNop())
}

func TestBookingService_CreateBooking_Success(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newTestService(mockBookings, mockCache, mockProducer)

	ctx := context.Background()

	mockBookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Run(func(args mock.Arguments) {
		b := args.Get(1).(*domain.Booking)
		b.ID = 1
		b.TotalPrice = float64(b.Days) * 80
	}).Once()
	mockCache.On("InvalidateRecentCars", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()

	result, err := service.CreateBooking(ctx, CreateBookingInput{
		CarID:     7,
		Email:     "u@x.com",
		StartDate: "2024-02-01",
		EndDate:   "2024-02-03",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), result.CarID)
	assert.Equal(t, 2, result.Days)
	assert.Equal(t, 160.0, result.TotalPrice)
	assert.Equal(t, domain.BookingStatusConfirmed, result.Status)
	assert.NotEmpty(t, result.Reference)

	mockBookings.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateBooking_SameDayCountsOneDay(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := newTestService(mockBookings, nil, nil)

	ctx := context.Background()

	mockBookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()

	result, err := service.CreateBooking(ctx, CreateBookingInput{
		CarID:     7,
		Email:     "u@x.com",
		StartDate: "2024-02-01",
		EndDate:   "2024-02-01",
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Days)
}

func TestBookingService_CreateBooking_CarNotFound(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newTestService(mockBookings, mockCache, mockProducer)

	ctx := context.Background()

	mockBookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(domain.ErrCarNotFound).Once()

	result, err := service.CreateBooking(ctx, CreateBookingInput{
		CarID:     99,
		Email:     "u@x.com",
		StartDate: "2024-02-01",
		EndDate:   "2024-02-03",
	})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrCarNotFound)

	mockCache.AssertNotCalled(t, "InvalidateRecentCars")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CreateBooking_InvalidDates(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := newTestService(mockBookings, nil, nil)

	ctx := context.Background()

	cases := []CreateBookingInput{
		{CarID: 7, Email: "u@x.com", StartDate: "not-a-date", EndDate: "2024-02-03"},
		{CarID: 7, Email: "u@x.com", StartDate: "2024-02-01", EndDate: "bogus"},
		{CarID: 7, Email: "u@x.com", StartDate: "2024-02-03", EndDate: "2024-02-01"},
		{CarID: 7, Email: "", StartDate: "2024-02-01", EndDate: "2024-02-03"},
		{CarID: 0, Email: "u@x.com", StartDate: "2024-02-01", EndDate: "2024-02-03"},
	}

	for _, input := range cases {
		result, err := service.CreateBooking(ctx, input)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	mockBookings.AssertNotCalled(t, "Create")
}

func TestBookingService_CreateBooking_PublishFailureDoesNotFail(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newTestService(mockBookings, mockCache, mockProducer)

	ctx := context.Background()

	mockBookings.On("Create", ctx, mock.AnythingOfType("*domain.Booking")).Return(nil).Once()
	mockCache.On("InvalidateRecentCars", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", mock.AnythingOfType("string"), mock.Anything).
		Return(errors.New("broker down")).Once()

	result, err := service.CreateBooking(ctx, CreateBookingInput{
		CarID:     7,
		Email:     "u@x.com",
		StartDate: "2024-02-01",
		EndDate:   "2024-02-03",
	})

	assert.NoError(t, err)
	assert.NotNil(t, result)

	mockProducer.AssertExpectations(t)
}

func TestBookingService_UpdateStatus_Cancelled(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newTestService(mockBookings, mockCache, mockProducer)

	ctx := context.Background()

	expected := &domain.StatusUpdateResult{
		BookingResult: domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1},
		CarResult:     domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1},
	}
	state := &domain.CarBookingState{Availability: domain.AvailabilityYes, BookingStatus: ""}

	mockBookings.On("UpdateStatus", ctx, int64(5), domain.BookingStatusCancelled, int64(7), state).Return(expected, nil).Once()
	mockCache.On("InvalidateRecentCars", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()

	result, err := service.UpdateStatus(ctx, UpdateStatusInput{BookingID: 5, CarID: 7, Status: domain.BookingStatusCancelled})

	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	mockBookings.AssertExpectations(t)
}

func TestBookingService_UpdateStatus_ConfirmedMarksCarUnavailable(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newTestService(mockBookings, mockCache, mockProducer)

	ctx := context.Background()

	expected := &domain.StatusUpdateResult{
		BookingResult: domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1},
		CarResult:     domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1},
	}
	state := &domain.CarBookingState{Availability: domain.AvailabilityNo, BookingStatus: domain.BookingStatusConfirmed}

	mockBookings.On("UpdateStatus", ctx, int64(5), domain.BookingStatusConfirmed, int64(7), state).Return(expected, nil).Once()
	mockCache.On("InvalidateRecentCars", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()

	result, err := service.UpdateStatus(ctx, UpdateStatusInput{BookingID: 5, CarID: 7, Status: domain.BookingStatusConfirmed})

	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	mockBookings.AssertExpectations(t)
}

func TestBookingService_UpdateStatus_OtherStatusLeavesCarAlone(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newTestService(mockBookings, mockCache, mockProducer)

	ctx := context.Background()

	expected := &domain.StatusUpdateResult{
		BookingResult: domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1},
	}

	mockBookings.On("UpdateStatus", ctx, int64(5), "Under Review", int64(7), (*domain.CarBookingState)(nil)).Return(expected, nil).Once()
	mockCache.On("InvalidateRecentCars", ctx).Return(nil).Once()
	mockProducer.On("Publish", ctx, "booking-events", mock.AnythingOfType("string"), mock.Anything).Return(nil).Once()

	result, err := service.UpdateStatus(ctx, UpdateStatusInput{BookingID: 5, CarID: 7, Status: "Under Review"})

	assert.NoError(t, err)
	assert.Equal(t, expected, result)

	mockBookings.AssertExpectations(t)
}

func TestBookingService_UpdateStatus_MissingStatus(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := newTestService(mockBookings, nil, nil)

	result, err := service.UpdateStatus(context.Background(), UpdateStatusInput{BookingID: 5, CarID: 7})

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	mockBookings.AssertNotCalled(t, "UpdateStatus")
}

func TestBookingService_ModifyDates_UpdatesBookingOnly(t *testing.T) {
	mockBookings := &MockBookingRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newTestService(mockBookings, mockCache, mockProducer)

	ctx := context.Background()

	upd := domain.BookingDatesUpdate{
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-05",
		Days:       4,
		TotalPrice: 320,
	}

	mockBookings.On("UpdateDates", ctx, int64(5), upd).Return(domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil).Once()

	result, err := service.ModifyDates(ctx, 5, ModifyDatesInput{
		StartDate:  "2024-03-01",
		EndDate:    "2024-03-05",
		Days:       4,
		TotalPrice: 320,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(1), result.MatchedCount)

	mockBookings.AssertExpectations(t)
	mockCache.AssertNotCalled(t, "InvalidateRecentCars")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_ModifyDates_InvalidDates(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := newTestService(mockBookings, nil, nil)

	ctx := context.Background()

	cases := []ModifyDatesInput{
		{StartDate: "bogus", EndDate: "2024-03-05"},
		{StartDate: "2024-03-01", EndDate: "bogus"},
		{StartDate: "2024-03-05", EndDate: "2024-03-01"},
	}

	for _, input := range cases {
		_, err := service.ModifyDates(ctx, 5, input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	mockBookings.AssertNotCalled(t, "UpdateDates")
}

func TestBookingService_ModifyDates_NotFound(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := newTestService(mockBookings, nil, nil)

	ctx := context.Background()

	mockBookings.On("UpdateDates", ctx, int64(404), mock.Anything).Return(domain.UpdateResult{}, domain.ErrNotFound).Once()

	_, err := service.ModifyDates(ctx, 404, ModifyDatesInput{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-05",
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBookingService_ListByEmail(t *testing.T) {
	mockBookings := &MockBookingRepository{}

	service := newTestService(mockBookings, nil, nil)

	ctx := context.Background()

	bookings := []domain.Booking{{ID: 1, CarID: 7, UserEmail: "u@x.com"}}
	mockBookings.On("ListByEmail", ctx, "u@x.com").Return(bookings, nil).Once()

	result, err := service.ListByEmail(ctx, "u@x.com")

	assert.NoError(t, err)
	assert.Equal(t, bookings, result)
}

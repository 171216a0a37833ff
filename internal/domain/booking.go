package domain

import "time"

const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
)

type Booking struct {
	ID         int64     `json:"_id"`
	CarID      int64     `json:"car_id"`
	Reference  string    `json:"reference"`
	UserEmail  string    `json:"booked_user_email"`
	StartDate  string    `json:"booking_start_date"`
	EndDate    string    `json:"booking_end_date"`
	Days       int       `json:"booking_days_difference"`
	TotalPrice float64   `json:"totalPriceOfEntireBookingPeriod"`
	Status     string    `json:"bookingStatus"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BookingDatesUpdate is the date-only mutation of a booking. It never
// touches the referenced car.
type BookingDatesUpdate struct {
	StartDate  string
	EndDate    string
	Days       int
	TotalPrice float64
}

// UpdateResult mirrors the matched/modified counts of a single store
// update so callers can tell a miss from a no-op.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// StatusUpdateResult reports both steps of a booking status change.
type StatusUpdateResult struct {
	BookingResult UpdateResult `json:"bookingResult"`
	CarResult     UpdateResult `json:"carResult"`
}

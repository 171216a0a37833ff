package domain

import "time"

const (
	AvailabilityYes = "Yes"
	AvailabilityNo  = "No"
)

// OwnerDetails is the embedded owner identity of a listing.
type OwnerDetails struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type Car struct {
	ID               int64        `json:"_id"`
	Model            string       `json:"car_model"`
	DailyRentalPrice float64      `json:"daily_rental_price"`
	AddedDate        string       `json:"added_date"`
	Owner            OwnerDetails `json:"user_details"`
	Availability     string       `json:"availability"`
	BookingStatus    string       `json:"bookingStatus"`
	BookingCount     int          `json:"bookingCount"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// CarQuery carries the optional filter/sort parameters of the
// available-cars read. Sort directions are "asc" or "desc"; anything
// else is ignored. Price is the primary sort key when both are set.
type CarQuery struct {
	Search      string
	SortByPrice string
	SortByDate  string
}

// CarBookingState is the car-side effect of a booking status change.
type CarBookingState struct {
	Availability  string
	BookingStatus string
}

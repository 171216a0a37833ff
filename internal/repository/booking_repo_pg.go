package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository interface {
	// Create locks the referenced car, prices the booking from the
	// locked row and applies the car-side effect (bookingCount+1,
	// availability No, bookingStatus Confirmed) in one transaction. A
	// missing car is ErrCarNotFound and nothing is written.
	Create(ctx context.Context, booking *domain.Booking) error
	ListByEmail(ctx context.Context, email string) ([]domain.Booking, error)
	// UpdateStatus sets the booking status and, when carState is not
	// nil, the referenced car's availability/bookingStatus, atomically.
	UpdateStatus(ctx context.Context, id int64, status string, carID int64, carState *domain.CarBookingState) (*domain.StatusUpdateResult, error)
	UpdateDates(ctx context.Context, id int64, upd domain.BookingDatesUpdate) (domain.UpdateResult, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

const bookingColumns = `id, car_id, reference, booked_user_email, booking_start_date, booking_end_date, booking_days, total_price, booking_status, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(&b.ID, &b.CarID, &b.Reference, &b.UserEmail, &b.StartDate, &b.EndDate, &b.Days, &b.TotalPrice, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PGBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// The row lock keeps the price read, the insert and the counter
	// increment on one consistent car.
	var price float64
	if err := tx.QueryRow(ctx, `SELECT daily_rental_price FROM cars WHERE id=$1 FOR UPDATE`, booking.CarID).Scan(&price); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrCarNotFound
		}
		return err
	}

	booking.TotalPrice = float64(booking.Days) * price
	booking.Status = domain.BookingStatusConfirmed
	if err := tx.QueryRow(ctx, `INSERT INTO bookings (car_id, reference, booked_user_email, booking_start_date, booking_end_date, booking_days, total_price, booking_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		booking.CarID, booking.Reference, booking.UserEmail, booking.StartDate, booking.EndDate, booking.Days, booking.TotalPrice, booking.Status).
		Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `UPDATE cars SET booking_count = booking_count + 1, availability=$1, booking_status=$2, updated_at=now() WHERE id=$3`,
		domain.AvailabilityNo, domain.BookingStatusConfirmed, booking.CarID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) ListByEmail(ctx context.Context, email string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE booked_user_email=$1 ORDER BY id`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *PGBookingRepository) UpdateStatus(ctx context.Context, id int64, status string, carID int64, carState *domain.CarBookingState) (*domain.StatusUpdateResult, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE bookings SET booking_status=$1, updated_at=now() WHERE id=$2`, status, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}

	result := &domain.StatusUpdateResult{
		BookingResult: domain.UpdateResult{MatchedCount: cmd.RowsAffected(), ModifiedCount: cmd.RowsAffected()},
	}

	if carState != nil {
		carCmd, err := tx.Exec(ctx, `UPDATE cars SET availability=$1, booking_status=$2, updated_at=now() WHERE id=$3`,
			carState.Availability, carState.BookingStatus, carID)
		if err != nil {
			return nil, err
		}
		if carCmd.RowsAffected() == 0 {
			return nil, domain.ErrCarNotFound
		}
		result.CarResult = domain.UpdateResult{MatchedCount: carCmd.RowsAffected(), ModifiedCount: carCmd.RowsAffected()}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PGBookingRepository) UpdateDates(ctx context.Context, id int64, upd domain.BookingDatesUpdate) (domain.UpdateResult, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE bookings SET booking_start_date=$1, booking_end_date=$2, booking_days=$3, total_price=$4, updated_at=now() WHERE id=$5`,
		upd.StartDate, upd.EndDate, upd.Days, upd.TotalPrice, id)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	if cmd.RowsAffected() == 0 {
		return domain.UpdateResult{}, domain.ErrNotFound
	}
	return domain.UpdateResult{MatchedCount: cmd.RowsAffected(), ModifiedCount: cmd.RowsAffected()}, nil
}

var _ BookingRepository = (*PGBookingRepository)(nil)

package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CarRepository interface {
	Insert(ctx context.Context, car *domain.Car) error
	Search(ctx context.Context, q domain.CarQuery) ([]domain.Car, error)
	Recent(ctx context.Context, limit int) ([]domain.Car, error)
	ListByOwner(ctx context.Context, email string) ([]domain.Car, error)
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	Update(ctx context.Context, id int64, car *domain.Car, upsert bool) (domain.UpdateResult, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type PGCarRepository struct {
	db *pgxpool.Pool
}

func NewCarRepository(db *pgxpool.Pool) CarRepository {
	return &PGCarRepository{db: db}
}

const carColumns = `id, car_model, daily_rental_price, added_date, owner_email, owner_name, availability, booking_status, booking_count, created_at, updated_at`

func scanCar(row pgx.Row) (*domain.Car, error) {
	var c domain.Car
	if err := row.Scan(&c.ID, &c.Model, &c.DailyRentalPrice, &c.AddedDate, &c.Owner.Email, &c.Owner.Name, &c.Availability, &c.BookingStatus, &c.BookingCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCars(rows pgx.Rows) ([]domain.Car, error) {
	defer rows.Close()
	cars := make([]domain.Car, 0)
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, *c)
	}
	return cars, rows.Err()
}

func (r *PGCarRepository) Insert(ctx context.Context, car *domain.Car) error {
	if car.Availability == "" {
		car.Availability = domain.AvailabilityYes
	}
	return r.db.QueryRow(ctx, `INSERT INTO cars (car_model, daily_rental_price, added_date, owner_email, owner_name, availability, booking_status, booking_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		car.Model, car.DailyRentalPrice, car.AddedDate, car.Owner.Email, car.Owner.Name, car.Availability, car.BookingStatus, car.BookingCount).
		Scan(&car.ID, &car.CreatedAt, &car.UpdatedAt)
}

// searchOrderClause builds the compound ORDER BY for the available-cars
// read. Directions other than asc/desc are ignored; price comes before
// added date when both are requested.
func searchOrderClause(q domain.CarQuery) string {
	keys := make([]string, 0, 2)
	if dir, ok := sortDirection(q.SortByPrice); ok {
		keys = append(keys, "daily_rental_price "+dir)
	}
	if dir, ok := sortDirection(q.SortByDate); ok {
		keys = append(keys, "added_date "+dir)
	}
	if len(keys) == 0 {
		return "id"
	}
	return strings.Join(keys, ", ")
}

func sortDirection(v string) (string, bool) {
	switch v {
	case "asc":
		return "ASC", true
	case "desc":
		return "DESC", true
	}
	return "", false
}

func (r *PGCarRepository) Search(ctx context.Context, q domain.CarQuery) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, `SELECT `+carColumns+` FROM cars WHERE car_model ILIKE '%' || $1 || '%' ORDER BY `+searchOrderClause(q), q.Search)
	if err != nil {
		return nil, err
	}
	return collectCars(rows)
}

func (r *PGCarRepository) Recent(ctx context.Context, limit int) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, `SELECT `+carColumns+` FROM cars ORDER BY added_date DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	return collectCars(rows)
}

func (r *PGCarRepository) ListByOwner(ctx context.Context, email string) ([]domain.Car, error) {
	rows, err := r.db.Query(ctx, `SELECT `+carColumns+` FROM cars WHERE owner_email=$1 ORDER BY id`, email)
	if err != nil {
		return nil, err
	}
	return collectCars(rows)
}

func (r *PGCarRepository) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	car, err := scanCar(r.db.QueryRow(ctx, `SELECT `+carColumns+` FROM cars WHERE id=$1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return car, nil
}

// Update mutates the listing attributes of a car. Availability, booking
// status and booking count belong to the booking lifecycle and are only
// written when the upsert path creates a fresh row. With upsert off a
// missing id is ErrNotFound.
func (r *PGCarRepository) Update(ctx context.Context, id int64, car *domain.Car, upsert bool) (domain.UpdateResult, error) {
	if !upsert {
		cmd, err := r.db.Exec(ctx, `UPDATE cars SET car_model=$1, daily_rental_price=$2, added_date=$3, owner_email=$4, owner_name=$5, updated_at=now() WHERE id=$6`,
			car.Model, car.DailyRentalPrice, car.AddedDate, car.Owner.Email, car.Owner.Name, id)
		if err != nil {
			return domain.UpdateResult{}, err
		}
		if cmd.RowsAffected() == 0 {
			return domain.UpdateResult{}, domain.ErrNotFound
		}
		return domain.UpdateResult{MatchedCount: cmd.RowsAffected(), ModifiedCount: cmd.RowsAffected()}, nil
	}

	availability := car.Availability
	if availability == "" {
		availability = domain.AvailabilityYes
	}

	// xmax is zero only for a freshly inserted row.
	var inserted bool
	if err := r.db.QueryRow(ctx, `INSERT INTO cars (id, car_model, daily_rental_price, added_date, owner_email, owner_name, availability, booking_status, booking_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET car_model=EXCLUDED.car_model, daily_rental_price=EXCLUDED.daily_rental_price, added_date=EXCLUDED.added_date, owner_email=EXCLUDED.owner_email, owner_name=EXCLUDED.owner_name, updated_at=now()
		RETURNING (xmax = 0)`,
		id, car.Model, car.DailyRentalPrice, car.AddedDate, car.Owner.Email, car.Owner.Name, availability, car.BookingStatus, car.BookingCount).
		Scan(&inserted); err != nil {
		return domain.UpdateResult{}, err
	}
	if !inserted {
		return domain.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}

	// An explicit id bypasses the serial default; keep the sequence
	// ahead of it so later inserts do not collide.
	if _, err := r.db.Exec(ctx, `SELECT setval('cars_id_seq', GREATEST((SELECT max(id) FROM cars), 1))`); err != nil {
		return domain.UpdateResult{}, err
	}
	return domain.UpdateResult{MatchedCount: 0, ModifiedCount: 0}, nil
}

func (r *PGCarRepository) Delete(ctx context.Context, id int64) (int64, error) {
	cmd, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

var _ CarRepository = (*PGCarRepository)(nil)

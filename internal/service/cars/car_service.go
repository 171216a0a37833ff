package cars

import (
	"context"

	"github.com/Domenick1991/carbooking/internal/domain"
	"github.com/Domenick1991/carbooking/internal/repository"
)

// RecentLimit is the page size of the recent-listings read.
const RecentLimit = 6

type CarUseCase interface {
	Add(ctx context.Context, car *domain.Car) (int64, error)
	Available(ctx context.Context, q domain.CarQuery) ([]domain.Car, error)
	Recent(ctx context.Context) ([]domain.Car, error)
	ListByOwner(ctx context.Context, email string) ([]domain.Car, error)
	GetByID(ctx context.Context, id int64) (*domain.Car, error)
	Update(ctx context.Context, id int64, car *domain.Car) (domain.UpdateResult, error)
	Delete(ctx context.Context, id int64) (int64, error)
}

type Cache interface {
	GetRecentCars(ctx context.Context) ([]domain.Car, error)
	SetRecentCars(ctx context.Context, cars []domain.Car) error
	InvalidateRecentCars(ctx context.Context) error
}

type CarService struct {
	repo          repository.CarRepository
	cache         Cache
	strictUpdates bool
}

type CarServiceOption func(*CarService)

// WithStrictUpdates switches Update from create-or-update to
// update-only-must-exist.
func WithStrictUpdates(strict bool) CarServiceOption {
	return func(s *CarService) {
		s.strictUpdates = strict
	}
}

func NewCarService(repo repository.CarRepository, cache Cache, opts ...CarServiceOption) *CarService {
	service := &CarService{repo: repo, cache: cache}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *CarService) Add(ctx context.Context, car *domain.Car) (int64, error) {
	if err := s.repo.Insert(ctx, car); err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return car.ID, nil
}

func (s *CarService) Available(ctx context.Context, q domain.CarQuery) ([]domain.Car, error) {
	return s.repo.Search(ctx, q)
}

func (s *CarService) Recent(ctx context.Context) ([]domain.Car, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRecentCars(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	cars, err := s.repo.Recent(ctx, RecentLimit)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetRecentCars(ctx, cars)
	}
	return cars, nil
}

func (s *CarService) ListByOwner(ctx context.Context, email string) ([]domain.Car, error) {
	return s.repo.ListByOwner(ctx, email)
}

func (s *CarService) GetByID(ctx context.Context, id int64) (*domain.Car, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CarService) Update(ctx context.Context, id int64, car *domain.Car) (domain.UpdateResult, error) {
	result, err := s.repo.Update(ctx, id, car, !s.strictUpdates)
	if err != nil {
		return domain.UpdateResult{}, err
	}
	s.invalidate(ctx)
	return result, nil
}

func (s *CarService) Delete(ctx context.Context, id int64) (int64, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, domain.ErrNotFound
	}
	s.invalidate(ctx)
	return deleted, nil
}

func (s *CarService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateRecentCars(ctx)
	}
}

var _ CarUseCase = (*CarService)(nil)

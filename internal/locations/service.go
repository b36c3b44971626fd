package locations

import (
	"context"

	"ticketapp/internal/shared/constants"
	"ticketapp/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)
	CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error)
	GetLocationByID(ctx context.Context, id uuid.UUID) (*Location, error)
	GetAllLocations(ctx context.Context) ([]Location, error)
	UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*Location, error)
	DeleteLocation(ctx context.Context, id uuid.UUID) error
	LocationExists(ctx context.Context, id uuid.UUID) (bool, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*Location, error) {
	location := &Location{
		Name:        req.Name,
		Address:     req.Address,
		City:        req.City,
		Capacity:    req.Capacity,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, location); err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return location, nil
}

func (s *service) GetLocationByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	if s.cacheService != nil {
		var cached Location
		key := constants.CACHE_KEY_LOCATION_DETAIL + id.String()
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		key := constants.CACHE_KEY_LOCATION_DETAIL + id.String()
		_ = s.cacheService.Set(ctx, key, location, constants.TTL_STATIC_LONG)
	}

	return location, nil
}

func (s *service) GetAllLocations(ctx context.Context) ([]Location, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) UpdateLocation(ctx context.Context, id uuid.UUID, req UpdateLocationRequest) (*Location, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	location, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	return location, nil
}

// LocationExists backs the location check in the events service.
func (s *service) LocationExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.Exists(ctx, id)
}

func (s *service) DeleteLocation(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_LOCATIONS_ALL)
}

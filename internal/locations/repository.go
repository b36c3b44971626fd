package locations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLocationNotFound = errors.New("location not found")

type Repository interface {
	Create(ctx context.Context, location *Location) error
	GetByID(ctx context.Context, id uuid.UUID) (*Location, error)
	GetAll(ctx context.Context) ([]Location, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Location, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, location *Location) error {
	return r.db.WithContext(ctx).Create(location).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Location, error) {
	var location Location
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return &location, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Location, error) {
	var locations []Location
	err := r.db.WithContext(ctx).Order("name ASC").Find(&locations).Error
	return locations, err
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*Location, error) {
	var location Location
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&location).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&location).Updates(updates).Error; err != nil {
		return nil, err
	}

	return &location, nil
}

func (r *repository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Location{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Location{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLocationNotFound
	}
	return nil
}

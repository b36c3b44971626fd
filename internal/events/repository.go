package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Repository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id uuid.UUID) (*Event, error)
	Save(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetAll(ctx context.Context, query EventListQuery) ([]Event, int64, error)
	GetUpcoming(ctx context.Context, limit int) ([]Event, error)
	GetOpenByLocation(ctx context.Context, locationID uuid.UUID, exclude *uuid.UUID) ([]Event, error)

	// Sweep operations: bulk, unconditional set-updates, in this order.
	FinalizePast(ctx context.Context, today time.Time) (int64, error)
	ActivateToday(ctx context.Context, today, tomorrow time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	var event Event
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Save persists the full event row, including JSONB columns.
func (r *repository) Save(ctx context.Context, event *Event) error {
	return r.db.WithContext(ctx).Save(event).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Event{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (r *repository) GetAll(ctx context.Context, query EventListQuery) ([]Event, int64, error) {
	var events []Event
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Event{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	if query.LocationID != "" {
		db = db.Where("location_id = ?", query.LocationID)
	}

	if query.State != "" {
		db = db.Where("state = ?", query.State)
	}

	if query.DateFrom != "" {
		if from, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("date_time >= ?", from)
		}
	}

	if query.DateTo != "" {
		if to, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			db = db.Where("date_time < ?", to.AddDate(0, 0, 1))
		}
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	err := db.Order("date_time ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&events).Error

	return events, totalCount, err
}

func (r *repository) GetUpcoming(ctx context.Context, limit int) ([]Event, error) {
	var events []Event
	err := r.db.WithContext(ctx).
		Where("state = ?", StateUpcoming).
		Order("date_time ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

// GetOpenByLocation returns non-cancelled, non-finished events at a
// location, used for time-conflict validation.
func (r *repository) GetOpenByLocation(ctx context.Context, locationID uuid.UUID, exclude *uuid.UUID) ([]Event, error) {
	db := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Where("state IN ?", []State{StateUpcoming, StateActive})

	if exclude != nil {
		db = db.Where("id <> ?", *exclude)
	}

	var events []Event
	err := db.Find(&events).Error
	return events, err
}

func (r *repository) FinalizePast(ctx context.Context, today time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Event{}).
		Where("date_time < ? AND state IN ?", today, []State{StateActive, StateUpcoming}).
		Update("state", StateFinished)
	return result.RowsAffected, result.Error
}

func (r *repository) ActivateToday(ctx context.Context, today, tomorrow time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&Event{}).
		Where("date_time >= ? AND date_time < ? AND state = ?", today, tomorrow, StateUpcoming).
		Update("state", StateActive)
	return result.RowsAffected, result.Error
}

package tickets

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrTicketNotFound = errors.New("ticket not found")
	ErrSeatTaken      = errors.New("seat is already taken")
)

type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	Save(ctx context.Context, ticket *Ticket) error
	GetOccupiedSeatIDs(ctx context.Context, eventID uuid.UUID) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, ticket *Ticket) error {
	if err := r.db.WithContext(ctx).Create(ticket).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrSeatTaken
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).First(&ticket, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByUser(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var result []Ticket
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&result).Error
	return result, err
}

func (r *repository) Save(ctx context.Context, ticket *Ticket) error {
	return r.db.WithContext(ctx).Save(ticket).Error
}

// GetOccupiedSeatIDs returns the seat locators held by pending or paid
// tickets for the event.
func (r *repository) GetOccupiedSeatIDs(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	var seatIDs []string
	err := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("event_id = ? AND status IN ?", eventID, []Status{StatusPending, StatusPaid}).
		Pluck("seat_id", &seatIDs).Error
	return seatIDs, err
}

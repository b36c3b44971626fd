package locations

import (
	"time"

	"github.com/google/uuid"
)

type Location struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Address     string    `json:"address" gorm:"not null;size:500"`
	City        string    `json:"city" gorm:"not null;size:255;index"`
	Capacity    int       `json:"capacity" gorm:"not null;check:capacity > 0"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Location) TableName() string {
	return "locations"
}

type CreateLocationRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=255"`
	Address     string `json:"address" binding:"required,min=3,max=500"`
	City        string `json:"city" binding:"required,min=2,max=255"`
	Capacity    int    `json:"capacity" binding:"required,min=1,max=500000"`
	Description string `json:"description" binding:"max=2000"`
}

type UpdateLocationRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=255"`
	Address     *string `json:"address" binding:"omitempty,min=3,max=500"`
	City        *string `json:"city" binding:"omitempty,min=2,max=255"`
	Capacity    *int    `json:"capacity" binding:"omitempty,min=1,max=500000"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

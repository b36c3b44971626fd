package events

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"ticketapp/internal/pricing"

	"github.com/google/uuid"
)

// SectionList stores the per-event section pricing configuration as a
// JSONB document, mirroring the document shape the admin UI edits.
type SectionList []pricing.Section

func (l SectionList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *SectionList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for SectionList: %T", value)
	}
}

// SeatMapConfig is the canonical nested block configuration.
type SeatMapConfig struct {
	pricing.SeatMap
}

func (m *SeatMapConfig) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *SeatMapConfig) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("unsupported type for SeatMapConfig: %T", value)
	}
}

// StringList is a JSONB string array, used for the legacy top-level
// blocked seat fields kept for records stored before the nested seat
// map existed.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for StringList: %T", value)
	}
}

type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `json:"name" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	LocationID  uuid.UUID `json:"location_id" gorm:"type:uuid;not null;index"`
	DateTime    time.Time `json:"date_time" gorm:"not null;index"`
	State       State     `json:"state" gorm:"type:varchar(20);not null;default:'proximo';index"`
	Capacity    int       `json:"capacity" gorm:"not null;check:capacity > 0"`
	Price       float64   `json:"price" gorm:"not null;check:price >= 0"`
	Currency    string    `json:"currency" gorm:"type:varchar(8);not null;default:'€'"`

	UsesSectionPricing bool           `json:"uses_section_pricing" gorm:"not null;default:false"`
	Sections           SectionList    `json:"sections,omitempty" gorm:"type:jsonb"`
	SeatMap            *SeatMapConfig `json:"seat_map,omitempty" gorm:"type:jsonb"`

	// Legacy block fields, read only when SeatMap is absent.
	BlockedSeats    StringList `json:"blocked_seats,omitempty" gorm:"type:jsonb"`
	BlockedSections StringList `json:"blocked_sections,omitempty" gorm:"type:jsonb"`

	CreatedBy uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Event) TableName() string {
	return "events"
}

// PriceConfig projects the event into the pricing engine's input.
// Sections priced by multiplier instead of an explicit default get
// their default derived from the base price here, so resolution and
// aggregation always see a concrete amount.
func (e *Event) PriceConfig() pricing.PriceConfig {
	sections := make([]pricing.Section, len(e.Sections))
	copy(sections, e.Sections)
	for i := range sections {
		if sections[i].DefaultPrice == nil && sections[i].Multiplier != nil {
			derived := pricing.ApplyMultiplier(e.Price, sections[i].Multiplier)
			sections[i].DefaultPrice = &derived
		}
	}

	return pricing.PriceConfig{
		BasePrice:          e.Price,
		UsesSectionPricing: e.UsesSectionPricing,
		Sections:           sections,
	}
}

// EffectiveSeatMap returns the nested seat map when present, otherwise
// a view over the legacy top-level fields. Records written before the
// nested configuration existed carry only the legacy fields.
func (e *Event) EffectiveSeatMap() *pricing.SeatMap {
	if e.SeatMap != nil {
		return &e.SeatMap.SeatMap
	}
	if len(e.BlockedSeats) == 0 && len(e.BlockedSections) == 0 {
		return nil
	}
	return &pricing.SeatMap{
		BlockedSeats:    e.BlockedSeats,
		BlockedSections: e.BlockedSections,
	}
}

// RecomputeCapacity enforces the capacity invariant: with section
// pricing enabled, capacity is the sum of section capacities.
func (e *Event) RecomputeCapacity() {
	if !e.UsesSectionPricing {
		return
	}
	total := 0
	for _, section := range e.Sections {
		total += section.Capacity
	}
	e.Capacity = total
}

type EventResponse struct {
	ID                 string            `json:"id"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	LocationID         string            `json:"location_id"`
	DateTime           time.Time         `json:"date_time"`
	State              State             `json:"state"`
	Capacity           int               `json:"capacity"`
	Price              float64           `json:"price"`
	Currency           string            `json:"currency"`
	UsesSectionPricing bool              `json:"uses_section_pricing"`
	Sections           []pricing.Section `json:"sections,omitempty"`
	MinPrice           float64           `json:"min_price"`
	MaxPrice           float64           `json:"max_price"`
	PriceRange         string            `json:"price_range"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// ToResponse converts an Event to its API shape, resolving the
// displayed price range through the pricing engine.
func (e *Event) ToResponse() EventResponse {
	cfg := e.PriceConfig()

	return EventResponse{
		ID:                 e.ID.String(),
		Name:               e.Name,
		Description:        e.Description,
		LocationID:         e.LocationID.String(),
		DateTime:           e.DateTime,
		State:              e.State,
		Capacity:           e.Capacity,
		Price:              e.Price,
		Currency:           e.Currency,
		UsesSectionPricing: e.UsesSectionPricing,
		Sections:           e.Sections,
		MinPrice:           pricing.MinPrice(cfg),
		MaxPrice:           pricing.MaxPrice(cfg),
		PriceRange:         pricing.PriceRangeLabel(cfg, e.Currency),
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

type CreateEventRequest struct {
	Name               string            `json:"name" binding:"required,min=3,max=255"`
	Description        string            `json:"description" binding:"max=2000"`
	LocationID         string            `json:"location_id" binding:"required,uuid"`
	DateTime           time.Time         `json:"date_time" binding:"required"`
	Capacity           int               `json:"capacity" binding:"required_without=Sections,omitempty,min=1,max=500000"`
	Price              float64           `json:"price" binding:"min=0"`
	Currency           string            `json:"currency" binding:"omitempty,max=8"`
	UsesSectionPricing bool              `json:"uses_section_pricing"`
	Sections           []pricing.Section `json:"sections"`
}

type UpdateEventRequest struct {
	Name               *string           `json:"name" binding:"omitempty,min=3,max=255"`
	Description        *string           `json:"description" binding:"omitempty,max=2000"`
	LocationID         *string           `json:"location_id" binding:"omitempty,uuid"`
	DateTime           *time.Time        `json:"date_time"`
	Capacity           *int              `json:"capacity" binding:"omitempty,min=1,max=500000"`
	Price              *float64          `json:"price" binding:"omitempty,min=0"`
	Currency           *string           `json:"currency" binding:"omitempty,max=8"`
	UsesSectionPricing *bool             `json:"uses_section_pricing"`
	Sections           []pricing.Section `json:"sections"`
}

// SeatBlockRequest replaces the event's block configuration.
type SeatBlockRequest struct {
	BlockedSeats    []string `json:"blocked_seats"`
	BlockedSections []string `json:"blocked_sections"`
}

type EventListQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search"`
	LocationID string `form:"location_id" binding:"omitempty,uuid"`
	State      string `form:"state" binding:"omitempty,oneof=proximo activo finalizado cancelado"`
	DateFrom   string `form:"date_from"`
	DateTo     string `form:"date_to"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}

// SeatPriceResponse is the payload of the seat-price lookup endpoint.
type SeatPriceResponse struct {
	EventID   string  `json:"event_id"`
	SectionID string  `json:"section_id"`
	Row       string  `json:"row"`
	Seat      string  `json:"seat"`
	Price     float64 `json:"price"`
}

// SweepResult reports how many events each sweep phase touched.
type SweepResult struct {
	Finalized int64     `json:"finalized"`
	Activated int64     `json:"activated"`
	SweptAt   time.Time `json:"swept_at"`
	Skipped   bool      `json:"skipped"`
}

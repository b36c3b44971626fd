package tickets

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Active reports whether the ticket holds its seat. Cancelled tickets
// release the seat; pending and paid tickets both occupy it.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusPaid
}

// Ticket records a seat sale. Price is captured at purchase time and
// never recomputed, so later pricing changes do not affect sold
// tickets. The partial unique index keeps two active tickets from ever
// holding the same seat, even under concurrent purchases.
type Ticket struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	EventID uuid.UUID `json:"event_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_tickets_event_seat,where:status <> 'cancelled'"`
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`

	SeatID    string `json:"seat_id" gorm:"not null;size:64;uniqueIndex:idx_tickets_event_seat,where:status <> 'cancelled'"`
	SectionID string `json:"section_id" gorm:"size:64"`
	Row       string `json:"row" gorm:"size:16"`
	Seat      string `json:"seat" gorm:"size:16"`

	Price    float64 `json:"price" gorm:"not null"`
	Currency string  `json:"currency" gorm:"type:varchar(8);not null;default:'€'"`
	Status   Status  `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Ticket) TableName() string {
	return "tickets"
}

type PurchaseTicketRequest struct {
	EventID   string `json:"event_id" binding:"required,uuid"`
	SectionID string `json:"section_id" binding:"required"`
	Row       string `json:"row" binding:"required"`
	Seat      string `json:"seat" binding:"required"`
}

type TicketResponse struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	SeatID    string    `json:"seat_id"`
	SectionID string    `json:"section_id"`
	Row       string    `json:"row"`
	Seat      string    `json:"seat"`
	Price     float64   `json:"price"`
	Currency  string    `json:"currency"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Ticket) ToResponse() TicketResponse {
	return TicketResponse{
		ID:        t.ID.String(),
		EventID:   t.EventID.String(),
		UserID:    t.UserID.String(),
		SeatID:    t.SeatID,
		SectionID: t.SectionID,
		Row:       t.Row,
		Seat:      t.Seat,
		Price:     t.Price,
		Currency:  t.Currency,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// OccupiedSeatsResponse carries the full occupied set for an event:
// seats held by active tickets plus seats from the event's block
// configuration (blocked sections expanded over their seat grid).
type OccupiedSeatsResponse struct {
	EventID         string   `json:"event_id"`
	Seats           []string `json:"seats"`
	Count           int      `json:"count"`
	BlockedSections []string `json:"blocked_sections,omitempty"`
}

// UserTicketsResponse lists a user's tickets with their total spend
// across tickets that still hold a seat.
type UserTicketsResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	Count      int              `json:"count"`
	TotalSpent float64          `json:"total_spent"`
}

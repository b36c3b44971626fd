package tickets

import (
	"context"
	"errors"
	"sort"

	"ticketapp/internal/events"
	"ticketapp/internal/pricing"
	"ticketapp/internal/shared/config"
	"ticketapp/internal/shared/constants"
	"ticketapp/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrEventNotOpen    = errors.New("event is not open for sales")
	ErrSeatUnavailable = errors.New("seat is not available")
	ErrNotTicketOwner  = errors.New("ticket belongs to another user")
	ErrInvalidStatus   = errors.New("invalid ticket status transition")
)

// EventService is the slice of the events service the ticket flow
// needs. events.Service satisfies it directly.
type EventService interface {
	GetEvent(ctx context.Context, id uuid.UUID) (*events.Event, error)
}

// Notifier publishes ticket lifecycle notifications. A nil notifier
// disables publishing.
type Notifier interface {
	PublishTicketSold(ctx context.Context, ticketID, eventID, seatID string, price float64) error
}

type Service interface {
	// Service dependency injection
	SetCacheService(cacheService cache.Service)
	SetEventService(eventService EventService)
	SetNotifier(notifier Notifier)

	PurchaseTicket(ctx context.Context, userID uuid.UUID, req PurchaseTicketRequest) (*TicketResponse, error)
	GetTicketByID(ctx context.Context, userID, ticketID uuid.UUID) (*TicketResponse, error)
	GetUserTickets(ctx context.Context, userID uuid.UUID) (*UserTicketsResponse, error)
	PayTicket(ctx context.Context, userID, ticketID uuid.UUID) (*TicketResponse, error)
	CancelTicket(ctx context.Context, userID, ticketID uuid.UUID) (*TicketResponse, error)
	GetOccupiedSeats(ctx context.Context, eventID uuid.UUID) (*OccupiedSeatsResponse, error)
}

type service struct {
	repo         Repository
	config       *config.Config
	cacheService cache.Service
	eventService EventService
	notifier     Notifier
}

func NewService(repo Repository, cfg *config.Config) Service {
	return &service{
		repo:   repo,
		config: cfg,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetEventService(eventService EventService) {
	s.eventService = eventService
}

func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

// PurchaseTicket sells a seat. The price is resolved through the
// pricing engine once, at purchase time, and stored on the ticket. The
// availability check here is advisory; the unique index on
// (event_id, seat_id) for non-cancelled tickets is what actually
// prevents a double sale when two purchases race.
func (s *service) PurchaseTicket(ctx context.Context, userID uuid.UUID, req PurchaseTicketRequest) (*TicketResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventService.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if event.State != events.StateUpcoming && event.State != events.StateActive {
		return nil, ErrEventNotOpen
	}

	seatID := pricing.SeatID(req.SectionID, req.Row, req.Seat)

	if event.EffectiveSeatMap().IsBlocked(seatID) {
		return nil, ErrSeatUnavailable
	}

	occupiedIDs, err := s.occupiedSeatIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !pricing.IsAvailable(seatID, pricing.OccupiedSet(occupiedIDs)) {
		return nil, ErrSeatUnavailable
	}

	price := pricing.ResolvePrice(event.PriceConfig(), req.SectionID, req.Row)

	ticket := &Ticket{
		EventID:   eventID,
		UserID:    userID,
		SeatID:    seatID,
		SectionID: req.SectionID,
		Row:       req.Row,
		Seat:      req.Seat,
		Price:     price,
		Currency:  event.Currency,
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, ticket); err != nil {
		if errors.Is(err, ErrSeatTaken) {
			return nil, ErrSeatUnavailable
		}
		return nil, err
	}

	s.invalidateOccupiedCache(ctx, eventID)

	if s.notifier != nil {
		_ = s.notifier.PublishTicketSold(ctx, ticket.ID.String(), eventID.String(), seatID, price)
	}

	resp := ticket.ToResponse()
	return &resp, nil
}

func (s *service) GetTicketByID(ctx context.Context, userID, ticketID uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ownedTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}
	resp := ticket.ToResponse()
	return &resp, nil
}

func (s *service) GetUserTickets(ctx context.Context, userID uuid.UUID) (*UserTicketsResponse, error) {
	result, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]TicketResponse, len(result))
	var held []pricing.PricedSeat
	for i := range result {
		responses[i] = result[i].ToResponse()
		if result[i].Status.Active() {
			held = append(held, pricing.PricedSeat{
				ID:    result[i].SeatID,
				Price: &result[i].Price,
			})
		}
	}

	return &UserTicketsResponse{
		Tickets:    responses,
		Count:      len(responses),
		TotalSpent: pricing.Total(held),
	}, nil
}

func (s *service) PayTicket(ctx context.Context, userID, ticketID uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ownedTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}

	if ticket.Status != StatusPending {
		return nil, ErrInvalidStatus
	}

	ticket.Status = StatusPaid
	if err := s.repo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	resp := ticket.ToResponse()
	return &resp, nil
}

// CancelTicket releases the seat. The partial unique index ignores
// cancelled tickets, so the seat becomes sellable again immediately.
func (s *service) CancelTicket(ctx context.Context, userID, ticketID uuid.UUID) (*TicketResponse, error) {
	ticket, err := s.ownedTicket(ctx, userID, ticketID)
	if err != nil {
		return nil, err
	}

	if !ticket.Status.Active() {
		return nil, ErrInvalidStatus
	}

	ticket.Status = StatusCancelled
	if err := s.repo.Save(ctx, ticket); err != nil {
		return nil, err
	}

	s.invalidateOccupiedCache(ctx, ticket.EventID)

	resp := ticket.ToResponse()
	return &resp, nil
}

// GetOccupiedSeats returns the union a seat picker needs: seats held
// by pending/paid tickets plus the event's block configuration, with
// blocked sections expanded over their seat grid.
func (s *service) GetOccupiedSeats(ctx context.Context, eventID uuid.UUID) (*OccupiedSeatsResponse, error) {
	event, err := s.eventService.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	ticketSeats, err := s.occupiedSeatIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var blockedSeats, blockedSections []string
	if m := event.EffectiveSeatMap(); !m.IsEmpty() {
		blockedSeats = m.BlockedSeatIDs(event.Sections)
		blockedSections = m.BlockedSections
	}

	set := pricing.OccupiedSet(ticketSeats, blockedSeats)
	seats := make([]string, 0, len(set))
	for id := range set {
		seats = append(seats, id)
	}
	sort.Strings(seats)

	return &OccupiedSeatsResponse{
		EventID:         eventID.String(),
		Seats:           seats,
		Count:           len(seats),
		BlockedSections: blockedSections,
	}, nil
}

// occupiedSeatIDs reads the active-ticket seat set through a short
// lived cache entry. Purchases and cancellations invalidate it.
func (s *service) occupiedSeatIDs(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	key := constants.CACHE_KEY_TICKETS_OCCUPIED + eventID.String()

	if s.cacheService != nil {
		var cached []string
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	seatIDs, err := s.repo.GetOccupiedSeatIDs(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, key, seatIDs, s.config.Redis.OccupiedSeatsTTL)
	}
	return seatIDs, nil
}

func (s *service) ownedTicket(ctx context.Context, userID, ticketID uuid.UUID) (*Ticket, error) {
	ticket, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, ErrNotTicketOwner
	}
	return ticket, nil
}

func (s *service) invalidateOccupiedCache(ctx context.Context, eventID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.CACHE_KEY_TICKETS_OCCUPIED+eventID.String())
}

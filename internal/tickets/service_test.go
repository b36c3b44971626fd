package tickets

import (
	"context"
	"testing"
	"time"

	"ticketapp/internal/events"
	"ticketapp/internal/pricing"
	"ticketapp/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	tickets map[uuid.UUID]*Ticket

	createErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{tickets: make(map[uuid.UUID]*Ticket)}
}

func (f *fakeRepo) Create(ctx context.Context, ticket *Ticket) error {
	if f.createErr != nil {
		return f.createErr
	}
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeRepo) GetByUser(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var result []Ticket
	for _, t := range f.tickets {
		if t.UserID == userID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (f *fakeRepo) Save(ctx context.Context, ticket *Ticket) error {
	f.tickets[ticket.ID] = ticket
	return nil
}

func (f *fakeRepo) GetOccupiedSeatIDs(ctx context.Context, eventID uuid.UUID) ([]string, error) {
	var seatIDs []string
	for _, t := range f.tickets {
		if t.EventID == eventID && t.Status.Active() {
			seatIDs = append(seatIDs, t.SeatID)
		}
	}
	return seatIDs, nil
}

type fakeEventService struct {
	event *events.Event
	err   error
}

func (f *fakeEventService) GetEvent(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.event, nil
}

func ptr(v float64) *float64 { return &v }

func openEvent() *events.Event {
	return &events.Event{
		ID:                 uuid.New(),
		Name:               "Concierto",
		DateTime:           time.Now().AddDate(0, 0, 7),
		State:              events.StateUpcoming,
		Price:              40,
		Currency:           "€",
		UsesSectionPricing: true,
		Sections: events.SectionList{
			{
				ID:           "vip",
				Capacity:     40,
				DefaultPrice: ptr(90),
				RowPricing:   []pricing.RowPrice{{Row: "1", Price: 120}},
			},
		},
	}
}

func newTestService(repo Repository, eventSvc EventService) Service {
	svc := NewService(repo, &config.Config{})
	svc.SetEventService(eventSvc)
	return svc
}

func purchaseRequest(eventID uuid.UUID, sectionID, row, seat string) PurchaseTicketRequest {
	return PurchaseTicketRequest{
		EventID:   eventID.String(),
		SectionID: sectionID,
		Row:       row,
		Seat:      seat,
	}
}

func TestPurchaseTicket_CapturesResolvedPrice(t *testing.T) {
	event := openEvent()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})

	ticket, err := svc.PurchaseTicket(context.Background(), uuid.New(), purchaseRequest(event.ID, "vip", "1", "5"))
	require.NoError(t, err)

	assert.Equal(t, 120.0, ticket.Price)
	assert.Equal(t, "vip-1-5", ticket.SeatID)
	assert.Equal(t, StatusPending, ticket.Status)
	assert.Equal(t, "€", ticket.Currency)
}

func TestPurchaseTicket_PriceSurvivesLaterRepricing(t *testing.T) {
	event := openEvent()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})
	userID := uuid.New()

	ticket, err := svc.PurchaseTicket(context.Background(), userID, purchaseRequest(event.ID, "vip", "1", "5"))
	require.NoError(t, err)

	// Admin reprices the row after the sale.
	event.Sections[0].RowPricing[0].Price = 200

	ticketID := uuid.MustParse(ticket.ID)
	reloaded, err := svc.GetTicketByID(context.Background(), userID, ticketID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, reloaded.Price)
}

func TestPurchaseTicket_RejectsOccupiedSeat(t *testing.T) {
	event := openEvent()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})

	_, err := svc.PurchaseTicket(context.Background(), uuid.New(), purchaseRequest(event.ID, "vip", "1", "5"))
	require.NoError(t, err)

	_, err = svc.PurchaseTicket(context.Background(), uuid.New(), purchaseRequest(event.ID, "vip", "1", "5"))
	assert.ErrorIs(t, err, ErrSeatUnavailable)
}

func TestPurchaseTicket_RejectsBlockedSection(t *testing.T) {
	event := openEvent()
	event.SeatMap = &events.SeatMapConfig{
		SeatMap: pricing.SeatMap{BlockedSections: []string{"vip"}},
	}
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})

	_, err := svc.PurchaseTicket(context.Background(), uuid.New(), purchaseRequest(event.ID, "vip", "1", "5"))
	assert.ErrorIs(t, err, ErrSeatUnavailable)
}

func TestPurchaseTicket_RejectsClosedEvent(t *testing.T) {
	for _, state := range []events.State{events.StateFinished, events.StateCancelled} {
		event := openEvent()
		event.State = state
		svc := newTestService(newFakeRepo(), &fakeEventService{event: event})

		_, err := svc.PurchaseTicket(context.Background(), uuid.New(), purchaseRequest(event.ID, "vip", "1", "5"))
		assert.ErrorIs(t, err, ErrEventNotOpen, "state %s", state)
	}
}

func TestPurchaseTicket_MapsRaceLostToSeatUnavailable(t *testing.T) {
	event := openEvent()
	repo := newFakeRepo()
	repo.createErr = ErrSeatTaken
	svc := newTestService(repo, &fakeEventService{event: event})

	_, err := svc.PurchaseTicket(context.Background(), uuid.New(), purchaseRequest(event.ID, "vip", "1", "5"))
	assert.ErrorIs(t, err, ErrSeatUnavailable)
}

func TestCancelTicket_FreesSeat(t *testing.T) {
	event := openEvent()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})
	userID := uuid.New()

	ticket, err := svc.PurchaseTicket(context.Background(), userID, purchaseRequest(event.ID, "vip", "1", "5"))
	require.NoError(t, err)

	cancelled, err := svc.CancelTicket(context.Background(), userID, uuid.MustParse(ticket.ID))
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, cancelled.Status)

	// The same seat can be sold again after cancellation.
	_, err = svc.PurchaseTicket(context.Background(), uuid.New(), purchaseRequest(event.ID, "vip", "1", "5"))
	assert.NoError(t, err)
}

func TestPayTicket_Transitions(t *testing.T) {
	event := openEvent()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})
	userID := uuid.New()

	ticket, err := svc.PurchaseTicket(context.Background(), userID, purchaseRequest(event.ID, "vip", "1", "5"))
	require.NoError(t, err)
	ticketID := uuid.MustParse(ticket.ID)

	paid, err := svc.PayTicket(context.Background(), userID, ticketID)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)

	_, err = svc.PayTicket(context.Background(), userID, ticketID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestTicketOwnership(t *testing.T) {
	event := openEvent()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})

	ticket, err := svc.PurchaseTicket(context.Background(), uuid.New(), purchaseRequest(event.ID, "vip", "1", "5"))
	require.NoError(t, err)

	_, err = svc.PayTicket(context.Background(), uuid.New(), uuid.MustParse(ticket.ID))
	assert.ErrorIs(t, err, ErrNotTicketOwner)
}

func TestGetOccupiedSeats_OnlyActiveTickets(t *testing.T) {
	event := openEvent()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})
	userID := uuid.New()

	first, err := svc.PurchaseTicket(context.Background(), userID, purchaseRequest(event.ID, "vip", "1", "5"))
	require.NoError(t, err)
	_, err = svc.PurchaseTicket(context.Background(), userID, purchaseRequest(event.ID, "vip", "2", "1"))
	require.NoError(t, err)

	_, err = svc.CancelTicket(context.Background(), userID, uuid.MustParse(first.ID))
	require.NoError(t, err)

	occupied, err := svc.GetOccupiedSeats(context.Background(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"vip-2-1"}, occupied.Seats)
	assert.Equal(t, 1, occupied.Count)
}

func TestGetOccupiedSeats_IncludesBlockConfiguration(t *testing.T) {
	event := openEvent()
	event.Sections = append(event.Sections, pricing.Section{ID: "palco", Capacity: 4, Rows: 1, SeatsPerRow: 2})
	event.SeatMap = &events.SeatMapConfig{
		SeatMap: pricing.SeatMap{
			BlockedSeats:    []string{"vip-1-9"},
			BlockedSections: []string{"palco"},
		},
	}
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})

	_, err := svc.PurchaseTicket(context.Background(), uuid.New(), purchaseRequest(event.ID, "vip", "1", "5"))
	require.NoError(t, err)

	occupied, err := svc.GetOccupiedSeats(context.Background(), event.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"palco-1-1", "palco-1-2", "vip-1-5", "vip-1-9"}, occupied.Seats)
	assert.Equal(t, 4, occupied.Count)
	assert.Equal(t, []string{"palco"}, occupied.BlockedSections)
}

func TestGetUserTickets_SummarizesActiveSpend(t *testing.T) {
	event := openEvent()
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeEventService{event: event})
	userID := uuid.New()

	first, err := svc.PurchaseTicket(context.Background(), userID, purchaseRequest(event.ID, "vip", "1", "5"))
	require.NoError(t, err)
	_, err = svc.PurchaseTicket(context.Background(), userID, purchaseRequest(event.ID, "vip", "3", "1"))
	require.NoError(t, err)

	summary, err := svc.GetUserTickets(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 210.0, summary.TotalSpent) // 120 row price + 90 section default

	// Cancelled tickets stay listed but drop out of the spend total.
	_, err = svc.CancelTicket(context.Background(), userID, uuid.MustParse(first.ID))
	require.NoError(t, err)

	summary, err = svc.GetUserTickets(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Count)
	assert.Equal(t, 90.0, summary.TotalSpent)
}

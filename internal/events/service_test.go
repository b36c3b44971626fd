package events

import (
	"context"
	"testing"
	"time"

	"ticketapp/internal/pricing"
	"ticketapp/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	events map[uuid.UUID]*Event

	finalizeCalls int
	activateCalls int
	finalized     int64
	activated     int64
	openEvents    []Event
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{events: make(map[uuid.UUID]*Event)}
}

func (f *fakeRepo) Create(ctx context.Context, event *Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	f.events[event.ID] = event
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, ErrEventNotFound
	}
	copied := *event
	return &copied, nil
}

func (f *fakeRepo) Save(ctx context.Context, event *Event) error {
	f.events[event.ID] = event
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.events[id]; !ok {
		return ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepo) GetAll(ctx context.Context, query EventListQuery) ([]Event, int64, error) {
	var all []Event
	for _, e := range f.events {
		all = append(all, *e)
	}
	return all, int64(len(all)), nil
}

func (f *fakeRepo) GetUpcoming(ctx context.Context, limit int) ([]Event, error) {
	return nil, nil
}

func (f *fakeRepo) GetOpenByLocation(ctx context.Context, locationID uuid.UUID, exclude *uuid.UUID) ([]Event, error) {
	return f.openEvents, nil
}

func (f *fakeRepo) FinalizePast(ctx context.Context, today time.Time) (int64, error) {
	f.finalizeCalls++
	return f.finalized, nil
}

func (f *fakeRepo) ActivateToday(ctx context.Context, today, tomorrow time.Time) (int64, error) {
	f.activateCalls++
	return f.activated, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Sweep: config.SweepConfig{
			Interval: 5 * time.Minute,
			Debounce: 5 * time.Minute,
		},
	}
}

func TestUpdateEventStates_RunsBothPhases(t *testing.T) {
	repo := newFakeRepo()
	repo.finalized = 3
	repo.activated = 2
	svc := NewService(repo, testConfig())

	result, err := svc.UpdateEventStates(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.Finalized)
	assert.Equal(t, int64(2), result.Activated)
	assert.False(t, result.Skipped)
	assert.Equal(t, 1, repo.finalizeCalls)
	assert.Equal(t, 1, repo.activateCalls)
}

func TestUpdateEventStates_DebouncesBackToBackSweeps(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())

	_, err := svc.UpdateEventStates(context.Background(), false)
	require.NoError(t, err)

	result, err := svc.UpdateEventStates(context.Background(), false)
	require.NoError(t, err)

	assert.True(t, result.Skipped)
	assert.Equal(t, 1, repo.finalizeCalls)
}

func TestUpdateEventStates_ForceBypassesDebounce(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())

	_, err := svc.UpdateEventStates(context.Background(), false)
	require.NoError(t, err)

	result, err := svc.UpdateEventStates(context.Background(), true)
	require.NoError(t, err)

	assert.False(t, result.Skipped)
	assert.Equal(t, 2, repo.finalizeCalls)
}

func TestCancelEvent_TransitionRules(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		wantErr error
	}{
		{"upcoming can be cancelled", StateUpcoming, nil},
		{"active can be cancelled", StateActive, nil},
		{"finished cannot be cancelled", StateFinished, ErrNotCancellable},
		{"cancelled is terminal", StateCancelled, ErrNotCancellable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo()
			event := &Event{ID: uuid.New(), Name: "Concierto", State: tt.state}
			repo.events[event.ID] = event
			svc := NewService(repo, testConfig())

			resp, err := svc.CancelEvent(context.Background(), event.ID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StateCancelled, resp.State)
			assert.Equal(t, StateCancelled, repo.events[event.ID].State)
		})
	}
}

func TestCreateEvent_RejectsTimeConflict(t *testing.T) {
	repo := newFakeRepo()
	start := time.Date(2025, 12, 31, 20, 0, 0, 0, time.UTC)
	repo.openEvents = []Event{{DateTime: start.Add(time.Hour)}}
	svc := NewService(repo, testConfig())

	_, err := svc.CreateEvent(context.Background(), uuid.New(), CreateEventRequest{
		Name:       "Nochevieja",
		LocationID: uuid.New().String(),
		DateTime:   start,
		Capacity:   100,
		Price:      30,
	})

	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestCreateEvent_AllowsFourHourGap(t *testing.T) {
	repo := newFakeRepo()
	start := time.Date(2025, 12, 31, 12, 0, 0, 0, time.UTC)
	repo.openEvents = []Event{{DateTime: start.Add(4 * time.Hour)}}
	svc := NewService(repo, testConfig())

	resp, err := svc.CreateEvent(context.Background(), uuid.New(), CreateEventRequest{
		Name:       "Matinal",
		LocationID: uuid.New().String(),
		DateTime:   start,
		Capacity:   100,
		Price:      30,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
}

func TestCreateEvent_CapacityFromSections(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())

	resp, err := svc.CreateEvent(context.Background(), uuid.New(), CreateEventRequest{
		Name:               "Opera",
		LocationID:         uuid.New().String(),
		DateTime:           time.Now().AddDate(0, 1, 0),
		Price:              60,
		UsesSectionPricing: true,
		Sections: []pricing.Section{
			{ID: "platea", Capacity: 150},
			{ID: "palco", Capacity: 50},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 200, resp.Capacity)
}

func TestCreateEvent_RejectsDuplicateSectionIDs(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, testConfig())

	_, err := svc.CreateEvent(context.Background(), uuid.New(), CreateEventRequest{
		Name:               "Opera",
		LocationID:         uuid.New().String(),
		DateTime:           time.Now().AddDate(0, 1, 0),
		Price:              60,
		UsesSectionPricing: true,
		Sections: []pricing.Section{
			{ID: "platea", Capacity: 150},
			{ID: "platea", Capacity: 50},
		},
	})

	assert.ErrorIs(t, err, ErrSectionConfig)
}

func TestUpdateSeatBlocks_WritesCanonicalConfigAndClearsLegacy(t *testing.T) {
	repo := newFakeRepo()
	event := &Event{
		ID:              uuid.New(),
		State:           StateUpcoming,
		BlockedSeats:    StringList{"old-1-1"},
		BlockedSections: StringList{"old"},
	}
	repo.events[event.ID] = event
	svc := NewService(repo, testConfig())

	_, err := svc.UpdateSeatBlocks(context.Background(), event.ID, SeatBlockRequest{
		BlockedSeats:    []string{"vip-1-1"},
		BlockedSections: []string{"balcony"},
	})
	require.NoError(t, err)

	saved := repo.events[event.ID]
	require.NotNil(t, saved.SeatMap)
	assert.Equal(t, []string{"vip-1-1"}, saved.SeatMap.BlockedSeats)
	assert.Equal(t, []string{"balcony"}, saved.SeatMap.BlockedSections)
	assert.Nil(t, saved.BlockedSeats)
	assert.Nil(t, saved.BlockedSections)
}

func TestResolveSeatPrice_FallsBackForUnknownSection(t *testing.T) {
	repo := newFakeRepo()
	event := &Event{
		ID:                 uuid.New(),
		State:              StateUpcoming,
		Price:              40,
		UsesSectionPricing: true,
		Sections:           SectionList{{ID: "vip", DefaultPrice: ptr(90)}},
	}
	repo.events[event.ID] = event
	svc := NewService(repo, testConfig())

	resp, err := svc.ResolveSeatPrice(context.Background(), event.ID, "desconocida", "1", "1")
	require.NoError(t, err)
	assert.Equal(t, 40.0, resp.Price)

	resp, err = svc.ResolveSeatPrice(context.Background(), event.ID, "vip", "3", "1")
	require.NoError(t, err)
	assert.Equal(t, 90.0, resp.Price)
}

package events

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"ticketapp/internal/pricing"
	"ticketapp/internal/shared/config"
	"ticketapp/internal/shared/constants"
	"ticketapp/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrTimeConflict      = errors.New("another event at this location is scheduled less than 4 hours apart on the same day")
	ErrInvalidTransition = errors.New("invalid event state transition")
	ErrNotCancellable    = errors.New("only upcoming or active events can be cancelled")
	ErrSectionConfig     = errors.New("invalid section pricing configuration")
)

type Service interface {
	// Service dependency injection
	SetCacheService(cacheService cache.Service)
	SetLocationService(locationService LocationService)
	SetNotifier(notifier Notifier)

	CreateEvent(ctx context.Context, userID uuid.UUID, req CreateEventRequest) (*EventResponse, error)
	GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error)
	GetEvent(ctx context.Context, id uuid.UUID) (*Event, error)
	GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error)
	GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error)
	UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, id uuid.UUID) error
	CancelEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error)

	// Pricing & availability surface
	ResolveSeatPrice(ctx context.Context, eventID uuid.UUID, sectionID, row, seat string) (*SeatPriceResponse, error)
	UpdateSeatBlocks(ctx context.Context, eventID uuid.UUID, req SeatBlockRequest) (*EventResponse, error)

	// State sweep, debounced unless forced
	UpdateEventStates(ctx context.Context, force bool) (*SweepResult, error)
}

// LocationService interface to avoid a hard dependency on the
// locations package
type LocationService interface {
	LocationExists(ctx context.Context, locationID uuid.UUID) (bool, error)
}

// Notifier publishes event lifecycle notifications. A nil notifier
// disables publishing.
type Notifier interface {
	PublishEventStateChanged(ctx context.Context, eventID string, from, to string) error
	PublishEventCancelled(ctx context.Context, eventID, name string) error
}

type service struct {
	repo            Repository
	config          *config.Config
	cacheService    cache.Service
	locationService LocationService
	notifier        Notifier

	sweepMu   sync.Mutex
	lastSweep time.Time
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

func (s *service) SetLocationService(locationService LocationService) {
	s.locationService = locationService
}

func (s *service) SetNotifier(notifier Notifier) {
	s.notifier = notifier
}

func (s *service) CreateEvent(ctx context.Context, userID uuid.UUID, req CreateEventRequest) (*EventResponse, error) {
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		return nil, fmt.Errorf("invalid location ID: %w", err)
	}

	if err := s.validateLocation(ctx, locationID); err != nil {
		return nil, err
	}

	if req.UsesSectionPricing {
		if err := validateSections(req.Sections); err != nil {
			return nil, err
		}
	}

	if err := s.checkTimeConflict(ctx, locationID, req.DateTime, nil); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "€"
	}

	event := &Event{
		Name:               req.Name,
		Description:        req.Description,
		LocationID:         locationID,
		DateTime:           req.DateTime,
		State:              Classify(time.Now(), req.DateTime),
		Capacity:           req.Capacity,
		Price:              req.Price,
		Currency:           currency,
		UsesSectionPricing: req.UsesSectionPricing,
		Sections:           req.Sections,
		CreatedBy:          userID,
	}
	event.RecomputeCapacity()

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, nil)
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) GetEventByID(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	if s.cacheService != nil {
		var cached EventResponse
		key := constants.CACHE_KEY_EVENT_DETAIL + id.String()
		if err := s.cacheService.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := event.ToResponse()

	if s.cacheService != nil {
		key := constants.CACHE_KEY_EVENT_DETAIL + id.String()
		_ = s.cacheService.Set(ctx, key, resp, s.config.Redis.EventCacheTTL)
	}

	return &resp, nil
}

func (s *service) GetEvent(ctx context.Context, id uuid.UUID) (*Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAllEvents(ctx context.Context, query EventListQuery) (*PaginatedEvents, error) {
	events, totalCount, err := s.repo.GetAll(ctx, query)
	if err != nil {
		return nil, err
	}

	page := query.Page
	if page < 1 {
		page = 1
	}
	limit := query.Limit
	if limit < 1 {
		limit = 20
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = events[i].ToResponse()
	}

	return &PaginatedEvents{
		Events:     responses,
		TotalCount: totalCount,
		Page:       page,
		Limit:      limit,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(limit))),
	}, nil
}

func (s *service) GetUpcomingEvents(ctx context.Context, limit int) ([]EventResponse, error) {
	if limit < 1 {
		limit = 10
	}

	events, err := s.repo.GetUpcoming(ctx, limit)
	if err != nil {
		return nil, err
	}

	responses := make([]EventResponse, len(events))
	for i := range events {
		responses[i] = events[i].ToResponse()
	}
	return responses, nil
}

func (s *service) UpdateEvent(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.State.IsTerminal() {
		return nil, ErrInvalidTransition
	}

	if req.Name != nil {
		event.Name = *req.Name
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.LocationID != nil {
		locationID, err := uuid.Parse(*req.LocationID)
		if err != nil {
			return nil, fmt.Errorf("invalid location ID: %w", err)
		}
		if err := s.validateLocation(ctx, locationID); err != nil {
			return nil, err
		}
		event.LocationID = locationID
	}
	if req.DateTime != nil {
		event.DateTime = *req.DateTime
	}
	if req.Capacity != nil {
		event.Capacity = *req.Capacity
	}
	if req.Price != nil {
		event.Price = *req.Price
	}
	if req.Currency != nil {
		event.Currency = *req.Currency
	}
	if req.UsesSectionPricing != nil {
		event.UsesSectionPricing = *req.UsesSectionPricing
	}
	if req.Sections != nil {
		event.Sections = req.Sections
	}

	if event.UsesSectionPricing {
		if err := validateSections(event.Sections); err != nil {
			return nil, err
		}
	}

	if req.DateTime != nil || req.LocationID != nil {
		if err := s.checkTimeConflict(ctx, event.LocationID, event.DateTime, &event.ID); err != nil {
			return nil, err
		}
	}

	// Capacity invariant holds on every save with section pricing on.
	event.RecomputeCapacity()

	if err := s.repo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, &id)
	resp := event.ToResponse()
	return &resp, nil
}

func (s *service) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateEventCache(ctx, &id)
	return nil
}

func (s *service) CancelEvent(ctx context.Context, id uuid.UUID) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if event.State != StateUpcoming && event.State != StateActive {
		return nil, ErrNotCancellable
	}

	from := event.State
	event.State = StateCancelled
	if err := s.repo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, &id)

	if s.notifier != nil {
		_ = s.notifier.PublishEventStateChanged(ctx, id.String(), string(from), string(StateCancelled))
		_ = s.notifier.PublishEventCancelled(ctx, id.String(), event.Name)
	}

	resp := event.ToResponse()
	return &resp, nil
}

// ResolveSeatPrice answers the seat-price lookup. Resolution never
// fails for unknown sections or rows; it degrades to the base price.
func (s *service) ResolveSeatPrice(ctx context.Context, eventID uuid.UUID, sectionID, row, seat string) (*SeatPriceResponse, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	price := pricing.ResolvePrice(event.PriceConfig(), sectionID, row)

	return &SeatPriceResponse{
		EventID:   eventID.String(),
		SectionID: sectionID,
		Row:       row,
		Seat:      seat,
		Price:     price,
	}, nil
}

// UpdateSeatBlocks writes the canonical nested seat map and clears the
// legacy top-level fields, migrating old records on write.
func (s *service) UpdateSeatBlocks(ctx context.Context, eventID uuid.UUID, req SeatBlockRequest) (*EventResponse, error) {
	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	event.SeatMap = &SeatMapConfig{
		SeatMap: pricing.SeatMap{
			BlockedSeats:    req.BlockedSeats,
			BlockedSections: req.BlockedSections,
		},
	}
	event.BlockedSeats = nil
	event.BlockedSections = nil

	if err := s.repo.Save(ctx, event); err != nil {
		return nil, err
	}

	s.invalidateEventCache(ctx, &eventID)
	if s.cacheService != nil {
		_ = s.cacheService.Delete(ctx, constants.CACHE_KEY_TICKETS_OCCUPIED+eventID.String())
	}

	resp := event.ToResponse()
	return &resp, nil
}

// UpdateEventStates runs the two-phase state sweep. Finalization runs
// before activation so an event cannot be finalized and activated in
// the same pass. Unless forced, back-to-back sweeps inside the
// debounce window are skipped.
func (s *service) UpdateEventStates(ctx context.Context, force bool) (*SweepResult, error) {
	s.sweepMu.Lock()
	defer s.sweepMu.Unlock()

	now := time.Now()
	if !force && !s.lastSweep.IsZero() && now.Sub(s.lastSweep) < s.config.Sweep.Debounce {
		return &SweepResult{SweptAt: s.lastSweep, Skipped: true}, nil
	}

	today, tomorrow := SweepWindow(now)

	finalized, err := s.repo.FinalizePast(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("failed to finalize past events: %w", err)
	}

	activated, err := s.repo.ActivateToday(ctx, today, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("failed to activate today's events: %w", err)
	}

	s.lastSweep = now

	if finalized > 0 || activated > 0 {
		s.invalidateEventCache(ctx, nil)
	}

	return &SweepResult{
		Finalized: finalized,
		Activated: activated,
		SweptAt:   now,
	}, nil
}

func (s *service) validateLocation(ctx context.Context, locationID uuid.UUID) error {
	if s.locationService == nil {
		return nil
	}
	exists, err := s.locationService.LocationExists(ctx, locationID)
	if err != nil {
		return fmt.Errorf("failed to validate location: %w", err)
	}
	if !exists {
		return errors.New("location does not exist")
	}
	return nil
}

func (s *service) checkTimeConflict(ctx context.Context, locationID uuid.UUID, dateTime time.Time, exclude *uuid.UUID) error {
	others, err := s.repo.GetOpenByLocation(ctx, locationID, exclude)
	if err != nil {
		return fmt.Errorf("failed to check time conflicts: %w", err)
	}

	for _, other := range others {
		if pricing.Conflicts(dateTime, other.DateTime) {
			return ErrTimeConflict
		}
	}
	return nil
}

func validateSections(sections []pricing.Section) error {
	if len(sections) == 0 {
		return fmt.Errorf("%w: at least one section is required", ErrSectionConfig)
	}

	sectionIDs := make(map[string]bool)
	for _, section := range sections {
		if section.ID == "" {
			return fmt.Errorf("%w: section id is required", ErrSectionConfig)
		}
		if sectionIDs[section.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrSectionConfig, section.ID)
		}
		sectionIDs[section.ID] = true

		if section.Capacity < 0 {
			return fmt.Errorf("%w: section %q has negative capacity", ErrSectionConfig, section.ID)
		}
		if section.DefaultPrice != nil && *section.DefaultPrice < 0 {
			return fmt.Errorf("%w: section %q has negative default price", ErrSectionConfig, section.ID)
		}

		rows := make(map[string]bool)
		for _, rp := range section.RowPricing {
			if rows[rp.Row] {
				return fmt.Errorf("%w: duplicate row %q in section %q", ErrSectionConfig, rp.Row, section.ID)
			}
			rows[rp.Row] = true
			if rp.Price < 0 {
				return fmt.Errorf("%w: negative price for row %q in section %q", ErrSectionConfig, rp.Row, section.ID)
			}
		}
	}
	return nil
}

func (s *service) invalidateEventCache(ctx context.Context, eventID *uuid.UUID) {
	if s.cacheService == nil {
		return
	}

	patterns := []string{constants.PATTERN_INVALIDATE_EVENT_ALL}
	if eventID != nil {
		patterns = append(patterns, constants.PATTERN_INVALIDATE_EVENT_DETAIL+eventID.String()+"*")
	}

	for _, pattern := range patterns {
		_ = s.cacheService.DeletePattern(ctx, pattern)
	}
}

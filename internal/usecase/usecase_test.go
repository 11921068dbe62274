package usecase_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"ticket-booking/internal/data/entity"
	"ticket-booking/internal/data/repository"
	"ticket-booking/internal/usecase"
	"ticket-booking/pkg/cache"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// memStore is an in-memory backing store shared by the fake repositories.
type memStore struct {
	venues      map[uuid.UUID]*entity.Venue
	events      map[uuid.UUID]*entity.Event
	ticketTypes map[uuid.UUID]*entity.TicketType
	bookings    map[uuid.UUID]*entity.Booking
}

func newMemStore() *memStore {
	return &memStore{
		venues:      make(map[uuid.UUID]*entity.Venue),
		events:      make(map[uuid.UUID]*entity.Event),
		ticketTypes: make(map[uuid.UUID]*entity.TicketType),
		bookings:    make(map[uuid.UUID]*entity.Booking),
	}
}

func newTestService(store *memStore) (*usecase.Service, redismock.ClientMock) {
	client, redisMock := redismock.NewClientMock()
	statsCache := cache.NewWithClient(client, time.Minute, zap.NewNop())

	repo := &repository.Repository{
		Tx:         fakeTxManager{},
		Venue:      &fakeVenueRepo{store: store},
		Event:      &fakeEventRepo{store: store},
		TicketType: &fakeTicketTypeRepo{store: store},
		Booking:    &fakeBookingRepo{store: store},
	}

	return usecase.NewService(repo, statsCache, zap.NewNop()), redisMock
}

func (s *memStore) addVenue(name string, capacity int) *entity.Venue {
	venue := &entity.Venue{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:     name,
		Capacity: capacity,
		Address:  "1 Test Street",
	}
	s.venues[venue.ID] = venue
	return venue
}

func (s *memStore) addEvent(name string, venueID uuid.UUID) *entity.Event {
	event := &entity.Event{
		Base:      entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:      name,
		EventDate: time.Now().Add(24 * time.Hour),
		VenueID:   venueID,
	}
	s.events[event.ID] = event
	return event
}

func (s *memStore) addTicketType(name string, price float64) *entity.TicketType {
	ticketType := &entity.TicketType{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:  name,
		Price: price,
	}
	s.ticketTypes[ticketType.ID] = ticketType
	return ticketType
}

func (s *memStore) addBooking(eventID, ticketTypeID uuid.UUID, quantity int, status entity.BookingStatus) *entity.Booking {
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		CustomerName:  "Alex Doe",
		CustomerEmail: "alex@example.com",
		Quantity:      quantity,
		EventID:       eventID,
		TicketTypeID:  ticketTypeID,
		TotalPrice:    float64(quantity) * 10,
		Status:        status,
	}
	s.bookings[booking.ID] = booking
	return booking
}

type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeVenueRepo struct {
	store *memStore
}

func (r *fakeVenueRepo) Create(_ context.Context, venue *entity.Venue) error {
	r.store.venues[venue.ID] = venue
	return nil
}

func (r *fakeVenueRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Venue, error) {
	return r.store.venues[id], nil
}

func (r *fakeVenueRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.Venue, error) {
	venues := make([]*entity.Venue, 0, len(r.store.venues))
	for _, venue := range r.store.venues {
		venues = append(venues, venue)
	}
	sort.Slice(venues, func(i, j int) bool { return venues[i].Name < venues[j].Name })
	return paginate(venues, limit, offset), nil
}

func (r *fakeVenueRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.store.venues)), nil
}

func (r *fakeVenueRepo) Update(_ context.Context, venue *entity.Venue) error {
	if _, ok := r.store.venues[venue.ID]; !ok {
		return entity.ErrVenueNotFound
	}
	r.store.venues[venue.ID] = venue
	return nil
}

func (r *fakeVenueRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.venues[id]; !ok {
		return entity.ErrVenueNotFound
	}
	delete(r.store.venues, id)
	return nil
}

type fakeEventRepo struct {
	store *memStore
}

func (r *fakeEventRepo) Create(_ context.Context, event *entity.Event) error {
	r.store.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.store.events[id], nil
}

func (r *fakeEventRepo) FindByIDForUpdate(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	return r.store.events[id], nil
}

func (r *fakeEventRepo) FindAll(_ context.Context, limit, offset int, filter repository.EventFilter) ([]*entity.Event, error) {
	var events []*entity.Event
	for _, event := range r.store.events {
		if filter.VenueID != nil && event.VenueID != *filter.VenueID {
			continue
		}
		if filter.UpcomingAfter != nil && !event.EventDate.After(*filter.UpcomingAfter) {
			continue
		}
		events = append(events, event)
	}
	sort.Slice(events, func(i, j int) bool { return events[i].Name < events[j].Name })
	return paginate(events, limit, offset), nil
}

func (r *fakeEventRepo) CountAll(ctx context.Context, filter repository.EventFilter) (int64, error) {
	events, _ := r.FindAll(ctx, len(r.store.events)+1, 0, filter)
	return int64(len(events)), nil
}

func (r *fakeEventRepo) CountByVenueID(_ context.Context, venueID uuid.UUID) (int64, error) {
	var count int64
	for _, event := range r.store.events {
		if event.VenueID == venueID {
			count++
		}
	}
	return count, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event *entity.Event) error {
	if _, ok := r.store.events[event.ID]; !ok {
		return entity.ErrEventNotFound
	}
	r.store.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.events[id]; !ok {
		return entity.ErrEventNotFound
	}
	delete(r.store.events, id)
	return nil
}

type fakeTicketTypeRepo struct {
	store *memStore
}

func (r *fakeTicketTypeRepo) Create(_ context.Context, ticketType *entity.TicketType) error {
	for _, existing := range r.store.ticketTypes {
		if existing.Name == ticketType.Name {
			return entity.ErrTicketTypeNameTaken
		}
	}
	r.store.ticketTypes[ticketType.ID] = ticketType
	return nil
}

func (r *fakeTicketTypeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.TicketType, error) {
	return r.store.ticketTypes[id], nil
}

func (r *fakeTicketTypeRepo) FindByName(_ context.Context, name string) (*entity.TicketType, error) {
	for _, ticketType := range r.store.ticketTypes {
		if ticketType.Name == name {
			return ticketType, nil
		}
	}
	return nil, nil
}

func (r *fakeTicketTypeRepo) FindAll(_ context.Context, limit, offset int) ([]*entity.TicketType, error) {
	ticketTypes := make([]*entity.TicketType, 0, len(r.store.ticketTypes))
	for _, ticketType := range r.store.ticketTypes {
		ticketTypes = append(ticketTypes, ticketType)
	}
	sort.Slice(ticketTypes, func(i, j int) bool { return ticketTypes[i].Name < ticketTypes[j].Name })
	return paginate(ticketTypes, limit, offset), nil
}

func (r *fakeTicketTypeRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(r.store.ticketTypes)), nil
}

func (r *fakeTicketTypeRepo) Update(_ context.Context, ticketType *entity.TicketType) error {
	if _, ok := r.store.ticketTypes[ticketType.ID]; !ok {
		return entity.ErrTicketTypeNotFound
	}
	r.store.ticketTypes[ticketType.ID] = ticketType
	return nil
}

func (r *fakeTicketTypeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.ticketTypes[id]; !ok {
		return entity.ErrTicketTypeNotFound
	}
	delete(r.store.ticketTypes, id)
	return nil
}

type fakeBookingRepo struct {
	store *memStore
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.store.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.store.bookings[id], nil
}

func (r *fakeBookingRepo) FindAll(_ context.Context, limit, offset int, filter repository.BookingFilter) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, booking := range r.store.bookings {
		if !matchesFilter(booking, filter) {
			continue
		}
		bookings = append(bookings, booking)
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID.String() < bookings[j].ID.String() })
	return paginate(bookings, limit, offset), nil
}

func (r *fakeBookingRepo) CountAll(ctx context.Context, filter repository.BookingFilter) (int64, error) {
	bookings, _ := r.FindAll(ctx, len(r.store.bookings)+1, 0, filter)
	return int64(len(bookings)), nil
}

func (r *fakeBookingRepo) FindByEventID(_ context.Context, eventID uuid.UUID) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, booking := range r.store.bookings {
		if booking.EventID == eventID {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) FindByTicketTypeID(_ context.Context, ticketTypeID uuid.UUID) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, booking := range r.store.bookings {
		if booking.TicketTypeID == ticketTypeID {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) FindByCustomerEmail(_ context.Context, email string) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for _, booking := range r.store.bookings {
		if booking.CustomerEmail == email {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

func (r *fakeBookingRepo) CountByTicketTypeID(_ context.Context, ticketTypeID uuid.UUID) (int64, error) {
	var count int64
	for _, booking := range r.store.bookings {
		if booking.TicketTypeID == ticketTypeID {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) SumActiveQuantityByEventID(_ context.Context, eventID uuid.UUID, exclude *uuid.UUID) (int, error) {
	var sum int
	for _, booking := range r.store.bookings {
		if booking.EventID != eventID || !booking.CountsTowardCapacity() {
			continue
		}
		if exclude != nil && booking.ID == *exclude {
			continue
		}
		sum += booking.Quantity
	}
	return sum, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, booking *entity.Booking) error {
	if _, ok := r.store.bookings[booking.ID]; !ok {
		return entity.ErrBookingNotFound
	}
	r.store.bookings[booking.ID] = booking
	return nil
}

func (r *fakeBookingRepo) UpdateStatus(_ context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	booking, ok := r.store.bookings[bookingID]
	if !ok {
		return entity.ErrBookingNotFound
	}
	booking.Status = status
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.store.bookings[id]; !ok {
		return entity.ErrBookingNotFound
	}
	delete(r.store.bookings, id)
	return nil
}

func (r *fakeBookingRepo) DeleteByEventID(_ context.Context, eventID uuid.UUID) (int64, error) {
	var removed int64
	for id, booking := range r.store.bookings {
		if booking.EventID == eventID {
			delete(r.store.bookings, id)
			removed++
		}
	}
	return removed, nil
}

func matchesFilter(booking *entity.Booking, filter repository.BookingFilter) bool {
	if filter.EventID != nil && booking.EventID != *filter.EventID {
		return false
	}
	if filter.CustomerEmail != nil && !strings.Contains(strings.ToLower(booking.CustomerEmail), strings.ToLower(*filter.CustomerEmail)) {
		return false
	}
	if filter.Status != nil && booking.Status != *filter.Status {
		return false
	}
	return true
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

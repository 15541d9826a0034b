package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
)

// InMemoryReservationStore is a mutex-guarded implementation of
// domain.ReservationStore with the same transactional semantics as the
// Postgres store: the apply callback runs on a copy of the showtime under
// exclusive access, and the copy replaces the original only when both the
// callback and the (optional) simulated commit succeed.
type InMemoryReservationStore struct {
	mu        sync.Mutex
	showtimes map[domain.ShowtimeKey]*domain.Showtime
	tickets   []*domain.Ticket

	// CommitErr, when set, makes every commit fail after the callback has
	// run, exercising the rollback contract.
	CommitErr error
}

func NewInMemoryReservationStore(showtimes ...*domain.Showtime) *InMemoryReservationStore {
	store := &InMemoryReservationStore{
		showtimes: make(map[domain.ShowtimeKey]*domain.Showtime, len(showtimes)),
	}

	for _, s := range showtimes {
		store.showtimes[s.Key()] = s
	}

	return store
}

func (s *InMemoryReservationStore) Reserve(
	ctx context.Context,
	key domain.ShowtimeKey,
	apply func(*domain.Showtime) (*domain.Ticket, error)) (*domain.Ticket, error) {

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.showtimes[key]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	work := *current
	work.Seats = current.Seats.Clone()

	ticket, err := apply(&work)
	if err != nil {
		return nil, err
	}

	if s.CommitErr != nil {
		return nil, s.CommitErr
	}

	work.Version++
	ticket.CreatedAt = time.Now()

	s.showtimes[key] = &work
	s.tickets = append(s.tickets, ticket)

	return ticket, nil
}

// Showtime returns the committed state for key, or nil when absent.
func (s *InMemoryReservationStore) Showtime(key domain.ShowtimeKey) *domain.Showtime {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.showtimes[key]
}

// Tickets returns a copy of all committed tickets.
func (s *InMemoryReservationStore) Tickets() []*domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := make([]*domain.Ticket, len(s.tickets))
	copy(tickets, s.tickets)

	return tickets
}

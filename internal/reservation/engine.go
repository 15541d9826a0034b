// Package reservation implements the seat reservation engine: the single
// decision point that accepts or rejects a seat selection for a showtime and
// commits the grid mutation together with the resulting ticket as one unit.
package reservation

import (
	"context"
	"fmt"

	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
)

// Request carries one reservation attempt. The per-seat price is not part of
// the request; it is resolved from the showtime record inside the store's
// transaction so clients cannot influence the charged amount.
type Request struct {
	Key   domain.ShowtimeKey
	Seats []domain.SeatCoordinate
	Name  string
	Email string
}

type Engine struct {
	store domain.ReservationStore
}

func NewEngine(store domain.ReservationStore) *Engine {
	return &Engine{store: store}
}

// Reserve attempts to book every requested seat, all-or-nothing. The request
// is rejected before any storage access when it is malformed; bounds and
// conflicts are checked against the current grid under the store's exclusive
// access, so two overlapping concurrent attempts can never both succeed.
//
// Reserve is deliberately not idempotent: repeating a successful call fails
// with domain.ErrSeatAlreadyReserved, which is the concurrency-control
// mechanism rather than a bug. On any error the showtime's seat grid is left
// exactly as it was before the call.
func (e *Engine) Reserve(ctx context.Context, req Request) (*domain.Ticket, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	return e.store.Reserve(ctx, req.Key, func(showtime *domain.Showtime) (*domain.Ticket, error) {
		if err := showtime.Seats.Reserve(req.Seats); err != nil {
			return nil, err
		}

		return domain.NewTicket(req.Name, req.Email, showtime, req.Seats), nil
	})
}

func validate(req Request) error {
	if len(req.Seats) == 0 {
		return fmt.Errorf("%w: no seats requested", domain.ErrInvalidSeatSelection)
	}

	seen := make(map[domain.SeatCoordinate]bool, len(req.Seats))

	for _, c := range req.Seats {
		if c.Row < 0 || c.Col < 0 {
			return domain.ErrSeatOutOfRange
		}

		if seen[c] {
			return fmt.Errorf("%w: duplicate seat (%d, %d)", domain.ErrInvalidSeatSelection, c.Row, c.Col)
		}

		seen[c] = true
	}

	return nil
}

package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ShowtimeKey is the composite business key of a showtime. Showtimes are
// addressed by (movie, theater, start time) rather than by surrogate id, and
// tickets keep a denormalized copy of the same triple.
type ShowtimeKey struct {
	MovieTitle  string
	TheaterName string
	StartTime   time.Time
}

type Showtime struct {
	ID          int
	MovieTitle  string
	TheaterName string
	StartTime   time.Time
	Price       decimal.Decimal
	Seats       SeatGrid
	Version     int
	CreatedAt   time.Time
}

func (s *Showtime) Key() ShowtimeKey {
	return ShowtimeKey{
		MovieTitle:  s.MovieTitle,
		TheaterName: s.TheaterName,
		StartTime:   s.StartTime,
	}
}

// SeatCoordinate addresses a single cell of a seat grid.
type SeatCoordinate struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SeatGrid is a rows-by-columns matrix of booked flags, true meaning booked.
// Dimensions are fixed at creation and cells only ever flip false to true.
type SeatGrid [][]bool

func NewSeatGrid(rows, cols int) SeatGrid {
	grid := make(SeatGrid, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
	}

	return grid
}

func (g SeatGrid) Rows() int {
	return len(g)
}

func (g SeatGrid) Cols() int {
	if len(g) == 0 {
		return 0
	}

	return len(g[0])
}

// Rectangular reports whether every row has the same length. Grids read back
// from storage are validated with this before any coordinate math.
func (g SeatGrid) Rectangular() bool {
	for _, row := range g {
		if len(row) != g.Cols() {
			return false
		}
	}

	return true
}

func (g SeatGrid) Contains(c SeatCoordinate) bool {
	return c.Row >= 0 && c.Row < g.Rows() && c.Col >= 0 && c.Col < g.Cols()
}

func (g SeatGrid) Booked(c SeatCoordinate) bool {
	return g[c.Row][c.Col]
}

func (g SeatGrid) Clone() SeatGrid {
	clone := make(SeatGrid, len(g))
	for i, row := range g {
		clone[i] = make([]bool, len(row))
		copy(clone[i], row)
	}

	return clone
}

// Reserve marks every requested cell as booked. All coordinates are checked
// for bounds and conflicts before any cell is written, so a rejected request
// leaves the grid untouched.
func (g SeatGrid) Reserve(seats []SeatCoordinate) error {
	for _, c := range seats {
		if !g.Contains(c) {
			return ErrSeatOutOfRange
		}
	}

	for _, c := range seats {
		if g.Booked(c) {
			return ErrSeatAlreadyReserved
		}
	}

	for _, c := range seats {
		g[c.Row][c.Col] = true
	}

	return nil
}

type ShowtimeRepository interface {
	Create(ctx context.Context, showtime *Showtime) error
	GetByKey(ctx context.Context, key ShowtimeKey) (*Showtime, error)
	GetAllByMovie(ctx context.Context, movieTitle string) ([]*Showtime, error)
}

// ReservationStore runs a reservation attempt against a single showtime under
// exclusive access. The apply callback receives the current state of the
// showtime and returns the ticket to persist; if it returns an error, or the
// commit fails, no mutation of the seat grid survives.
type ReservationStore interface {
	Reserve(ctx context.Context, key ShowtimeKey, apply func(*Showtime) (*Ticket, error)) (*Ticket, error)
}

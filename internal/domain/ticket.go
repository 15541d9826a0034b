package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TicketStatus string

const (
	TicketStatusReserved  TicketStatus = "reserved"
	TicketStatusConfirmed TicketStatus = "confirmed"
)

// Ticket is the durable record of a committed reservation. It stores a
// denormalized snapshot of the showtime reference, not a foreign key.
type Ticket struct {
	ID          uuid.UUID
	Name        string
	Email       string
	MovieTitle  string
	TheaterName string
	StartTime   time.Time
	Seats       []SeatCoordinate
	TotalPrice  decimal.Decimal
	Status      TicketStatus
	Used        bool
	QRCode      string
	CreatedAt   time.Time
}

// NewTicket builds the ticket paired with a successful seat-grid mutation.
// The total is always derived from the showtime's stored per-seat price.
func NewTicket(name, email string, showtime *Showtime, seats []SeatCoordinate) *Ticket {
	return &Ticket{
		ID:          uuid.New(),
		Name:        name,
		Email:       email,
		MovieTitle:  showtime.MovieTitle,
		TheaterName: showtime.TheaterName,
		StartTime:   showtime.StartTime,
		Seats:       seats,
		TotalPrice:  showtime.Price.Mul(decimal.NewFromInt(int64(len(seats)))),
		Status:      TicketStatusReserved,
	}
}

type TicketRepository interface {
	GetById(ctx context.Context, id uuid.UUID) (*Ticket, error)
	GetAllByEmail(ctx context.Context, email string) ([]*Ticket, error)
	SetQRCode(ctx context.Context, id uuid.UUID, qrCode string) error

	// MarkUsed flips the one-way used flag and confirms the ticket. A second
	// call for the same ticket fails with ErrTicketAlreadyUsed.
	MarkUsed(ctx context.Context, id uuid.UUID) (*Ticket, error)
}

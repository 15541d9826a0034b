package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

func (p *PostgresTicketRepository) GetById(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `SELECT id, name, email, movie_title, theater_name, start_time, seats, total_price, status, used, qr_code, created_at
		FROM tickets
		WHERE id = $1`

	ticket, err := p.scanTicket(p.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	return ticket, nil
}

func (p *PostgresTicketRepository) GetAllByEmail(ctx context.Context, email string) ([]*domain.Ticket, error) {
	query := `SELECT id, name, email, movie_title, theater_name, start_time, seats, total_price, status, used, qr_code, created_at
		FROM tickets
		WHERE email = $1
		ORDER BY created_at DESC`

	rows, err := p.db.Query(ctx, query, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]*domain.Ticket, 0)

	for rows.Next() {
		ticket, err := p.scanTicket(rows)
		if err != nil {
			return nil, err
		}

		tickets = append(tickets, ticket)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return tickets, nil
}

func (p *PostgresTicketRepository) SetQRCode(ctx context.Context, id uuid.UUID, qrCode string) error {
	query := `UPDATE tickets SET qr_code = $1 WHERE id = $2`

	tag, err := p.db.Exec(ctx, query, qrCode, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresTicketRepository) MarkUsed(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	query := `UPDATE tickets
		SET used = true, status = $1
		WHERE id = $2 AND used = false
		RETURNING id, name, email, movie_title, theater_name, start_time, seats, total_price, status, used, qr_code, created_at`

	ticket, err := p.scanTicket(p.db.QueryRow(ctx, query, domain.TicketStatusConfirmed, id))
	if err == nil {
		return ticket, nil
	}

	if !errors.Is(err, domain.ErrRecordNotFound) {
		return nil, err
	}

	// No row matched: either the ticket does not exist, or it was already used.
	_, err = p.GetById(ctx, id)
	if err != nil {
		return nil, err
	}

	return nil, domain.ErrTicketAlreadyUsed
}

func (p *PostgresTicketRepository) scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket

	err := row.Scan(
		&ticket.ID,
		&ticket.Name,
		&ticket.Email,
		&ticket.MovieTitle,
		&ticket.TheaterName,
		&ticket.StartTime,
		&ticket.Seats,
		&ticket.TotalPrice,
		&ticket.Status,
		&ticket.Used,
		&ticket.QRCode,
		&ticket.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &ticket, nil
}

package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
)

type PostgresShowtimeRepository struct {
	db *pgxpool.Pool
}

func NewPostgresShowtimeRepository(db *pgxpool.Pool) *PostgresShowtimeRepository {
	return &PostgresShowtimeRepository{
		db: db,
	}
}

func (p *PostgresShowtimeRepository) Create(ctx context.Context, showtime *domain.Showtime) error {
	query := `INSERT INTO showtimes (movie_title, theater_name, start_time, price, seats)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version, created_at`

	err := p.db.QueryRow(ctx,
		query,
		showtime.MovieTitle,
		showtime.TheaterName,
		showtime.StartTime,
		showtime.Price,
		showtime.Seats).Scan(&showtime.ID, &showtime.Version, &showtime.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrShowtimeAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresShowtimeRepository) GetByKey(ctx context.Context, key domain.ShowtimeKey) (*domain.Showtime, error) {
	query := `SELECT id, movie_title, theater_name, start_time, price, seats, version, created_at
		FROM showtimes
		WHERE movie_title = $1 AND theater_name = $2 AND start_time = $3`

	var showtime domain.Showtime

	err := p.db.QueryRow(ctx, query, key.MovieTitle, key.TheaterName, key.StartTime).Scan(
		&showtime.ID,
		&showtime.MovieTitle,
		&showtime.TheaterName,
		&showtime.StartTime,
		&showtime.Price,
		&showtime.Seats,
		&showtime.Version,
		&showtime.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &showtime, nil
}

func (p *PostgresShowtimeRepository) GetAllByMovie(ctx context.Context, movieTitle string) ([]*domain.Showtime, error) {
	query := `SELECT id, movie_title, theater_name, start_time, price, seats, version, created_at
		FROM showtimes
		WHERE movie_title = $1
		ORDER BY start_time`

	rows, err := p.db.Query(ctx, query, movieTitle)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	showtimes := make([]*domain.Showtime, 0)

	for rows.Next() {
		var showtime domain.Showtime

		err := rows.Scan(
			&showtime.ID,
			&showtime.MovieTitle,
			&showtime.TheaterName,
			&showtime.StartTime,
			&showtime.Price,
			&showtime.Seats,
			&showtime.Version,
			&showtime.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		showtimes = append(showtimes, &showtime)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return showtimes, nil
}

// Reserve implements domain.ReservationStore. The showtime row is locked with
// SELECT ... FOR UPDATE, so the conflict check and the grid update run under
// exclusive access scoped to exactly one showtime. The grid update and the
// ticket insert commit together or not at all.
func (p *PostgresShowtimeRepository) Reserve(
	ctx context.Context,
	key domain.ShowtimeKey,
	apply func(*domain.Showtime) (*domain.Ticket, error)) (*domain.Ticket, error) {

	var ticket *domain.Ticket

	err := runInTx(ctx, p.db, func(tx pgx.Tx) error {
		query := `SELECT id, movie_title, theater_name, start_time, price, seats, version, created_at
			FROM showtimes
			WHERE movie_title = $1 AND theater_name = $2 AND start_time = $3
			FOR UPDATE`

		var showtime domain.Showtime

		err := tx.QueryRow(ctx, query, key.MovieTitle, key.TheaterName, key.StartTime).Scan(
			&showtime.ID,
			&showtime.MovieTitle,
			&showtime.TheaterName,
			&showtime.StartTime,
			&showtime.Price,
			&showtime.Seats,
			&showtime.Version,
			&showtime.CreatedAt,
		)

		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.ErrRecordNotFound
			}

			return err
		}

		t, err := apply(&showtime)
		if err != nil {
			return err
		}

		query = `UPDATE showtimes
			SET seats = $1, version = version + 1
			WHERE id = $2 AND version = $3`

		tag, err := tx.Exec(ctx, query, showtime.Seats, showtime.ID, showtime.Version)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return domain.ErrEditConflict
		}

		query = `INSERT INTO tickets (id, name, email, movie_title, theater_name, start_time, seats, total_price, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at`

		err = tx.QueryRow(ctx,
			query,
			t.ID,
			t.Name,
			t.Email,
			t.MovieTitle,
			t.TheaterName,
			t.StartTime,
			t.Seats,
			t.TotalPrice,
			t.Status).Scan(&t.CreatedAt)

		if err != nil {
			return err
		}

		ticket = t

		return nil
	})

	if err != nil {
		return nil, err
	}

	return ticket, nil
}

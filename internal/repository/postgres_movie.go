package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, genres, duration, release_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := p.db.QueryRow(ctx,
		query,
		movie.Title,
		movie.Genres,
		movie.Duration,
		movie.ReleaseDate).Scan(&movie.ID, &movie.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return domain.ErrMovieAlreadyExists
		}

		return err
	}

	return nil
}

func (p *PostgresMovieRepository) GetAll(ctx context.Context, filters domain.MovieFilters) ([]*domain.Movie, *domain.Metadata, error) {
	query := fmt.Sprintf(`SELECT count(*) OVER(), id, title, genres, duration, release_date, created_at
		FROM movies
		WHERE (to_tsvector('english', title) @@ plainto_tsquery('english', $1) OR $1 = '')
		ORDER BY %s %s
		LIMIT $2 OFFSET $3`, filters.SortColumn(), filters.SortDirection())

	rows, err := p.db.Query(ctx, query, filters.Term, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Title,
			&movie.Genres,
			&movie.Duration,
			&movie.ReleaseDate,
			&movie.CreatedAt,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, filters.Page, filters.PageSize)

	return movies, metadata, nil
}

func (p *PostgresMovieRepository) GetByTitle(ctx context.Context, title string) (*domain.Movie, error) {
	query := `SELECT id, title, genres, duration, release_date, created_at
		FROM movies
		WHERE title = $1`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, title).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genres,
		&movie.Duration,
		&movie.ReleaseDate,
		&movie.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

package domain

import (
	"context"
	"time"
)

type Movie struct {
	ID          int
	Title       string
	Genres      []string
	Duration    int
	ReleaseDate time.Time
	CreatedAt   time.Time
}

type MovieRepository interface {
	Create(ctx context.Context, movie *Movie) error
	GetAll(ctx context.Context, filters MovieFilters) ([]*Movie, *Metadata, error)
	GetByTitle(ctx context.Context, title string) (*Movie, error)
}

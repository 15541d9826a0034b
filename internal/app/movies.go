package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	DefaultSort     = "id"
	MaxPageSize     = 100
)

type CreateMovieRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=200"`
	Genres      []string  `json:"genres" validate:"required,min=1,dive,required"`
	Duration    int       `json:"duration" validate:"required,min=1"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
}

type movieFiltersInput struct {
	Page     int    `validate:"min=1"`
	PageSize int    `validate:"min=1,max=100"`
	Sort     string `validate:"oneof=id title duration release_date -id -title -duration -release_date"`
	Term     string `validate:"max=200"`
}

func (app *application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie := domain.Movie{
		Title:       input.Title,
		Genres:      input.Genres,
		Duration:    input.Duration,
		ReleaseDate: input.ReleaseDate,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieAlreadyExists):
			logger.Warn("attempt to create duplicate movie", "title", movie.Title)
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(&movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovies(w http.ResponseWriter, r *http.Request) {
	input := movieFiltersInput{
		Page:     app.readQueryInt(r, "page", DefaultPage),
		PageSize: app.readQueryInt(r, "pageSize", DefaultPageSize),
		Sort:     app.readQueryString(r, "sort", DefaultSort),
		Term:     app.readQueryString(r, "term", ""),
	}

	err := app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := domain.MovieFilters{
		Page:     input.Page,
		PageSize: input.PageSize,
		Sort:     input.Sort,
		Term:     input.Term,
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := MovieListResponse{
		Movies:   make([]MovieResponse, len(movies)),
		Metadata: toMetadata(metadata),
	}
	for i, movie := range movies {
		resp.Movies[i] = toMovieResponse(movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetMovieByTitle(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	movie, err := app.movieRepo.GetByTitle(r.Context(), title)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

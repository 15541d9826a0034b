package app

import (
	"time"

	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestID string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestID        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

func toMetadata(metadata *domain.Metadata) *Metadata {
	if metadata == nil {
		return nil
	}

	return &Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type UserResponse struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Activated bool      `json:"activated"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int       `json:"version"`
}

func toUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Activated: user.Activated,
		CreatedAt: user.CreatedAt,
		Version:   user.Version,
	}
}

type MovieResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Genres      []string  `json:"genres"`
	Duration    int       `json:"duration"`
	ReleaseDate time.Time `json:"releaseDate"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toMovieResponse(movie *domain.Movie) MovieResponse {
	return MovieResponse{
		ID:          movie.ID,
		Title:       movie.Title,
		Genres:      movie.Genres,
		Duration:    movie.Duration,
		ReleaseDate: movie.ReleaseDate,
		CreatedAt:   movie.CreatedAt,
	}
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata *Metadata       `json:"metadata"`
}

type ShowtimeResponse struct {
	MovieTitle  string          `json:"movieTitle"`
	TheaterName string          `json:"theaterName"`
	StartTime   time.Time       `json:"startTime"`
	Price       decimal.Decimal `json:"price"`
	Seats       [][]bool        `json:"seats"`
}

func toShowtimeResponse(showtime *domain.Showtime) ShowtimeResponse {
	return ShowtimeResponse{
		MovieTitle:  showtime.MovieTitle,
		TheaterName: showtime.TheaterName,
		StartTime:   showtime.StartTime,
		Price:       showtime.Price,
		Seats:       showtime.Seats,
	}
}

type TicketResponse struct {
	ID          string                  `json:"id"`
	Name        string                  `json:"name"`
	Email       string                  `json:"email"`
	MovieTitle  string                  `json:"movieTitle"`
	TheaterName string                  `json:"theaterName"`
	StartTime   time.Time               `json:"startTime"`
	Seats       []domain.SeatCoordinate `json:"seats"`
	TotalPrice  decimal.Decimal         `json:"totalPrice"`
	Status      string                  `json:"status"`
	Used        bool                    `json:"used"`
	CreatedAt   time.Time               `json:"createdAt"`
}

func toTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:          ticket.ID.String(),
		Name:        ticket.Name,
		Email:       ticket.Email,
		MovieTitle:  ticket.MovieTitle,
		TheaterName: ticket.TheaterName,
		StartTime:   ticket.StartTime,
		Seats:       ticket.Seats,
		TotalPrice:  ticket.TotalPrice,
		Status:      string(ticket.Status),
		Used:        ticket.Used,
		CreatedAt:   ticket.CreatedAt,
	}
}

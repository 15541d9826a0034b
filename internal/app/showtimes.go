package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
	"github.com/prakharagrawal10/movie-api-backend/internal/qr"
	"github.com/prakharagrawal10/movie-api-backend/internal/reservation"
	"github.com/shopspring/decimal"
)

type CreateShowtimeRequest struct {
	MovieTitle  string          `json:"movieTitle" validate:"required,min=1,max=200"`
	TheaterName string          `json:"theaterName" validate:"required,min=1,max=200"`
	StartTime   time.Time       `json:"startTime" validate:"required"`
	Price       decimal.Decimal `json:"price" validate:"required,gt=0"`
	Rows        int             `json:"rows" validate:"required,min=1,max=100"`
	Cols        int             `json:"cols" validate:"required,min=1,max=100"`
}

type SeatSelection struct {
	Row int `json:"row" validate:"min=0"`
	Col int `json:"col" validate:"min=0"`
}

type ReserveSeatsRequest struct {
	MovieTitle  string          `json:"movieTitle" validate:"required"`
	TheaterName string          `json:"theaterName" validate:"required"`
	StartTime   time.Time       `json:"startTime" validate:"required"`
	Seats       []SeatSelection `json:"seats" validate:"required,min=1,max=10,dive"`
	Name        string          `json:"name" validate:"required,min=2,max=50"`
	Email       string          `json:"email" validate:"required,email"`
}

type ShowtimeListResponse struct {
	Showtimes []ShowtimeResponse `json:"showtimes"`
}

func (app *application) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input CreateShowtimeRequest

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

	_, err = app.movieRepo.GetByTitle(r.Context(), input.MovieTitle)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMsg(w, r, "Movie not found")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	showtime := domain.Showtime{
		MovieTitle:  input.MovieTitle,
		TheaterName: input.TheaterName,
		StartTime:   input.StartTime,
		Price:       input.Price,
		Seats:       domain.NewSeatGrid(input.Rows, input.Cols),
	}

	err = app.showtimeRepo.Create(r.Context(), &showtime)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShowtimeAlreadyExists):
			logger.Warn("attempt to create duplicate showtime",
				"movie", showtime.MovieTitle,
				"theater", showtime.TheaterName,
			)
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusCreated, toShowtimeResponse(&showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetShowtimesByMovie(w http.ResponseWriter, r *http.Request) {
	title := chi.URLParam(r, "title")

	_, err := app.movieRepo.GetByTitle(r.Context(), title)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMsg(w, r, "Movie not found")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	showtimes, err := app.showtimeRepo.GetAllByMovie(r.Context(), title)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := ShowtimeListResponse{
		Showtimes: make([]ShowtimeResponse, len(showtimes)),
	}
	for i, showtime := range showtimes {
		resp.Showtimes[i] = toShowtimeResponse(showtime)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetShowtime(w http.ResponseWriter, r *http.Request) {
	key, err := showtimeKeyFromQuery(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	showtime, err := app.showtimeRepo.GetByKey(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMsg(w, r, "Showtime not found")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toShowtimeResponse(showtime), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) ReserveSeats(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input ReserveSeatsRequest

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

	seats := make([]domain.SeatCoordinate, len(input.Seats))
	for i, seat := range input.Seats {
		seats[i] = domain.SeatCoordinate{Row: seat.Row, Col: seat.Col}
	}

	ticket, err := app.reservations.Reserve(r.Context(), reservation.Request{
		Key: domain.ShowtimeKey{
			MovieTitle:  input.MovieTitle,
			TheaterName: input.TheaterName,
			StartTime:   input.StartTime,
		},
		Seats: seats,
		Name:  input.Name,
		Email: input.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponseWithMsg(w, r, "Showtime not found")
		case errors.Is(err, domain.ErrSeatAlreadyReserved),
			errors.Is(err, domain.ErrSeatOutOfRange),
			errors.Is(err, domain.ErrInvalidSeatSelection):
			logger.Warn("reservation rejected", "reason", err)
			app.badRequestResponse(w, r, err)
		case errors.Is(err, domain.ErrEditConflict):
			app.editConflictResponse(w, r)
		default:
			logger.Error("reservation failed", "error", err)
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	go app.issueTicketArtifacts(r, ticket)

	err = app.writeJSON(w, http.StatusOK, toTicketResponse(ticket), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// issueTicketArtifacts runs after a reservation has committed. It generates
// the ticket's QR code, stores it, and emails the ticket to the customer.
// Failures here never undo the reservation, they only get logged.
func (app *application) issueTicketArtifacts(r *http.Request, ticket *domain.Ticket) {
	logger := app.contextGetLogger(r)

	defer func() {
		if err := recover(); err != nil {
			logger.Error("panic occurred during ticket issuance", "panic", err)
		}
	}()

	scanURL := fmt.Sprintf("%s/tickets/%s/scan", app.config.baseURL, ticket.ID)

	qrCode, err := qr.DataURL(scanURL, 256)
	if err != nil {
		logger.Error("failed to generate ticket QR code", "error", err, "ticketId", ticket.ID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = app.ticketRepo.SetQRCode(ctx, ticket.ID, qrCode)
	if err != nil {
		logger.Error("failed to store ticket QR code", "error", err, "ticketId", ticket.ID)
	}

	seatLabels := make([]string, len(ticket.Seats))
	for i, seat := range ticket.Seats {
		seatLabels[i] = fmt.Sprintf("(%d, %d)", seat.Row, seat.Col)
	}

	data := map[string]any{
		"name":        ticket.Name,
		"movieTitle":  ticket.MovieTitle,
		"theaterName": ticket.TheaterName,
		"startTime":   ticket.StartTime.Format(time.RFC1123),
		"seats":       strings.Join(seatLabels, ", "),
		"totalPrice":  ticket.TotalPrice.StringFixed(2),
		"ticketId":    ticket.ID.String(),
		"qrCode":      qrCode,
	}

	err = app.mailer.Send(ticket.Email, "ticket_issued.tmpl", data)
	if err != nil {
		logger.Error("failed to send ticket email", "error", err, "ticketId", ticket.ID)
	} else {
		logger.Info("ticket email sent successfully", "ticketId", ticket.ID)
	}
}

func showtimeKeyFromQuery(r *http.Request) (domain.ShowtimeKey, error) {
	movieTitle := r.URL.Query().Get("movieTitle")
	theaterName := r.URL.Query().Get("theaterName")
	startTimeRaw := r.URL.Query().Get("startTime")

	if movieTitle == "" || theaterName == "" || startTimeRaw == "" {
		return domain.ShowtimeKey{}, errors.New("movieTitle, theaterName and startTime query parameters are required")
	}

	startTime, err := time.Parse(time.RFC3339, startTimeRaw)
	if err != nil {
		return domain.ShowtimeKey{}, fmt.Errorf("startTime must be a valid RFC 3339 timestamp: %w", err)
	}

	return domain.ShowtimeKey{
		MovieTitle:  movieTitle,
		TheaterName: theaterName,
		StartTime:   startTime,
	}, nil
}

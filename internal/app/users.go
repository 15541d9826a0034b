package app

import (
	"errors"
	"net/http"

	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
)

type UserTicketsResponse struct {
	User    UserResponse     `json:"user"`
	Tickets []TicketResponse `json:"tickets"`
}

func (app *application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) GetCurrentUserTickets(w http.ResponseWriter, r *http.Request) {
	userId := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	tickets, err := app.ticketRepo.GetAllByEmail(r.Context(), user.Email)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := UserTicketsResponse{
		User:    toUserResponse(user),
		Tickets: make([]TicketResponse, len(tickets)),
	}
	for i, ticket := range tickets {
		resp.Tickets[i] = toTicketResponse(ticket)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

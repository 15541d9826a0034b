package app

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
	"github.com/prakharagrawal10/movie-api-backend/internal/mocks"
	appvalidator "github.com/prakharagrawal10/movie-api-backend/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func testTicket() *domain.Ticket {
	return &domain.Ticket{
		ID:          uuid.New(),
		Name:        "Freddie Mercury",
		Email:       "freddie@example.com",
		MovieTitle:  "Dune",
		TheaterName: "Grand Hall",
		StartTime:   testStartTime,
		Seats:       []domain.SeatCoordinate{{Row: 0, Col: 0}},
		TotalPrice:  decimal.NewFromInt(10),
		Status:      domain.TicketStatusReserved,
	}
}

func TestGetTicketQR(t *testing.T) {
	ticket := testTicket()

	t.Run("existing ticket", func(t *testing.T) {
		ticketRepo := &mocks.MockTicketRepo{}
		ticketRepo.On("GetById", mock.Anything, ticket.ID).Return(ticket, nil)

		app := newTestApplication(func(a *application) {
			a.ticketRepo = ticketRepo
		})

		w, r := executeRequest(t, http.MethodGet, "/tickets/"+ticket.ID.String()+"/qr", nil)
		r = withURLParam(r, "ticketId", ticket.ID.String())

		app.GetTicketQR(w, r)

		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Content-Type = %v, want image/png", ct)
		}
		if w.Body.Len() == 0 {
			t.Error("empty response body, want PNG bytes")
		}
	})

	t.Run("unknown ticket", func(t *testing.T) {
		unknownId := uuid.New()

		ticketRepo := &mocks.MockTicketRepo{}
		ticketRepo.On("GetById", mock.Anything, unknownId).Return(nil, domain.ErrRecordNotFound)

		app := newTestApplication(func(a *application) {
			a.ticketRepo = ticketRepo
		})

		w, r := executeRequest(t, http.MethodGet, "/tickets/"+unknownId.String()+"/qr", nil)
		r = withURLParam(r, "ticketId", unknownId.String())

		app.GetTicketQR(w, r)

		checkErrorResponse(t, w, http.StatusNotFound, ErrNotFound)
	})

	t.Run("malformed ticket id", func(t *testing.T) {
		app := newTestApplication()

		w, r := executeRequest(t, http.MethodGet, "/tickets/not-a-uuid/qr", nil)
		r = withURLParam(r, "ticketId", "not-a-uuid")

		app.GetTicketQR(w, r)

		checkErrorResponse(t, w, http.StatusBadRequest, "ticket id must be a valid UUID")
	})
}

func TestVerifyTicket(t *testing.T) {
	ticket := testTicket()
	ticket.Status = domain.TicketStatusConfirmed
	ticket.Used = true

	tests := []struct {
		name           string
		ticketId       string
		repoErr        error
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:       "valid ticket",
			ticketId:   ticket.ID.String(),
			wantStatus: http.StatusOK,
		},
		{
			name:           "malformed ticket id",
			ticketId:       "not-a-uuid",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: appvalidator.ErrInvalid,
		},
		{
			name:           "unknown ticket",
			ticketId:       uuid.New().String(),
			repoErr:        domain.ErrRecordNotFound,
			wantStatus:     http.StatusNotFound,
			wantErrMessage: ErrNotFound,
		},
		{
			name:           "already used ticket",
			ticketId:       ticket.ID.String(),
			repoErr:        domain.ErrTicketAlreadyUsed,
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: domain.ErrTicketAlreadyUsed.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticketRepo := &mocks.MockTicketRepo{}

			if tt.repoErr != nil {
				ticketRepo.On("MarkUsed", mock.Anything, mock.Anything).Return(nil, tt.repoErr)
			} else {
				ticketRepo.On("MarkUsed", mock.Anything, ticket.ID).Return(ticket, nil)
			}

			app := newTestApplication(func(a *application) {
				a.ticketRepo = ticketRepo
			})

			w, r := executeRequest(t, http.MethodPost, "/tickets/verification", VerifyTicketRequest{TicketID: tt.ticketId})

			app.VerifyTicket(w, r)

			if tt.wantStatus == http.StatusOK {
				var resp VerifyTicketResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if !resp.Valid {
					t.Error("Valid = false, want true")
				}
				if !resp.Ticket.Used {
					t.Error("Ticket.Used = false, want true")
				}
				if resp.Ticket.Status != string(domain.TicketStatusConfirmed) {
					t.Errorf("Status = %v, want %v", resp.Ticket.Status, domain.TicketStatusConfirmed)
				}
			}

			checkErrorResponse(t, w, tt.wantStatus, tt.wantErrMessage)
		})
	}
}

func TestScanTicket(t *testing.T) {
	ticket := testTicket()

	tests := []struct {
		name        string
		repoErr     error
		wantStatus  int
		wantHeading string
	}{
		{
			name:        "valid ticket",
			wantStatus:  http.StatusOK,
			wantHeading: "Ticket is valid, enjoy the show",
		},
		{
			name:        "already used ticket",
			repoErr:     domain.ErrTicketAlreadyUsed,
			wantStatus:  http.StatusConflict,
			wantHeading: "Ticket has already been used",
		},
		{
			name:        "unknown ticket",
			repoErr:     domain.ErrRecordNotFound,
			wantStatus:  http.StatusNotFound,
			wantHeading: "Ticket not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ticketRepo := &mocks.MockTicketRepo{}

			if tt.repoErr != nil {
				ticketRepo.On("MarkUsed", mock.Anything, ticket.ID).Return(nil, tt.repoErr)
			} else {
				ticketRepo.On("MarkUsed", mock.Anything, ticket.ID).Return(ticket, nil)
			}

			app := newTestApplication(func(a *application) {
				a.ticketRepo = ticketRepo
			})

			w, r := executeRequest(t, http.MethodGet, "/tickets/"+ticket.ID.String()+"/scan", nil)
			r = withURLParam(r, "ticketId", ticket.ID.String())

			app.ScanTicket(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %v, want text/html", ct)
			}
			if !strings.Contains(w.Body.String(), tt.wantHeading) {
				t.Errorf("response body missing heading %q", tt.wantHeading)
			}
		})
	}
}

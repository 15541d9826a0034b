package app

import (
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prakharagrawal10/movie-api-backend/internal/domain"
	"github.com/prakharagrawal10/movie-api-backend/internal/qr"
)

type VerifyTicketRequest struct {
	TicketID string `json:"ticketId" validate:"required,uuid4"`
}

type VerifyTicketResponse struct {
	Ticket TicketResponse `json:"ticket"`
	Valid  bool           `json:"valid"`
}

var scanPageTemplate = template.Must(template.New("scan").Parse(`<!doctype html>
<html>
<head><title>Ticket check</title></head>
<body>
  <h1>{{.Heading}}</h1>
  {{if .Ticket}}
  <p><strong>Movie:</strong> {{.Ticket.MovieTitle}}</p>
  <p><strong>Theater:</strong> {{.Ticket.TheaterName}}</p>
  <p><strong>Time:</strong> {{.Ticket.StartTime}}</p>
  <p><strong>Name:</strong> {{.Ticket.Name}}</p>
  {{end}}
</body>
</html>`))

const pngDataURLPrefix = "data:image/png;base64,"

func decodeDataURL(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, pngDataURLPrefix) {
		return nil, errors.New("not a PNG data URL")
	}

	return base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, pngDataURLPrefix))
}

func (app *application) GetTicketQR(w http.ResponseWriter, r *http.Request) {
	ticketId, err := uuid.Parse(chi.URLParam(r, "ticketId"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("ticket id must be a valid UUID"))
		return
	}

	ticket, err := app.ticketRepo.GetById(r.Context(), ticketId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// Prefer the QR code issued with the ticket; regenerate only when the
	// post-reservation issuance has not caught up yet.
	png, err := decodeDataURL(ticket.QRCode)
	if err != nil {
		scanURL := fmt.Sprintf("%s/tickets/%s/scan", app.config.baseURL, ticket.ID)

		png, err = qr.PNG(scanURL, 256)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// VerifyTicket consumes a ticket at the theater entrance. Verification is a
// one-way operation, a second attempt for the same ticket is rejected.
func (app *application) VerifyTicket(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	var input VerifyTicketRequest

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

	ticketId, err := uuid.Parse(input.TicketID)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("ticket id must be a valid UUID"))
		return
	}

	ticket, err := app.ticketRepo.MarkUsed(r.Context(), ticketId)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrTicketAlreadyUsed):
			logger.Warn("attempt to reuse ticket", "ticketId", ticketId)
			app.badRequestResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := VerifyTicketResponse{
		Ticket: toTicketResponse(ticket),
		Valid:  true,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// ScanTicket is the human-facing target of the QR code. It consumes the
// ticket like VerifyTicket does but renders an HTML page for the person
// holding the phone at the door.
func (app *application) ScanTicket(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	ticketId, err := uuid.Parse(chi.URLParam(r, "ticketId"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("ticket id must be a valid UUID"))
		return
	}

	ticket, err := app.ticketRepo.MarkUsed(r.Context(), ticketId)

	var heading string
	var status int

	switch {
	case err == nil:
		heading = "Ticket is valid, enjoy the show"
		status = http.StatusOK
	case errors.Is(err, domain.ErrTicketAlreadyUsed):
		logger.Warn("attempt to reuse ticket", "ticketId", ticketId)
		heading = "Ticket has already been used"
		status = http.StatusConflict
	case errors.Is(err, domain.ErrRecordNotFound):
		heading = "Ticket not found"
		status = http.StatusNotFound
	default:
		app.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	err = scanPageTemplate.Execute(w, map[string]any{
		"Heading": heading,
		"Ticket":  ticket,
	})
	if err != nil {
		logger.Error("failed to render scan page", "error", err)
	}
}

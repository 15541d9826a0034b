package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/prakharagrawal10/movie-api-backend/internal/mailer"
	"github.com/prakharagrawal10/movie-api-backend/internal/mocks"
	"github.com/prakharagrawal10/movie-api-backend/internal/reservation"
	"github.com/prakharagrawal10/movie-api-backend/internal/validator"
)

func newTestApplication(opts ...func(*application)) *application {
	app := &application{
		validator:    validator.NewValidator(),
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		mailer:       mailer.NewMockMailer(),
		userRepo:     &mocks.MockUserRepo{},
		tokenRepo:    &mocks.MockTokenRepo{},
		movieRepo:    &mocks.MockMovieRepo{},
		showtimeRepo: &mocks.MockShowtimeRepo{},
		ticketRepo:   &mocks.MockTicketRepo{},
	}
	app.config.env = "test"
	app.config.baseURL = "http://localhost:3000"
	app.reservations = reservation.NewEngine(mocks.NewInMemoryReservationStore())

	for _, opt := range opts {
		opt(app)
	}

	return app
}

func setupTestSession(t *testing.T, app *application, r *http.Request, userId int) *http.Request {
	t.Helper()

	if app.sessionManager == nil {
		app.sessionManager = scs.New()
	}

	ctx, err := app.sessionManager.Load(r.Context(), "session")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	app.sessionManager.Put(ctx, SessionKeyUserId.String(), userId)

	return r.WithContext(ctx)
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	} else {
		reader = http.NoBody
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

// withURLParam injects a chi route parameter so handlers can be tested
// without the full router.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, wantStatus int, wantErrMessage string) {
	t.Helper()

	if w.Code != wantStatus {
		t.Errorf("status = %d, want %d", w.Code, wantStatus)
	}

	if wantStatus >= 200 && wantStatus < 300 {
		return
	}

	switch wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if wantErrMessage != "" && !errorSet[wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", wantErrMessage)
		}

	default:
		var errorResp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if wantErrMessage != "" && errorResp.Message != wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, wantErrMessage)
		}
	}
}

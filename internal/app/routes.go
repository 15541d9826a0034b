package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/riandyrn/otelchi"
)

func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(otelchi.Middleware("movie-api-backend", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)
	r.Use(app.sessionManager.LoadAndSave)

	r.Get("/health", app.GetHealth)

	r.Post("/users", app.RegisterUser)
	r.Put("/users/activation", app.ActivateUser)
	r.Post("/auth/login", app.Login)
	r.Post("/auth/logout", app.Logout)

	r.With(app.requireAuthentication).Route("/users/me", func(r chi.Router) {
		r.Get("/", app.GetCurrentUser)
		r.Get("/tickets", app.GetCurrentUserTickets)
	})

	r.Route("/movies", func(r chi.Router) {
		r.Get("/", app.GetMovies)
		r.Post("/", app.CreateMovie)
		r.Get("/{title}", app.GetMovieByTitle)
		r.Get("/{title}/showtimes", app.GetShowtimesByMovie)
	})

	r.Route("/showtimes", func(r chi.Router) {
		r.Post("/", app.CreateShowtime)
		r.Get("/", app.GetShowtime)
		r.Post("/reservations", app.ReserveSeats)
	})

	r.Route("/tickets", func(r chi.Router) {
		r.Get("/{ticketId}/qr", app.GetTicketQR)
		r.Get("/{ticketId}/scan", app.ScanTicket)
		r.Post("/verification", app.VerifyTicket)
	})

	return r
}

package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/notecards/internal/api"
	apiMiddleware "github.com/phrazzld/notecards/internal/api/middleware"
	"github.com/rs/cors"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	flashcardHandler := api.NewFlashcardHandler(app.flashcardStore, app.logger)
	generateHandler := api.NewGenerateHandler(app.generator, app.logger)
	paymentHandler := api.NewPaymentHandler(app.gateway, app.paymentStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", api.Ping)

		r.Get("/flashcards", flashcardHandler.ListFlashcards)
		r.Post("/flashcards", flashcardHandler.CreateFlashcard)

		r.With(apiMiddleware.RateLimit(app.config.Server.GenerateRatePerMinute)).
			Post("/generate", generateHandler.Generate)

		r.Post("/pay", paymentHandler.Pay)
	})

	r.Get("/health", api.Health(app.health))

	return newCORS(app.config.Server.CORSAllowedOrigins).Handler(r)
}

// newCORS builds the CORS policy from a comma-separated origin list.
func newCORS(allowedOrigins string) *cors.Cors {
	origins := strings.Split(allowedOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "X-Requested-With"},
		MaxAge:         86400,
	})
}

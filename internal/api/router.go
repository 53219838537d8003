package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	apiMiddleware "github.com/phrazzld/flashdeck/internal/api/middleware"
	"github.com/rs/cors"
)

// Library is everything the HTTP API serves.
type Library interface {
	DeckService
	CardService
	StudyService
	TransferService
}

// RouterConfig holds the HTTP surface settings.
type RouterConfig struct {
	// AllowedOrigins lists the CORS origins of browser clients; "*" allows any.
	AllowedOrigins []string
}

// NewRouter creates the application router with all routes and middleware.
func NewRouter(lib Library, cfg RouterConfig, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(logger))

	deckHandler := NewDeckHandler(lib, logger)
	cardHandler := NewCardHandler(lib, logger)
	studyHandler := NewStudyHandler(lib, logger)
	transferHandler := NewTransferHandler(lib, logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/decks", func(r chi.Router) {
			r.Get("/", deckHandler.ListDecks)
			r.Post("/", deckHandler.CreateDeck)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", deckHandler.GetDeck)
				r.Put("/", deckHandler.RenameDeck)
				r.Delete("/", deckHandler.DeleteDeck)
				r.Get("/subdecks", deckHandler.ListSubDecks)
				r.Get("/cards", deckHandler.ListDeckCards)
				r.Get("/study", studyHandler.StudyDeck)
				r.Get("/export", transferHandler.ExportDeck)
			})
		})

		r.Route("/cards", func(r chi.Router) {
			r.Get("/", cardHandler.ListCards)
			r.Post("/", cardHandler.CreateCard)
			r.Delete("/", cardHandler.DeleteCards)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", cardHandler.GetCard)
				r.Put("/", cardHandler.EditCard)
				r.Delete("/", cardHandler.DeleteCard)
				r.Post("/attempts", studyHandler.RecordAttempt)
				r.Put("/decks/{deckID}", cardHandler.AssignDeck)
				r.Delete("/decks/{deckID}", cardHandler.RemoveDeck)
			})
		})

		r.Get("/study", studyHandler.StudyOrder)
		r.Post("/study/reset", studyHandler.ResetStatistics)
		r.Get("/summary", studyHandler.Summary)
		r.Post("/import", transferHandler.Import)
		r.Get("/export", transferHandler.Export)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", slog.String("error", err.Error()))
		}
	})

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Content-Type", "Accept", "Origin", "X-Requested-With"},
		ExposedHeaders: []string{"X-Trace-ID", "Content-Disposition"},
		MaxAge:         86400,
	}).Handler(r)
}

// Package api serves the neighborfit JSON API over HTTP using chi.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/rs/zerolog"

	"github.com/vijay-prabhu/neighborfit/internal/config"
	"github.com/vijay-prabhu/neighborfit/internal/database"
	"github.com/vijay-prabhu/neighborfit/internal/logging"
	"github.com/vijay-prabhu/neighborfit/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP front end over the service layer
type Server struct {
	svc    *service.Service
	db     *database.DB
	config config.ServerConfig
	logger zerolog.Logger
}

// New creates a new API server
func New(svc *service.Service, db *database.DB, cfg config.ServerConfig) *Server {
	return &Server{
		svc:    svc,
		db:     db,
		config: cfg,
		logger: logging.Component("api"),
	}
}

// Routes builds the chi router with the full middleware stack
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDWithLogging)
	r.Use(chimiddleware.RealIP)
	r.Use(s.accessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", userIDHeader, "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		if s.config.RequestsPerMinute > 0 {
			r.Use(httprate.Limit(
				s.config.RequestsPerMinute,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeError(w, r, http.StatusTooManyRequests, "rate limit exceeded")
				}),
			))
		}
		r.Use(chimiddleware.AllowContentType("application/json"))

		r.Route("/neighborhoods", func(r chi.Router) {
			r.Get("/", s.handleListNeighborhoods)
			r.Get("/ratings", s.handleAllRatings)
			r.Get("/{ref}", s.handleGetNeighborhood)
		})

		r.Post("/match", s.handleMatch)

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.handleListReviews)
			r.Post("/", s.handleCreateReview)
			r.Get("/average", s.handleReviewAverage)
			r.Put("/{id}", s.handleUpdateReview)
			r.Delete("/{id}", s.handleDeleteReview)
		})

		r.Get("/preferences", s.handleGetPreferences)
		r.Post("/preferences", s.handleSavePreferences)
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.Routes(),
		ReadTimeout:  s.config.ReadTimeout(),
		WriteTimeout: s.config.WriteTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.config.Address).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

package rest

import (
	"context"
	"net/http"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// NewServer собирает роутер. authProxy может быть nil, тогда /api/auth не обслуживается.
// authn может быть nil, тогда AI-поиск доступен без токена.
func NewServer(cfg ServerConfig,
	listingHandlers *ListingHandler,
	aiSearchHandlers *AISearchHandler,
	authProxy http.Handler,
	authn *AuthMiddleware,
	baseLogger port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), RecovererMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", contextkeys.TraceIDHeader},
		ExposedHeaders: []string{contextkeys.TraceIDHeader},
		MaxAge:         300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusNotFound, msgRouteNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteJSONError(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", Health)

		r.Post("/search", listingHandlers.Search)
		r.Group(func(r chi.Router) {
			if authn != nil {
				r.Use(authn.Authenticate)
			}
			r.Post("/ai-search", aiSearchHandlers.AISearch)
		})

		r.Get("/properties", listingHandlers.ListProperties)
		r.Get("/properties/{id}", listingHandlers.GetProperty)

		if authProxy != nil {
			// /api/auth/* -> auth-service/auth/*
			r.Mount("/auth", authProxy)
		}
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

// Handler нужен тестам, чтобы гонять запросы без сетевого порта
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}

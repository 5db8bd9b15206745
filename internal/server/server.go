package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ziadkadry99/techtree/internal/dataset"
	"github.com/ziadkadry99/techtree/internal/db"
	"github.com/ziadkadry99/techtree/internal/prefs"
	"github.com/ziadkadry99/techtree/internal/viewer"
)

// Config holds server configuration.
type Config struct {
	Port     int
	SiteDir  string // exported static site served at /, optional
	AllowAll bool   // allow all CORS origins (dev mode)
}

// Server is the tech tree viewer server.
type Server struct {
	cfg        Config
	db         *db.DB
	registry   *dataset.Registry
	prefs      *prefs.Store
	router     chi.Router
	httpServer *http.Server
}

// New creates a server over a dataset registry. Dataset loads are counted
// in the metrics and written to the load log.
func New(cfg Config, database *db.DB, registry *dataset.Registry) *Server {
	s := &Server{
		cfg:      cfg,
		db:       database,
		registry: registry,
		prefs:    prefs.NewStore(database),
	}

	registry.OnLoad = func(locale string, elapsed time.Duration, err error) {
		ObserveLoad(locale, elapsed, err)
		if recErr := s.prefs.RecordLoad(context.Background(), locale, elapsed, err); recErr != nil {
			log.Printf("server: %v", recErr)
		}
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// The websocket must outlive the request timeout.
	v := viewer.New(s.registry, viewer.WithPrefs(s.prefs), viewer.WithSessionGauge(Sessions))
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		prefs.RegisterRoutes(r, s.prefs)
		v.RegisterRoutes(r)
	})

	if s.cfg.SiteDir != "" {
		if info, err := os.Stat(s.cfg.SiteDir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(s.cfg.SiteDir)))
		} else {
			log.Printf("server: site directory %s not found, not serving it", s.cfg.SiteDir)
		}
	}

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Database returns the database connection.
func (s *Server) Database() *db.DB { return s.db }

// Registry returns the dataset registry.
func (s *Server) Registry() *dataset.Registry { return s.registry }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("techtree server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

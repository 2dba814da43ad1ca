package server

import (
	"context"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/sevy33/permissions-in-go/pkg/config"
	"github.com/sevy33/permissions-in-go/pkg/observability"
	"github.com/sevy33/permissions-in-go/pkg/server/middleware"
	"github.com/sevy33/permissions-in-go/pkg/server/store"
	gormstore "github.com/sevy33/permissions-in-go/pkg/server/store/gorm"
)

type Server struct {
	Router *mux.Router
	DB     *gorm.DB

	Store       store.Store
	HealthStore store.HealthStore

	Config    *config.Config
	Log       *logrus.Logger
	Metrics   *observability.Metrics // nil when metrics are disabled
	Registry  *prometheus.Registry
	TokenGate *middleware.TokenGate

	srv *http.Server
}

// NewServer creates a server backed by the GORM stores over db
func NewServer(db *gorm.DB, cfg *config.Config, log *logrus.Logger, host, port string) *Server {
	s := New(gormstore.NewStore(db), gormstore.NewHealthStore(db), cfg, log)
	s.DB = db
	s.srv.Addr = host + ":" + port

	if s.Metrics != nil {
		if sqlDB, err := db.DB(); err == nil {
			observability.RegisterDBStats(s.Registry, sqlDB)
		}
	}
	return s
}

// New creates a server over the given stores. Routes are added by the
// endpoints package.
func New(st store.Store, health store.HealthStore, cfg *config.Config, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	router := mux.NewRouter()
	s := &Server{
		Router:      router,
		Store:       st,
		HealthStore: health,
		Config:      cfg,
		Log:         log,
		Registry:    prometheus.NewRegistry(),
		TokenGate:   middleware.NewTokenGate(cfg.AdminTokenSecret),
	}

	if cfg.MetricsEnabled {
		s.Metrics = observability.NewMetrics(s.Registry)
		router.Use(observability.HTTPMetricsMiddleware(s.Metrics))
	}
	router.Use(s.TokenGate.Middleware)

	s.srv = &http.Server{
		Handler:      s.Handler(),
		WriteTimeout: cfg.WriteTimeoutDuration(),
		ReadTimeout:  cfg.ReadTimeoutDuration(),
	}
	return s
}

// Handler wraps the router with CORS and access logging
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.Router
	if len(s.Config.CORSAllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(s.Config.CORSAllowedOrigins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
		)(h)
	}
	return handlers.LoggingHandler(s.Log.Out, h)
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.srv.Addr
}

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

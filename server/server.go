// Package server exposes the net worth analytics over HTTP.
package server

import (
	"net/http"

	"github.com/etnz/networth"
	"github.com/etnz/networth/date"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Loader returns the dataset to report on. It is called on every request so
// that edits made by the CLI are picked up without a restart.
type Loader func() (*networth.Dataset, error)

// Server serves reports computed from a dataset.
type Server struct {
	load   Loader
	config networth.Config
	log    *logrus.Logger
	// Today is the reference date of projections.
	Today func() date.Date
}

// New creates a Server. cfg holds the defaults that query parameters
// override.
func New(load Loader, cfg networth.Config, log *logrus.Logger) *Server {
	return &Server{
		load:   load,
		config: cfg,
		log:    log,
		Today:  date.Today,
	}
}

// Handler returns the HTTP handler of the service.
func (s *Server) Handler() http.Handler {
	router := gin.New()
	router.Use(requestLogger(s.log))
	router.Use(errorHandler())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/report", s.report)
		api.GET("/accounts", s.accounts)
		api.POST("/analyze", s.analyze)
	}

	router.NoRoute(func(c *gin.Context) {
		abort(c, http.StatusNotFound, "NOT_FOUND", "not found")
	})

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

// Run listens on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.WithField("addr", addr).Info("starting http server")
	return http.ListenAndServe(addr, s.Handler())
}

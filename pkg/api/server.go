// Package api re-publishes decoded, versioned resources over HTTP.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Router builds the HTTP routes for the server. Split from StartServer so
// tests can drive the full middleware chain with httptest.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", promhttp.Handler())

	// API key authentication for the published resources
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/kinds", s.metrics.InstrumentHandler("GET", "/api/v1/kinds", s.handleKinds))
		r.Get("/resources/{kind}", s.metrics.InstrumentHandler("GET", "/api/v1/resources/{kind}", s.handleGetResource))
		r.Get("/resources/{kind}/history", s.metrics.InstrumentHandler("GET", "/api/v1/resources/{kind}/history", s.handleHistory))
	})

	return r
}

// StartServer starts the HTTP server with all routes configured
func StartServer(reader ResourceReader, config ServerConfig) error {
	metrics := NewMetrics(prometheus.DefaultRegisterer)
	server := NewServer(reader, config, metrics)

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	logrus.WithField("addr", addr).Info("starting lodestone REST API server")
	logrus.Infof("metrics available at http://%s/metrics", addr)

	return http.ListenAndServe(addr, server.Router())
}

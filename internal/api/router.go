package api

import (
	"net/http"
	"time"
	"trip-logbook-service/internal/api/handlers"
	"trip-logbook-service/internal/domain"
	"trip-logbook-service/internal/ports"

	"github.com/go-chi/cors"
)

type RouterDeps struct {
	Routes   ports.RouteProvider
	Geocoder ports.Geocoder
	Store    ports.LogbookStore
	Rules    domain.RuleSet

	JWTSecret      []byte
	SessionTTL     time.Duration
	AllowedOrigins []string
	HealthChecks   map[string]handlers.HealthCheck
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	mux := http.NewServeMux()

	tripHandler := &handlers.TripHandler{
		Routes:   deps.Routes,
		Geocoder: deps.Geocoder,
		Store:    deps.Store,
		Rules:    deps.Rules,
	}
	logbookHandler := &handlers.LogbookHandler{Store: deps.Store}
	healthHandler := &handlers.HealthHandler{Checks: deps.HealthChecks}

	mux.Handle("/health", healthHandler)
	mux.Handle("/api/calculate-trip/", authMiddleware(deps.JWTSecret, deps.SessionTTL, http.HandlerFunc(tripHandler.Calculate)))
	mux.Handle("/api/logbook/", authMiddleware(deps.JWTSecret, deps.SessionTTL, http.HandlerFunc(logbookHandler.Serve)))

	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})

	return requestIDMiddleware(loggingMiddleware(corsHandler(mux)))
}

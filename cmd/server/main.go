package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"
	"trip-logbook-service/internal/adapters/cache"
	"trip-logbook-service/internal/adapters/repositories"
	"trip-logbook-service/internal/adapters/routing"
	"trip-logbook-service/internal/adapters/session"
	"trip-logbook-service/internal/api"
	"trip-logbook-service/internal/api/handlers"
	"trip-logbook-service/internal/config"
	"trip-logbook-service/internal/platform/db"
	"trip-logbook-service/internal/ports"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It wires concrete adapters (SQLite/Postgres, Redis, ORS/Google) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, postgres, err := openDB(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatal(err)
	}

	var (
		userStore    ports.LogbookStore
		routeCache   ports.RouteCache
		geocodeCache ports.GeocodeCache
	)
	if postgres {
		userStore = repositories.NewSQLLogbookStore(conn)
		routeCache = cache.NewSQLRouteCache(conn)
		geocodeCache = cache.NewSQLGeocodeCache(conn)
	} else {
		userStore = repositories.NewSqliteLogbookStore(conn)
		routeCache = cache.NewSqliteRouteCache(conn)
		geocodeCache = cache.NewSqliteGeocodeCache(conn)
	}

	checks := map[string]handlers.HealthCheck{"database": conn.PingContext}

	// Anonymous sessions live in Redis when available so they expire on their own;
	// otherwise they share the SQL table with user logbooks.
	store := &repositories.OwnerRoutedStore{Users: userStore}
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()

		sessions := session.NewRedisLogbookStore(rdb, cfg.SessionTTL)
		store.Sessions = sessions
		checks["redis"] = sessions.Ping
	}

	routes, geocoder, err := newRouteProvider(cfg, routeCache, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(api.RouterDeps{
		Routes:         routes,
		Geocoder:       geocoder,
		Store:          store,
		Rules:          cfg.Rules,
		JWTSecret:      []byte(cfg.JWTSecret),
		SessionTTL:     cfg.SessionTTL,
		AllowedOrigins: cfg.AllowedOrigins,
		HealthChecks:   checks,
	})

	// Timeouts are tuned for cold-cache routing (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening addr=:%s provider=%s postgres=%t redis=%t", cfg.Port, cfg.RouteProvider, postgres, cfg.RedisAddr != "")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func openDB(cfg config.Config) (*sql.DB, bool, error) {
	if cfg.DatabaseURL != "" {
		conn, err := db.Open(cfg.DatabaseURL)
		return conn, true, err
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, false, fmt.Errorf("openDB: create %q: %w", dir, err)
		}
	}
	conn, err := db.OpenSQLite(cfg.DBPath)
	return conn, false, err
}

// newRouteProvider builds the configured routing backend behind the route cache.
// Geocoding is only offered by ORS and only when enabled.
func newRouteProvider(
	cfg config.Config,
	routeCache ports.RouteCache,
	geocodeCache ports.GeocodeCache,
) (ports.RouteProvider, ports.Geocoder, error) {
	switch cfg.RouteProvider {
	case "google":
		g, err := routing.NewGoogleRouteProvider(cfg.GoogleMapsAPIKey)
		if err != nil {
			return nil, nil, err
		}
		return routing.NewCachedRouteProvider(g, routeCache, "google"), nil, nil

	default:
		opts := []routing.ORSOption{routing.WithGeocodeCache(geocodeCache)}
		if cfg.ORSBaseURL != "" {
			opts = append(opts, routing.WithBaseURL(cfg.ORSBaseURL))
		}
		o, err := routing.NewORSRouteProvider(cfg.ORSAPIKey, opts...)
		if err != nil {
			return nil, nil, err
		}

		var geocoder ports.Geocoder
		if cfg.GeocodeAddresses {
			geocoder = o
		}
		return routing.NewCachedRouteProvider(o, routeCache, "ors-hgv"), geocoder, nil
	}
}

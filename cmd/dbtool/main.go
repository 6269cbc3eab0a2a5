package main

import (
	"context"
	"log"
	"os"
	"strings"
	"trip-logbook-service/internal/adapters/repositories"
	"trip-logbook-service/internal/config"
	"trip-logbook-service/internal/platform/db"
	"trip-logbook-service/internal/ports"

	"github.com/joho/godotenv"
)

// dbtool prepares a Postgres database: it creates the schema and optionally
// imports an exported logbook for one user (SEED_PATH + SEED_USER).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	ctx := context.Background()

	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	seedPath := config.Get("SEED_PATH", "")
	seedUser := config.Get("SEED_USER", "")
	if seedPath == "" || seedUser == "" {
		return
	}

	log.Printf("Seeding logbook user=%s path=%s", seedUser, seedPath)
	store := repositories.NewSQLLogbookStore(conn)
	days, err := repositories.SeedFromJSON(ctx, store, ports.Owner{UserID: seedUser}, seedPath)
	if err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Printf("Seeding complete. days=%d", days)
}

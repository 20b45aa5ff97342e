package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/koyomi-app/koyomi/internal/adapters/repository/postgres"
	"github.com/koyomi-app/koyomi/internal/core/ports"
	"github.com/koyomi-app/koyomi/internal/core/services"
)

// Purges polls whose end date is more than a month in the past, together
// with all of their stored responses. Runs once by default; pass -schedule
// with a cron expression to keep it running as a daemon.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName, schedule string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.StringVar(&schedule, "schedule", "", "Cron expression; when set, runs the sweep on that schedule instead of once")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	pollRepo := postgres.NewPollRepository(db)
	responseRepo := postgres.NewResponseRepository(db)
	retentionService := services.NewRetentionService(pollRepo, responseRepo)

	if schedule == "" {
		sweep(retentionService)
		return
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() { sweep(retentionService) }); err != nil {
		log.Fatalf("Invalid schedule %q: %v", schedule, err)
	}
	log.Printf("Retention sweep scheduled: %s", schedule)
	c.Run()
}

func sweep(svc ports.RetentionService) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	log.Println("Starting retention sweep...")

	purged, err := svc.SweepExpired(ctx, time.Now())
	if err != nil {
		log.Printf("Retention sweep failed after purging %d polls: %v", purged, err)
		return
	}

	log.Printf("Retention sweep completed, purged %d polls.", purged)
}

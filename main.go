package main

import (
	"context"
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"bootstat/adapters/memory"
	"bootstat/adapters/postgres"
	"bootstat/internal/config"
	"bootstat/internal/errors"
	"bootstat/internal/migration"
	"bootstat/ports"
	"bootstat/ui"
)

func main() {
	// Load .env file if present (optional in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ledger, err := initLedger(appConfig)
	if err != nil {
		log.Fatalf("Failed to initialize run ledger: %v", err)
	}

	server := ui.NewServer(ui.Config{
		Port:             appConfig.Server.Port,
		DefaultAlpha:     appConfig.Bootstrap.Alpha,
		DefaultResamples: appConfig.Bootstrap.Resamples,
	}, ledger)

	if err := server.Start(appConfig.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initLedger connects the PostgreSQL run ledger when DATABASE_URL is set and
// falls back to the in-memory ledger otherwise.
func initLedger(appConfig *config.Config) (ports.RunLedgerPort, error) {
	if appConfig.Database.URL == "" {
		log.Println("DATABASE_URL not set, using in-memory run ledger")
		return memory.NewRunLedger(), nil
	}

	db, err := sqlx.Connect("postgres", appConfig.Database.URL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if err := db.Ping(); err != nil {
		return nil, errors.Wrap(err, "failed to ping database")
	}

	runner := migration.NewRunner()
	if err := runner.Run(context.Background(), db); err != nil {
		return nil, errors.Wrap(err, "database migration failed")
	}
	log.Printf("Database schema ready (migration version %s)", runner.Version())

	return postgres.NewRunRepository(db), nil
}

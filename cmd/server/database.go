package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dstanton/taskminder/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// setupDatabase establishes a connection to the database using the provided configuration.
// It configures the connection pool and verifies connectivity with a ping.
// Returns the database connection or an error if the connection fails.
func setupDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf(
				"failed to ping database: %w (additionally failed to close connection: %v)",
				err,
				closeErr,
			)
		}
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

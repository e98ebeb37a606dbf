package database

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/yourusername/matchcast/internal/config"
)

// SetupTestDB creates a test database connection and verifies it.
// Skips the calling test unless MATCHCAST_TEST_DB_CONFIG points at a
// reachable database.
func SetupTestDB(t *testing.T) *DB {
	configPath := os.Getenv("MATCHCAST_TEST_DB_CONFIG")
	if configPath == "" {
		t.Skip("MATCHCAST_TEST_DB_CONFIG not set; skipping database test")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	// Create context for connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	// Verify connection
	verifyCtx, verifyCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer verifyCancel()

	if err := db.Ping(verifyCtx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return db
}

// TeardownTestDB closes the database connection cleanly
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()
	db.Close()
}

// RunMigrations runs database migrations from the migrations directory
// Uses golang-migrate CLI for test execution
func RunMigrations(ctx context.Context, db *DB) error {
	// Note: In tests, migrations should be run with golang-migrate CLI:
	// migrate -path migrations -database "postgres://..." up
	//
	// This is a placeholder for programmatic migration in tests if needed.
	// For most cases, use migrate CLI before running tests.
	return fmt.Errorf("use migrate CLI: migrate -path migrations -database \"your_dsn\" up")
}

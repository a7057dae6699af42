package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/drivetime/migrations"
	"github.com/pkordes/drivetime/testutil"
)

// TestMain applies all pending migrations to the test database once for the
// whole test binary. Without TEST_DATABASE_URL the Postgres tests skip
// themselves and only the in-memory tests run.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(dsn)
	if err := migrations.Up(context.Background(), db); err != nil {
		db.Close()
		log.Fatalf("TestMain: %v", err)
	}
	db.Close()

	os.Exit(m.Run())
}

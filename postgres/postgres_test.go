//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/fwojciec/lingua/postgres"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ammaURL = "https://ml.wiktionary.org/wiki/%E0%B4%85%E0%B4%AE%E0%B5%8D%E0%B4%AE"

// setupTestDB opens a DB in a fresh schema so tests can run in parallel
// against one server. LINGUA_TEST_POSTGRES_DSN must be a key/value DSN.
func setupTestDB(t *testing.T) *postgres.DB {
	t.Helper()

	dsn := os.Getenv("LINGUA_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("LINGUA_TEST_POSTGRES_DSN not set")
	}

	admin, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)

	schema := "lingua_test_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	_, err = admin.Exec("CREATE SCHEMA " + schema)
	require.NoError(t, err)

	db := postgres.NewDB(fmt.Sprintf("%s search_path=%s", dsn, schema))
	require.NoError(t, db.Open())

	t.Cleanup(func() {
		db.Close()
		admin.Exec("DROP SCHEMA " + schema + " CASCADE")
		admin.Close()
	})
	return db
}

func TestConfig_DSN(t *testing.T) {
	t.Parallel()

	cfg := postgres.Config{Host: "localhost", Port: "5432", User: "lingua", Password: "secret", DBName: "words"}

	assert.Equal(t, "host=localhost port=5432 user=lingua password=secret dbname=words sslmode=disable", cfg.DSN())
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("creates schema idempotently", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()

		_, err := postgres.NewWordService(db).AddLink(ctx, "അ", ammaURL)
		require.NoError(t, err)
	})

	t.Run("fails for unreachable server", func(t *testing.T) {
		t.Parallel()

		db := postgres.NewDB("host=127.0.0.1 port=1 user=nobody dbname=none sslmode=disable connect_timeout=1")

		err := db.Open()

		assert.Error(t, err)
	})
}

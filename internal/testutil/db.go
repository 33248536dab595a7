package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-MusicBookingService/migrations"
)

// NewSQLiteDB открывает SQLite в памяти с применёнными миграциями
// Одно соединение: :memory: у каждого соединения своя база
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open(migrations.DialectSQLite, ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, migrations.Apply(ctx, db, migrations.DialectSQLite))

	return db
}

// NewPostgresDB подключается к TEST_DATABASE_URL и очищает таблицы
// Если переменная не задана или БД недоступна, тест пропускается
func NewPostgresDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}

	db, err := sql.Open(migrations.DialectPostgres, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		t.Skipf("postgres is unreachable: %v", err)
	}

	require.NoError(t, migrations.Apply(ctx, db, migrations.DialectPostgres))
	_, err = db.ExecContext(ctx, `TRUNCATE reservations, prices, requesters RESTART IDENTITY`)
	require.NoError(t, err)

	return db
}

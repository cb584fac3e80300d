package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mkalil/prepdash/internal/logger"
	"github.com/mkalil/prepdash/internal/storage"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

// KV is the sqlite-backed durable local storage.
type KV struct {
	storage.Notifier
	db  *sql.DB
	log *logger.Logger
}

// Open opens (and if necessary creates) the local storage database at path
// and applies pending migrations.
func Open(path string) (*KV, error) {
	log := logger.Default().WithPrefix("storage")

	dsn := fmt.Sprintf("%s?_busy_timeout=5000&_journal_mode=WAL&_synchronous=NORMAL", path)
	log.Info("opening local storage: %s", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Error("failed to open local storage: %v", err)
		return nil, err
	}
	db.SetMaxOpenConns(1) // single writer, SQLite

	kv := &KV{db: db, log: log}

	if err := kv.applyMigrations(context.Background()); err != nil {
		log.Error("failed to apply migrations: %v", err)
		db.Close()
		return nil, err
	}

	log.Debug("local storage ready")
	return kv, nil
}

func (kv *KV) applyMigrations(ctx context.Context) error {
	if _, err := kv.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return err
	}

	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		version := entry.Name()
		var applied bool
		err := kv.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = ?)`, version).Scan(&applied)
		if err != nil {
			return err
		}
		if applied {
			continue
		}
		sqlBytes, err := migrationsFS.ReadFile("migrations/" + version)
		if err != nil {
			return err
		}
		kv.log.Info("applying migration: %s", version)
		if _, err := kv.db.ExecContext(ctx, string(sqlBytes)); err != nil {
			return fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := kv.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return err
		}
	}
	return nil
}

func (kv *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query, args, err := sqlBuilder.
		Select("value").
		From("kv_entries").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, false, err
	}

	var value []byte
	err = kv.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		kv.log.Error("failed to get key %s: %v", key, err)
		return nil, false, err
	}
	return value, true, nil
}

func (kv *KV) Set(ctx context.Context, key string, value []byte) error {
	_, err := kv.db.ExecContext(ctx, `
INSERT INTO kv_entries (key, value, updated_at)
VALUES (?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`, key, value)
	if err != nil {
		kv.log.Error("failed to set key %s: %v", key, err)
	}
	return err
}

func (kv *KV) Delete(ctx context.Context, key string) error {
	query, args, err := sqlBuilder.
		Delete("kv_entries").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := kv.db.ExecContext(ctx, query, args...); err != nil {
		kv.log.Error("failed to delete key %s: %v", key, err)
		return err
	}
	return nil
}

func (kv *KV) Keys(ctx context.Context, prefix string) ([]string, error) {
	query, args, err := sqlBuilder.
		Select("key").
		From("kv_entries").
		Where(squirrel.Like{"key": prefix + "%"}).
		OrderBy("key ASC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := kv.db.QueryContext(ctx, query, args...)
	if err != nil {
		kv.log.Error("failed to list keys: %v", err)
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func (kv *KV) Close() error {
	kv.log.Debug("closing local storage")
	return kv.db.Close()
}

var _ storage.KV = (*KV)(nil)

package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"stockwatch/internal/stock"
	logx "stockwatch/pkg/logx"
)

//go:embed schema.sql
var schemaSQL string

// sqliteStore keeps the record in a single row (id = 1) of last_status.
type sqliteStore struct {
	db  *sql.DB
	log logx.Logger
}

func openSQLite(cfg Config, log logx.Logger) (Store, error) {
	path := cfg.Path
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite prefers a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if cfg.BusyTimeout > 0 {
		_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()))
	}
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	st := &sqliteStore{db: db, log: log}
	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	log.Debug("sqlite history opened", logx.String("path", path))
	return st, nil
}

func (s *sqliteStore) Load(ctx context.Context) (*stock.Record, error) {
	if s == nil || s.db == nil {
		return nil, ErrClosed
	}
	var (
		status string
		rec    stock.Record
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT status, stock_text, store_title FROM last_status WHERE id = 1`,
	).Scan(&status, &rec.StockText, &rec.StoreTitle)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Status = stock.Code(status)
	return &rec, nil
}

func (s *sqliteStore) Save(ctx context.Context, rec stock.Record) error {
	if s == nil || s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO last_status(id, status, stock_text, store_title, updated_at)
		 VALUES(1, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   status = excluded.status,
		   stock_text = excluded.stock_text,
		   store_title = excluded.store_title,
		   updated_at = excluded.updated_at`,
		string(rec.Status), rec.StockText, rec.StoreTitle, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

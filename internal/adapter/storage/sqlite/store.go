// Package sqlite persists MediaAsset records in an embedded sqlite
// database with goose-managed migrations.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/jmllr/vidvault/internal/domain"
	"github.com/jmllr/vidvault/internal/port"
	"github.com/pressly/goose/v3"
	"modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Store struct {
	db *sql.DB
}

var hookOnce sync.Once

func registerHook() {
	hookOnce.Do(func() {
		sqlite.RegisterConnectionHook(func(conn sqlite.ExecQuerierContext, dsn string) error {
			pragmas := []string{
				"PRAGMA journal_mode = WAL",
				"PRAGMA busy_timeout = 5000",
				"PRAGMA synchronous = NORMAL",
				"PRAGMA foreign_keys = ON",
			}
			for _, p := range pragmas {
				if _, err := conn.ExecContext(context.Background(), p, nil); err != nil {
					return fmt.Errorf("execute %s: %w", p, err)
				}
			}
			return nil
		})
	})
}

func NewStore(dataDir string) (*Store, error) {
	registerHook()

	dbPath := filepath.Join(dataDir, "vidvault.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Single connection for SQLite (WAL allows concurrent reads but only one writer)
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(a *domain.MediaAsset) error {
	categories, err := json.Marshal(a.Categories)
	if err != nil {
		return fmt.Errorf("marshal categories: %w", err)
	}

	_, err = s.db.ExecContext(context.Background(),
		`INSERT INTO media_assets (id, title, description, categories, stored_file_name, thumbnail_ref, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Title, a.Description, string(categories), a.StoredFileName, a.ThumbnailRef, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert media asset: %w", err)
	}
	return nil
}

func (s *Store) Get(id string) (*domain.MediaAsset, error) {
	row := s.db.QueryRowContext(context.Background(),
		`SELECT id, title, description, categories, stored_file_name, thumbnail_ref, created_at
		 FROM media_assets WHERE id = ?`, id)

	asset, err := scanAsset(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (s *Store) ListAll() ([]*domain.MediaAsset, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT id, title, description, categories, stored_file_name, thumbnail_ref, created_at
		 FROM media_assets ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]*domain.MediaAsset, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*domain.MediaAsset, error) {
	var a domain.MediaAsset
	var categories string
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &categories, &a.StoredFileName, &a.ThumbnailRef, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(categories), &a.Categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories for %s: %w", a.ID, err)
	}
	return &a, nil
}

var _ port.AssetStore = (*Store)(nil)

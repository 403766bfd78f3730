package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql" // Turso driver
	_ "modernc.org/sqlite"                               // Local SQLite driver

	"github.com/wadjakorntonsri/seo-redirects/pkg/core/domain"
	"github.com/wadjakorntonsri/seo-redirects/pkg/ports"
)

// SQLiteRepository stores timestamps as domain.TimeLayout text. Unreadable
// values load as the zero time.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.RedirectRepository = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbURL string) (*SQLiteRepository, error) {
	driverName := "sqlite"
	if strings.Contains(dbURL, "libsql://") || strings.Contains(dbURL, "wss://") {
		driverName = "libsql"
	}

	db, err := sql.Open(driverName, dbURL)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteRepository{db: db}, nil
}

func migrate(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS redirects (
		slug TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT NOT NULL,
		url TEXT NOT NULL,
		image TEXT NOT NULL DEFAULT '',
		video TEXT NOT NULL DEFAULT '',
		keywords TEXT NOT NULL DEFAULT '',
		site_name TEXT NOT NULL DEFAULT '',
		type TEXT NOT NULL DEFAULT 'website',
		created_at TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL DEFAULT ''
	);
	`
	_, err := db.Exec(query)
	return err
}

const selectColumns = `slug, title, description, url, image, video, keywords, site_name, type, created_at, updated_at`

func (r *SQLiteRepository) Get(ctx context.Context, slug string) (*domain.Redirect, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM redirects WHERE slug = ?`, slug)

	_, redirect, err := scanRedirect(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &redirect, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) (map[string]domain.Redirect, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+selectColumns+` FROM redirects`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	redirects := make(map[string]domain.Redirect)
	for rows.Next() {
		slug, redirect, err := scanRedirect(rows)
		if err != nil {
			return nil, err
		}
		redirects[slug] = redirect
	}
	return redirects, rows.Err()
}

func (r *SQLiteRepository) Save(ctx context.Context, slug string, redirect domain.Redirect) error {
	query := `INSERT INTO redirects (` + selectColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(slug) DO UPDATE SET
				title = excluded.title,
				description = excluded.description,
				url = excluded.url,
				image = excluded.image,
				video = excluded.video,
				keywords = excluded.keywords,
				site_name = excluded.site_name,
				type = excluded.type,
				created_at = excluded.created_at,
				updated_at = excluded.updated_at`

	_, err := r.db.ExecContext(ctx, query,
		slug, redirect.Title, redirect.Desc, redirect.URL, redirect.Image, redirect.Video,
		redirect.Keywords, redirect.SiteName, redirect.Type,
		domain.FormatTime(redirect.CreatedAt), domain.FormatTime(redirect.UpdatedAt),
	)
	return err
}

func (r *SQLiteRepository) Delete(ctx context.Context, slug string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM redirects WHERE slug = ?`, slug)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRedirect(s scanner) (string, domain.Redirect, error) {
	var (
		slug               string
		redirect           domain.Redirect
		createdAt, updated string
	)
	err := s.Scan(&slug, &redirect.Title, &redirect.Desc, &redirect.URL, &redirect.Image, &redirect.Video,
		&redirect.Keywords, &redirect.SiteName, &redirect.Type, &createdAt, &updated)
	if err != nil {
		return "", domain.Redirect{}, err
	}

	redirect.CreatedAt = domain.ParseTime(createdAt)
	redirect.UpdatedAt = domain.ParseTime(updated)
	return slug, redirect, nil
}

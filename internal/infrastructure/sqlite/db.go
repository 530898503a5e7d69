// Package sqlite stores game history in a SQLite file using the CGO-free
// ncruces/go-sqlite3 driver.
package sqlite

import (
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/zjrosen/soundpairs/internal/history"
	"github.com/zjrosen/soundpairs/internal/infrastructure/migrations"
	"github.com/zjrosen/soundpairs/internal/log"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// DB owns the connection and hands out repositories.
type DB struct {
	conn *sql.DB
	path string
}

// NewDB opens the database at path, configures pragmas and migrates it.
// The parent directory is created if needed. An existing file is copied to
// {path}.bak first so a failed migration can be rolled back by hand.
func NewDB(path string) (*DB, error) {
	log.Debug(log.CatDB, "Opening database", "path", path)

	memory := path == MemoryPath
	if !memory {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			log.ErrorErr(log.CatDB, "Failed to create database directory", err, "path", dir)
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
		if _, err := os.Stat(path); err == nil {
			backup := path + ".bak"
			if err := copyFile(path, backup); err != nil {
				log.ErrorErr(log.CatDB, "Failed to create pre-migration backup", err, "backup", backup)
				return nil, fmt.Errorf("failed to create pre-migration backup: %w", err)
			}
		}
	}

	conn, err := sql.Open("sqlite3", "file:"+path)
	if err != nil {
		log.ErrorErr(log.CatDB, "Failed to open database", err, "path", path)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if memory {
		conn.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	if !memory {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL")
	}
	for _, p := range pragmas {
		if _, err := conn.Exec(p); err != nil {
			_ = conn.Close()
			log.ErrorErr(log.CatDB, "Failed to configure database", err, "pragma", p)
			return nil, fmt.Errorf("failed to configure database (%s): %w", p, err)
		}
	}

	if err := migrations.Up(conn); err != nil {
		_ = conn.Close()
		log.ErrorErr(log.CatDB, "Failed to run migrations", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info(log.CatDB, "Database initialized", "path", path)
	return &DB{conn: conn, path: path}, nil
}

// Close releases database resources.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}
	log.Debug(log.CatDB, "Closing database", "path", db.path)
	return db.conn.Close()
}

// Results returns the history repository backed by this connection.
func (db *DB) Results() history.Repository {
	return newResultRepository(db.conn)
}

// copyFile copies src over dst, reporting close errors so a truncated
// backup is never mistaken for a good one.
func copyFile(src, dst string) (retErr error) {
	in, err := os.Open(src) //nolint:gosec // database path from config
	if err != nil {
		return err
	}
	defer func() {
		if err := in.Close(); err != nil && retErr == nil {
			retErr = fmt.Errorf("failed to close source file: %w", err)
		}
	}()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_RDWR|os.O_CREATE|os.O_TRUNC, info.Mode()) //nolint:gosec // derived from database path
	if err != nil {
		return err
	}
	defer func() {
		if err := out.Close(); err != nil && retErr == nil {
			retErr = fmt.Errorf("failed to close backup file: %w", err)
		}
	}()

	_, err = io.Copy(out, in)
	return err
}

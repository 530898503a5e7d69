package migrations

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/golang-migrate/migrate/v4/database"
)

// VersionTable tracks the applied schema version.
const VersionTable = "schema_migrations"

// Driver is a golang-migrate database.Driver over an already-open
// ncruces/go-sqlite3 connection. Locking is in-process only; the game is
// the single writer of its history file.
type Driver struct {
	db     *sql.DB
	table  string
	locked atomic.Bool
}

var _ database.Driver = (*Driver)(nil)

// NewDriver wraps db and creates the version table if missing. An empty
// table uses VersionTable.
func NewDriver(db *sql.DB, table string) (*Driver, error) {
	if db == nil {
		return nil, errors.New("migrations: nil database")
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if table == "" {
		table = VersionTable
	}

	d := &Driver{db: db, table: table}
	stmt := fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %[1]s (version uint64, dirty bool);
		CREATE UNIQUE INDEX IF NOT EXISTS %[1]s_version ON %[1]s (version);`, table)
	if _, err := db.Exec(stmt); err != nil {
		return nil, fmt.Errorf("creating %s: %w", table, err)
	}
	return d, nil
}

// Open is unsupported; connections come from NewDriver.
func (d *Driver) Open(string) (database.Driver, error) {
	return nil, errors.New("migrations: Open unsupported, use NewDriver")
}

// Close closes the wrapped connection.
func (d *Driver) Close() error {
	return d.db.Close()
}

func (d *Driver) Lock() error {
	if !d.locked.CompareAndSwap(false, true) {
		return database.ErrLocked
	}
	return nil
}

func (d *Driver) Unlock() error {
	if !d.locked.CompareAndSwap(true, false) {
		return database.ErrNotLocked
	}
	return nil
}

// Run applies one migration file inside a transaction.
func (d *Driver) Run(migration io.Reader) error {
	body, err := io.ReadAll(migration)
	if err != nil {
		return err
	}
	return d.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(string(body)); err != nil {
			return &database.Error{OrigErr: err, Query: body}
		}
		return nil
	})
}

// SetVersion records version as the only row of the version table.
func (d *Driver) SetVersion(version int, dirty bool) error {
	return d.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM " + d.table); err != nil { //nolint:gosec // table name is not user input
			return &database.Error{OrigErr: err, Err: "clearing version"}
		}
		// A dirty nil version is kept so a failed first down migration is visible.
		if version < 0 && !(version == database.NilVersion && dirty) {
			return nil
		}
		insert := "INSERT INTO " + d.table + " (version, dirty) VALUES (?, ?)" //nolint:gosec // table name is not user input
		if _, err := tx.Exec(insert, version, dirty); err != nil {
			return &database.Error{OrigErr: err, Query: []byte(insert)}
		}
		return nil
	})
}

// Version returns NilVersion when nothing has been applied.
func (d *Driver) Version() (int, bool, error) {
	var (
		version int
		dirty   bool
	)
	err := d.db.QueryRow("SELECT version, dirty FROM " + d.table + " LIMIT 1").Scan(&version, &dirty) //nolint:gosec // table name is not user input
	if err != nil {
		return database.NilVersion, false, nil
	}
	return version, dirty, nil
}

// Drop removes every table, the version table included.
func (d *Driver) Drop() error {
	rows, err := d.db.Query(`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%'`)
	if err != nil {
		return &database.Error{OrigErr: err, Err: "listing tables"}
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			_ = rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	if err := errors.Join(rows.Err(), rows.Close()); err != nil {
		return err
	}

	for _, name := range tables {
		if _, err := d.db.Exec("DROP TABLE " + name); err != nil { //nolint:gosec // names come from sqlite_master
			return &database.Error{OrigErr: err, Err: "dropping " + name}
		}
	}
	return nil
}

func (d *Driver) inTx(fn func(*sql.Tx) error) error {
	tx, err := d.db.Begin()
	if err != nil {
		return &database.Error{OrigErr: err, Err: "transaction start failed"}
	}
	if err := fn(tx); err != nil {
		return errors.Join(err, tx.Rollback())
	}
	if err := tx.Commit(); err != nil {
		return &database.Error{OrigErr: err, Err: "transaction commit failed"}
	}
	return nil
}

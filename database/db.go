package database

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx so query functions can run
// standalone or inside a transaction.
type DBTX interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	NamedExec(query string, arg interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	Rebind(query string) string
	Exec(query string, args ...interface{}) (sql.Result, error)
	Prepare(query string) (*sql.Stmt, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS master_items (
	ident            TEXT NOT NULL PRIMARY KEY,
	store_code       TEXT NOT NULL DEFAULT '',
	import_date      TEXT NOT NULL DEFAULT '',
	barcode          TEXT NOT NULL DEFAULT '',
	alt_code_1       TEXT NOT NULL DEFAULT '',
	alt_code_2       TEXT NOT NULL DEFAULT '',
	sales_program    TEXT NOT NULL DEFAULT '',
	purchase_program TEXT NOT NULL DEFAULT '',
	unit_of_measure  TEXT NOT NULL DEFAULT '',
	decimal_places   INTEGER NOT NULL DEFAULT 0,
	name             TEXT NOT NULL DEFAULT '',
	max_count_qty    REAL NOT NULL DEFAULT 0,
	active           INTEGER NOT NULL DEFAULT 0,
	accounting       INTEGER NOT NULL DEFAULT 0,
	price            REAL NOT NULL DEFAULT 0,
	quantity_erp     REAL NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_master_items_barcode ON master_items(barcode);
CREATE INDEX IF NOT EXISTS idx_master_items_alt_code_1 ON master_items(alt_code_1);
CREATE INDEX IF NOT EXISTS idx_master_items_alt_code_2 ON master_items(alt_code_2);

CREATE TABLE IF NOT EXISTS damage_info (
	code        TEXT NOT NULL PRIMARY KEY,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS inventory_lists (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	name     TEXT NOT NULL,
	selected INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS inventory_items (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	device_number     TEXT NOT NULL DEFAULT '',
	store_code        TEXT NOT NULL DEFAULT '',
	inventory_list_id INTEGER NOT NULL REFERENCES inventory_lists(id),
	ident             TEXT NOT NULL REFERENCES master_items(ident),
	quantity          REAL NOT NULL DEFAULT 0,
	exp_date          TEXT,
	damage_code       TEXT REFERENCES damage_info(code) ON DELETE SET NULL,
	note              TEXT,
	status            INTEGER NOT NULL DEFAULT 2,
	index_in_list     INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_inventory_items_list ON inventory_items(inventory_list_id);
CREATE INDEX IF NOT EXISTS idx_inventory_items_ident ON inventory_items(ident);
CREATE INDEX IF NOT EXISTS idx_inventory_items_status ON inventory_items(status);
`

// Open opens the SQLite database and applies the schema. The schema only
// creates what is missing; there is no migration path, a wipe recreates it.
func Open(path string) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on", path)
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func InitSchema(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

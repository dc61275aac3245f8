package sqlstore

import (
	"context"
	"fmt"
)

// Dialect captures what differs between the supported stores.
type Dialect struct {
	Name string
	// createTable is a format string taking the table name.
	createTable string
	// returningID selects INSERT ... RETURNING id over LastInsertId.
	returningID bool
}

var dialects = map[string]Dialect{
	DriverSQLite: {
		Name: DriverSQLite,
		createTable: `
CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	address TEXT NOT NULL,
	phone_number TEXT NOT NULL
)`,
	},
	DriverMySQL: {
		Name: DriverMySQL,
		createTable: `
CREATE TABLE IF NOT EXISTS %s (
	id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT NOT NULL,
	phone_number TEXT NOT NULL
)`,
	},
	DriverPostgres: {
		Name: DriverPostgres,
		createTable: `
CREATE TABLE IF NOT EXISTS %s (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	address TEXT NOT NULL,
	phone_number TEXT NOT NULL
)`,
		returningID: true,
	},
}

func (d Dialect) schema(table string) string {
	return fmt.Sprintf(d.createTable, table)
}

// EnsureSchema creates the client table if it is missing. Existing tables are left untouched.
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, db.dialect.schema(db.table)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

package db

import (
	"database/sql"
	"fmt"
)

// migrations is a list of SQL statements applied in order after schema
// creation. Each migration must be idempotent. Append new migrations at
// the end.
var migrations = []string{
	// Migration 1: records imported from the previous deployment carried
	// NULL image URLs; normalize them so the API never serves null.
	`UPDATE products SET image_url = '' WHERE image_url IS NULL`,
	`UPDATE services SET image_url = '' WHERE image_url IS NULL`,
}

// Migrate creates the schema and runs all migrations.
func Migrate(db *sql.DB) error {
	if err := EnsureSchema(db); err != nil {
		return err
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("running migration %d: %w", i+1, err)
		}
	}

	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"os"
)

// schemaPaths covers the usual working directories (repo root, cmd/api, internal/...).
var schemaPaths = []string{
	"script/migration/schema.sql",
	"../script/migration/schema.sql",
	"../../script/migration/schema.sql",
	"../../../script/migration/schema.sql",
}

// RunMigrations executes schema.sql against db. The statements are idempotent.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	schemaPath := findSchema()

	content, err := os.ReadFile(schemaPath)
	if err != nil {
		wd, _ := os.Getwd()
		return fmt.Errorf("failed to read migration file %q (wd %s): %w", schemaPath, wd, err)
	}

	if _, err := db.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute schema.sql: %w", err)
	}
	return nil
}

func findSchema() string {
	if path := os.Getenv("SCHEMA_PATH"); path != "" {
		return path
	}
	for _, path := range schemaPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return schemaPaths[0]
}

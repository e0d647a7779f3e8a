package app

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// requiredTables are the tables the application reads and writes. Startup
// fails fast when one is missing instead of surfacing the gap as scattered
// query errors under traffic.
var requiredTables = []string{
	"users",
	"routes",
	"route_stops",
	"vehicles",
	"drivers",
	"tickets",
	"notifications",
	"reviews",
	"loyalty_points",
}

// ValidateSchema checks that every required table exists in the connected
// database.
func ValidateSchema(ctx context.Context, db *sql.DB) error {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'`)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	present := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return fmt.Errorf("failed to scan table name: %w", err)
		}
		present[name] = true
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}

	var missing []string
	for _, table := range requiredTables {
		if !present[table] {
			missing = append(missing, table)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing tables: %s", strings.Join(missing, ", "))
	}
	return nil
}

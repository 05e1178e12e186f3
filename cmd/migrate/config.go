package main

import "os"

const defaultMigrationsDir = "db/migrations"

// migrationsDir is where "create" writes new files. Applied migrations are
// always read from the embedded set.
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return defaultMigrationsDir
}

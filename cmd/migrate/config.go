package main

import (
	"os"

	"github.com/joho/godotenv"
)

// loadEnvFiles reads local env files without overriding variables the
// runtime already set (e.g. Docker).
func loadEnvFiles() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

// migrationsDir is db/migrations unless MIGRATIONS_DIR points elsewhere.
func migrationsDir() string {
	if v := os.Getenv("MIGRATIONS_DIR"); v != "" {
		return v
	}
	return "db/migrations"
}

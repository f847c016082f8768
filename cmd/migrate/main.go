package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"amr-data/internal/config"
	"amr-data/internal/database"
)

// Applies a SQL file (default scripts/schema.sql) to the configured
// database, statement by statement.
func main() {
	migrationFile := "scripts/schema.sql"
	if len(os.Args) > 1 {
		migrationFile = os.Args[1]
	}

	sqlContent, err := os.ReadFile(migrationFile)
	if err != nil {
		log.Fatalf("Failed to read migration file: %v", err)
	}

	cfg := config.Load()
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Cannot connect to database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Connected to database: %s\n", cfg.Database.Database)

	statements := strings.Split(string(sqlContent), ";")
	applied := 0
	for _, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}
		if _, err := db.Exec(stmt); err != nil {
			log.Fatalf("Failed to execute statement %q: %v", firstLine(stmt), err)
		}
		applied++
	}

	fmt.Printf("Applied %d statements from %s\n", applied, migrationFile)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Copies the URL store from a SQLite file to PostgreSQL. Re-runnable:
// the target table is truncated first.
func main() {
	sqlitePath := flag.String("sqlite-path", "", "Path to SQLite database file")
	pgURL := flag.String("pg-url", "", "PostgreSQL connection URL")
	flag.Parse()

	if *sqlitePath == "" || *pgURL == "" {
		fmt.Fprintf(os.Stderr, "Usage: migrate-to-pg --sqlite-path /path/to/vidrelay.db --pg-url postgres://...\n")
		os.Exit(1)
	}

	// Open SQLite
	sqliteDB, err := sql.Open("sqlite", *sqlitePath)
	if err != nil {
		log.Fatalf("Failed to open SQLite: %v", err)
	}
	defer sqliteDB.Close()

	if err := sqliteDB.Ping(); err != nil {
		log.Fatalf("Failed to ping SQLite: %v", err)
	}
	log.Println("Connected to SQLite")

	// Open PostgreSQL
	pgDB, err := sql.Open("pgx", *pgURL)
	if err != nil {
		log.Fatalf("Failed to open PostgreSQL: %v", err)
	}
	defer pgDB.Close()

	if err := pgDB.Ping(); err != nil {
		log.Fatalf("Failed to ping PostgreSQL: %v", err)
	}
	log.Println("Connected to PostgreSQL")

	tx, err := pgDB.Begin()
	if err != nil {
		log.Fatalf("Failed to start transaction: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		CREATE TABLE IF NOT EXISTS urls (
			id TEXT PRIMARY KEY,
			source_url TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		log.Fatalf("Failed to create urls table: %v", err)
	}

	// Truncate for idempotent re-runs
	if _, err := tx.Exec("TRUNCATE TABLE urls"); err != nil {
		log.Fatalf("Failed to truncate urls: %v", err)
	}

	rows, err := sqliteDB.Query("SELECT id, source_url, created_at FROM urls")
	if err != nil {
		log.Fatalf("Failed to query SQLite: %v", err)
	}
	defer rows.Close()

	stmt, err := tx.Prepare("INSERT INTO urls (id, source_url, created_at) VALUES ($1, $2, $3)")
	if err != nil {
		log.Fatalf("Failed to prepare insert: %v", err)
	}
	defer stmt.Close()

	var count int64
	for rows.Next() {
		var id, sourceURL string
		var createdAt any
		if err := rows.Scan(&id, &sourceURL, &createdAt); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		if _, err := stmt.Exec(id, sourceURL, createdAt); err != nil {
			log.Fatalf("Failed to insert row %s: %v", id, err)
		}
		count++
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Row iteration failed: %v", err)
	}
	log.Printf("Migrated urls: %d rows", count)

	// Verify row counts
	var sqliteCount, pgCount int64
	if err := sqliteDB.QueryRow("SELECT COUNT(*) FROM urls").Scan(&sqliteCount); err != nil {
		log.Fatalf("Failed to count SQLite rows: %v", err)
	}
	if err := tx.QueryRow("SELECT COUNT(*) FROM urls").Scan(&pgCount); err != nil {
		log.Fatalf("Failed to count PG rows: %v", err)
	}
	if sqliteCount != pgCount {
		log.Fatalf("Row count mismatch: SQLite=%d, PG=%d", sqliteCount, pgCount)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %v", err)
	}

	log.Println("Migration completed successfully!")
}

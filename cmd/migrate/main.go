package main

import (
	"context"
	"database/sql"
	"flag"
	"log"

	"blog-api/migrations"
	"blog-api/pkg/config"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// Usage: migrate [-dir path] <command> [args]
// Commands are the goose ones: up, up-to, down, down-to, redo, reset, status, version, create.
// Without -dir the migrations compiled into the binary are used.
func main() {
	dir := flag.String("dir", "", "directory with migration files, empty uses the embedded set")
	flag.Parse()

	args := flag.Args()
	command := "up"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("Failed to set dialect: %v", err)
	}

	migrationsDir := *dir
	if migrationsDir == "" {
		if command == "create" {
			log.Fatal("-dir is required for create")
		}
		goose.SetBaseFS(migrations.FS)
		migrationsDir = "."
	}

	if err := goose.RunContext(context.Background(), command, db, migrationsDir, args...); err != nil {
		log.Fatalf("migrate %s: %v", command, err)
	}
}

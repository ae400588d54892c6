// Package main provides the entry point for the safeworkout server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/waynenilsen/safeworkout/internal/database"
	"github.com/waynenilsen/safeworkout/internal/server"
)

func main() {
	port := flag.Int("port", 8080, "Server port")
	dbPath := flag.String("db", "safeworkout.db", "Database file path")
	migrationsPath := flag.String("migrations", "internal/database/migrations", "Migrations directory path")
	flag.Parse()

	db, err := database.Open(database.Config{
		Path:           *dbPath,
		MigrationsPath: *migrationsPath,
	})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	srv := server.New(server.Config{
		Port: *port,
		DB:   db,
	})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("shutting down server...")
		_ = srv.Stop(context.Background())
	}()

	log.Printf("starting server on port %d", *port)
	if err := srv.Start(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

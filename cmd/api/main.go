package main

import (
	"log"

	"resumevar-backend/internal/bootstrap"
	"resumevar-backend/internal/shared/config"
	"resumevar-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	app.Watcher.Start()
	defer app.Watcher.Stop()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s", addr)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

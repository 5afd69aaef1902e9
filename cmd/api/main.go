package main

import (
	"log"

	"careercompass-backend/internal/bootstrap"
	"careercompass-backend/internal/shared/config"
	"careercompass-backend/internal/shared/server"
)

func main() {
	cfg := config.Load()

	app, err := bootstrap.Build(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	addr := server.Addr(cfg.Port)
	log.Printf("Starting API server on %s (env=%s cache=%s)", addr, cfg.Env, cfg.CacheBackend)

	if err := app.Router.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

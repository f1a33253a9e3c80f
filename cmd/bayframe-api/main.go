package main

import (
	"fmt"
	"log"

	"github.com/chazu/bayframe/pkg/api"
	"github.com/chazu/bayframe/pkg/config"
)

func main() {
	cfg := config.LoadServer()

	code, err := config.LoadCodeRequirements(cfg.CodeFile)
	if err != nil {
		log.Fatalf("[API] Failed to load building code: %v", err)
	}
	if cfg.CodeFile != "" {
		log.Printf("[API] Building code loaded from %s", cfg.CodeFile)
	}

	app := api.New(cfg, code)

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Printf("[API] Starting bayframe API on %s (env: %s)", addr, cfg.Environment)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("[API] Failed to start server: %v", err)
	}
}
